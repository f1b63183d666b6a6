package accessor

import "reflect"

type Account struct {
	id   int
	name string
}

func (a *Account) ID() int { return a.id }
func (a *Account) SetID(id int) { a.id = id }
func (a *Account) Name() string { return a.name }
func (a *Account) SetName(n string) { a.name = n }
func (a *Account) Tags(t ...string) int { return len(t) }
func (a *Account) AccessorSource() any { return "not forwarded" }

type AccountView interface {
	ID() int
	SetID(int)
	Name() string
	SetName(string)
}

// Record is a concrete destination with behaviour of its own.
type Record struct{}

func (*Record) ID() int { return 0 }
func (*Record) Name() string { return "record" }
func (*Record) Label() string { return "original" }
func (*Record) Tags(...string) int { return -1 }

type Negator struct {
	src    *Account
	opens  int
	closes int
}

func NewNegator(a *Account) *Negator { return &Negator{src: a} }

func (d *Negator) ID() int { return -d.src.ID() }
func (d *Negator) SetID(v int) { d.src.SetID(-v) }
func (d *Negator) Open() { d.opens++ }
func (d *Negator) Close() { d.closes++ }
func (d *Negator) Reset(hard bool) {}

type Namer interface{ Name() string }

type left struct{}

func (left) Name() string { return "left" }

type right struct{}

func (right) Name() string { return "right" }

// Both promotes Name from two fields at the same depth.
type Both struct {
	left
	right
}

func (*Both) ID() int { return 7 }

type counter struct{}

func (counter) Name() int { return 1 }

// Mixed promotes Name from two fields with different signatures.
type Mixed struct {
	left
	counter
}

func (*Mixed) ID() int { return 3 }

type sizer interface{ Name() int }

// Shadowed collides a concrete Name with an abstract one.
type Shadowed struct {
	left
	sizer
}

type IDNamer interface {
	ID() int
	Name() string
}

type Partial struct{ Namer }

type Override struct{ Namer }

func (Override) Name() string { return "override" }

var (
	accountType     = reflect.TypeFor[*Account]()
	accountViewType = reflect.TypeFor[AccountView]()
	recordType      = reflect.TypeFor[Record]()
	negatorType     = reflect.TypeFor[*Negator]()
)

func names(ms []MethodDescriptor) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}

	return out
}
