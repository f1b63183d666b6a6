package accessor

import (
	"fmt"
	"reflect"
)

// dispatchTable is shared, read-only, by every Dynamic built for one Spec.
type dispatchTable struct {
	spec      Spec
	plan      Plan
	calls     map[string]dispatch
	initIdx   int // delegator method index, -1 for no-op
	termIdx   int
	baseType  reflect.Type // destination element type providing original behaviour, nil for interfaces
	delegator reflect.Type
}

type dispatch struct {
	forwarder Forwarder
	index     int // method index on the target's static type
}

// Dynamic is an adapter synthesized at run time. Calls go through a dispatch
// table keyed by destination method name instead of a generated type.
type Dynamic struct {
	table     *dispatchTable
	source    reflect.Value
	delegator reflect.Value
	base      reflect.Value
}

var _ Accessor[any] = (*Dynamic)(nil)

func newDynamic(table *dispatchTable, source, delegate any) *Dynamic {
	d := &Dynamic{table: table}

	if table.spec.Mode() != ModeTransparent {
		d.source = valueAs(table.spec.Source, source)
	}

	if table.delegator != nil {
		d.delegator = valueAs(table.delegator, delegate)
	}

	if table.baseType != nil {
		d.base = reflect.New(table.baseType)
	}

	return d
}

// valueAs returns x as a value of static type t, so that method indexes of t
// apply to it even when t is an interface.
func valueAs(t reflect.Type, x any) reflect.Value {
	v := reflect.New(t).Elem()
	v.Set(reflect.ValueOf(x))

	return v
}

// Spec returns the spec the adapter was synthesized for.
func (d *Dynamic) Spec() Spec {
	return d.table.spec
}

// AccessorSource returns the source, or nil for transparent adapters.
func (d *Dynamic) AccessorSource() any {
	if !d.source.IsValid() {
		return nil
	}

	return d.source.Interface()
}

// Delegator returns the delegator, or nil for direct adapters.
func (d *Dynamic) Delegator() any {
	if !d.delegator.IsValid() {
		return nil
	}

	return d.delegator.Interface()
}

func (d *Dynamic) AccessorInitialize() {
	d.lifecycle(d.table.initIdx)
}

func (d *Dynamic) AccessorTerminate() {
	d.lifecycle(d.table.termIdx)
}

func (d *Dynamic) lifecycle(idx int) {
	if idx < 0 || !d.delegator.IsValid() {
		return
	}

	d.delegator.Method(idx).Call(nil)
}

// Forwards reports whether calls to the destination method name are forwarded.
func (d *Dynamic) Forwards(name string) bool {
	_, ok := d.table.calls[name]
	return ok
}

// Plan returns the forwarding plan shared by all adapters of the spec.
func (d *Dynamic) Plan() Plan {
	return d.table.plan
}

// Call invokes the destination method name with args and returns its results.
// Forwarded methods run on the delegator or the source; other methods run on
// a zero destination value when the destination is a concrete type. Variadic
// arguments are passed spread, as in a Go call expression.
func (d *Dynamic) Call(name string, args ...any) ([]any, error) {
	var fn reflect.Value

	if entry, ok := d.table.calls[name]; ok {
		recv := d.source
		if entry.forwarder.Target == TargetDelegator {
			recv = d.delegator
		}

		fn = recv.Method(entry.index)
	} else if d.base.IsValid() {
		fn = d.base.MethodByName(name)
	}

	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotForwarded, TypeName(d.table.spec.Destination), name)
	}

	in, err := callArgs(fn.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArguments, name, err)
	}

	out := fn.Call(in)

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	return results, nil
}

func callArgs(fn reflect.Type, args []any) ([]reflect.Value, error) {
	n := fn.NumIn()
	if fn.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("got %d arguments, want at least %d", len(args), n-1)
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("got %d arguments, want %d", len(args), n)
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if fn.IsVariadic() && i >= n-1 {
			pt = fn.In(n - 1).Elem()
		} else {
			pt = fn.In(i)
		}

		if a == nil {
			switch pt.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				in[i] = reflect.Zero(pt)
				continue
			default:
				return nil, fmt.Errorf("argument %d: nil is not %s", i, TypeName(pt))
			}
		}

		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("argument %d: %s is not assignable to %s", i, TypeName(v.Type()), TypeName(pt))
		}

		in[i] = v
	}

	return in, nil
}
