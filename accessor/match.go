package accessor

import (
	"slices"
	"strings"
)

// MatchKey indexes forwarding candidates. Two descriptors produce equal keys
// iff Matches reports true for them.
type MatchKey struct {
	Name    string
	Results string
	Params  string
}

// String returns the key in "Name(params) (results)" form.
func (k MatchKey) String() string {
	if k.Results == "" {
		return k.Name + "(" + k.Params + ")"
	}

	return k.Name + "(" + k.Params + ") (" + k.Results + ")"
}

// KeyOf computes the match key of m.
func KeyOf(m MethodDescriptor) MatchKey {
	return MatchKey{
		Name:    m.Name,
		Results: strings.Join(m.Results, ", "),
		Params:  m.paramList(),
	}
}

// Matches reports whether candidate can back destination: equal names, equal
// parameter types in order and count (variadic included) and equal results.
// It is exact structural equality, not assignability.
func Matches(destination, candidate MethodDescriptor) bool {
	return destination.Name == candidate.Name &&
		destination.Variadic == candidate.Variadic &&
		slices.Equal(destination.Params, candidate.Params) &&
		slices.Equal(destination.Results, candidate.Results)
}

// MatchKind tags the result of an index lookup.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchUnique
	MatchAmbiguous
)

// Match is the result of Index.Lookup.
type Match struct {
	Kind       MatchKind
	Candidates []MethodDescriptor
}

// Method returns the matched method when Kind is MatchUnique.
func (m Match) Method() (MethodDescriptor, bool) {
	if m.Kind != MatchUnique {
		return MethodDescriptor{}, false
	}

	return m.Candidates[0], true
}

// Index holds forwarding candidates keyed by MatchKey.
// It is not safe for concurrent mutation; it is built once per synthesis.
type Index struct {
	byKey  map[MatchKey][]MethodDescriptor
	byName map[string]int
	// hidden holds methods that only take part in name collisions.
	hidden map[string][]MethodDescriptor
}

// NewIndex builds an index from methods. Methods sharing a key, or only a
// name, make that key ambiguous instead of replacing each other. A method set
// holds one method per name, so a repeated name is a colliding promotion.
func NewIndex(methods ...MethodDescriptor) *Index {
	idx := &Index{
		byKey:  make(map[MatchKey][]MethodDescriptor, len(methods)),
		byName: make(map[string]int, len(methods)),
		hidden: make(map[string][]MethodDescriptor),
	}
	for _, m := range methods {
		idx.Add(m)
	}

	return idx
}

// Add records m as a candidate.
func (idx *Index) Add(m MethodDescriptor) {
	key := KeyOf(m)
	idx.byKey[key] = append(idx.byKey[key], m)
	idx.byName[m.Name]++
}

// hide records m for name collisions only; Lookup never returns it as a
// forwarding candidate on its own.
func (idx *Index) hide(m MethodDescriptor) {
	idx.byName[m.Name]++
	idx.hidden[m.Name] = append(idx.hidden[m.Name], m)
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.byKey)
}

// Lookup returns the candidates recorded for key. A key whose name is
// shared by other candidates is ambiguous and lists all of them.
func (idx *Index) Lookup(key MatchKey) Match {
	candidates := idx.byKey[key]
	switch {
	case len(candidates) == 0:
		return Match{Kind: MatchNone}
	case idx.byName[key.Name] > len(candidates):
		return Match{Kind: MatchAmbiguous, Candidates: append(idx.ByName(key.Name), idx.hidden[key.Name]...)}
	case len(candidates) == 1:
		return Match{Kind: MatchUnique, Candidates: candidates}
	default:
		return Match{Kind: MatchAmbiguous, Candidates: slices.Clone(candidates)}
	}
}

// Names returns the distinct method names in the index, sorted.
func (idx *Index) Names() []string {
	seen := make(map[string]struct{}, len(idx.byKey))
	for key := range idx.byKey {
		seen[key.Name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ByName returns all candidates named name, whatever their signature.
func (idx *Index) ByName(name string) []MethodDescriptor {
	var out []MethodDescriptor
	for key, candidates := range idx.byKey {
		if key.Name == name {
			out = append(out, candidates...)
		}
	}

	slices.SortFunc(out, func(a, b MethodDescriptor) int {
		return strings.Compare(a.String(), b.String())
	})

	return out
}
