package gen

import (
	"fmt"
	"go/types"
	"sort"
	"strings"

	"accessor-generator/internal/common"
)

const accessorPkgPath = "accessor-generator/accessor"

type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file and hands out the
// names types are qualified with.
type importSet struct {
	self   string
	byPath map[string]string
	byName map[string]string
	// roots holds rootOf of every local package path.
	roots map[string]bool
}

// newImportSet returns the imports of a file in package self. The paths in
// local, self and the accessor runtime are grouped after the standard
// library and third-party packages.
func newImportSet(self string, local ...string) *importSet {
	s := &importSet{
		self:   self,
		byPath: make(map[string]string),
		byName: make(map[string]string),
		roots:  make(map[string]bool),
	}

	for _, path := range append([]string{self, accessorPkgPath}, local...) {
		if path != "" {
			s.roots[rootOf(path)] = true
		}
	}

	return s
}

// rootOf returns the part of path that names its module owner: the first
// element of a dotless path, the host and the next element otherwise.
func rootOf(path string) string {
	host, rest, _ := strings.Cut(path, "/")
	if !strings.Contains(host, ".") || rest == "" {
		return host
	}

	owner, _, _ := strings.Cut(rest, "/")

	return host + "/" + owner
}

const (
	groupStdlib = iota
	groupThirdParty
	groupLocal
)

// group orders import paths the way goimports does with a local prefix.
// A dotless path outside the local roots is taken for the standard library.
func (s *importSet) group(path string) int {
	root := rootOf(path)

	switch {
	case s.roots[root]:
		return groupLocal
	case strings.Contains(root, "."):
		return groupThirdParty
	default:
		return groupStdlib
	}
}

// add registers path and returns the name it is referenced by. Packages whose
// name is taken by an earlier import get a numeric suffix.
func (s *importSet) add(path, name string) string {
	if path == s.self {
		return ""
	}

	if n, ok := s.byPath[path]; ok {
		return n
	}

	n := name
	for i := 2; ; i++ {
		if _, taken := s.byName[n]; !taken {
			break
		}

		n = fmt.Sprintf("%s%d", name, i)
	}

	s.byPath[path] = n
	s.byName[n] = path

	return n
}

// qualifier is a types.Qualifier registering every package it sees.
func (s *importSet) qualifier(p *types.Package) string {
	if p == nil {
		return ""
	}

	return s.add(p.Path(), p.Name())
}

// typeString renders t as seen from the generated package.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// qualified renders a package-level object reference.
func (s *importSet) qualified(obj types.Object) string {
	if q := s.qualifier(obj.Pkg()); q != "" {
		return q + "." + obj.Name()
	}

	return obj.Name()
}

// specs returns the imports in non-empty groups: standard library, third
// party, then local packages, each sorted by path.
func (s *importSet) specs() [][]importSpec {
	groups := make([][]importSpec, groupLocal+1)

	for path, name := range s.byPath {
		spec := importSpec{Path: path}
		if name != common.PkgAlias(path) {
			spec.Alias = name
		}

		g := s.group(path)
		groups[g] = append(groups[g], spec)
	}

	out := groups[:0]

	for _, g := range groups {
		if common.IsEmpty(g) {
			continue
		}

		sort.Slice(g, func(i, j int) bool {
			return g[i].Path < g[j].Path
		})

		out = append(out, g)
	}

	return out
}

// signature renders the parameter list and results of sig. Parameters are
// named p0..pN when named is set; args is the matching call argument list.
func (s *importSet) signature(sig *types.Signature, named bool) (params, results, args string) {
	var ps, as []string

	for i := range sig.Params().Len() {
		t := sig.Params().At(i).Type()
		prefix := ""

		if sig.Variadic() && i == sig.Params().Len()-1 {
			t = t.(*types.Slice).Elem()
			prefix = "..."
		}

		p := prefix + s.typeString(t)
		if named {
			name := fmt.Sprintf("p%d", i)
			p = name + " " + p

			if prefix != "" {
				name += "..."
			}

			as = append(as, name)
		}

		ps = append(ps, p)
	}

	var rs []string
	for i := range sig.Results().Len() {
		rs = append(rs, s.typeString(sig.Results().At(i).Type()))
	}

	switch {
	case common.IsEmpty(rs):
	case common.IsSingle(rs):
		results = " " + rs[0]
	default:
		results = " (" + strings.Join(rs, ", ") + ")"
	}

	return strings.Join(ps, ", "), results, strings.Join(as, ", ")
}
