package mapping

import (
	"errors"
	"fmt"
	"go/types"
	"sort"
	"strings"

	"accessor-generator/internal/analyze"
)

// ResolveTypeID resolves a type ID string like:
// - "store.Order" (short)
// - "accessor-generator/store.Order" (full)
// - "Order" (name only)
// A leading "*" is ignored; pointer-ness is decided by the type's kind.
func ResolveTypeID(typeIDStr string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil {
		return nil
	}

	typeIDStr = strings.TrimPrefix(strings.TrimSpace(typeIDStr), "*")

	pkgStr, name, qualified := cutQualified(typeIDStr)
	if name == "" {
		return nil
	}

	if qualified {
		if t := graph.GetType(analyze.TypeID{PkgPath: pkgStr, Name: name}); t != nil {
			return t
		}
	}

	// Walk ids in order so that an ambiguous short name resolves the same
	// way on every run.
	for _, id := range sortedTypeIDs(graph) {
		if id.Name != name {
			continue
		}

		if !qualified || strings.HasSuffix(id.PkgPath, "/"+pkgStr) || id.PkgPath == pkgStr {
			return graph.Types[id]
		}
	}

	return nil
}

// ResolveFunc resolves a package-level function reference. Unqualified
// names are looked up in defaultPkg.
func ResolveFunc(ref, defaultPkg string, graph *analyze.TypeGraph) *analyze.FuncInfo {
	if graph == nil {
		return nil
	}

	pkgStr, name, qualified := cutQualified(strings.TrimSpace(ref))
	if name == "" {
		return nil
	}

	if !qualified {
		return graph.GetFunc(analyze.TypeID{PkgPath: defaultPkg, Name: name})
	}

	if f := graph.GetFunc(analyze.TypeID{PkgPath: pkgStr, Name: name}); f != nil {
		return f
	}

	for id, f := range graph.Funcs {
		if id.Name == name && strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return f
		}
	}

	return nil
}

func cutQualified(s string) (pkg, name string, qualified bool) {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return "", s, false
	}

	if i == 0 || i == len(s)-1 {
		return "", "", true
	}

	return s[:i], s[i+1:], true
}

func sortedTypeIDs(graph *analyze.TypeGraph) []analyze.TypeID {
	ids := make([]analyze.TypeID, 0, len(graph.Types))
	for id := range graph.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	return ids
}

// RefType returns the type adapters hold for info: the interface itself,
// or a pointer to any other named type.
func RefType(info *analyze.TypeInfo) types.Type {
	if info.IsInterface() {
		return info.GoType
	}

	return types.NewPointer(info.GoType)
}

// Constructor is a resolved delegator constructor.
type Constructor struct {
	Func *analyze.FuncInfo
	// Delegator is the constructor's first result type.
	Delegator types.Type
	// ReturnsError is set for func(S) (D, error).
	ReturnsError bool
}

var errorType = types.Universe.Lookup("error").Type()

// ResolveConstructor finds the constructor of def's delegator and checks that
// it has the shape func(S) D or func(S) (D, error), with S accepting the
// source and D being the delegator.
func ResolveConstructor(def *AccessorDef, source, delegator *analyze.TypeInfo, graph *analyze.TypeGraph) (*Constructor, error) {
	ref := constructorRef(def, delegator)

	fn := ResolveFunc(ref, delegator.ID.PkgPath, graph)
	if fn == nil {
		return nil, fmt.Errorf("constructor %s not found for delegator %s", ref, delegator.ID)
	}

	sig := fn.Signature
	if sig.Params().Len() != 1 || sig.Variadic() {
		return nil, fmt.Errorf("constructor %s must take exactly one parameter, the source", fn.ID)
	}

	if !types.AssignableTo(RefType(source), sig.Params().At(0).Type()) {
		return nil, fmt.Errorf("constructor %s takes %s, which does not accept %s",
			fn.ID, analyze.TypeName(sig.Params().At(0).Type()), analyze.TypeName(RefType(source)))
	}

	res := sig.Results()
	if res.Len() < 1 || res.Len() > 2 || (res.Len() == 2 && !types.Identical(res.At(1).Type(), errorType)) {
		return nil, errors.New("constructor " + fn.ID.String() + " must return the delegator and optionally an error")
	}

	out := res.At(0).Type()
	if !types.Identical(out, delegator.GoType) && !types.Identical(out, types.NewPointer(delegator.GoType)) {
		return nil, fmt.Errorf("constructor %s returns %s, want %s", fn.ID, analyze.TypeName(out), analyze.TypeName(RefType(delegator)))
	}

	return &Constructor{Func: fn, Delegator: out, ReturnsError: res.Len() == 2}, nil
}

// CheckLifecycleMethod checks that the delegator has a no-argument method name.
func CheckLifecycleMethod(delegator *analyze.TypeInfo, name string) error {
	if name == "" {
		return nil
	}

	m, ok := delegator.Method(name)
	if !ok {
		return fmt.Errorf("delegator %s has no method %s", delegator.ID, name)
	}

	if m.Signature.Params().Len() != 0 {
		return fmt.Errorf("lifecycle method %s.%s takes arguments", delegator.ID, name)
	}

	return nil
}
