package analyze

import (
	"go/token"
	"go/types"

	"accessor-generator/accessor"
	"accessor-generator/internal/common"
)

// TypeID uniquely identifies a named type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "accessor-generator/examples/users/store"
	Name    string // e.g., "User"
}

// String returns the qualified name, as accessor.TypeName spells it.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a named type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindStruct             // named struct
	TypeKindInterface          // named interface
	TypeKindBasic              // named basic type, e.g. type Celsius float64
	TypeKindOther              // named map, slice, func, ...
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindBasic:
		return "basic"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type declared in a loaded package.
type TypeInfo struct {
	ID     TypeID
	Kind   TypeKind
	GoType *types.Named
	// Methods is the method set adapters see: the pointer method set for
	// concrete types, the declared set for interfaces.
	Methods []MethodInfo
	// Directives are the //accessor: lines of the type's doc comment.
	Directives []Directive
	Pos        token.Position
}

// IsInterface reports whether the type is an interface.
func (t *TypeInfo) IsInterface() bool {
	return t.Kind == TypeKindInterface
}

// Method returns the first method named name.
func (t *TypeInfo) Method(name string) (*MethodInfo, bool) {
	for i := range t.Methods {
		if t.Methods[i].Descriptor.Name == name {
			return &t.Methods[i], true
		}
	}

	return nil, false
}

// Descriptors returns the method descriptors of the type.
func (t *TypeInfo) Descriptors() []accessor.MethodDescriptor {
	out := make([]accessor.MethodDescriptor, len(t.Methods))
	for i, m := range t.Methods {
		out[i] = m.Descriptor
	}

	return out
}

// Directive returns the first directive named name.
func (t *TypeInfo) Directive(name string) (Directive, bool) {
	for _, d := range t.Directives {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}

// MethodInfo describes one method of a type's method set.
type MethodInfo struct {
	Descriptor accessor.MethodDescriptor
	// Func is the declared method; for methods promoted from several
	// embedded fields it is the one reached through Via.
	Func *types.Func
	// Signature is the method signature without receiver.
	Signature *types.Signature
	// Via names the embedded field the method is promoted from, if any.
	Via string
}

// FuncInfo describes a package-level function, used to find delegator constructors.
type FuncInfo struct {
	ID        TypeID
	Func      *types.Func
	Signature *types.Signature
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Funcs maps package-level functions by package path and name.
	Funcs map[TypeID]*FuncInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Funcs:    make(map[TypeID]*FuncInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// GetFunc returns the FuncInfo for a given function ID, or nil if not found.
func (g *TypeGraph) GetFunc(id TypeID) *FuncInfo {
	return g.Funcs[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
