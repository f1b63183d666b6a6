package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"

	"accessor-generator/accessor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
	// docs and bodiless are keyed by declared (origin) functions of every
	// loaded package, so promoted methods find their declaration.
	docs     map[*types.Func]*ast.CommentGroup
	bodiless map[*types.Func]bool
	fsets    map[*types.Func]*token.FileSet
}

// NewAnalyzer creates a new Analyzer resolving patterns relative to the
// current directory.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:    NewTypeGraph(),
		docs:     make(map[*types.Func]*ast.CommentGroup),
		bodiless: make(map[*types.Func]bool),
		fsets:    make(map[*types.Func]*token.FileSet),
	}
}

// InDir makes the analyzer resolve patterns relative to dir.
func (a *Analyzer) InDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./store", "accessor-generator/examples/users/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.indexSyntax(pkg)
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// indexSyntax records doc comments and body-less declarations of functions
// and interface methods.
func (a *Analyzer) indexSyntax(pkg *packages.Package) {
	record := func(ident *ast.Ident, doc *ast.CommentGroup, bodiless bool) {
		fn, ok := pkg.TypesInfo.Defs[ident].(*types.Func)
		if !ok {
			return
		}

		a.docs[fn] = doc
		a.fsets[fn] = pkg.Fset

		if bodiless {
			a.bodiless[fn] = true
		}
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				record(d.Name, d.Doc, d.Body == nil)
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}

					it, ok := ts.Type.(*ast.InterfaceType)
					if !ok || it.Methods == nil {
						continue
					}

					for _, field := range it.Methods.List {
						for _, name := range field.Names {
							record(name, field.Doc, false)
						}
					}
				}
			}
		}
	}
}

// processPackage extracts types and functions from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	typeDocs := typeDocComments(pkg)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		switch o := obj.(type) {
		case *types.Func:
			a.graph.Funcs[id] = &FuncInfo{ID: id, Func: o, Signature: o.Type().(*types.Signature)}

		case *types.TypeName:
			if o.IsAlias() {
				continue
			}

			named, ok := o.Type().(*types.Named)
			if !ok || named.TypeParams().Len() > 0 {
				continue
			}

			directives, err := ParseDirectives(pkg.Fset, typeDocs[o])
			if err != nil {
				return err
			}

			info, err := a.analyzeNamedType(named)
			if err != nil {
				return fmt.Errorf("type %s: %w", name, err)
			}

			info.ID = id
			info.Directives = directives
			info.Pos = pkg.Fset.Position(o.Pos())

			a.graph.Types[id] = info
			pkgInfo.Types = append(pkgInfo.Types, id)
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return nil
}

// typeDocComments maps type names to their doc comments. A lone spec in a
// type declaration uses the declaration's doc.
func typeDocComments(pkg *packages.Package) map[*types.TypeName]*ast.CommentGroup {
	docs := make(map[*types.TypeName]*ast.CommentGroup)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				if tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
					docs[tn] = doc
				}
			}
		}
	}

	return docs
}

// analyzeNamedType classifies named and extracts its method set.
func (a *Analyzer) analyzeNamedType(named *types.Named) (*TypeInfo, error) {
	info := &TypeInfo{GoType: named}

	switch named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
	case *types.Interface:
		info.Kind = TypeKindInterface
	case *types.Basic:
		info.Kind = TypeKindBasic
	default:
		info.Kind = TypeKindOther
	}

	var recv types.Type = named
	if info.Kind != TypeKindInterface {
		recv = types.NewPointer(named)
	}

	methods, err := a.methodSet(recv, make(map[types.Type]bool))
	if err != nil {
		return nil, err
	}

	info.Methods = methods

	return info, nil
}

// methodSet describes the methods callable on t. Names promoted from
// several embedded fields at the same depth, which go/types drops from the
// method set, are reported once per embedded field.
func (a *Analyzer) methodSet(t types.Type, visiting map[types.Type]bool) ([]MethodInfo, error) {
	if visiting[t] {
		return nil, nil
	}

	visiting[t] = true
	defer delete(visiting, t)

	iface := types.IsInterface(t)
	mset := types.NewMethodSet(t)

	out := make([]MethodInfo, 0, mset.Len())
	for i := range mset.Len() {
		sel := mset.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok {
			continue
		}

		m, err := a.methodInfo(fn, iface)
		if err != nil {
			return nil, err
		}

		if len(sel.Index()) > 1 {
			m.Via = embeddedFieldName(t, sel.Index()[0])
		}

		out = append(out, m)
	}

	if iface {
		return out, nil
	}

	colliding, err := a.collidingMethods(t, visiting)
	if err != nil {
		return nil, err
	}

	return append(out, colliding...), nil
}

func (a *Analyzer) methodInfo(fn *types.Func, outerIsInterface bool) (MethodInfo, error) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return MethodInfo{}, fmt.Errorf("method %s has no signature", fn.Name())
	}

	origin := fn.Origin()

	mods, err := a.directiveModifiers(origin)
	if err != nil {
		return MethodInfo{}, err
	}

	if a.bodiless[origin] {
		mods |= accessor.ModNative
	}

	if !outerIsInterface && sig.Recv() != nil && types.IsInterface(sig.Recv().Type()) {
		mods |= accessor.ModAbstract
	}

	return MethodInfo{
		Descriptor: Describe(fn.Name(), sig, mods),
		Func:       fn,
		Signature:  sig,
	}, nil
}

// directiveModifiers reads //accessor:<modifier> lines from the doc comment
// of fn. Other directives on methods are rejected.
func (a *Analyzer) directiveModifiers(fn *types.Func) (accessor.Modifiers, error) {
	doc := a.docs[fn]
	if doc == nil {
		return accessor.ModNone, nil
	}

	directives, err := ParseDirectives(a.fsets[fn], doc)
	if err != nil {
		return accessor.ModNone, err
	}

	mods := accessor.ModNone
	for _, d := range directives {
		mod, ok := accessor.ParseModifier(d.Name)
		if !ok {
			return accessor.ModNone, fmt.Errorf("%s: unknown method directive %q", d.Pos, d.Name)
		}

		mods |= mod
	}

	return mods, nil
}

func (a *Analyzer) collidingMethods(t types.Type, visiting map[types.Type]bool) ([]MethodInfo, error) {
	st, ptr := structOf(t)
	if st == nil {
		return nil, nil
	}

	providers := make(map[string][]MethodInfo)

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		ft := f.Type()
		fieldIsInterface := types.IsInterface(ft)

		if _, isPtr := types.Unalias(ft).(*types.Pointer); ptr && !fieldIsInterface && !isPtr {
			ft = types.NewPointer(ft)
		}

		methods, err := a.methodSet(ft, visiting)
		if err != nil {
			return nil, err
		}

		for _, m := range methods {
			if fieldIsInterface {
				m.Descriptor.Modifiers |= accessor.ModAbstract
			}

			m.Via = f.Name()
			providers[m.Descriptor.Name] = append(providers[m.Descriptor.Name], m)
		}
	}

	names := make([]string, 0, len(providers))
	for name, ms := range providers {
		if len(ms) > 1 {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	var out []MethodInfo

	for _, name := range names {
		ms := providers[name]

		obj, index, _ := types.LookupFieldOrMethod(t, true, ms[0].Func.Pkg(), name)
		if obj == nil && index != nil {
			out = append(out, ms...)
		}
	}

	return out, nil
}

// structOf returns the struct underlying t or *t.
func structOf(t types.Type) (*types.Struct, bool) {
	ptr := false
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t, ptr = p.Elem(), true
	}

	st, _ := t.Underlying().(*types.Struct)

	return st, ptr
}

func embeddedFieldName(t types.Type, index int) string {
	st, _ := structOf(t)
	if st == nil || index >= st.NumFields() {
		return ""
	}

	return st.Field(index).Name()
}
