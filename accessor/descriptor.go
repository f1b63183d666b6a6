package accessor

import (
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// MethodDescriptor describes one method of a Source, Delegator or Destination
// type. Parameter and result types are canonical type names (see TypeName), so
// descriptors built from reflect and from go/types can be compared with each other.
type MethodDescriptor struct {
	Name      string
	Params    []string
	Variadic  bool // the last parameter is "...T"; Params holds it as "[]T"
	Results   []string
	Modifiers Modifiers
}

// Exported reports whether the method name is exported.
func (m MethodDescriptor) Exported() bool {
	return token.IsExported(m.Name)
}

// HasResults reports whether the method returns anything.
func (m MethodDescriptor) HasResults() bool {
	return len(m.Results) > 0
}

// String returns the long name of the method, e.g. "Find(string, ...int) (*store.User, error)".
func (m MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	sb.WriteString(m.paramList())
	sb.WriteByte(')')

	switch len(m.Results) {
	case 0:
	case 1:
		sb.WriteByte(' ')
		sb.WriteString(m.Results[0])
	default:
		sb.WriteString(" (")
		sb.WriteString(strings.Join(m.Results, ", "))
		sb.WriteByte(')')
	}

	return sb.String()
}

func (m MethodDescriptor) paramList() string {
	params := make([]string, len(m.Params))
	copy(params, m.Params)
	if m.Variadic && len(params) > 0 {
		last := params[len(params)-1]
		params[len(params)-1] = "..." + strings.TrimPrefix(last, "[]")
	}

	return strings.Join(params, ", ")
}

// DescribeFunc builds a descriptor for a method called name whose signature,
// without the receiver, is fn.
func DescribeFunc(name string, fn reflect.Type, mods Modifiers) MethodDescriptor {
	return describeSignature(name, fn, 0, mods)
}

// describeSignature skips the first skip parameters of fn, which is how
// receivers are dropped from reflect.Method types.
func describeSignature(name string, fn reflect.Type, skip int, mods Modifiers) MethodDescriptor {
	desc := MethodDescriptor{
		Name:      name,
		Variadic:  fn.IsVariadic(),
		Modifiers: mods,
	}

	for i := skip; i < fn.NumIn(); i++ {
		desc.Params = append(desc.Params, TypeName(fn.In(i)))
	}

	for i := range fn.NumOut() {
		desc.Results = append(desc.Results, TypeName(fn.Out(i)))
	}

	if !desc.Exported() {
		desc.Modifiers |= ModPrivate
	}

	return desc
}

// TypeName returns the canonical name of t: named types are qualified by their
// full import path ("example.com/store.User"), composite types are spelled
// recursively ("map[string]*example.com/store.User").
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Kind() == reflect.UnsafePointer {
		return "unsafe.Pointer"
	}

	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}

		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		return "[]" + TypeName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeName(t.Elem())
	case reflect.Map:
		return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + TypeName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + TypeName(t.Elem())
		default:
			return "chan " + TypeName(t.Elem())
		}
	case reflect.Func:
		return funcTypeName(t)
	default:
		return t.String()
	}
}

func funcTypeName(t reflect.Type) string {
	return DescribeFunc("func", t, ModNone).String()
}
