package accessor

import (
	"reflect"
	"runtime"
	"slices"
)

// Describe returns the descriptors of the methods callable on t.
//
// Methods of interface types are described as declared, unexported ones
// included. For other types the exported method set is described; a method
// promoted from an embedded interface field is marked ModAbstract, and a name
// promoted from several embedded fields at once, which the compiler leaves
// out of the method set, is reported once per embedded field so that an
// Index built from the result sees it as ambiguous.
func Describe(t reflect.Type) []MethodDescriptor {
	return describe(t, make(map[reflect.Type]bool))
}

func describe(t reflect.Type, visiting map[reflect.Type]bool) []MethodDescriptor {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Interface {
		out := make([]MethodDescriptor, 0, t.NumMethod())
		for i := range t.NumMethod() {
			m := t.Method(i)
			out = append(out, DescribeFunc(m.Name, m.Type, ModNone))
		}

		return out
	}

	if visiting[t] {
		return nil
	}

	visiting[t] = true
	defer delete(visiting, t)

	promoted := embeddedMethods(t, visiting)

	out := make([]MethodDescriptor, 0, t.NumMethod())
	for i := range t.NumMethod() {
		m := t.Method(i)
		desc := describeSignature(m.Name, m.Type, 1, ModNone)

		if providers := promoted[m.Name]; len(providers) == 1 && !declaredOn(t, m.Name) {
			desc.Modifiers |= providers[0].Modifiers & ModAbstract
		}

		out = append(out, desc)
	}

	names := make([]string, 0, len(promoted))
	for name, providers := range promoted {
		if len(providers) > 1 {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	for _, name := range names {
		if _, ok := t.MethodByName(name); ok {
			continue
		}

		out = append(out, promoted[name]...)
	}

	return out
}

// embeddedMethods collects, per method name, the descriptors offered by each
// embedded field of t (or of *t's element).
func embeddedMethods(t reflect.Type, visiting map[reflect.Type]bool) map[string][]MethodDescriptor {
	st, ptr := t, false
	if st.Kind() == reflect.Pointer {
		st, ptr = st.Elem(), true
	}

	if st.Kind() != reflect.Struct {
		return nil
	}

	out := make(map[string][]MethodDescriptor)

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		iface := ft.Kind() == reflect.Interface

		if ptr && !iface && ft.Kind() != reflect.Pointer {
			ft = reflect.PointerTo(ft)
		}

		for _, m := range describe(ft, visiting) {
			if iface {
				m.Modifiers |= ModAbstract
			}

			out[m.Name] = append(out[m.Name], m)
		}
	}

	return out
}

// declaredOn reports whether the method name of t has a body of its own
// rather than a compiler-generated promotion wrapper.
func declaredOn(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Pointer {
		if m, ok := t.Elem().MethodByName(name); ok {
			return !autogenerated(m.Func)
		}
	}

	m, ok := t.MethodByName(name)
	if !ok {
		return false
	}

	return !autogenerated(m.Func)
}

func autogenerated(fn reflect.Value) bool {
	pc := fn.Pointer()

	f := runtime.FuncForPC(pc)
	if f == nil {
		return false
	}

	file, _ := f.FileLine(pc)

	return file == "<autogenerated>"
}
