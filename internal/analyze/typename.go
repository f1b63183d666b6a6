package analyze

import (
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"accessor-generator/accessor"
)

// TypeName returns the canonical name of t, spelled the way
// accessor.TypeName spells the equivalent reflect.Type.
func TypeName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case nil:
		return ""
	case *types.Named:
		obj := tt.Obj()

		name := obj.Name()
		if args := tt.TypeArgs(); args != nil && args.Len() > 0 {
			parts := make([]string, args.Len())
			for i := range args.Len() {
				parts[i] = TypeName(args.At(i))
			}

			name += "[" + strings.Join(parts, ",") + "]"
		}

		if obj.Pkg() == nil {
			return name
		}

		return obj.Pkg().Path() + "." + name
	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			return "unsafe.Pointer"
		}

		// byte and rune are spelled by their underlying kind.
		return types.Typ[tt.Kind()].Name()
	case *types.Pointer:
		return "*" + TypeName(tt.Elem())
	case *types.Slice:
		return "[]" + TypeName(tt.Elem())
	case *types.Array:
		return "[" + strconv.FormatInt(tt.Len(), 10) + "]" + TypeName(tt.Elem())
	case *types.Map:
		return "map[" + TypeName(tt.Key()) + "]" + TypeName(tt.Elem())
	case *types.Chan:
		switch tt.Dir() {
		case types.RecvOnly:
			return "<-chan " + TypeName(tt.Elem())
		case types.SendOnly:
			return "chan<- " + TypeName(tt.Elem())
		default:
			return "chan " + TypeName(tt.Elem())
		}
	case *types.Signature:
		return Describe("func", tt, accessor.ModNone).String()
	case *types.Interface:
		if tt.Empty() {
			return "interface {}"
		}

		return types.TypeString(tt, nil)
	case *types.TypeParam:
		return tt.Obj().Name()
	default:
		return types.TypeString(t, nil)
	}
}

// Describe builds the descriptor of a method called name with signature sig.
// Unexported names get accessor.ModPrivate on top of mods.
func Describe(name string, sig *types.Signature, mods accessor.Modifiers) accessor.MethodDescriptor {
	desc := accessor.MethodDescriptor{
		Name:      name,
		Variadic:  sig.Variadic(),
		Modifiers: mods,
	}

	for i := range sig.Params().Len() {
		desc.Params = append(desc.Params, TypeName(sig.Params().At(i).Type()))
	}

	for i := range sig.Results().Len() {
		desc.Results = append(desc.Results, TypeName(sig.Results().At(i).Type()))
	}

	if !token.IsExported(name) {
		desc.Modifiers |= accessor.ModPrivate
	}

	return desc
}
