package accessor

import "strings"

// Modifiers is a bit set of method modifiers used by the scope filters.
type Modifiers uint16

const (
	ModPrivate Modifiers = 1 << iota
	ModStatic
	ModVolatile
	ModTransient
	ModNative
	ModInterface
	ModAnnotation
	ModEnum
	ModAbstract
	ModStrict

	ModNone Modifiers = 0
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModVolatile, "volatile"},
	{ModTransient, "transient"},
	{ModNative, "native"},
	{ModInterface, "interface"},
	{ModAnnotation, "annotation"},
	{ModEnum, "enum"},
	{ModAbstract, "abstract"},
	{ModStrict, "strict"},
}

// Has reports whether every bit of m is set.
func (s Modifiers) Has(m Modifiers) bool {
	return s&m == m
}

// String returns the modifiers as a space separated list, e.g. "private native".
func (s Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if s&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}

	return strings.Join(parts, " ")
}

// ParseModifier returns the modifier named by s, as spelled in
// //accessor:<modifier> directives.
func ParseModifier(s string) (Modifiers, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, mn := range modifierNames {
		if mn.name == s {
			return mn.mod, true
		}
	}

	return ModNone, false
}
