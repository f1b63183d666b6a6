package accessor

// Scope selects which eligibility rule applies to a method.
type Scope int

const (
	// ReadScope governs methods of a Source or Delegator that may be called by a forwarder.
	ReadScope Scope = iota
	// WriteScope governs methods of a Destination that may be replaced by a forwarder.
	WriteScope
)

// Capability method names implemented by every adapter. They are never
// forwarded and never overridden.
const (
	SourceMethod     = "AccessorSource"
	InitializeMethod = "AccessorInitialize"
	TerminateMethod  = "AccessorTerminate"
)

const readExcluded = ModPrivate | ModStatic | ModVolatile | ModTransient |
	ModInterface | ModAnnotation | ModEnum | ModAbstract | ModStrict

// CheckReadScope reports whether a method with modifiers mods may be
// forwarded to.
func CheckReadScope(mods Modifiers) bool {
	return mods&readExcluded == 0
}

// CheckWriteScope reports whether a destination method with modifiers mods
// may be overridden. It differs from CheckReadScope only by excluding native
// methods, which have no overridable body.
func CheckWriteScope(mods Modifiers) bool {
	return CheckReadScope(mods) && mods&ModNative == 0
}

// IsReserved reports whether name belongs to the adapter capability surface.
func IsReserved(name string) bool {
	switch name {
	case SourceMethod, InitializeMethod, TerminateMethod:
		return true
	default:
		return false
	}
}

// Eligible applies the name reservation and the modifier rule of scope to m.
func Eligible(m MethodDescriptor, scope Scope) bool {
	if IsReserved(m.Name) {
		return false
	}

	if scope == WriteScope {
		return CheckWriteScope(m.Modifiers)
	}

	return CheckReadScope(m.Modifiers)
}

// Filter returns the methods of ms eligible under scope, preserving order.
func Filter(ms []MethodDescriptor, scope Scope) []MethodDescriptor {
	out := make([]MethodDescriptor, 0, len(ms))
	for _, m := range ms {
		if Eligible(m, scope) {
			out = append(out, m)
		}
	}

	return out
}
