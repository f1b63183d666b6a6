package accessor

// Lifecycle is implemented by every adapter. Neither method is called by
// Factory.Create; callers run them as part of the adapter's lifecycle.
type Lifecycle interface {
	// AccessorInitialize runs the configured initialize method of the
	// delegator, or does nothing.
	AccessorInitialize()
	// AccessorTerminate runs the configured terminate method of the
	// delegator, or does nothing.
	AccessorTerminate()
}

// Accessor is the capability surface of an adapter reading through to a source of type S.
type Accessor[S any] interface {
	Lifecycle
	AccessorSource() S
}

// SourceOf returns the source behind adapter. It accepts generated adapters
// (Accessor[S]) as well as dynamic ones (Accessor[any]).
func SourceOf[S any](adapter any) (S, bool) {
	switch a := adapter.(type) {
	case Accessor[S]:
		return a.AccessorSource(), true
	case Accessor[any]:
		s, ok := a.AccessorSource().(S)
		return s, ok
	default:
		var zero S
		return zero, false
	}
}
