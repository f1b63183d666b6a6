package accessor

import "errors"

var (
	// ErrConfiguration reports an adapter declaration that cannot be synthesized:
	// a missing type, a missing delegator constructor or a bad lifecycle method.
	ErrConfiguration = errors.New("accessor: configuration error")
	// ErrBackendUnavailable is returned when a pair has no generated factory and
	// dynamic synthesis is disabled.
	ErrBackendUnavailable = errors.New("accessor: dynamic synthesis unavailable")
	// ErrAmbiguousMatch marks a destination method matched by several candidates.
	ErrAmbiguousMatch = errors.New("accessor: ambiguous match")
	// ErrConstruction wraps any failure while a factory builds an adapter.
	ErrConstruction = errors.New("accessor: adapter construction failed")
	// ErrNotForwarded is returned by Dynamic.Call for a method with no forwarder
	// and no destination base to fall back to.
	ErrNotForwarded = errors.New("accessor: method not forwarded")
	// ErrArguments is returned by Dynamic.Call when arguments do not fit the signature.
	ErrArguments = errors.New("accessor: arguments do not match signature")
)
