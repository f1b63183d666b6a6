package accessor

import (
	"fmt"
	"math"
	"reflect"
)

// LowestPriority is the priority of declarations that leave Priority unset.
// Declarations with a lower value are installed first.
const LowestPriority = math.MaxInt32

// Spec configures the synthesis of one adapter.
type Spec struct {
	// Source is the type of the values adapters read and write through.
	Source reflect.Type
	// Destination is the shape adapters expose: an interface, or a named
	// type whose methods provide the behaviour of non-forwarded methods.
	Destination reflect.Type
	// Delegator is the intermediary type. It may be left nil when
	// NewDelegator is set; it is then taken from the constructor's result.
	Delegator reflect.Type
	// NewDelegator constructs the delegator from a source: func(S) D.
	// Dynamic synthesis requires it whenever a delegator is configured.
	NewDelegator any
	// Initialize and Terminate name delegator methods run by
	// AccessorInitialize and AccessorTerminate. Empty means no-op.
	Initialize string
	Terminate  string
	// Key is an optional registration key in addition to the pair key.
	Key string
	// Priority orders declarations during Scan; lower installs first.
	// Zero means LowestPriority.
	Priority int
	// Transparent stores only the delegator and forwards to it exclusively.
	Transparent bool
}

// DirectSpec returns the spec of a delegator-less adapter for the pair.
func DirectSpec(source, destination reflect.Type) Spec {
	return Spec{Source: source, Destination: destination}
}

// EffectivePriority returns Priority, or LowestPriority when it is unset.
func (s Spec) EffectivePriority() int {
	if s.Priority == 0 {
		return LowestPriority
	}

	return s.Priority
}

// Mode returns the construction mode described by the spec.
func (s Spec) Mode() Mode {
	switch {
	case s.Transparent:
		return ModeTransparent
	case s.Delegator != nil || s.NewDelegator != nil:
		return ModeDelegated
	default:
		return ModeDirect
	}
}

// PairKey returns the canonical registration key of the spec.
func (s Spec) PairKey() string {
	return PairKey(s.Source, s.Destination)
}

// Keys returns the keys the spec installs under: the explicit key, if any,
// followed by the pair key.
func (s Spec) Keys() []string {
	if s.Key == "" {
		return []string{s.PairKey()}
	}

	return []string{s.Key, s.PairKey()}
}

// String returns "source->destination".
func (s Spec) String() string {
	return TypeName(s.Source) + "->" + TypeName(s.Destination)
}

// Validate checks the parts of the spec that do not need reflection on methods.
func (s Spec) Validate() error {
	if s.Source == nil || TypeName(s.Source) == "" {
		return fmt.Errorf("%w: source type is empty", ErrConfiguration)
	}

	if s.Destination == nil || TypeName(s.Destination) == "" {
		return fmt.Errorf("%w: destination type is empty", ErrConfiguration)
	}

	if s.Transparent && s.Delegator == nil && s.NewDelegator == nil {
		return fmt.Errorf("%w: transparent adapter %s has no delegator", ErrConfiguration, s)
	}

	if s.Mode() == ModeDirect && (s.Initialize != "" || s.Terminate != "") {
		return fmt.Errorf("%w: lifecycle methods on %s require a delegator", ErrConfiguration, s)
	}

	return nil
}

// PairKey returns the canonical key for a (source, destination) pair.
func PairKey(source, destination reflect.Type) string {
	return TypeName(source) + "-" + TypeName(destination)
}

// Declaration is one entry of a bulk registration. Build is usually emitted
// by accessor-generator; a nil Build synthesizes the adapter dynamically.
type Declaration struct {
	Spec  Spec
	Build func(Spec) (Factory, error)
}
