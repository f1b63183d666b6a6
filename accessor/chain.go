package accessor

import (
	"fmt"
	"reflect"
)

// Chain is the constructor chain wrapped by a Factory. Delegate is nil for
// direct adapters; otherwise it builds the delegator from the source and its
// result is handed to Construct.
type Chain struct {
	Delegate  func(source any) (any, error)
	Construct func(source, delegate any) (any, error)
}

// HasDelegate reports whether the chain builds an intermediate delegator.
func (c Chain) HasDelegate() bool {
	return c.Delegate != nil
}

// Build runs the chain for source.
func (c Chain) Build(source any) (any, error) {
	if c.Construct == nil {
		return nil, fmt.Errorf("%w: chain has no constructor", ErrConfiguration)
	}

	var delegate any
	if c.Delegate != nil {
		var err error
		if delegate, err = c.Delegate(source); err != nil {
			return nil, fmt.Errorf("delegator: %w", err)
		}
	}

	return c.Construct(source, delegate)
}

// Direct returns the chain of an adapter built straight from its source.
func Direct[S, D any](construct func(S) D) Chain {
	return Chain{
		Construct: func(source, _ any) (any, error) {
			s, err := assertArg[S]("source", source)
			if err != nil {
				return nil, err
			}

			return construct(s), nil
		},
	}
}

// Delegated returns the chain of an adapter holding both its source and a
// delegator built by newDelegator.
func Delegated[S, Dl, D any](newDelegator func(S) Dl, construct func(S, Dl) D) Chain {
	return DelegatedErr(infallible(newDelegator), construct)
}

// DelegatedErr is Delegated for delegator constructors that can fail.
func DelegatedErr[S, Dl, D any](newDelegator func(S) (Dl, error), construct func(S, Dl) D) Chain {
	return Chain{
		Delegate: delegateFunc(newDelegator),
		Construct: func(source, delegate any) (any, error) {
			s, err := assertArg[S]("source", source)
			if err != nil {
				return nil, err
			}

			dl, err := assertArg[Dl]("delegator", delegate)
			if err != nil {
				return nil, err
			}

			return construct(s, dl), nil
		},
	}
}

// Transparent returns the chain of an adapter that keeps only the delegator
// built by newDelegator.
func Transparent[S, Dl, D any](newDelegator func(S) Dl, construct func(Dl) D) Chain {
	return TransparentErr(infallible(newDelegator), construct)
}

// TransparentErr is Transparent for delegator constructors that can fail.
func TransparentErr[S, Dl, D any](newDelegator func(S) (Dl, error), construct func(Dl) D) Chain {
	return Chain{
		Delegate: delegateFunc(newDelegator),
		Construct: func(_, delegate any) (any, error) {
			dl, err := assertArg[Dl]("delegator", delegate)
			if err != nil {
				return nil, err
			}

			return construct(dl), nil
		},
	}
}

func infallible[S, Dl any](newDelegator func(S) Dl) func(S) (Dl, error) {
	return func(s S) (Dl, error) {
		return newDelegator(s), nil
	}
}

func delegateFunc[S, Dl any](newDelegator func(S) (Dl, error)) func(any) (any, error) {
	return func(source any) (any, error) {
		s, err := assertArg[S]("source", source)
		if err != nil {
			return nil, err
		}

		dl, err := newDelegator(s)
		if err != nil {
			return nil, err
		}

		return dl, nil
	}
}

func assertArg[T any](what string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s is %T, want %s", what, v, TypeName(reflect.TypeFor[T]()))
	}

	return t, nil
}
