package accessor

import (
	"errors"
	"fmt"
	"reflect"
)

// Factory creates adapters for one Spec.
type Factory interface {
	Spec() Spec
	// Create builds a new adapter around source. It never calls
	// AccessorInitialize or AccessorTerminate.
	Create(source any) (any, error)
}

type chainFactory struct {
	spec  Spec
	chain Chain
}

// NewFactory wraps chain into a Factory for spec.
func NewFactory(spec Spec, chain Chain) Factory {
	return &chainFactory{spec: spec, chain: chain}
}

func (f *chainFactory) Spec() Spec {
	return f.spec
}

func (f *chainFactory) Create(source any) (adapter any, err error) {
	defer func() {
		if r := recover(); r != nil {
			adapter = nil
			err = fmt.Errorf("%w: %s: panic: %v", ErrConstruction, f.spec, r)
		}
	}()

	if err := checkSource(f.spec.Source, source); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, f.spec, err)
	}

	adapter, err = f.chain.Build(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, f.spec, err)
	}

	if adapter == nil {
		return nil, fmt.Errorf("%w: %s: constructor returned nil", ErrConstruction, f.spec)
	}

	return adapter, nil
}

func checkSource(want reflect.Type, source any) error {
	if source == nil {
		return errors.New("source is nil")
	}

	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return fmt.Errorf("source is a nil %s", TypeName(v.Type()))
		}
	default:
	}

	if want != nil && !v.Type().AssignableTo(want) {
		return fmt.Errorf("source is %s, want %s", TypeName(v.Type()), TypeName(want))
	}

	return nil
}

// CreateAs creates an adapter with f and asserts it to D.
func CreateAs[D any](f Factory, source any) (D, error) {
	var zero D

	adapter, err := f.Create(source)
	if err != nil {
		return zero, err
	}

	d, ok := adapter.(D)
	if !ok {
		return zero, fmt.Errorf("%w: %s: adapter %T is not %s",
			ErrConstruction, f.Spec(), adapter, TypeName(reflect.TypeFor[D]()))
	}

	return d, nil
}
