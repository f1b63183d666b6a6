package accessor

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"
)

// Synthesizer builds factories of Dynamic adapters.
type Synthesizer struct {
	log logr.Logger
}

// NewSynthesizer returns a Synthesizer logging through log.
func NewSynthesizer(log logr.Logger) *Synthesizer {
	return &Synthesizer{log: log}
}

// Synthesize builds a dynamic factory for spec without logging.
func Synthesize(spec Spec) (Factory, error) {
	return NewSynthesizer(logr.Discard()).Synthesize(spec)
}

// Synthesize validates spec, plans forwarding from the method sets of its
// types and returns a factory of Dynamic adapters. Ambiguous destination
// methods are logged and left unforwarded.
func (s *Synthesizer) Synthesize(spec Spec) (Factory, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	log := s.log.WithValues("source", TypeName(spec.Source), "destination", TypeName(spec.Destination))

	table := &dispatchTable{
		spec:    spec,
		calls:   make(map[string]dispatch),
		initIdx: -1,
		termIdx: -1,
	}

	var newDelegator reflect.Value

	mode := spec.Mode()
	if mode.HasDelegator() {
		var err error
		if table.delegator, newDelegator, err = delegatorConstructor(spec); err != nil {
			return nil, err
		}

		if table.initIdx, err = lifecycleMethod(table.delegator, spec.Initialize); err != nil {
			return nil, err
		}

		if table.termIdx, err = lifecycleMethod(table.delegator, spec.Terminate); err != nil {
			return nil, err
		}
	}

	destination := spec.Destination
	switch {
	case destination.Kind() == reflect.Interface:
	case destination.Kind() == reflect.Pointer:
		table.baseType = destination.Elem()
	default:
		table.baseType = destination
		destination = reflect.PointerTo(destination)
	}

	var delegatorMethods []MethodDescriptor
	if table.delegator != nil {
		delegatorMethods = Describe(table.delegator)
	}

	table.plan = PlanForwarding(mode, Describe(destination), Describe(spec.Source), delegatorMethods)

	for _, a := range table.plan.Ambiguities {
		log.Info("ambiguous match, method not forwarded", "method", a.Method.String(), "reason", a.Err().Error())
	}

	for _, f := range table.plan.Forwarders {
		owner := spec.Source
		if f.Target == TargetDelegator {
			owner = table.delegator
		}

		m, ok := owner.MethodByName(f.Candidate.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %s has no method %s", ErrConfiguration, spec, TypeName(owner), f.Candidate.Name)
		}

		table.calls[f.Method.Name] = dispatch{forwarder: f, index: m.Index}
		log.V(2).Info("added forwarder", "method", f.Method.String(), "target", f.Target.String())
	}

	log.V(1).Info("synthesized adapter", "mode", mode.String(), "forwarders", len(table.calls),
		"unmatched", len(table.plan.Unmatched))

	return NewFactory(spec, dynamicChain(table, newDelegator)), nil
}

func dynamicChain(table *dispatchTable, newDelegator reflect.Value) Chain {
	construct := func(source, delegate any) (any, error) {
		return newDynamic(table, source, delegate), nil
	}

	if !newDelegator.IsValid() {
		return Chain{Construct: construct}
	}

	return Chain{
		Delegate: func(source any) (any, error) {
			out := newDelegator.Call([]reflect.Value{valueAs(table.spec.Source, source)})
			if len(out) == 2 && !out[1].IsNil() {
				err, _ := out[1].Interface().(error)
				return nil, err
			}

			delegate := out[0]
			if isNil(delegate) {
				return nil, fmt.Errorf("constructor of %s returned nil", TypeName(table.delegator))
			}

			return delegate.Interface(), nil
		},
		Construct: construct,
	}
}

var errorType = reflect.TypeFor[error]()

// delegatorConstructor checks spec.NewDelegator: a func(S) D or func(S) (D, error)
// whose parameter accepts the source and whose result is the delegator.
func delegatorConstructor(spec Spec) (reflect.Type, reflect.Value, error) {
	if spec.NewDelegator == nil {
		return nil, reflect.Value{}, fmt.Errorf("%w: %s: delegator %s has no constructor taking the source",
			ErrConfiguration, spec, TypeName(spec.Delegator))
	}

	fn := reflect.ValueOf(spec.NewDelegator)
	ft := fn.Type()

	if ft.Kind() != reflect.Func || ft.NumIn() != 1 || ft.IsVariadic() ||
		ft.NumOut() < 1 || ft.NumOut() > 2 || (ft.NumOut() == 2 && ft.Out(1) != errorType) {
		return nil, reflect.Value{}, fmt.Errorf("%w: %s: delegator constructor is %s, want func(%s) D",
			ErrConfiguration, spec, TypeName(ft), TypeName(spec.Source))
	}

	if !spec.Source.AssignableTo(ft.In(0)) {
		return nil, reflect.Value{}, fmt.Errorf("%w: %s: delegator constructor takes %s, not the source",
			ErrConfiguration, spec, TypeName(ft.In(0)))
	}

	delegator := ft.Out(0)
	if spec.Delegator != nil {
		if !delegator.AssignableTo(spec.Delegator) {
			return nil, reflect.Value{}, fmt.Errorf("%w: %s: delegator constructor returns %s, want %s",
				ErrConfiguration, spec, TypeName(delegator), TypeName(spec.Delegator))
		}

		delegator = spec.Delegator
	}

	return delegator, fn, nil
}

// lifecycleMethod returns the index of the named no-argument method of t,
// or -1 when name is empty.
func lifecycleMethod(t reflect.Type, name string) (int, error) {
	if name == "" {
		return -1, nil
	}

	m, ok := t.MethodByName(name)
	if !ok {
		return -1, fmt.Errorf("%w: delegator %s has no method %s", ErrConfiguration, TypeName(t), name)
	}

	ft := m.Type
	if t.Kind() != reflect.Interface {
		if ft.NumIn() != 1 {
			return -1, fmt.Errorf("%w: lifecycle method %s.%s takes arguments", ErrConfiguration, TypeName(t), name)
		}
	} else if ft.NumIn() != 0 {
		return -1, fmt.Errorf("%w: lifecycle method %s.%s takes arguments", ErrConfiguration, TypeName(t), name)
	}

	return m.Index, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
