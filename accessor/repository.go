package accessor

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/go-logr/logr"
)

// Repository caches factories by registration key. The first factory stored
// under a key stays there for the life of the repository.
//
// All methods are safe for concurrent use. Concurrent GetOrCreate calls for
// the same missing pair may each synthesize a factory; exactly one is
// installed and returned to all of them.
type Repository struct {
	factories  sync.Map // string -> Factory
	log        logr.Logger
	synthesize func(Spec) (Factory, error)
	dynamic    bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the repository logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(r *Repository) {
		r.log = log
	}
}

// WithSynthesizer replaces the function building factories for declarations
// without a Build func and for GetOrCreate misses.
func WithSynthesizer(synthesize func(Spec) (Factory, error)) Option {
	return func(r *Repository) {
		r.synthesize = synthesize
	}
}

// WithoutDynamic restricts the repository to declarations carrying their own
// Build func. Anything that would need run-time synthesis fails with
// ErrBackendUnavailable.
func WithoutDynamic() Option {
	return func(r *Repository) {
		r.dynamic = false
	}
}

// NewRepository returns an empty repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		log:     logr.Discard(),
		dynamic: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.synthesize == nil {
		r.synthesize = NewSynthesizer(r.log).Synthesize
	}

	return r
}

// Scan installs decls in priority order. A declaration is installed under
// its explicit key, if any, and under its pair key; keys already holding a
// factory keep it. A declaration whose keys are all taken is not built.
//
// A failing declaration is logged and skipped; the returned slice holds one
// error per skipped declaration.
func (r *Repository) Scan(decls ...Declaration) []error {
	sorted := slices.Clone(decls)
	slices.SortStableFunc(sorted, func(a, b Declaration) int {
		return cmp.Compare(a.Spec.EffectivePriority(), b.Spec.EffectivePriority())
	})

	var errs []error

	for _, decl := range sorted {
		if err := r.install(decl); err != nil {
			r.log.Error(err, "adapter declaration skipped", "pair", decl.Spec.String(), "key", decl.Spec.Key)
			errs = append(errs, err)
		}
	}

	return errs
}

func (r *Repository) install(decl Declaration) error {
	spec := decl.Spec
	if err := spec.Validate(); err != nil {
		return err
	}

	keys := spec.Keys()
	if r.hasAll(keys) {
		r.log.V(1).Info("adapter declaration already installed", "pair", spec.String())
		return nil
	}

	build := decl.Build
	if build == nil {
		if !r.dynamic {
			return fmt.Errorf("%w: %s has no generated factory", ErrBackendUnavailable, spec)
		}

		build = r.synthesize
	}

	f, err := build(spec)
	if err != nil {
		return fmt.Errorf("build %s: %w", spec, err)
	}

	for _, key := range keys {
		if _, loaded := r.factories.LoadOrStore(key, f); !loaded {
			r.log.V(1).Info("adapter factory installed", "key", key, "mode", spec.Mode().String())
		}
	}

	return nil
}

func (r *Repository) hasAll(keys []string) bool {
	for _, key := range keys {
		if _, ok := r.factories.Load(key); !ok {
			return false
		}
	}

	return true
}

// GetOrCreate returns the factory installed for the pair, synthesizing and
// installing a direct one when there is none.
func (r *Repository) GetOrCreate(source, destination reflect.Type) (Factory, error) {
	key := PairKey(source, destination)
	if f, ok := r.GetFactory(key); ok {
		return f, nil
	}

	if !r.dynamic {
		return nil, fmt.Errorf("%w: no factory for %s", ErrBackendUnavailable, key)
	}

	f, err := r.synthesize(DirectSpec(source, destination))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", key, err)
	}

	actual, loaded := r.factories.LoadOrStore(key, f)
	if !loaded {
		r.log.V(1).Info("adapter factory installed", "key", key, "mode", ModeDirect.String())
	}

	return actual.(Factory), nil
}

// Get returns the factory installed for the pair. It never synthesizes.
func (r *Repository) Get(source, destination reflect.Type) (Factory, bool) {
	return r.GetFactory(PairKey(source, destination))
}

// GetFactory returns the factory installed under key.
func (r *Repository) GetFactory(key string) (Factory, bool) {
	v, ok := r.factories.Load(key)
	if !ok {
		return nil, false
	}

	f, ok := v.(Factory)

	return f, ok
}

// Keys returns the installed keys, sorted.
func (r *Repository) Keys() []string {
	var keys []string

	r.factories.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))

		return true
	})

	slices.Sort(keys)

	return keys
}

// GetOrCreateFor is GetOrCreate for static types.
func GetOrCreateFor[S, D any](r *Repository) (Factory, error) {
	return r.GetOrCreate(reflect.TypeFor[S](), reflect.TypeFor[D]())
}

// GetFor is Get for static types.
func GetFor[S, D any](r *Repository) (Factory, bool) {
	return r.Get(reflect.TypeFor[S](), reflect.TypeFor[D]())
}

// Adapt returns a new adapter of source shaped as D, creating the factory
// for the pair if needed. Only generated factories produce adapters of type
// D; dynamic adapters are *Dynamic and make Adapt fail with ErrConstruction.
func Adapt[S, D any](r *Repository, source S) (D, error) {
	f, err := GetOrCreateFor[S, D](r)
	if err != nil {
		var zero D
		return zero, err
	}

	return CreateAs[D](f, source)
}
