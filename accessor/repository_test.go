package accessor

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// countingSynthesizer counts synthesis calls per pair key.
type countingSynthesizer struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *countingSynthesizer) Synthesize(spec Spec) (Factory, error) {
	c.mu.Lock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[spec.PairKey()]++
	c.mu.Unlock()

	return Synthesize(spec)
}

func (c *countingSynthesizer) count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls[key]
}

func negatorDeclaration() Declaration {
	spec := DirectSpec(accountType, accountViewType)
	spec.NewDelegator = NewNegator
	spec.Key = "negated-account"

	return Declaration{Spec: spec}
}

func TestRepository_ScanIsIdempotent(t *testing.T) {
	synth := &countingSynthesizer{}
	repo := NewRepository(WithSynthesizer(synth.Synthesize))

	decl := negatorDeclaration()
	require.Empty(t, repo.Scan(decl))

	first, ok := repo.GetFactory("negated-account")
	require.True(t, ok)

	require.Empty(t, repo.Scan(decl, decl))

	again, ok := repo.GetFactory("negated-account")
	require.True(t, ok)
	assert.Same(t, first, again)
	assert.Equal(t, 1, synth.count(decl.Spec.PairKey()))
	assert.Equal(t, []string{decl.Spec.PairKey(), "negated-account"}, repo.Keys())
}

func TestRepository_ScanInstallsUnderBothKeys(t *testing.T) {
	repo := NewRepository()
	require.Empty(t, repo.Scan(negatorDeclaration()))

	byKey, ok := repo.GetFactory("negated-account")
	require.True(t, ok)

	byPair, ok := repo.Get(accountType, accountViewType)
	require.True(t, ok)
	assert.Same(t, byKey, byPair)

	d, err := CreateAs[*Dynamic](byPair, &Account{id: 1})
	require.NoError(t, err)
	assert.Equal(t, -1, call1(t, d, "ID"))
}

func TestRepository_ScanHonoursPriority(t *testing.T) {
	low := negatorDeclaration()
	low.Spec.Key = "low"

	high := DirectSpec(accountType, accountViewType)
	high.Key = "high"
	high.Priority = 1

	repo := NewRepository()
	require.Empty(t, repo.Scan(low, Declaration{Spec: high}))

	f, ok := repo.Get(accountType, accountViewType)
	require.True(t, ok)
	assert.Equal(t, "high", f.Spec().Key, "the prioritised declaration owns the pair key")
	assert.Equal(t, ModeDirect, f.Spec().Mode())

	f, ok = repo.GetFactory("low")
	require.True(t, ok)
	assert.Equal(t, ModeDelegated, f.Spec().Mode())
}

func TestRepository_ScanFailuresAreSoft(t *testing.T) {
	bad := DirectSpec(accountType, accountViewType)
	bad.Delegator = negatorType
	bad.Key = "bad"

	good := DirectSpec(accountType, recordType)

	failing := Declaration{
		Spec:  DirectSpec(negatorType, accountViewType),
		Build: func(Spec) (Factory, error) { return nil, errors.New("generated code is stale") },
	}

	repo := NewRepository()
	errs := repo.Scan(Declaration{Spec: bad}, failing, Declaration{Spec: good})
	require.Len(t, errs, 2, spew.Sdump(errs))
	assert.ErrorIs(t, errs[0], ErrConfiguration)
	assert.Contains(t, errs[1].Error(), "generated code is stale")

	_, ok := repo.GetFactory("bad")
	assert.False(t, ok)

	_, ok = repo.Get(accountType, recordType)
	assert.True(t, ok)
}

func TestRepository_GetMissVersusGetOrCreate(t *testing.T) {
	repo := NewRepository()

	f, ok := GetFor[*Account, AccountView](repo)
	assert.False(t, ok)
	assert.Nil(t, f)

	created, err := GetOrCreateFor[*Account, AccountView](repo)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ModeDirect, created.Spec().Mode())

	for range 3 {
		got, ok := repo.Get(accountType, accountViewType)
		require.True(t, ok)
		assert.Same(t, created, got)
	}

	again, err := repo.GetOrCreate(accountType, accountViewType)
	require.NoError(t, err)
	assert.Same(t, created, again)
}

func TestRepository_GetOrCreateFailureIsHard(t *testing.T) {
	repo := NewRepository()

	f, err := repo.GetOrCreate(nil, accountViewType)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, f)
	assert.Empty(t, repo.Keys())
}

func TestRepository_WithoutDynamic(t *testing.T) {
	repo := NewRepository(WithoutDynamic())

	_, err := repo.GetOrCreate(accountType, accountViewType)
	require.ErrorIs(t, err, ErrBackendUnavailable)

	errs := repo.Scan(negatorDeclaration())
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], ErrBackendUnavailable)

	generated := Declaration{
		Spec: DirectSpec(accountType, recordType),
		Build: func(spec Spec) (Factory, error) {
			return NewFactory(spec, Direct(func(s *Account) *accountRecord { return &accountRecord{source: s} })), nil
		},
	}
	require.Empty(t, repo.Scan(generated))

	f, err := repo.GetOrCreate(accountType, recordType)
	require.NoError(t, err)

	adapter, err := CreateAs[*accountRecord](f, &Account{id: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, adapter.ID())
}

func TestRepository_ConcurrentFirstInstall(t *testing.T) {
	const workers = 32

	synth := &countingSynthesizer{}
	repo := NewRepository(WithSynthesizer(synth.Synthesize))

	factories := make([]Factory, workers)

	var start sync.WaitGroup
	start.Add(1)

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			start.Wait()

			f, err := repo.GetOrCreate(accountType, accountViewType)
			if err != nil {
				return err
			}

			factories[i] = f

			return nil
		})
	}

	start.Done()
	require.NoError(t, g.Wait())

	installed, ok := repo.Get(accountType, accountViewType)
	require.True(t, ok)

	for i, f := range factories {
		require.NotNil(t, f, "worker %d", i)
		assert.Same(t, installed, f, "worker %d", i)

		src := &Account{id: i}
		d, err := CreateAs[*Dynamic](f, src)
		require.NoError(t, err)
		assert.Equal(t, i, call1(t, d, "ID"))
	}

	assert.GreaterOrEqual(t, synth.count(PairKey(accountType, accountViewType)), 1)
}

func TestRepository_ConcurrentScanAndLookup(t *testing.T) {
	repo := NewRepository()

	var installs atomic.Int32

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			if errs := repo.Scan(negatorDeclaration()); len(errs) > 0 {
				return errs[0]
			}

			if _, ok := repo.GetFactory("negated-account"); ok {
				installs.Add(1)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(16), installs.Load())
	assert.Len(t, repo.Keys(), 2)
}

func TestPairKey(t *testing.T) {
	pkg := reflect.TypeFor[Account]().PkgPath()
	assert.Equal(t, "*"+pkg+".Account-"+pkg+".AccountView", PairKey(accountType, accountViewType))
}
