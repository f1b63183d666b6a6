// Package accessor adapts values of one type (the source) to the method
// shape of another (the destination) by forwarding calls whose name,
// parameter types and result types match exactly.
//
// Adapters come from factories. A factory is either generated ahead of time
// by accessor-generator, which writes one adapter type per declared pair and a
// Declarations function, or synthesized at run time from reflection, in which
// case adapters are *Dynamic values dispatching by method name.
//
//	repo := accessor.NewRepository(accessor.WithLogger(log))
//	for _, err := range repo.Scan(accessors.Declarations()...) {
//		// declarations that failed are skipped
//	}
//
//	f, err := accessor.GetOrCreateFor[*store.User, api.User](repo)
//	adapter, err := f.Create(user)
//
// An optional delegator sits between adapter and source. Its methods are
// preferred over the source's, and its initialize and terminate methods back
// AccessorInitialize and AccessorTerminate.
package accessor
