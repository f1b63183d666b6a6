package plan

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/go-logr/logr"

	"accessor-generator/accessor"
	"accessor-generator/internal/analyze"
	"accessor-generator/internal/common"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
	"accessor-generator/internal/match"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// StrictMode turns unmatched interface methods into errors and fails
	// resolution on any error.
	StrictMode bool
	// MaxSuggestions is the maximum number of near misses per unmatched method.
	MaxSuggestions int
	// MinSuggestionScore is the minimum combined score of a near miss.
	MinSuggestionScore float64
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		StrictMode:         false,
		MaxSuggestions:     match.DefaultMaxSuggestions,
		MinSuggestionScore: match.DefaultMinScore,
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph  *analyze.TypeGraph
	file   *mapping.AccessorFile
	config ResolutionConfig
	// names tracks adapter names already handed out.
	names map[string]int
	log   logr.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, file *mapping.AccessorFile, config ResolutionConfig) *Resolver {
	return &Resolver{
		graph:  graph,
		file:   file,
		config: config,
		names:  make(map[string]int),
		log:    logr.Discard(),
	}
}

// WithLogger sets the logger resolution progress is reported to.
func (r *Resolver) WithLogger(log logr.Logger) *Resolver {
	r.log = log
	return r
}

// Resolve runs the full resolution pipeline and returns a ResolvedPlan.
// Declarations that fail validation are reported and left out of the plan.
func (r *Resolver) Resolve() (*ResolvedPlan, error) {
	if r.file == nil {
		return nil, errors.New("accessor declarations are required")
	}

	if r.graph == nil {
		return nil, errors.New("type graph is required")
	}

	plan := &ResolvedPlan{
		TypeGraph: r.graph,
		Package:   r.file.Package,
	}

	plan.Diagnostics.Merge(*mapping.ValidateKeys(r.file))

	seen := map[string]string{}

	for _, def := range r.installOrder() {

		diags := mapping.ValidateDef(def, r.graph)
		plan.Diagnostics.Merge(*diags)

		if !diags.IsValid() {
			r.log.Info("skipping invalid declaration", "pair", def.Pair(), "origin", def.Origin)
			continue
		}

		pair, err := r.resolvePair(def, &plan.Diagnostics)
		if err != nil {
			plan.Diagnostics.AddError("resolve_failed", err.Error(), def.Pair(), "")
			continue
		}

		r.log.V(1).Info("resolved pair", "pair", pair.Pair(), "adapter", pair.AdapterName,
			"mode", pair.Mode.String(), "forwarders", len(pair.Forwarders))

		if prev, ok := seen[pair.Pair()]; ok && def.Key == "" {
			plan.Diagnostics.AddWarning(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("pair is already declared by %s; this declaration has no key of its own and is never installed", prev),
				pair.Pair(), "")
		} else if !ok {
			seen[pair.Pair()] = def.Origin
		}

		plan.Pairs = append(plan.Pairs, *pair)
	}

	if r.config.StrictMode && plan.Diagnostics.HasErrors() {
		return plan, errors.New("strict mode: resolution failed with errors")
	}

	return plan, nil
}

// installOrder returns the declarations sorted the way Repository.Scan
// installs them: by effective priority, file order among equals.
func (r *Resolver) installOrder() []*mapping.AccessorDef {
	defs := make([]*mapping.AccessorDef, len(r.file.Accessors))
	for i := range r.file.Accessors {
		defs[i] = &r.file.Accessors[i]
	}

	slices.SortStableFunc(defs, func(a, b *mapping.AccessorDef) int {
		return cmp.Compare(a.Priority.Effective(), b.Priority.Effective())
	})

	return defs
}

func (r *Resolver) resolvePair(def *mapping.AccessorDef, diags *diagnostic.Diagnostics) (*ResolvedPair, error) {
	pair := &ResolvedPair{
		Def:         *def,
		Source:      mapping.ResolveTypeID(def.Source, r.graph),
		Destination: mapping.ResolveTypeID(def.Destination, r.graph),
		Mode:        def.Mode(),
	}

	if pair.Source == nil || pair.Destination == nil {
		return nil, fmt.Errorf("unresolved pair %s", def.Pair())
	}

	pair.SourceRef = mapping.RefType(pair.Source)

	var delegatorMethods []accessor.MethodDescriptor

	if pair.Mode.HasDelegator() {
		pair.Delegator = mapping.ResolveTypeID(def.Delegator, r.graph)
		if pair.Delegator == nil {
			return nil, fmt.Errorf("unresolved delegator %s", def.Delegator)
		}

		ctor, err := mapping.ResolveConstructor(def, pair.Source, pair.Delegator, r.graph)
		if err != nil {
			return nil, err
		}

		pair.Constructor = ctor
		delegatorMethods = pair.Delegator.Descriptors()
	}

	pair.Plan = accessor.PlanForwarding(pair.Mode, pair.Destination.Descriptors(), pair.Source.Descriptors(), delegatorMethods)

	for _, f := range pair.Plan.Forwarders {
		m, ok := pair.Destination.Method(f.Method.Name)
		if !ok {
			return nil, fmt.Errorf("destination %s lost method %s", pair.Destination.ID, f.Method.Name)
		}

		pair.Forwarders = append(pair.Forwarders, ResolvedForwarder{Forwarder: f, Method: m})
	}

	pair.AdapterName = r.adapterName(pair)

	r.report(pair, delegatorMethods, diags)

	return pair, nil
}

// report adds the ambiguity, unmatched and collision diagnostics of pair.
func (r *Resolver) report(pair *ResolvedPair, delegatorMethods []accessor.MethodDescriptor, diags *diagnostic.Diagnostics) {
	pairStr := pair.Pair()

	for _, a := range pair.Plan.Ambiguities {
		owner := pair.Source
		if a.Target == accessor.TargetDelegator {
			owner = pair.Delegator
		}

		var candidates []string

		for _, m := range owner.Methods {
			if m.Descriptor.Name == a.Method.Name && m.Via != "" {
				candidates = append(candidates, "promoted via "+m.Via)
			}
		}

		diags.AddWarning(diagnostic.CodeAmbiguousMatch,
			fmt.Sprintf("%d candidates on %s, method is not forwarded", len(a.Candidates), a.Target),
			pairStr, common.ShortTypeName(a.Method.String()), candidates...)
	}

	targets := map[accessor.Target][]accessor.MethodDescriptor{}
	if pair.Mode != accessor.ModeTransparent {
		targets[accessor.TargetSource] = pair.Source.Descriptors()
	}

	if delegatorMethods != nil {
		targets[accessor.TargetDelegator] = delegatorMethods
	}

	for _, m := range pair.Plan.Unmatched {
		method := common.ShortTypeName(m.String())
		suggestions := match.Suggest(m, targets, r.config.MaxSuggestions, r.config.MinSuggestionScore)
		for i, s := range suggestions {
			suggestions[i] = common.ShortTypeName(s)
		}

		switch {
		case !pair.DestinationIsInterface():
			diags.AddInfo(diagnostic.CodeUnmatchedMethod, "not forwarded, keeps the destination's behaviour", pairStr, method)
		case r.config.StrictMode:
			diags.AddError(diagnostic.CodeUnmatchedMethod, "no method to forward to", pairStr, method, suggestions...)
		default:
			diags.AddWarning(diagnostic.CodeUnmatchedMethod,
				"no method to forward to, calls panic with accessor.ErrNotForwarded", pairStr, method, suggestions...)
		}
	}

	for _, m := range pair.Plan.Skipped {
		if accessor.IsReserved(m.Name) {
			diags.AddWarning(diagnostic.CodeNameCollision,
				"destination declares a capability method, the adapter's own implementation shadows it",
				pairStr, common.ShortTypeName(m.String()))

			continue
		}

		if m.Exported() {
			diags.AddInfo(diagnostic.CodeSkippedMethod,
				fmt.Sprintf("skipped, modifiers: %s", m.Modifiers), pairStr, common.ShortTypeName(m.String()))
		}
	}
}

// adapterName builds "<SrcPkg><Src>To<DstPkg><Dst>", with a numeric suffix
// when the same pair is declared more than once.
func (r *Resolver) adapterName(pair *ResolvedPair) string {
	name := typeIdent(pair.Source.ID) + "To" + typeIdent(pair.Destination.ID)
	if pair.Def.Key != "" {
		name += "As" + keyIdent(pair.Def.Key)
	}

	r.names[name]++
	if n := r.names[name]; n > 1 {
		name = fmt.Sprintf("%s%d", name, n)
	}

	return name
}

func typeIdent(id analyze.TypeID) string {
	return common.Capitalize(common.PkgAlias(id.PkgPath)) + common.Capitalize(id.Name)
}

// keyIdent turns a registration key such as "audited-order" into "AuditedOrder".
func keyIdent(key string) string {
	var sb strings.Builder

	words := strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, w := range words {
		for _, tok := range match.TokenizeIdent(w) {
			sb.WriteString(common.Capitalize(tok))
		}
	}

	return sb.String()
}
