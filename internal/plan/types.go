package plan

import (
	"go/types"

	"accessor-generator/accessor"
	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/mapping"
)

// ResolvedPlan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type ResolvedPlan struct {
	// Pairs is the list of resolved adapters, in declaration priority order.
	Pairs []ResolvedPair
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Package is the name of the generated package.
	Package string
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ResolvedPair is one adapter ready for generation.
type ResolvedPair struct {
	// Def is the declaration the pair was resolved from.
	Def mapping.AccessorDef
	// AdapterName is the Go name of the generated adapter type.
	AdapterName string

	Source      *analyze.TypeInfo
	Destination *analyze.TypeInfo
	// Delegator is nil for direct adapters.
	Delegator *analyze.TypeInfo

	// SourceRef is the type adapters hold the source as: a pointer for
	// concrete types, the interface otherwise.
	SourceRef types.Type
	// Constructor creates the delegator; nil for direct adapters.
	Constructor *mapping.Constructor

	Mode accessor.Mode
	// Plan is the forwarding plan of the destination's methods.
	Plan accessor.Plan
	// Forwarders pairs each planned forwarder with the destination method
	// it implements.
	Forwarders []ResolvedForwarder
}

// ResolvedForwarder is a forwarder with the go/types view of its method.
type ResolvedForwarder struct {
	accessor.Forwarder
	// Method is the destination method being implemented.
	Method *analyze.MethodInfo
}

// Pair returns "source->destination" with resolved type IDs.
func (p *ResolvedPair) Pair() string {
	return p.Source.ID.String() + "->" + p.Destination.ID.String()
}

// DestinationIsInterface reports whether the destination is an interface.
func (p *ResolvedPair) DestinationIsInterface() bool {
	return p.Destination.IsInterface()
}

// Keys returns the registration keys of the pair, spelled the way
// accessor.Spec.Keys spells them for the generated declaration.
func (p *ResolvedPair) Keys() []string {
	pairKey := analyze.TypeName(p.SourceRef) + "-" + analyze.TypeName(p.Destination.GoType)

	if p.Def.Key == "" {
		return []string{pairKey}
	}

	return []string{p.Def.Key, pairKey}
}
