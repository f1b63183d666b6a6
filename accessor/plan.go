package accessor

import (
	"fmt"
	"slices"
	"strings"
)

//go:generate go tool stringer -type=Mode,Target -linecomment -output=mode_string.go

// Mode selects how an adapter reaches its source.
type Mode int

const (
	// ModeDirect forwards straight to the source.
	ModeDirect Mode = iota // direct
	// ModeDelegated tries the delegator first and falls back to the source.
	ModeDelegated // delegated
	// ModeTransparent forwards to the delegator only; the source is not kept.
	ModeTransparent // transparent
)

// HasDelegator reports whether the mode constructs an intermediate delegator.
func (m Mode) HasDelegator() bool {
	return m == ModeDelegated || m == ModeTransparent
}

// Target names the receiver of a forwarded call.
type Target int

const (
	TargetSource    Target = iota // source
	TargetDelegator               // delegator
)

// Forwarder pairs a destination method with the method it forwards to.
type Forwarder struct {
	Method    MethodDescriptor
	Target    Target
	Candidate MethodDescriptor
}

// Ambiguity reports a destination method whose key matched more than one
// candidate on the same target. Such methods are not forwarded.
type Ambiguity struct {
	Method     MethodDescriptor
	Target     Target
	Candidates []MethodDescriptor
}

// Err returns the ambiguity as an error wrapping ErrAmbiguousMatch.
func (a Ambiguity) Err() error {
	names := make([]string, len(a.Candidates))
	for i, c := range a.Candidates {
		names[i] = c.String()
	}

	return fmt.Errorf("%w: %s on %s: %s", ErrAmbiguousMatch, a.Method, a.Target, strings.Join(names, "; "))
}

// Plan is the forwarding set computed for one adapter.
type Plan struct {
	Mode        Mode
	Forwarders  []Forwarder
	Ambiguities []Ambiguity
	// Unmatched lists write-scope destination methods nothing could back.
	Unmatched []MethodDescriptor
	// Skipped lists destination methods outside the write scope.
	Skipped []MethodDescriptor
}

// Forwards returns the forwarder for the destination method name, if any.
func (p *Plan) Forwards(name string) (Forwarder, bool) {
	for _, f := range p.Forwarders {
		if f.Method.Name == name {
			return f, true
		}
	}

	return Forwarder{}, false
}

// PlanForwarding computes which destination methods are backed by the
// delegator or the source.
//
// For every destination method in write scope the delegator's read-scope
// methods are consulted first (delegated and transparent modes), then the
// source's (direct and delegated modes). The first index holding the key
// decides: a unique candidate becomes a forwarder, several candidates become
// an ambiguity and nothing is forwarded.
func PlanForwarding(mode Mode, destination, source, delegator []MethodDescriptor) Plan {
	plan := Plan{Mode: mode}

	var sourceIdx, delegatorIdx *Index
	if mode != ModeTransparent {
		sourceIdx = readIndex(source)
	}

	if mode.HasDelegator() {
		delegatorIdx = readIndex(delegator)
	}

	for _, dm := range destination {
		if !Eligible(dm, WriteScope) {
			plan.Skipped = append(plan.Skipped, dm)
			continue
		}

		key := KeyOf(dm)
		resolved := false

		for _, lookup := range []struct {
			idx    *Index
			target Target
		}{
			{delegatorIdx, TargetDelegator},
			{sourceIdx, TargetSource},
		} {
			if lookup.idx == nil {
				continue
			}

			match := lookup.idx.Lookup(key)
			switch match.Kind {
			case MatchNone:
				continue
			case MatchAmbiguous:
				plan.Ambiguities = append(plan.Ambiguities, Ambiguity{
					Method:     dm,
					Target:     lookup.target,
					Candidates: match.Candidates,
				})
			case MatchUnique:
				candidate, _ := match.Method()
				if Matches(dm, candidate) {
					plan.Forwarders = append(plan.Forwarders, Forwarder{
						Method:    dm,
						Target:    lookup.target,
						Candidate: candidate,
					})
				}
			}

			resolved = true

			break
		}

		if !resolved {
			plan.Unmatched = append(plan.Unmatched, dm)
		}
	}

	slices.SortFunc(plan.Forwarders, func(a, b Forwarder) int {
		return strings.Compare(a.Method.Name, b.Method.Name)
	})

	return plan
}

// readIndex indexes the read-scope methods of a forwarding target. Methods
// outside the read scope still count towards name collisions.
func readIndex(methods []MethodDescriptor) *Index {
	idx := NewIndex()

	for _, m := range methods {
		if Eligible(m, ReadScope) {
			idx.Add(m)
		} else {
			idx.hide(m)
		}
	}

	return idx
}
