package match

import (
	"sort"

	"accessor-generator/accessor"
)

// Candidate is a method that could have served a destination method.
type Candidate struct {
	Method accessor.MethodDescriptor
	// Target is where the method lives: the source or the delegator.
	Target accessor.Target

	// Scoring components
	NameScore float64         // Normalized Levenshtein similarity (0-1)
	Signature SignatureResult // Signature comparison with the destination method

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every eligible method of each target against want
// and returns them sorted by combined score (descending).
func RankCandidates(want accessor.MethodDescriptor, targets map[accessor.Target][]accessor.MethodDescriptor) CandidateList {
	var candidates CandidateList

	for target, methods := range targets {
		for _, m := range methods {
			if !accessor.Eligible(m, accessor.ReadScope) {
				continue
			}

			nameScore := NameScore(want.Name, m.Name)
			sig := CompareSignatures(want, m)

			candidates = append(candidates, Candidate{
				Method:        m,
				Target:        target,
				NameScore:     nameScore,
				Signature:     sig,
				CombinedScore: calculateCombinedScore(nameScore, sig.Compatibility),
			})
		}
	}

	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore weighs name similarity at 60% and signature
// closeness at 40%.
func calculateCombinedScore(nameScore float64, sig SignatureCompatibility) float64 {
	const (
		nameWeight = 0.6
		sigWeight  = 0.4
	)

	return nameScore*nameWeight + sig.score()*sigWeight
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by combined score descending, then by method and target for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	if c[i].Method.Name != c[j].Method.Name {
		return c[i].Method.Name < c[j].Method.Name
	}

	return c[i].Target < c[j].Target
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Suggestions renders the candidates for a diagnostic, e.g.
// "TotalCents() int64 on source".
func (c CandidateList) Suggestions() []string {
	out := make([]string, 0, len(c))
	for _, cand := range c {
		s := cand.Method.String() + " on " + cand.Target.String()
		if cand.Signature.Compatibility != SignatureIdentical {
			s += ": " + cand.Signature.Reason
		}

		out = append(out, s)
	}

	return out
}

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum combined score worth suggesting.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps the suggestions per diagnostic.
	DefaultMaxSuggestions = 3
)

// Suggest returns at most limit renderings of the candidates scoring at
// least minScore.
func Suggest(want accessor.MethodDescriptor, targets map[accessor.Target][]accessor.MethodDescriptor, limit int, minScore float64) []string {
	return RankCandidates(want, targets).AboveThreshold(minScore).Top(limit).Suggestions()
}
