package match

import (
	"fmt"
	"slices"

	"accessor-generator/accessor"
	"accessor-generator/internal/common"
)

// SignatureCompatibility grades how close a candidate signature is to the
// destination method's. Only SignatureIdentical is forwardable.
type SignatureCompatibility int

const (
	// SignatureUnrelated means parameter counts differ.
	SignatureUnrelated SignatureCompatibility = iota
	// SignatureParamsDiffer means the arity is equal but parameter types differ.
	SignatureParamsDiffer
	// SignatureResultsDiffer means parameters agree but results differ.
	SignatureResultsDiffer
	// SignatureIdentical means parameters, variadic flag and results agree.
	SignatureIdentical
)

const (
	VerdictIdentical     = "identical"
	VerdictResultsDiffer = "results_differ"
	VerdictParamsDiffer  = "params_differ"
	VerdictUnrelated     = "unrelated"
)

// String returns a human-readable name for the compatibility level.
func (c SignatureCompatibility) String() string {
	switch c {
	case SignatureIdentical:
		return VerdictIdentical
	case SignatureResultsDiffer:
		return VerdictResultsDiffer
	case SignatureParamsDiffer:
		return VerdictParamsDiffer
	case SignatureUnrelated:
		return VerdictUnrelated
	default:
		return common.UnknownStr
	}
}

// SignatureResult is the comparison of a candidate against a destination method.
type SignatureResult struct {
	Compatibility SignatureCompatibility
	Reason        string // Human-readable explanation
}

// CompareSignatures compares the signature of candidate against target,
// ignoring names and modifiers.
func CompareSignatures(target, candidate accessor.MethodDescriptor) SignatureResult {
	if len(target.Params) != len(candidate.Params) {
		return SignatureResult{
			Compatibility: SignatureUnrelated,
			Reason:        fmt.Sprintf("takes %d parameters, want %d", len(candidate.Params), len(target.Params)),
		}
	}

	if target.Variadic != candidate.Variadic {
		return SignatureResult{
			Compatibility: SignatureParamsDiffer,
			Reason:        "variadic mismatch",
		}
	}

	for i := range target.Params {
		if target.Params[i] != candidate.Params[i] {
			return SignatureResult{
				Compatibility: SignatureParamsDiffer,
				Reason:        fmt.Sprintf("parameter %d is %s, want %s", i, candidate.Params[i], target.Params[i]),
			}
		}
	}

	if !slices.Equal(target.Results, candidate.Results) {
		return SignatureResult{
			Compatibility: SignatureResultsDiffer,
			Reason:        fmt.Sprintf("returns (%s), want (%s)", common.JoinTypes(candidate.Results), common.JoinTypes(target.Results)),
		}
	}

	return SignatureResult{
		Compatibility: SignatureIdentical,
		Reason:        "signatures are identical",
	}
}

// score maps the compatibility level onto 0..1.
func (c SignatureCompatibility) score() float64 {
	switch c {
	case SignatureIdentical:
		return 1.0
	case SignatureResultsDiffer:
		return 0.7
	case SignatureParamsDiffer:
		return 0.4
	default:
		return 0.0
	}
}
