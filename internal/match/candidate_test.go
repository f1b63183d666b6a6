package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/accessor"
)

var (
	total      = accessor.MethodDescriptor{Name: "Total", Results: []string{"int64"}}
	totalCents = accessor.MethodDescriptor{Name: "TotalCents", Results: []string{"int64"}}
	totalStr   = accessor.MethodDescriptor{Name: "Total", Results: []string{"string"}}
	email      = accessor.MethodDescriptor{Name: "Email", Results: []string{"string"}}
	recalc     = accessor.MethodDescriptor{Name: "recalc", Modifiers: accessor.ModPrivate}
	setID      = accessor.MethodDescriptor{Name: "SetID", Params: []string{"int64"}}
)

func TestCompareSignatures(t *testing.T) {
	tests := []struct {
		name      string
		candidate accessor.MethodDescriptor
		want      SignatureCompatibility
		reason    string
	}{
		{"identical", totalCents, SignatureIdentical, "signatures are identical"},
		{"results", totalStr, SignatureResultsDiffer, "returns (string), want (int64)"},
		{"arity", setID, SignatureUnrelated, "takes 1 parameters, want 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CompareSignatures(total, tt.candidate)
			assert.Equal(t, tt.want, res.Compatibility)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestCompareSignatures_Params(t *testing.T) {
	want := accessor.MethodDescriptor{Name: "SetID", Params: []string{"int64"}}

	res := CompareSignatures(want, accessor.MethodDescriptor{Name: "SetID", Params: []string{"int"}})
	assert.Equal(t, SignatureParamsDiffer, res.Compatibility)
	assert.Equal(t, "parameter 0 is int, want int64", res.Reason)

	res = CompareSignatures(
		accessor.MethodDescriptor{Name: "Tags", Params: []string{"[]string"}, Variadic: true},
		accessor.MethodDescriptor{Name: "Tags", Params: []string{"[]string"}},
	)
	assert.Equal(t, SignatureParamsDiffer, res.Compatibility)
	assert.Equal(t, "variadic mismatch", res.Reason)
}

func TestSignatureCompatibility_String(t *testing.T) {
	assert.Equal(t, "identical", SignatureIdentical.String())
	assert.Equal(t, "results_differ", SignatureResultsDiffer.String())
	assert.Equal(t, "params_differ", SignatureParamsDiffer.String())
	assert.Equal(t, "unrelated", SignatureUnrelated.String())
	assert.Equal(t, "unknown", SignatureCompatibility(9).String())
}

func TestRankCandidates(t *testing.T) {
	ranked := RankCandidates(total, map[accessor.Target][]accessor.MethodDescriptor{
		accessor.TargetSource:    {totalCents, email, recalc},
		accessor.TargetDelegator: {totalStr},
	})

	// recalc is private and never suggested.
	require.Len(t, ranked, 3)

	assert.Equal(t, "Total", ranked[0].Method.Name)
	assert.Equal(t, accessor.TargetDelegator, ranked[0].Target)
	assert.Equal(t, "TotalCents", ranked[1].Method.Name)
	assert.Equal(t, "Email", ranked[2].Method.Name)

	assert.Equal(t, &ranked[0], ranked.Best())
	assert.Len(t, ranked.Top(2), 2)
	assert.Len(t, ranked.Top(10), 3)
	assert.Nil(t, CandidateList(nil).Best())
}

func TestSuggest(t *testing.T) {
	got := Suggest(total, map[accessor.Target][]accessor.MethodDescriptor{
		accessor.TargetSource: {totalCents, email, totalStr},
	}, DefaultMaxSuggestions, DefaultMinScore)

	assert.Equal(t, []string{
		"Total() string on source: returns (string), want (int64)",
		"TotalCents() int64 on source",
	}, got)
}
