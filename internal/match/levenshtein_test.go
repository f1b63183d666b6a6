package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"kitten", "sitting", 3},
		{"total", "totalcents", 5},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
		{"日本", "日本語", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 1e-9)
	assert.InDelta(t, 1.0, LevenshteinNormalized("id", "id"), 1e-9)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, LevenshteinNormalized("café", "cafe"), 1e-9)
}

func TestNameScore(t *testing.T) {
	assert.InDelta(t, 1.0, NameScore("OrderID", "order_id"), 1e-9)
	assert.InDelta(t, 1.0, NameScore("GetName", "Name"), 1e-9)
	assert.InDelta(t, 1.0, NameScore("IsActive", "Active"), 1e-9)
	assert.Greater(t, NameScore("Total", "TotalCents"), NameScore("Total", "Email"))
}
