package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"ID", []string{"id"}},
		{"OrderID", []string{"order", "id"}},
		{"customerName", []string{"customer", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"total_cents", []string{"total", "cents"}},
		{"Set-ID", []string{"set", "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeIdent(tt.in))
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "orderid", NormalizeIdent("OrderID"))
	assert.Equal(t, "orderid", NormalizeIdent("order_id"))
	assert.Equal(t, "getname", NormalizeIdent("GetName"))
}

func TestNormalizeIdentWithPrefixStrip(t *testing.T) {
	assert.Equal(t, "name", NormalizeIdentWithPrefixStrip("GetName"))
	assert.Equal(t, "status", NormalizeIdentWithPrefixStrip("SetStatus"))
	assert.Equal(t, "open", NormalizeIdentWithPrefixStrip("IsOpen"))
	assert.Equal(t, "set", NormalizeIdentWithPrefixStrip("Set"))
	assert.Equal(t, "settle", NormalizeIdentWithPrefixStrip("Settle"))
}
