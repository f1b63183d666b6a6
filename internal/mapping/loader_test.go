package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1"
package: orders
accessors:
  - source: store.Order
    destination: warehouse.Order
    delegator: warehouse.OrderAudit
    initialize: Open
    terminate: Close
    key: audited-order
    priority: 10
  - source: "*store.Customer"
    destination: warehouse.Customer
    delegator: warehouse.CustomerMirror
    transparent: true
    priority: highest
  - source: store.Order
    destination: warehouse.Shipment
    priority: lowest
`

func TestParse(t *testing.T) {
	af, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", af.Version)
	assert.Equal(t, "orders", af.Package)
	require.Len(t, af.Accessors, 3)

	audit := af.Accessors[0]
	assert.Equal(t, "store.Order", audit.Source)
	assert.Equal(t, "warehouse.OrderAudit", audit.Delegator)
	assert.Equal(t, "Open", audit.Initialize)
	assert.Equal(t, "Close", audit.Terminate)
	assert.Equal(t, "audited-order", audit.Key)
	assert.Equal(t, Priority(10), audit.Priority)
	assert.Equal(t, "store.Order->warehouse.Order", audit.Pair())

	assert.True(t, af.Accessors[1].Transparent)
	assert.Equal(t, PriorityHighest, af.Accessors[1].Priority)
	assert.Equal(t, PriorityLowest, af.Accessors[2].Priority)
}

func TestParse_Defaults(t *testing.T) {
	af, err := Parse([]byte("accessors: []\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, af.Version)
	assert.Equal(t, DefaultPackage, af.Package)
	assert.Empty(t, af.Accessors)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "accessors: [\n"},
		{"bad priority", "accessors:\n  - source: a.A\n    destination: b.B\n    priority: soon\n"},
		{"negative priority", "accessors:\n  - source: a.A\n    destination: b.B\n    priority: -1\n"},
		{"priority list", "accessors:\n  - source: a.A\n    destination: b.B\n    priority: [1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	af, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "accessors.yaml")
	require.NoError(t, WriteFile(af, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "priority: highest")
	assert.Contains(t, string(data), "priority: lowest")
	assert.NotContains(t, string(data), "constructor")

	back, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, back.Accessors, 3)
	assert.Equal(t, af.Accessors[1].Priority, back.Accessors[1].Priority)
	assert.Equal(t, path, back.Accessors[0].Origin)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read accessor file")
}

func TestPriority_Effective(t *testing.T) {
	assert.Equal(t, int(PriorityLowest), Priority(0).Effective())
	assert.Equal(t, 1, PriorityHighest.Effective())
	assert.Equal(t, 7, Priority(7).Effective())
}
