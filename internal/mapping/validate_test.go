package mapping

import (
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessor-generator/accessor"
	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
)

var (
	fixtureOnce  sync.Once
	fixtureGraph *analyze.TypeGraph
	fixtureErr   error
)

func loadGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	fixtureOnce.Do(func() {
		fixtureGraph, fixtureErr = analyze.NewAnalyzer().LoadPackages(
			"accessor-generator/store",
			"accessor-generator/warehouse",
		)
	})
	require.NoError(t, fixtureErr)

	return fixtureGraph
}

func TestResolveTypeID(t *testing.T) {
	graph := loadGraph(t)

	tests := []struct {
		ref  string
		want string
	}{
		{"accessor-generator/store.Order", "accessor-generator/store.Order"},
		{"store.Order", "accessor-generator/store.Order"},
		{"*store.Order", "accessor-generator/store.Order"},
		{"warehouse.Order", "accessor-generator/warehouse.Order"},
		{"OrderAudit", "accessor-generator/warehouse.OrderAudit"},
		// Bare names shared by two packages resolve by TypeID order.
		{"Order", "accessor-generator/store.Order"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			info := ResolveTypeID(tt.ref, graph)
			require.NotNil(t, info)
			assert.Equal(t, tt.want, info.ID.String())
		})
	}

	assert.Nil(t, ResolveTypeID("store.Missing", graph))
	assert.Nil(t, ResolveTypeID("other.Order", graph))
	assert.Nil(t, ResolveTypeID("", graph))
	assert.Nil(t, ResolveTypeID("store.", graph))
	assert.Nil(t, ResolveTypeID("store.Order", nil))
}

func TestResolveFunc(t *testing.T) {
	graph := loadGraph(t)

	assert.NotNil(t, ResolveFunc("NewOrderAudit", "accessor-generator/warehouse", graph))
	assert.NotNil(t, ResolveFunc("warehouse.NewOrderAudit", "", graph))
	assert.NotNil(t, ResolveFunc("accessor-generator/store.NewOrder", "", graph))
	assert.Nil(t, ResolveFunc("NewOrderAudit", "accessor-generator/store", graph))
}

func TestResolveConstructor(t *testing.T) {
	graph := loadGraph(t)
	src := ResolveTypeID("store.Order", graph)
	dlg := ResolveTypeID("warehouse.OrderAudit", graph)

	ctor, err := ResolveConstructor(&AccessorDef{}, src, dlg, graph)
	require.NoError(t, err)
	assert.Equal(t, "NewOrderAudit", ctor.Func.ID.Name)
	assert.Equal(t, "*accessor-generator/warehouse.OrderAudit", analyze.TypeName(ctor.Delegator))
	assert.False(t, ctor.ReturnsError)

	// NewCustomerMirror takes a customer, not an order.
	_, err = ResolveConstructor(&AccessorDef{Constructor: "NewCustomerMirror"}, src, dlg, graph)
	assert.ErrorContains(t, err, "does not accept")

	// NewOrder returns a store order, not the delegator.
	_, err = ResolveConstructor(&AccessorDef{Constructor: "store.NewOrder"}, src, dlg, graph)
	assert.ErrorContains(t, err, "exactly one parameter")

	_, err = ResolveConstructor(&AccessorDef{Constructor: "Nope"}, src, dlg, graph)
	assert.ErrorContains(t, err, "not found")
}

func TestValidate_Valid(t *testing.T) {
	graph := loadGraph(t)

	af, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	res := Validate(af, graph)
	assert.True(t, res.IsValid(), spew.Sdump(res))
}

func TestValidate_Errors(t *testing.T) {
	graph := loadGraph(t)

	tests := []struct {
		name string
		def  AccessorDef
		code string
	}{
		{"missing source", AccessorDef{Destination: "warehouse.Order"}, diagnostic.CodeInvalidPair},
		{"unknown source", AccessorDef{Source: "store.Missing", Destination: "warehouse.Order"}, diagnostic.CodeTypeNotFound},
		{"basic destination", AccessorDef{Source: "store.Order", Destination: "store.OrderStatus"}, diagnostic.CodeUnsupportedDestination},
		{"transparent without delegator", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Transparent: true}, diagnostic.CodeInvalidPair},
		{"lifecycle without delegator", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Initialize: "Open"}, diagnostic.CodeBadLifecycleMethod},
		{"constructor without delegator", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Constructor: "NewOrderAudit"}, diagnostic.CodeBadConstructor},
		{"interface delegator", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Delegator: "warehouse.Customer"}, diagnostic.CodeInvalidPair},
		{"missing constructor", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Delegator: "warehouse.Shipment"}, diagnostic.CodeMissingConstructor},
		{"wrong constructor", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Delegator: "warehouse.OrderAudit", Constructor: "NewCustomerMirror"}, diagnostic.CodeBadConstructor},
		{"missing lifecycle method", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Delegator: "warehouse.OrderAudit", Initialize: "Start"}, diagnostic.CodeBadLifecycleMethod},
		{"lifecycle method with arguments", AccessorDef{Source: "store.Order", Destination: "warehouse.Order", Delegator: "warehouse.OrderAudit", Terminate: "SetStatus"}, diagnostic.CodeBadLifecycleMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(&AccessorFile{Accessors: []AccessorDef{tt.def}}, graph)
			require.False(t, res.IsValid())
			assert.NotEmpty(t, res.WithCode(tt.code), spew.Sdump(res.Errors))
		})
	}
}

func TestValidate_DuplicateKey(t *testing.T) {
	graph := loadGraph(t)

	res := Validate(&AccessorFile{Accessors: []AccessorDef{
		{Source: "store.Order", Destination: "warehouse.Order", Key: "k"},
		{Source: "store.Order", Destination: "warehouse.Shipment", Key: "k"},
	}}, graph)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, diagnostic.CodeDuplicateKey, res.Errors[0].Code)
}

func TestValidate_Nil(t *testing.T) {
	assert.False(t, Validate(nil, loadGraph(t)).IsValid())
	assert.False(t, Validate(&AccessorFile{}, nil).IsValid())
}

func TestAccessorDef_Mode(t *testing.T) {
	assert.Equal(t, accessor.ModeDirect, (&AccessorDef{}).Mode())
	assert.Equal(t, accessor.ModeDelegated, (&AccessorDef{Delegator: "d.D"}).Mode())
	assert.Equal(t, accessor.ModeTransparent, (&AccessorDef{Delegator: "d.D", Transparent: true}).Mode())
}
