package analyze

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	d, ok, err := ParseDirective(`//accessor:delegator source=store.Order key="audited order" transparent priority=3`)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, DirectiveDelegator, d.Name)
	assert.Equal(t, map[string]string{
		"source":   "store.Order",
		"key":      "audited order",
		"priority": "3",
	}, d.Args)
	assert.Equal(t, []string{"transparent"}, d.Flags)
	assert.True(t, d.Has("transparent"))
	assert.False(t, d.Has("strict"))
}

func TestParseDirective_QuotedValues(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{`//accessor:delegator key="audited order"`, "audited order"},
		{`//accessor:delegator key="two  spaces" transparent`, "two  spaces"},
		{`//accessor:delegator key="say \"hi\""`, `say "hi"`},
		{`//accessor:delegator key="a\tb" priority=3`, "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, ok, err := ParseDirective(tt.text)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Args["key"])
		})
	}
}

func TestParseDirective_NotADirective(t *testing.T) {
	for _, text := range []string{"// accessor:delegator", "// plain comment", "//go:generate stringer"} {
		_, ok, err := ParseDirective(text)
		require.NoError(t, err)
		assert.False(t, ok, text)
	}
}

func TestParseDirective_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "//accessor:"},
		{"malformed argument", "//accessor:delegator =x"},
		{"bad quoting", `//accessor:delegator key="open`},
		{"unterminated quote with spaces", `//accessor:delegator key="open ended transparent`},
		{"text after quote", `//accessor:delegator key="a"b`},
		{"duplicate argument", "//accessor:delegator key=a key=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := ParseDirective(tt.text)
			assert.True(t, ok)
			assert.Error(t, err)
		})
	}
}

func TestDirective_HasBoolArgument(t *testing.T) {
	d, _, err := ParseDirective("//accessor:delegator transparent=true strict=false")
	require.NoError(t, err)

	assert.True(t, d.Has("transparent"))
	assert.False(t, d.Has("strict"))
}

func TestParseDirectives(t *testing.T) {
	fset := token.NewFileSet()
	fset.AddFile("fixture.go", -1, 100)

	doc := &ast.CommentGroup{List: []*ast.Comment{
		{Slash: 1, Text: "// OrderAudit records changes."},
		{Slash: 20, Text: "//accessor:volatile"},
		{Slash: 40, Text: "//accessor:adapter destination=warehouse.Order"},
	}}

	ds, err := ParseDirectives(fset, doc)
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, "volatile", ds[0].Name)
	assert.Equal(t, DirectiveAdapter, ds[1].Name)
	assert.Equal(t, "fixture.go", ds[1].Pos.Filename)

	ds, err = ParseDirectives(fset, nil)
	require.NoError(t, err)
	assert.Empty(t, ds)

	_, err = ParseDirectives(fset, &ast.CommentGroup{List: []*ast.Comment{{Slash: 1, Text: "//accessor:"}}})
	assert.ErrorContains(t, err, "fixture.go")
}
