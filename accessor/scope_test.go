package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes(t *testing.T) {
	tests := []struct {
		mods  Modifiers
		read  bool
		write bool
	}{
		{ModNone, true, true},
		{ModNative, true, false},
		{ModPrivate, false, false},
		{ModStatic, false, false},
		{ModVolatile, false, false},
		{ModTransient, false, false},
		{ModInterface, false, false},
		{ModAnnotation, false, false},
		{ModEnum, false, false},
		{ModAbstract, false, false},
		{ModStrict, false, false},
		{ModNative | ModStatic, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.mods.String(), func(t *testing.T) {
			assert.Equal(t, tt.read, CheckReadScope(tt.mods))
			assert.Equal(t, tt.write, CheckWriteScope(tt.mods))
		})
	}
}

func TestEligible_ReservedNames(t *testing.T) {
	for _, name := range []string{SourceMethod, InitializeMethod, TerminateMethod} {
		m := MethodDescriptor{Name: name}
		assert.False(t, Eligible(m, ReadScope), name)
		assert.False(t, Eligible(m, WriteScope), name)
	}

	assert.True(t, Eligible(MethodDescriptor{Name: "Accessor"}, WriteScope))
}

func TestFilter(t *testing.T) {
	ms := []MethodDescriptor{
		{Name: "A"},
		{Name: "b", Modifiers: ModPrivate},
		{Name: "C", Modifiers: ModNative},
		{Name: TerminateMethod},
	}

	assert.Equal(t, []string{"A", "C"}, names(Filter(ms, ReadScope)))
	assert.Equal(t, []string{"A"}, names(Filter(ms, WriteScope)))
}

func TestParseModifier(t *testing.T) {
	m, ok := ParseModifier("native")
	assert.True(t, ok)
	assert.Equal(t, ModNative, m)

	_, ok = ParseModifier("final")
	assert.False(t, ok)

	assert.Equal(t, "private native", (ModPrivate | ModNative).String())
}
