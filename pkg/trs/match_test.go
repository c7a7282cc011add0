package trs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepeatedVariable(t *testing.T) {
	sig := testSignature()
	pattern := MustParseTerm("g(x, x)", sig)

	b, ok := Match(pattern, MustParseTerm("g(a, a)", sig))
	require.True(t, ok)
	assert.Equal(t, "{x := a}", b.String())

	_, ok = Match(pattern, MustParseTerm("g(a, b)", sig))
	assert.False(t, ok)

	_, ok = Match(pattern, MustParseTerm("g(f(y), f(y))", sig))
	assert.True(t, ok)
	_, ok = Match(pattern, MustParseTerm("g(f(y), f(z))", sig))
	assert.False(t, ok)
}

func TestMatchStructure(t *testing.T) {
	sig := testSignature()
	pattern := MustParseTerm("g(f(x), y)", sig)

	b, ok := Match(pattern, MustParseTerm("g(f(g(a, z)), b)", sig))
	require.True(t, ok)
	assert.Equal(t, "{x := g(a, z), y := b}", b.String())

	for _, src := range []string{"g(a, b)", "f(a)", "x", "g(f(a), f(a))"} {
		_, ok := Match(MustParseTerm("g(f(x), a)", sig), MustParseTerm(src, sig))
		assert.False(t, ok, src)
	}

	// A variable pattern matches anything, including another variable.
	b, ok = Match(NewVar("x"), NewVar("y"))
	require.True(t, ok)
	assert.Equal(t, "{x := y}", b.String())
}

func TestSubstitute(t *testing.T) {
	sig := testSignature()
	rhs := MustParseTerm("g(x, f(z))", sig)
	b := Binding{"x": MustParseTerm("f(a)", sig)}

	got := Substitute(rhs, b)
	assert.Equal(t, "g(f(a), f(z))", got.String())
	assert.Same(t, b["x"], got.(*Fun).Arg(0))

	ground := Const("a")
	assert.Same(t, ground, Substitute(ground, b))
}
