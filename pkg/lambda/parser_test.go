package lambda

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreeVariablesAndBinders(t *testing.T) {
	term, free, err := ParseFree(`\x.xy23 z\y d12.w d12`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"y23", "z", "w"}, free)
	// \x. ((x y23) z) (\y. \d12. w d12)
	assert.Equal(t, `(\(((0 1) 2) (\(\(5 0)))))`, term.String())
}

func TestParseRoundTripSurfaceSyntax(t *testing.T) {
	src := `\x.xy23 z\y d12.w d12`
	term, free, err := ParseFree(src, nil)
	require.NoError(t, err)

	printed := Format(term, free)
	again, free2, err := ParseFree(printed, free)
	require.NoError(t, err)
	assert.Equal(t, free, free2)
	assert.True(t, term.Equal(again), "%s != %s", term, again)
	assert.Equal(t, printed, Format(again, free2))
}

func TestParseLeftAssociativeApplication(t *testing.T) {
	term, err := Parse(`a b c`)
	require.NoError(t, err)
	assert.Equal(t, `((0 1) 2)`, term.String())

	term, err = Parse(`a (b c)`)
	require.NoError(t, err)
	assert.Equal(t, `(0 (1 2))`, term.String())
}

func TestParseShadowing(t *testing.T) {
	cases := map[string]string{
		`\x.\x.x`:     `(\(\0))`,
		`\x.\y.\x.y`:  `(\(\(\1)))`,
		`\x.\x.g`:     `(\(\2))`,
		`f (\f.g f)`:  `(0 (\(2 0)))`,
		// g keeps free position 1 under a binder shadowing f.
		`f g (\f.g)`:  `((0 1) (\2))`,
		"\t\\x .\n x": `(\0)`,
	}
	for src, want := range cases {
		term, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, term.String(), src)
	}
}

func TestParsePresetFreeList(t *testing.T) {
	term, free, err := ParseFree(`b a c`, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, free)
	assert.Equal(t, `((1 0) 2)`, term.String())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
		pos  int
	}{
		{``, ErrUnexpectedEnd, 0},
		{`)`, ErrInvalidSymbol, 0},
		{`X`, ErrInvalidSymbol, 0},
		{`(x`, ErrUnexpectedEnd, 2},
		{`\x x`, ErrUnexpectedEnd, 4},
		{`\.x`, ErrInvalidSymbol, 1},
		{`x )`, ErrTrailingInput, 2},
		{`x 1`, ErrTrailingInput, 2},
	}
	for _, tc := range cases {
		_, err := Parse(tc.src)
		require.Error(t, err, tc.src)
		assert.ErrorIs(t, err, tc.want, tc.src)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), tc.src)
		assert.Equal(t, tc.pos, pe.Pos, tc.src)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(`x y ) z`)
	require.Error(t, err)
	assert.Equal(t, `symbols left on input: ") z" at position 4`, err.Error())

	_, err = Parse(`(x]`)
	require.Error(t, err)
	assert.Equal(t, `invalid symbol on input: "]" at position 2`, err.Error())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse(`(`) })
}

func TestFormat(t *testing.T) {
	cases := []struct {
		term Term
		free []string
		want string
	}{
		{MustParse(`\x y.x`), nil, `\x y.x`},
		{MustParse(`(\x.x x) (\x.x x)`), nil, `(\x.x x) (\x.x x)`},
		{MustParse(`a (b c) d`), []string{"a", "b", "c", "d"}, `a (b c) d`},
		{NewVar(2), []string{"a"}, `f2`},
		{NewAbs(NewVar(1)), []string{"x"}, `\y.x`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.term, tc.free))
	}
}

func TestFormatRoundTripReducts(t *testing.T) {
	// Reducts can drop free variables and leave gaps in the free indices;
	// the preset list keeps them stable.
	root, free, err := ParseFree(`(\x.z) y ((\a.a) w)`, nil)
	require.NoError(t, err)
	for _, r := range Reducts(root) {
		text := Format(r, free)
		again, _, err := ParseFree(text, free)
		require.NoError(t, err, text)
		assert.True(t, r.Equal(again), "%s: %s != %s", text, r, again)
	}
}

func TestFormatRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	gen := NewGenerator(rng, WithMaxDepth(10))
	for i := 0; i < 200; i++ {
		term, free, err := ParseFree(gen.Term(), nil)
		require.NoError(t, err)
		again, _, err := ParseFree(Format(term, free), free)
		require.NoError(t, err)
		require.True(t, term.Equal(again), "%s != %s", term, again)
	}
}
