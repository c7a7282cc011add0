package trs

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTermParses(t *testing.T) {
	sig := testSignature()
	g := NewGenerator(rand.New(rand.NewPCG(1, 2)), sig)
	for i := 0; i < 200; i++ {
		src := g.Term()
		term, err := ParseTerm(src, sig)
		require.NoError(t, err, src)
		assert.Equal(t, src, term.String())
	}
}

func TestRandomTermDeterministic(t *testing.T) {
	sig := testSignature()
	a := NewGenerator(rand.New(rand.NewPCG(7, 7)), sig)
	b := NewGenerator(rand.New(rand.NewPCG(7, 7)), sig)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Term(), b.Term())
	}
}

func TestRandomTermSkipsDeclaredNames(t *testing.T) {
	sig := Signature{"v0": 0, "v1": 0, "h": 1}
	g := NewGenerator(rand.New(rand.NewPCG(3, 4)), sig)
	for i := 0; i < 100; i++ {
		term := MustParseTerm(g.Term(), sig)
		for _, name := range Vars(term) {
			assert.NotContains(t, sig, name)
		}
	}
}

func TestRandomTermEmptySignature(t *testing.T) {
	assert.Equal(t, "v", RandomTerm(rand.New(rand.NewPCG(1, 1)), Signature{}))
}

// nodeBound is the node count of a complete tree of the given branching
// factor and depth.
func nodeBound(arity, depth int) int {
	n, level := 0, 1
	for i := 0; i <= depth; i++ {
		n += level
		level *= arity
	}
	return n
}

func TestRandomTermSizeBounded(t *testing.T) {
	sig := Signature{"f": 3, "g": 2}
	for seed := uint64(1); seed <= 40; seed++ {
		src := RandomTerm(rand.New(rand.NewPCG(seed, seed)), sig)
		term := MustParseTerm(src, sig)
		assert.LessOrEqual(t, term.Size(), nodeBound(3, DefaultMaxDepth), "seed %d", seed)
	}

	g := NewGenerator(rand.New(rand.NewPCG(5, 5)), sig, WithMaxDepth(2))
	for i := 0; i < 50; i++ {
		assert.LessOrEqual(t, MustParseTerm(g.Term(), sig).Size(), nodeBound(3, 2))
	}
}

func TestRandomTermDepthOption(t *testing.T) {
	sig := Signature{"f": 1}
	g := NewGenerator(rand.New(rand.NewPCG(9, 9)), sig, WithMaxDepth(1), WithMaxDepth(0))
	for i := 0; i < 20; i++ {
		src := g.Term()
		assert.Contains(t, []string{"v0", "f(v0)"}, src)
	}
}
