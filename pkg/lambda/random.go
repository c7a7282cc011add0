package lambda

import (
	"math/rand/v2"
	"strconv"
)

// DefaultMaxDepth bounds the nesting of generated terms. Below it a variable
// leaf is forced.
const DefaultMaxDepth = 64

// weights is the three-way split used at every node. The variable case is
// whatever probability mass abstraction and application leave over.
type weights struct {
	abs, app, variable float64
}

var initialWeights = weights{abs: 0.6, app: 0.4, variable: 0.0}

// Generator synthesises random λ-terms in surface syntax. Entering an
// abstraction makes further abstractions less likely, and the left operand of
// an application is biased towards more structure than the right one.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	maxDepth int
	bound    int // binders minted so far
	free     int // free names minted so far
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(depth int) GeneratorOption {
	return func(g *Generator) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng *rand.Rand, opts ...GeneratorOption) *Generator {
	g := &Generator{rng: rng, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Term returns a fresh random term. Binders are named b0, b1, ... and free
// variables f0, f1, ...; counters restart for every term.
func (g *Generator) Term() string {
	g.bound, g.free = 0, 0
	return renderNamed(g.node(initialWeights, nil, 0))
}

func (g *Generator) node(p weights, bound []string, depth int) named {
	r := g.rng.Float64()
	if depth >= g.maxDepth {
		r = 1
	}
	switch {
	case r < p.abs:
		inner := weights{
			variable: p.variable + 0.09,
			abs:      p.abs - 0.07,
			app:      p.app + 0.02,
		}
		name := "b" + strconv.Itoa(g.bound)
		g.bound++
		return &namedAbs{name: name, body: g.node(inner, append(bound, name), depth+1)}
	case r < p.abs+p.app:
		left := weights{abs: p.abs + 0.04, app: p.app - 0.06, variable: p.variable + 0.02}
		right := weights{abs: p.abs + 0.02, app: p.app - 0.02, variable: p.variable}
		return &namedApp{
			left:  g.node(left, bound, depth+1),
			right: g.node(right, bound, depth+1),
		}
	default:
		if len(bound) > 0 && g.rng.Float64() < 0.95 {
			return &namedVar{name: bound[g.rng.IntN(len(bound))]}
		}
		name := "f" + strconv.Itoa(g.free)
		g.free++
		return &namedVar{name: name}
	}
}

// RandomTerm is a convenience wrapper around NewGenerator(rng).Term().
func RandomTerm(rng *rand.Rand) string {
	return NewGenerator(rng).Term()
}
