package trs

import (
	"math/rand/v2"
	"strconv"
)

// DefaultMaxDepth bounds the nesting of generated terms. At that depth a
// variable leaf is forced, so a term over symbols of arity at most k has at
// most (k^(d+1)-1)/(k-1) nodes.
const DefaultMaxDepth = 8

// Generator synthesises random terms over a signature. Every function node
// makes the next level more likely to stop at a variable. A Generator is not
// safe for concurrent use.
type Generator struct {
	rng      *rand.Rand
	sig      Signature
	syms     []FunctionSymbol
	maxDepth int
	vars     int
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

// NewGenerator returns a generator for sig drawing from rng.
func NewGenerator(rng *rand.Rand, sig Signature, opts ...GeneratorOption) *Generator {
	g := &Generator{rng: rng, sig: sig, syms: sig.Symbols(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Term returns a random term in canonical text. Variables are named v0, v1,
// ... skipping names the signature declares. An empty signature yields "v".
func (g *Generator) Term() string {
	if len(g.syms) == 0 {
		return "v"
	}
	g.vars = 0
	return g.node(0.9, 0).String()
}

func (g *Generator) node(fun float64, depth int) Term {
	if depth < g.maxDepth && g.rng.Float64() < fun {
		sym := g.syms[g.rng.IntN(len(g.syms))]
		args := make([]Term, sym.Arity)
		for i := range args {
			args[i] = g.node(fun-0.02, depth+1)
		}
		return NewFun(sym, args...)
	}
	return NewVar(g.fresh())
}

func (g *Generator) fresh() string {
	for {
		name := "v" + strconv.Itoa(g.vars)
		g.vars++
		if _, taken := g.sig[name]; !taken {
			return name
		}
	}
}

// RandomTerm is a convenience wrapper around NewGenerator(rng, sig).Term().
func RandomTerm(rng *rand.Rand, sig Signature) string {
	return NewGenerator(rng, sig).Term()
}
