package trs

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a path of argument indices from the root to a subterm. The
// empty position denotes the root.
type Position []int

// String renders the position as a dot-separated list, or "ε" when empty.
func (p Position) String() string {
	if len(p) == 0 {
		return "ε"
	}
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ".")
}

// Redex is a position together with a rule whose left-hand side matches the
// subterm there.
type Redex struct {
	Position Position
	Rule     Rule
}

// String renders "position: rule".
func (r Redex) String() string { return r.Position.String() + ": " + r.Rule.String() }

// RedexPositions returns every (position, rule) pair at which t can be
// rewritten. Positions are visited root first and then depth-first from the
// leftmost argument; at each position rules are tried in order.
func RedexPositions(t Term, rules []Rule) []Redex {
	var out []Redex
	collectRedexes(t, nil, rules, &out)
	return out
}

func collectRedexes(t Term, prefix []int, rules []Rule, out *[]Redex) {
	f, ok := t.(*Fun)
	if !ok {
		return
	}
	for _, r := range rules {
		if _, ok := Match(r.Lhs, f); ok {
			pos := make(Position, len(prefix))
			copy(pos, prefix)
			*out = append(*out, Redex{Position: pos, Rule: r})
		}
	}
	for i, a := range f.args {
		collectRedexes(a, append(prefix, i), rules, out)
	}
}

// Subterm returns the subterm of t at p. An invalid position panics.
func Subterm(t Term, p Position) Term {
	for depth, i := range p {
		f, ok := t.(*Fun)
		if !ok || i < 0 || i >= len(f.args) {
			panic(fmt.Sprintf("trs: invalid position %s in %s at step %d", p, t, depth))
		}
		t = f.args[i]
	}
	return t
}

// Reduce rewrites the subterm at p with rule and returns the whole new term.
// The rule must match at p; a failed match or an invalid position is a
// contract violation and panics. Arguments off the path are shared.
func Reduce(t Term, p Position, rule Rule) Term {
	if len(p) == 0 {
		b, ok := Match(rule.Lhs, t)
		if !ok {
			panic(fmt.Sprintf("trs: rule %s does not match %s", rule, t))
		}
		return Substitute(rule.Rhs, b)
	}
	f, ok := t.(*Fun)
	if !ok || p[0] < 0 || p[0] >= len(f.args) {
		panic(fmt.Sprintf("trs: invalid position %s in %s", p, t))
	}
	args := make([]Term, len(f.args))
	copy(args, f.args)
	args[p[0]] = Reduce(f.args[p[0]], p[1:], rule)
	return NewFun(f.sym, args...)
}

// Reducts returns the result of every redex of t, in RedexPositions order.
func Reducts(t Term, rules []Rule) []Term {
	redexes := RedexPositions(t, rules)
	out := make([]Term, 0, len(redexes))
	for _, r := range redexes {
		out = append(out, Reduce(t, r.Position, r.Rule))
	}
	return out
}

// Normalize rewrites the leftmost-outermost redex until none remains or
// limit steps were taken. The second result reports whether a normal form
// was reached.
func Normalize(t Term, rules []Rule, limit int) (Term, bool) {
	for i := 0; i < limit; i++ {
		redexes := RedexPositions(t, rules)
		if len(redexes) == 0 {
			return t, true
		}
		t = Reduce(t, redexes[0].Position, redexes[0].Rule)
	}
	return t, len(RedexPositions(t, rules)) == 0
}
