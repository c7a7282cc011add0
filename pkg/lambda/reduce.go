package lambda

import (
	"fmt"
	"strconv"
	"strings"
)

// Directions used in a Position.
const (
	// Body descends into the body of an abstraction.
	Body = 0
	// Left descends into the function part of an application.
	Left = 1
	// Right descends into the argument part of an application.
	Right = 2
)

// Position is a path from the root to a subterm. The empty position denotes
// the root itself.
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

// RedexPositions returns the position of every beta-redex in t. The root
// comes first, then all positions inside the left subterm, then those inside
// the right subterm, recursively.
func RedexPositions(t Term) []Position {
	var out []Position
	collectRedexes(t, nil, &out)
	return out
}

func collectRedexes(t Term, prefix []int, out *[]Position) {
	switch n := t.(type) {
	case *Var:
	case *Abs:
		collectRedexes(n.body, appendDir(prefix, Body), out)
	case *App:
		if IsRedex(n) {
			*out = append(*out, appendDir(prefix))
		}
		collectRedexes(n.left, appendDir(prefix, Left), out)
		collectRedexes(n.right, appendDir(prefix, Right), out)
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// appendDir copies prefix so recorded positions never alias each other.
func appendDir(prefix []int, dirs ...int) Position {
	p := make(Position, len(prefix), len(prefix)+len(dirs))
	copy(p, prefix)
	return append(p, dirs...)
}

// Reduce contracts the beta-redex at position p and returns the resulting
// term. Subterms off the path are shared with t.
//
// A position that does not lead to a redex of t is a contract violation
// and panics; positions obtained from RedexPositions(t) never do.
func Reduce(t Term, p Position) Term {
	switch n := t.(type) {
	case *App:
		if len(p) == 0 {
			abs, ok := n.left.(*Abs)
			if !ok {
				panic(fmt.Sprintf("lambda: no redex at root of %s", n))
			}
			return Substitute(abs.body, n.right, 0)
		}
		switch p[0] {
		case Left:
			return NewApp(Reduce(n.left, p[1:]), n.right)
		case Right:
			return NewApp(n.left, Reduce(n.right, p[1:]))
		}
	case *Abs:
		if len(p) > 0 && p[0] == Body {
			return NewAbs(Reduce(n.body, p[1:]))
		}
	case *Var:
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
	panic(fmt.Sprintf("lambda: invalid position %s for %s term %s", p, t.Kind(), t))
}

// Reducts returns the result of contracting each redex of t, in
// RedexPositions order.
func Reducts(t Term) []Term {
	positions := RedexPositions(t)
	out := make([]Term, 0, len(positions))
	for _, p := range positions {
		out = append(out, Reduce(t, p))
	}
	return out
}

// Normalize performs leftmost-outermost reduction until no redex remains
// or limit steps were taken. The second result reports whether a normal
// form was reached.
func Normalize(t Term, limit int) (Term, bool) {
	for i := 0; i < limit; i++ {
		positions := RedexPositions(t)
		if len(positions) == 0 {
			return t, true
		}
		t = Reduce(t, positions[0])
	}
	return t, len(RedexPositions(t)) == 0
}
