package trs

import (
	"fmt"
	"sort"
	"strings"
)

// Binding maps pattern variable names to the subterms they matched.
type Binding map[string]Term

// String renders the binding sorted by variable name, e.g. "{x := a}".
func (b Binding) String() string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " := " + b[name].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Match reports whether term is an instance of pattern and returns the
// binding that witnesses it. A variable occurring several times in pattern
// must match structurally equal subterms at every occurrence.
func Match(pattern, term Term) (Binding, bool) {
	b := Binding{}
	if !matchInto(pattern, term, b) {
		return nil, false
	}
	return b, true
}

func matchInto(pattern, term Term, b Binding) bool {
	switch p := pattern.(type) {
	case *Var:
		if bound, ok := b[p.name]; ok {
			return bound.Equal(term)
		}
		b[p.name] = term
		return true
	case *Fun:
		t, ok := term.(*Fun)
		if !ok || t.sym != p.sym {
			return false
		}
		for i := range p.args {
			if !matchInto(p.args[i], t.args[i], b) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("trs: unknown term type %T", pattern))
	}
}

// Substitute replaces every variable of t bound in b. Variables not in b
// are kept. Bound subterms are shared, not copied; terms are immutable.
func Substitute(t Term, b Binding) Term {
	switch n := t.(type) {
	case *Var:
		if s, ok := b[n.name]; ok {
			return s
		}
		return n
	case *Fun:
		if len(n.args) == 0 {
			return n
		}
		args := make([]Term, len(n.args))
		for i, a := range n.args {
			args[i] = Substitute(a, b)
		}
		return NewFun(n.sym, args...)
	default:
		panic(fmt.Sprintf("trs: unknown term type %T", t))
	}
}
