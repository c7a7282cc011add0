package lambda

import "fmt"

// Substitute replaces the variable bound i levels above the root of t with
// arg, closing the gap left by the removed binder. Occurrences of arg are
// shifted by Renumber(arg, i, 0) to account for the i binders they are
// placed under.
//
// Substitute(body, arg, 0) is the body of a contracted beta-redex.
func Substitute(t, arg Term, i int) Term {
	switch n := t.(type) {
	case *Var:
		switch {
		case n.index < i:
			return n
		case n.index == i:
			return Renumber(arg, i, 0)
		default:
			return NewVar(n.index - 1)
		}
	case *Abs:
		return NewAbs(Substitute(n.body, arg, i+1))
	case *App:
		return NewApp(Substitute(n.left, arg, i), Substitute(n.right, arg, i))
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// Renumber adds shift to every index >= cutoff. Entering an abstraction
// raises the cutoff by one. Subterms without affected indices are returned
// unchanged, so the result shares structure with t.
func Renumber(t Term, shift, cutoff int) Term {
	if shift == 0 {
		return t
	}
	out, _ := renumber(t, shift, cutoff)
	return out
}

// renumber reports whether any index was changed.
func renumber(t Term, shift, cutoff int) (Term, bool) {
	switch n := t.(type) {
	case *Var:
		if n.index < cutoff {
			return n, false
		}
		return NewVar(n.index + shift), true
	case *Abs:
		body, changed := renumber(n.body, shift, cutoff+1)
		if !changed {
			return n, false
		}
		return NewAbs(body), true
	case *App:
		left, lc := renumber(n.left, shift, cutoff)
		right, rc := renumber(n.right, shift, cutoff)
		if !lc && !rc {
			return n, false
		}
		return NewApp(left, right), true
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}
