package lambda

import (
	"fmt"
	"slices"
	"strconv"
)

const binderLetters = "xyzuvw"

// Format renders t in surface syntax. Free index j (relative to the root) is
// printed as free[j]; indices beyond the list get minted names. Binders are
// named deterministically and never clash with a free name, so
//
//	ParseFree(Format(t, free), free)
//
// reproduces t.
func Format(t Term, free []string) string {
	f := &formatter{names: make(map[int]string), taken: make(map[string]bool)}
	for j, name := range free {
		f.names[j] = name
		f.taken[name] = true
	}
	for _, j := range FreeIndices(t) {
		if _, ok := f.names[j]; ok {
			continue
		}
		name := f.mint(j)
		f.names[j] = name
		f.taken[name] = true
	}
	return renderNamed(f.named(t, nil))
}

type formatter struct {
	names map[int]string  // free index -> name
	taken map[string]bool // names binders must avoid
}

// mint returns an unused name for free index j.
func (f *formatter) mint(j int) string {
	for c := byte('f'); c <= 'z'; c++ {
		name := string(c) + strconv.Itoa(j)
		if !f.taken[name] {
			return name
		}
	}
	panic(fmt.Sprintf("lambda: no free name available for index %d", j))
}

// binder picks the name for the binder at the given depth, skipping free
// names and the names of enclosing binders.
func (f *formatter) binder(depth int, bound []string) string {
	for c := depth; ; c++ {
		name := string(binderLetters[c%len(binderLetters)])
		if n := c / len(binderLetters); n > 0 {
			name += strconv.Itoa(n)
		}
		if f.taken[name] || slices.Contains(bound, name) {
			continue
		}
		return name
	}
}

func (f *formatter) named(t Term, bound []string) named {
	switch n := t.(type) {
	case *Var:
		if n.index < len(bound) {
			return &namedVar{name: bound[len(bound)-1-n.index]}
		}
		return &namedVar{name: f.names[n.index-len(bound)]}
	case *Abs:
		name := f.binder(len(bound), bound)
		return &namedAbs{name: name, body: f.named(n.body, append(bound, name))}
	case *App:
		return &namedApp{left: f.named(n.left, bound), right: f.named(n.right, bound)}
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}
