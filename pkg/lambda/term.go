// Package lambda implements the untyped λ-calculus in de Bruijn notation.
//
// Terms are immutable trees built from three constructors:
//   - Var: a de Bruijn index (0 refers to the nearest enclosing binder)
//   - Abs: an abstraction binding one variable around its body
//   - App: the application of a left term to a right term
//
// Every operation (substitution, shifting, beta reduction) returns a new term
// and never mutates its input, so untouched subtrees are shared freely between
// a term and its reducts. Each node carries a structural hash and its size,
// both computed once at construction, which makes terms cheap to use as
// deduplication keys in a reduction graph.
package lambda

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind identifies the constructor of a term.
type Kind uint8

const (
	KindVar Kind = iota + 1
	KindAbs
	KindApp
)

// String returns the constructor name.
func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindAbs:
		return "abs"
	case KindApp:
		return "app"
	default:
		return "unknown"
	}
}

// Term is a λ-term. The set of implementations is closed: *Var, *Abs and *App.
type Term interface {
	// Kind reports which constructor built the term.
	Kind() Kind

	// Hash returns the structural hash. Equal terms have equal hashes.
	Hash() uint64

	// Size returns the number of nodes in the term.
	Size() int

	// Equal reports syntactic (de Bruijn) equality.
	Equal(other Term) bool

	// String returns the canonical de Bruijn encoding of the term.
	String() string

	// Clone returns a deep copy of the term.
	Clone() Term

	sealed()
}

// Var is a de Bruijn index.
type Var struct {
	index int
	hash  uint64
}

// Abs binds one variable around Body.
type Abs struct {
	body Term
	hash uint64
	size int
}

// App applies Left to Right.
type App struct {
	left, right Term
	hash        uint64
	size        int
}

// NewVar returns the variable with the given de Bruijn index.
// A negative index is a contract violation.
func NewVar(index int) *Var {
	if index < 0 {
		panic(fmt.Sprintf("lambda: negative de Bruijn index %d", index))
	}
	return &Var{index: index, hash: hashNode(KindVar, uint64(index), 0)}
}

// NewAbs returns the abstraction λ.body.
func NewAbs(body Term) *Abs {
	return &Abs{body: body, hash: hashNode(KindAbs, body.Hash(), 0), size: body.Size() + 1}
}

// NewApp returns the application (left right).
func NewApp(left, right Term) *App {
	return &App{
		left:  left,
		right: right,
		hash:  hashNode(KindApp, left.Hash(), right.Hash()),
		size:  left.Size() + right.Size() + 1,
	}
}

// hashNode combines a constructor tag with up to two child values.
func hashNode(kind Kind, a, b uint64) uint64 {
	var buf [17]byte
	buf[0] = byte(kind)
	binary.LittleEndian.PutUint64(buf[1:9], a)
	binary.LittleEndian.PutUint64(buf[9:17], b)
	return xxhash.Sum64(buf[:])
}

// Index returns the de Bruijn index.
func (v *Var) Index() int { return v.index }

func (v *Var) Kind() Kind     { return KindVar }
func (v *Var) Hash() uint64   { return v.hash }
func (v *Var) Size() int      { return 1 }
func (v *Var) Clone() Term    { return NewVar(v.index) }
func (v *Var) String() string { return strconv.Itoa(v.index) }
func (v *Var) sealed()        {}

// Equal reports whether other is a variable with the same index.
func (v *Var) Equal(other Term) bool {
	o, ok := other.(*Var)
	return ok && o.index == v.index
}

// Body returns the body of the abstraction.
func (a *Abs) Body() Term { return a.body }

func (a *Abs) Kind() Kind   { return KindAbs }
func (a *Abs) Hash() uint64 { return a.hash }
func (a *Abs) Size() int    { return a.size }
func (a *Abs) Clone() Term  { return NewAbs(a.body.Clone()) }
func (a *Abs) sealed()      {}

// Equal reports whether other is an abstraction with an equal body.
func (a *Abs) Equal(other Term) bool {
	o, ok := other.(*Abs)
	if !ok {
		return false
	}
	if a == o {
		return true
	}
	return a.hash == o.hash && a.size == o.size && a.body.Equal(o.body)
}

func (a *Abs) String() string {
	var sb strings.Builder
	writeCanonical(&sb, a)
	return sb.String()
}

// Left returns the function part of the application.
func (a *App) Left() Term { return a.left }

// Right returns the argument part of the application.
func (a *App) Right() Term { return a.right }

func (a *App) Kind() Kind   { return KindApp }
func (a *App) Hash() uint64 { return a.hash }
func (a *App) Size() int    { return a.size }
func (a *App) Clone() Term  { return NewApp(a.left.Clone(), a.right.Clone()) }
func (a *App) sealed()      {}

// Equal reports whether other is an application with equal children.
func (a *App) Equal(other Term) bool {
	o, ok := other.(*App)
	if !ok {
		return false
	}
	if a == o {
		return true
	}
	return a.hash == o.hash && a.size == o.size &&
		a.left.Equal(o.left) && a.right.Equal(o.right)
}

func (a *App) String() string {
	var sb strings.Builder
	writeCanonical(&sb, a)
	return sb.String()
}

// IsRedex reports whether t is an application whose left side is an abstraction.
func IsRedex(t Term) bool {
	app, ok := t.(*App)
	if !ok {
		return false
	}
	_, ok = app.left.(*Abs)
	return ok
}

// writeCanonical renders the de Bruijn encoding:
// Var as its index, Abs as `(\body)` and App as `(left right)`.
func writeCanonical(sb *strings.Builder, t Term) {
	switch n := t.(type) {
	case *Var:
		sb.WriteString(strconv.Itoa(n.index))
	case *Abs:
		sb.WriteString(`(\`)
		writeCanonical(sb, n.body)
		sb.WriteByte(')')
	case *App:
		sb.WriteByte('(')
		writeCanonical(sb, n.left)
		sb.WriteByte(' ')
		writeCanonical(sb, n.right)
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// Depth returns the maximal nesting depth of t; a variable has depth 1.
func Depth(t Term) int {
	switch n := t.(type) {
	case *Var:
		return 1
	case *Abs:
		return Depth(n.body) + 1
	case *App:
		return max(Depth(n.left), Depth(n.right)) + 1
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// FreeIndices returns the sorted free indices of t, measured at the root.
func FreeIndices(t Term) []int {
	set := map[int]struct{}{}
	collectFree(t, 0, set)
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func collectFree(t Term, depth int, set map[int]struct{}) {
	switch n := t.(type) {
	case *Var:
		if n.index >= depth {
			set[n.index-depth] = struct{}{}
		}
	case *Abs:
		collectFree(n.body, depth+1, set)
	case *App:
		collectFree(n.left, depth, set)
		collectFree(n.right, depth, set)
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}
