// Package trs implements first-order term rewriting systems.
//
// A rewriting system is a Signature of function symbols with fixed arities
// plus an ordered list of Rules. Terms are immutable trees of variables and
// function applications; rewriting a term replaces an instance of a rule's
// left-hand side by the corresponding instance of its right-hand side.
//
// The package provides:
//   - the term model with structural equality and hashing
//   - first-order matching with consistent bindings for repeated variables
//   - redex enumeration and single-step reduction
//   - a recursive-descent term parser driven by a signature
//   - a parser for rule sets in the TPDB XML format
//   - a random term generator
package trs

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FunctionSymbol is a function name together with its arity. Two symbols
// are equal iff both name and arity match.
type FunctionSymbol struct {
	Name  string
	Arity int
}

// String returns the symbol name followed by its arity, e.g. "f/2".
func (s FunctionSymbol) String() string { return fmt.Sprintf("%s/%d", s.Name, s.Arity) }

// Term is a first-order term. The implementations are *Var and *Fun.
type Term interface {
	// Hash returns the structural hash. Equal terms have equal hashes.
	Hash() uint64

	// Size returns the number of nodes in the term.
	Size() int

	// Equal reports structural equality.
	Equal(other Term) bool

	// String returns the canonical text of the term, which the term parser
	// accepts again under the same signature.
	String() string

	// Clone returns a deep copy of the term.
	Clone() Term

	sealed()
}

// Var is a named variable.
type Var struct {
	name string
	hash uint64
}

// Fun is a function symbol applied to exactly Arity arguments.
type Fun struct {
	sym  FunctionSymbol
	args []Term
	hash uint64
	size int
}

const (
	tagVar byte = iota + 1
	tagFun
)

// NewVar returns the variable called name.
func NewVar(name string) *Var {
	return &Var{name: name, hash: hashBytes(tagVar, 0, name)}
}

// NewFun applies sym to args. A mismatch between len(args) and sym.Arity is
// a contract violation and panics. The args slice is copied.
func NewFun(sym FunctionSymbol, args ...Term) *Fun {
	if len(args) != sym.Arity {
		panic(fmt.Sprintf("trs: %s applied to %d arguments", sym, len(args)))
	}
	h := hashBytes(tagFun, uint64(sym.Arity), sym.Name)
	size := 1
	for _, a := range args {
		h = mixHash(h, a.Hash())
		size += a.Size()
	}
	return &Fun{sym: sym, args: append([]Term(nil), args...), hash: h, size: size}
}

// Const returns the nullary application of name.
func Const(name string) *Fun { return NewFun(FunctionSymbol{Name: name}) }

func hashBytes(tag byte, n uint64, s string) uint64 {
	d := xxhash.New()
	var buf [9]byte
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], n)
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(s)
	return d.Sum64()
}

func mixHash(h, child uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], h)
	binary.LittleEndian.PutUint64(buf[8:], child)
	return xxhash.Sum64(buf[:])
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

func (v *Var) Hash() uint64   { return v.hash }
func (v *Var) Size() int      { return 1 }
func (v *Var) Clone() Term    { return NewVar(v.name) }
func (v *Var) String() string { return v.name }
func (v *Var) sealed()        {}

// Equal reports whether other is a variable with the same name.
func (v *Var) Equal(other Term) bool {
	o, ok := other.(*Var)
	return ok && o.name == v.name
}

// Symbol returns the head symbol.
func (f *Fun) Symbol() FunctionSymbol { return f.sym }

// Args returns the arguments. The slice must not be modified.
func (f *Fun) Args() []Term { return f.args }

// Arg returns argument i.
func (f *Fun) Arg(i int) Term { return f.args[i] }

func (f *Fun) Hash() uint64 { return f.hash }
func (f *Fun) Size() int    { return f.size }
func (f *Fun) sealed()      {}

// Clone returns a deep copy.
func (f *Fun) Clone() Term {
	args := make([]Term, len(f.args))
	for i, a := range f.args {
		args[i] = a.Clone()
	}
	return NewFun(f.sym, args...)
}

// Equal reports whether other applies the same symbol to equal arguments.
func (f *Fun) Equal(other Term) bool {
	o, ok := other.(*Fun)
	if !ok {
		return false
	}
	if f == o {
		return true
	}
	if f.hash != o.hash || f.size != o.size || f.sym != o.sym {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// String renders f(t1, t2); constants are printed without parentheses.
func (f *Fun) String() string {
	var sb strings.Builder
	writeTerm(&sb, f)
	return sb.String()
}

func writeTerm(sb *strings.Builder, t Term) {
	switch n := t.(type) {
	case *Var:
		sb.WriteString(n.name)
	case *Fun:
		sb.WriteString(n.sym.Name)
		if len(n.args) == 0 {
			return
		}
		sb.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeTerm(sb, a)
		}
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("trs: unknown term type %T", t))
	}
}

// Vars returns the variable names of t in order of first occurrence.
func Vars(t Term) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case *Var:
			if !seen[n.name] {
				seen[n.name] = true
				out = append(out, n.name)
			}
		case *Fun:
			for _, a := range n.args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// IsGround reports whether t contains no variables.
func IsGround(t Term) bool { return len(Vars(t)) == 0 }
