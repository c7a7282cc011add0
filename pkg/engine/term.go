package engine

import (
	"slices"

	"github.com/gitrdm/anagopos/pkg/lambda"
	"github.com/gitrdm/anagopos/pkg/trs"
)

// Term is a parsed term of either dialect. λ-terms carry the names of their
// free variables so they can be printed back in surface syntax.
type Term struct {
	mode   Mode
	lambda lambda.Term
	free   []string
	trs    trs.Term
}

// LambdaTerm wraps a λ-term and its free-variable names.
func LambdaTerm(t lambda.Term, free []string) Term {
	return Term{mode: ModeLambda, lambda: t, free: free}
}

// TRSTerm wraps a first-order term.
func TRSTerm(t trs.Term) Term {
	return Term{mode: ModeTRS, trs: t}
}

// Mode returns the dialect of t.
func (t Term) Mode() Mode { return t.mode }

// IsZero reports whether t holds no term.
func (t Term) IsZero() bool { return t.lambda == nil && t.trs == nil }

// Lambda returns the λ-term and its free-variable names.
func (t Term) Lambda() (lambda.Term, []string, bool) {
	return t.lambda, slices.Clone(t.free), t.lambda != nil
}

// TRS returns the first-order term.
func (t Term) TRS() (trs.Term, bool) { return t.trs, t.trs != nil }

// String renders t in the surface syntax its parser accepts.
func (t Term) String() string {
	switch {
	case t.lambda != nil:
		return lambda.Format(t.lambda, t.free)
	case t.trs != nil:
		return t.trs.String()
	default:
		return ""
	}
}

// Canonical returns the canonical encoding of t. For λ-terms this is the
// de Bruijn form; for first-order terms it equals String.
func (t Term) Canonical() string {
	switch {
	case t.lambda != nil:
		return t.lambda.String()
	case t.trs != nil:
		return t.trs.String()
	default:
		return ""
	}
}

// Size returns the number of nodes of t.
func (t Term) Size() int {
	switch {
	case t.lambda != nil:
		return t.lambda.Size()
	case t.trs != nil:
		return t.trs.Size()
	default:
		return 0
	}
}

// Equal reports structural equality within one dialect. Free-variable names
// of λ-terms are not compared.
func (t Term) Equal(other Term) bool {
	switch {
	case t.lambda != nil && other.lambda != nil:
		return t.lambda.Equal(other.lambda)
	case t.trs != nil && other.trs != nil:
		return t.trs.Equal(other.trs)
	default:
		return false
	}
}
