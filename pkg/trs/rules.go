package trs

import (
	"fmt"
	"strings"
)

// Rule is a rewrite rule Lhs -> Rhs. Lhs is never a bare variable.
type Rule struct {
	Lhs Term
	Rhs Term
}

// NewRule validates and returns the rule lhs -> rhs.
func NewRule(lhs, rhs Term) (Rule, error) {
	if _, ok := lhs.(*Var); ok {
		return Rule{}, fmt.Errorf("%w: %s -> %s", ErrVariableLHS, lhs, rhs)
	}
	return Rule{Lhs: lhs, Rhs: rhs}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(lhs, rhs Term) Rule {
	r, err := NewRule(lhs, rhs)
	if err != nil {
		panic("trs: " + err.Error())
	}
	return r
}

// String renders "lhs -> rhs".
func (r Rule) String() string { return r.Lhs.String() + " -> " + r.Rhs.String() }

// RuleSet is a rewriting system: the signature of all function symbols in
// use and the rules in document order.
type RuleSet struct {
	Signature Signature
	Rules     []Rule
}

// NewRuleSet builds a rule set whose signature covers sig and every symbol
// occurring in rules.
func NewRuleSet(sig Signature, rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{Signature: Signature{}}
	if err := rs.Signature.Merge(sig); err != nil {
		return nil, err
	}
	for _, r := range rules {
		if err := rs.Add(r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Add appends r after checking it against the signature. On error neither
// the rules nor the signature change.
func (rs *RuleSet) Add(r Rule) error {
	if _, ok := r.Lhs.(*Var); ok {
		return fmt.Errorf("%w: %s", ErrVariableLHS, r)
	}
	sig := rs.Signature.Clone()
	if err := collectSymbols(r.Lhs, sig); err != nil {
		return err
	}
	if err := collectSymbols(r.Rhs, sig); err != nil {
		return err
	}
	rs.Signature = sig
	rs.Rules = append(rs.Rules, r)
	return nil
}

func collectSymbols(t Term, sig Signature) error {
	f, ok := t.(*Fun)
	if !ok {
		return nil
	}
	if err := sig.Add(f.sym.Name, f.sym.Arity); err != nil {
		return err
	}
	for _, a := range f.args {
		if err := collectSymbols(a, sig); err != nil {
			return err
		}
	}
	return nil
}

// String lists the rules one per line.
func (rs *RuleSet) String() string {
	lines := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
