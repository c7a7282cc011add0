package trs

import (
	"errors"
	"fmt"
)

// Sentinel errors for term and rule-set input.
var (
	// ErrInvalidSymbol is returned when the term parser meets a character
	// that cannot start or continue the expected construct.
	ErrInvalidSymbol = errors.New("invalid symbol on input")

	// ErrUnexpectedEnd is returned when the input ends inside a term.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrTrailingInput is returned when a complete term is followed by
	// more symbols.
	ErrTrailingInput = errors.New("symbols left on input")

	// ErrArity is returned when a function symbol is used or declared with
	// an arity that disagrees with the signature.
	ErrArity = errors.New("arity mismatch")

	// ErrUndeclared is returned when an identifier that is not in the
	// signature is applied to arguments.
	ErrUndeclared = errors.New("undeclared function symbol")

	// ErrVariableLHS is returned for a rule whose left-hand side is a
	// bare variable.
	ErrVariableLHS = errors.New("left-hand side of a rule cannot be a variable")

	// ErrUnsupported is returned for rule-set documents that use features
	// outside first-order unconditional rewriting.
	ErrUnsupported = errors.New("unsupported rule set")

	// ErrMalformedRuleSet is returned for rule-set documents that are not
	// well-formed XML or do not follow the expected element structure.
	ErrMalformedRuleSet = errors.New("malformed rule set")
)

// ParseError describes a failure to parse a term. Pos is the byte offset of
// the offending symbol.
type ParseError struct {
	Pos    int
	Symbol string
	Err    error
}

// Error formats the failure with its position.
func (e *ParseError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
	}
	return fmt.Sprintf("%v: %q at position %d", e.Err, e.Symbol, e.Pos)
}

// Unwrap returns the sentinel error.
func (e *ParseError) Unwrap() error { return e.Err }
