package lambda

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	// ErrInvalidSymbol is returned when the parser meets a character that
	// cannot start or continue the expected construct.
	ErrInvalidSymbol = errors.New("invalid symbol on input")

	// ErrUnexpectedEnd is returned when the input ends inside a term.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrTrailingInput is returned when a complete term is followed by
	// more symbols.
	ErrTrailingInput = errors.New("symbols left on input")
)

// ParseError describes a failure to parse surface syntax. Pos is the byte
// offset of the offending symbol.
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
