package engine

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrUnknownMode is returned for a mode other than ModeLambda and ModeTRS.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrNoRuleSet is returned when a rewriting operation needs a rule set
	// and the engine was built without one.
	ErrNoRuleSet = errors.New("no rule set loaded")

	// ErrModeMismatch is returned when a term parsed in one mode is handed
	// to an engine running in the other.
	ErrModeMismatch = errors.New("term belongs to a different mode")
)
