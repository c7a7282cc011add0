// Package engine is the boundary between the term rewriting core and a
// front end. It hides the dialect behind a Mode: front ends parse text,
// draw random terms and explore reduction graphs without knowing whether
// they work with λ-terms or a first-order rewriting system.
//
// An Engine is safe for concurrent use. Explorers are not; each one owns
// the private state of its iterator.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/gitrdm/anagopos/pkg/lambda"
	"github.com/gitrdm/anagopos/pkg/trs"
)

// Mode selects the term language.
type Mode string

// Supported modes.
const (
	ModeLambda Mode = "lambda"
	ModeTRS    Mode = "trs"
)

// ParseMode converts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLambda, ModeTRS:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DefaultCacheSize is the number of parsed terms kept by default.
const DefaultCacheSize = 256

// Engine parses, generates and explores terms of one mode.
type Engine struct {
	mode      Mode
	rules     *trs.RuleSet
	maxNodes  int
	cacheSize int
	logger    *slog.Logger

	cache *lru.Cache
	group singleflight.Group

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRuleSet sets the rewriting system used in ModeTRS. Its signature
// drives term parsing and random generation.
func WithRuleSet(rs *trs.RuleSet) Option {
	return func(e *Engine) { e.rules = rs }
}

// WithRand sets the random source for RandomTerm.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithCacheSize sets how many parse results are kept. Zero or less disables
// the cache.
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

// WithMaxNodes bounds the graphs of explorers created by the engine.
func WithMaxNodes(n int) Option {
	return func(e *Engine) { e.maxNodes = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine for mode.
func New(mode Mode, opts ...Option) (*Engine, error) {
	if mode != ModeLambda && mode != ModeTRS {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	e := &Engine{mode: mode, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.cacheSize > 0 {
		cache, err := lru.New(e.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create parse cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// Mode returns the engine's mode.
func (e *Engine) Mode() Mode { return e.mode }

// RuleSet returns the rewriting system, or nil.
func (e *Engine) RuleSet() *trs.RuleSet { return e.rules }

func (e *Engine) signature() trs.Signature {
	if e.rules == nil {
		return trs.Signature{}
	}
	return e.rules.Signature
}

func (e *Engine) ruleList() []trs.Rule {
	if e.rules == nil {
		return nil
	}
	return e.rules.Rules
}

// Parse parses text in the engine's mode. Failures are the parse errors of
// the lambda and trs packages. Results are cached by text, and concurrent
// parses of the same text share one parse.
func (e *Engine) Parse(text string) (Term, error) {
	if e.cache != nil {
		if v, ok := e.cache.Get(text); ok {
			e.logger.Debug("parse cache hit", "mode", e.mode)
			return v.(Term), nil
		}
	}
	v, err, shared := e.group.Do(text, func() (any, error) {
		t, err := e.parse(text)
		if err != nil {
			return nil, err
		}
		if e.cache != nil {
			e.cache.Add(text, t)
		}
		return t, nil
	})
	if err != nil {
		e.logger.Debug("parse failed", "mode", e.mode, "error", err)
		return Term{}, err
	}
	t := v.(Term)
	e.logger.Debug("parsed term", "mode", e.mode, "size", t.Size(), "shared", shared)
	return t, nil
}

func (e *Engine) parse(text string) (Term, error) {
	if e.mode == ModeLambda {
		t, free, err := lambda.ParseFree(text, nil)
		if err != nil {
			return Term{}, err
		}
		return LambdaTerm(t, free), nil
	}
	t, err := trs.ParseTerm(text, e.signature())
	if err != nil {
		return Term{}, err
	}
	return TRSTerm(t), nil
}

// RandomTerm returns a random term in surface syntax. ModeTRS needs a rule
// set; an empty signature yields a single variable.
func (e *Engine) RandomTerm() (string, error) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	if e.mode == ModeLambda {
		return lambda.NewGenerator(e.rng).Term(), nil
	}
	if e.rules == nil {
		return "", ErrNoRuleSet
	}
	return trs.NewGenerator(e.rng, e.rules.Signature).Term(), nil
}

// Reducts returns the one-step reducts of t in redex order.
func (e *Engine) Reducts(t Term) ([]Term, error) {
	if t.mode != e.mode {
		return nil, fmt.Errorf("%w: %s term in %s engine", ErrModeMismatch, t.mode, e.mode)
	}
	var out []Term
	if e.mode == ModeLambda {
		for _, r := range lambda.Reducts(t.lambda) {
			out = append(out, LambdaTerm(r, t.free))
		}
		return out, nil
	}
	for _, r := range trs.Reducts(t.trs, e.ruleList()) {
		out = append(out, TRSTerm(r))
	}
	return out, nil
}
