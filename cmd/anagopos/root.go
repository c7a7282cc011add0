package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitrdm/anagopos/internal/config"
	"github.com/gitrdm/anagopos/internal/logging"
	"github.com/gitrdm/anagopos/pkg/engine"
	"github.com/gitrdm/anagopos/pkg/trs"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	mode       string
	rules      string
	seed       uint64
	logLevel   string
	logFormat  string
	metrics    bool
	trace      bool

	cfg      config.Config
	runID    uuid.UUID
	logger   *slog.Logger
	shutdown []func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "anagopos",
		Short: "Explore reduction graphs of λ-terms and term rewriting systems",
		Long: `anagopos computes the graph of all reductions of a term, breadth first.

In lambda mode terms are written with backslash abstractions, e.g. \x y.x (y y).
In trs mode terms are first-order, e.g. f(g(a, x)), and the rewrite rules
are read from a rule set in the XML format of the Termination Problems Database.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.mode, "mode", "", "term language: lambda or trs")
	pf.StringVar(&a.rules, "rules", "", "rule set file (trs mode)")
	pf.Uint64Var(&a.seed, "seed", 0, "random seed, 0 for a fresh one")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", "", "text or json")
	pf.BoolVar(&a.metrics, "metrics", false, "print exploration metrics to stderr on exit")
	pf.BoolVar(&a.trace, "trace", false, "print trace spans to stderr")

	root.AddCommand(
		newGraphCmd(a),
		newRandomCmd(a),
		newRulesCmd(a),
		newBatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the configuration, then builds the logger and telemetry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = a.mode
	}
	if flags.Changed("rules") {
		cfg.Rules = a.rules
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.runID = uuid.New()
	a.logger = logging.New(logging.Config{
		Level:  level,
		JSON:   cfg.Log.Format == "json",
		Output: cmd.ErrOrStderr(),
	}).With("run_id", a.runID.String())

	return a.startTelemetry(cmd.ErrOrStderr())
}

func (a *app) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, a.shutdown[i](ctx))
	}
	a.shutdown = nil
	return errors.Join(errs...)
}

// newEngine builds an engine from the resolved configuration.
func (a *app) newEngine(maxNodes int) (*engine.Engine, error) {
	mode, err := engine.ParseMode(a.cfg.Mode)
	if err != nil {
		return nil, err
	}
	seed := a.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	a.logger.Debug("engine configured", "mode", mode, "seed", seed, "max_nodes", maxNodes)

	opts := []engine.Option{
		engine.WithRand(rand.New(rand.NewPCG(seed, seed>>1|1))),
		engine.WithCacheSize(a.cfg.CacheSize),
		engine.WithMaxNodes(maxNodes),
		engine.WithLogger(a.logger),
	}
	if mode == engine.ModeTRS {
		if a.cfg.Rules == "" {
			return nil, fmt.Errorf("trs mode needs --rules: %w", engine.ErrNoRuleSet)
		}
		rs, err := trs.LoadRuleSet(a.cfg.Rules)
		if err != nil {
			return nil, err
		}
		a.logger.Info("rule set loaded", "path", a.cfg.Rules, "rules", len(rs.Rules), "signature", rs.Signature.String())
		opts = append(opts, engine.WithRuleSet(rs))
	}
	return engine.New(mode, opts...)
}
