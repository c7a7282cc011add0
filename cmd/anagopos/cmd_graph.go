package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/anagopos/pkg/engine"
)

type graphOptions struct {
	steps    int
	maxNodes int
	back     int
	format   string
	noColor  bool
}

func newGraphCmd(a *app) *cobra.Command {
	var o graphOptions
	cmd := &cobra.Command{
		Use:   "graph [term]",
		Short: "Explore the reduction graph of a term",
		Long: `graph delivers the reduction graph of a term breadth first, one record per
reduction step. Without a term argument a random term is explored.

--back N retracts the last N records from the displayed graph afterwards, the
way a viewer steps backwards without recomputing anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGraph(cmd, args, o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.steps, "steps", 0, "number of records to deliver (default from config)")
	f.IntVar(&o.maxNodes, "max-nodes", 0, "stop growing the graph at this many vertices (default from config)")
	f.IntVar(&o.back, "back", 0, "retract this many records at the end")
	f.StringVar(&o.format, "format", "text", "output format: text, dot or json")
	f.BoolVar(&o.noColor, "no-color", false, "disable styled output")
	return cmd
}

func (a *app) runGraph(cmd *cobra.Command, args []string, o graphOptions) error {
	switch o.format {
	case "text", "dot", "json":
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
	if o.back < 0 {
		return errors.New("--back must not be negative")
	}
	steps := a.cfg.Steps
	if cmd.Flags().Changed("steps") {
		steps = o.steps
	}
	if steps <= 0 {
		return errors.New("--steps must be positive")
	}
	maxNodes := a.cfg.MaxNodes
	if cmd.Flags().Changed("max-nodes") {
		maxNodes = o.maxNodes
	}

	e, err := a.newEngine(maxNodes)
	if err != nil {
		return err
	}
	var src string
	if len(args) == 1 {
		src = args[0]
	} else if src, err = e.RandomTerm(); err != nil {
		return err
	}
	root, err := e.Parse(src)
	if err != nil {
		return fmt.Errorf("parse %q: %w", src, err)
	}
	x, err := e.NewExplorer(root)
	if err != nil {
		return err
	}

	records, more, err := x.Take(cmd.Context(), steps)
	if err != nil {
		return err
	}
	retracted := x.Back(o.back)
	vertices, edges := x.Size()
	a.logger.Info("graph explored",
		"explorer", x.ID(),
		"records", len(records),
		"retracted", len(retracted),
		"vertices", vertices,
		"edges", edges,
		"exhausted", !more,
	)

	out := cmd.OutOrStdout()
	switch o.format {
	case "dot":
		return x.WriteDOT(out)
	case "json":
		return writeJSON(out, jsonGraph{
			RunID:     a.runID.String(),
			Mode:      string(e.Mode()),
			Root:      root.String(),
			Records:   toJSONRecords(records),
			Retracted: toJSONRecords(retracted),
			Vertices:  vertices,
			Edges:     edges,
			Exhausted: !more,
		})
	}

	color := colorEnabled(out, o.noColor)
	for _, r := range records {
		fmt.Fprintln(out, recordLine(r, color))
	}
	for _, r := range retracted {
		line := "undo " + recordLine(r, false)
		if color {
			line = retractStyle.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	status := "more reductions available"
	if !more {
		status = "graph exhausted"
	}
	fmt.Fprintf(out, "%d vertices, %d edges, %s\n", vertices, edges, status)
	return nil
}

// exploreSummary is the result of exploring one term in batch mode.
type exploreSummary struct {
	Source    string
	Records   int
	Vertices  int
	Edges     int
	Exhausted bool
	Err       error
}

func explore(ctx context.Context, e *engine.Engine, src string, steps int) exploreSummary {
	s := exploreSummary{Source: src}
	root, err := e.Parse(src)
	if err != nil {
		s.Err = err
		return s
	}
	x, err := e.NewExplorer(root)
	if err != nil {
		s.Err = err
		return s
	}
	records, more, err := x.Take(ctx, steps)
	s.Records = len(records)
	s.Vertices, s.Edges = x.Size()
	s.Exhausted = !more
	s.Err = err
	return s
}
