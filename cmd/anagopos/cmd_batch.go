package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gitrdm/anagopos/internal/parallel"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		steps   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Explore every term of a file concurrently",
		Long: `batch reads one term per line, skipping blank lines and lines starting
with #, explores each for up to --steps records and prints a summary table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("steps") {
				a.cfg.Steps = steps
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = workers
			}
			if a.cfg.Steps <= 0 {
				return errors.New("--steps must be positive")
			}
			return a.runBatch(cmd, args[0])
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "records per term (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent explorations, 0 for one per CPU")
	return cmd
}

func readTerms(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var terms []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	return terms, sc.Err()
}

func (a *app) runBatch(cmd *cobra.Command, path string) error {
	terms, err := readTerms(path)
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		return fmt.Errorf("%s: no terms", path)
	}
	e, err := a.newEngine(a.cfg.MaxNodes)
	if err != nil {
		return err
	}

	pool := parallel.NewWorkerPool(a.cfg.Workers)
	defer pool.Shutdown()
	a.logger.Info("batch started", "terms", len(terms), "workers", pool.Workers(), "steps", a.cfg.Steps)

	results, err := parallel.Map(cmd.Context(), pool, terms, func(ctx context.Context, src string) exploreSummary {
		return explore(ctx, e, src, a.cfg.Steps)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "term", "nodes", "edges", "exhausted", "error"})
	var nodes, edges, failed int
	for i, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
			failed++
		}
		nodes += r.Vertices
		edges += r.Edges
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Source,
			humanize.Comma(int64(r.Vertices)),
			humanize.Comma(int64(r.Edges)),
			strconv.FormatBool(r.Exhausted),
			errText,
		})
	}
	table.Render()
	fmt.Fprintf(out, "%s terms, %s nodes, %s edges, %d failed\n",
		humanize.Comma(int64(len(results))), humanize.Comma(int64(nodes)), humanize.Comma(int64(edges)), failed)

	a.logger.Info("batch finished", "terms", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d terms failed", failed, len(results))
	}
	return nil
}
