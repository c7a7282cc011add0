package reduction

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("anagopos.reduction")

// Counters for graph exploration. They are created against the global meter
// provider on first use.
var (
	expansionsTotal metric.Int64Counter
	nodesTotal      metric.Int64Counter
	edgesTotal      metric.Int64Counter
	selfLoopsTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		expansionsTotal, err = meter.Int64Counter(
			"reduction_expansions_total",
			metric.WithDescription("Terms taken off the frontier and expanded"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesTotal, err = meter.Int64Counter(
			"reduction_nodes_total",
			metric.WithDescription("Distinct terms assigned an id"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		edgesTotal, err = meter.Int64Counter(
			"reduction_edges_total",
			metric.WithDescription("Reduction steps delivered as edges"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		selfLoopsTotal, err = meter.Int64Counter(
			"reduction_self_loops_total",
			metric.WithDescription("Reducts suppressed because they equal their source"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordNode counts the root vertex of a new iterator.
func recordNode(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	nodesTotal.Add(ctx, 1)
}

// recordExpansion counts the outcome of expanding one term.
func recordExpansion(ctx context.Context, nodes, edges, selfLoops int) {
	if err := initMetrics(); err != nil {
		return
	}
	expansionsTotal.Add(ctx, 1)
	if nodes > 0 {
		nodesTotal.Add(ctx, int64(nodes))
	}
	if edges > 0 {
		edgesTotal.Add(ctx, int64(edges))
	}
	if selfLoops > 0 {
		selfLoopsTotal.Add(ctx, int64(selfLoops))
	}
}
