package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gitrdm/anagopos/pkg/lambda"
	"github.com/gitrdm/anagopos/pkg/reduction"
	"github.com/gitrdm/anagopos/pkg/trs"
)

var tracer = otel.Tracer("anagopos.engine")

// Record is a reduction record with the term wrapped for either dialect and
// a display label in surface syntax.
type Record struct {
	Term     Term
	Label    string
	ID       int
	ParentID int
	IsNew    bool
}

// IsRoot reports whether r is the root record.
func (r Record) IsRoot() bool { return r.ParentID == reduction.NoParent }

// source hides the term type of a reduction history.
type source interface {
	forward(n int) ([]Record, bool)
	backward(n int) []Record
	stats() reduction.Stats
	writeDOT(w io.Writer) error
	size() (vertices, edges int)
}

type history[T reduction.Node[T]] struct {
	h    *reduction.History[T]
	wrap func(T) Term
}

func (s *history[T]) convert(rs []reduction.Record[T]) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		t := s.wrap(r.Term)
		out[i] = Record{Term: t, Label: t.String(), ID: r.ID, ParentID: r.ParentID, IsNew: r.IsNew}
	}
	return out
}

func (s *history[T]) forward(n int) ([]Record, bool) {
	rs, more := s.h.Forward(n)
	return s.convert(rs), more
}

func (s *history[T]) backward(n int) []Record { return s.convert(s.h.Backward(n)) }

func (s *history[T]) stats() reduction.Stats { return s.h.Stats() }

func (s *history[T]) writeDOT(w io.Writer) error {
	return s.h.Graph().WriteDOT(w, func(t T) string { return s.wrap(t).String() })
}

func (s *history[T]) size() (int, int) {
	g := s.h.Graph()
	return g.Len(), g.EdgeCount()
}

// Explorer walks the reduction graph of one root term. It records every
// delivered record so the caller can step back and forth; stepping back
// never rewinds the underlying iterator. An Explorer is not safe for
// concurrent use.
type Explorer struct {
	id   uuid.UUID
	root Term
	src  source
}

// NewExplorer returns an explorer rooted at root.
func (e *Engine) NewExplorer(root Term) (*Explorer, error) {
	if root.IsZero() {
		return nil, fmt.Errorf("explore: empty term")
	}
	if root.mode != e.mode {
		return nil, fmt.Errorf("%w: %s term in %s engine", ErrModeMismatch, root.mode, e.mode)
	}
	opts := []reduction.Option{reduction.WithMaxNodes(e.maxNodes)}
	var src source
	switch e.mode {
	case ModeLambda:
		free := root.free
		it := reduction.New(root.lambda, lambda.Reducts, opts...)
		src = &history[lambda.Term]{
			h:    reduction.NewHistory(it),
			wrap: func(t lambda.Term) Term { return LambdaTerm(t, free) },
		}
	case ModeTRS:
		rules := e.ruleList()
		step := func(t trs.Term) []trs.Term { return trs.Reducts(t, rules) }
		it := reduction.New(root.trs, step, opts...)
		src = &history[trs.Term]{h: reduction.NewHistory(it), wrap: TRSTerm}
	}
	x := &Explorer{id: uuid.New(), root: root, src: src}
	e.logger.Debug("explorer created", "explorer", x.id, "mode", e.mode, "root_size", root.Size())
	return x, nil
}

// ID identifies the explorer in logs and traces.
func (x *Explorer) ID() uuid.UUID { return x.id }

// Root returns the root term.
func (x *Explorer) Root() Term { return x.root }

// Next returns the next record, replaying retracted records first. The
// second result is false once the graph is exhausted.
func (x *Explorer) Next() (Record, bool) {
	rs, _ := x.src.forward(1)
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[0], true
}

// Take returns up to n records. The boolean is false when the graph ran
// out first. Cancelling ctx stops between records and returns what was
// gathered together with ctx.Err(). Non-positive n returns no records.
func (x *Explorer) Take(ctx context.Context, n int) ([]Record, bool, error) {
	_, span := tracer.Start(ctx, "Explorer.Take", trace.WithAttributes(
		attribute.String("explorer.id", x.id.String()),
		attribute.Int("explorer.requested", n),
	))
	defer span.End()

	out := make([]Record, 0, max(n, 0))
	more := true
	for len(out) < n {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return out, true, err
		}
		rs, ok := x.src.forward(1)
		out = append(out, rs...)
		if !ok {
			more = false
			break
		}
	}
	span.SetAttributes(
		attribute.Int("explorer.delivered", len(out)),
		attribute.Bool("explorer.exhausted", !more),
	)
	return out, more, nil
}

// Back retracts up to n records, newest first.
func (x *Explorer) Back(n int) []Record { return x.src.backward(n) }

// Stats returns the counters of the underlying iterator.
func (x *Explorer) Stats() reduction.Stats { return x.src.stats() }

// Size returns the vertex and edge counts of the graph as currently applied.
func (x *Explorer) Size() (vertices, edges int) { return x.src.size() }

// WriteDOT writes the currently applied graph in Graphviz syntax.
func (x *Explorer) WriteDOT(w io.Writer) error { return x.src.writeDOT(w) }
