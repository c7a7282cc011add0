package reduction

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Edge is one reduction step between two vertex ids. Parallel edges occur
// when different redexes of a term have equal reducts.
type Edge struct {
	From, To int
}

// Graph accumulates delivered records into the caller's view of the
// reduction graph. Applying and retracting records never touches the
// iterator that produced them.
type Graph[T any] struct {
	vertices map[int]T
	edges    []Edge
}

// NewGraph returns an empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{vertices: make(map[int]T)}
}

// Apply adds the vertex a new record introduces and the edge it denotes.
func (g *Graph[T]) Apply(r Record[T]) {
	if r.IsNew {
		g.vertices[r.ID] = r.Term
	}
	if !r.IsRoot() {
		g.edges = append(g.edges, Edge{From: r.ParentID, To: r.ID})
	}
}

// Retract undoes Apply for the most recently applied copy of r.
func (g *Graph[T]) Retract(r Record[T]) {
	if !r.IsRoot() {
		want := Edge{From: r.ParentID, To: r.ID}
		for i := len(g.edges) - 1; i >= 0; i-- {
			if g.edges[i] == want {
				g.edges = slices.Delete(g.edges, i, i+1)
				break
			}
		}
	}
	if r.IsNew {
		delete(g.vertices, r.ID)
	}
}

// Vertices returns the vertex ids in ascending order.
func (g *Graph[T]) Vertices() []int {
	ids := make([]int, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Term returns the term of vertex id.
func (g *Graph[T]) Term(id int) (T, bool) {
	t, ok := g.vertices[id]
	return t, ok
}

// Edges returns the edges in the order they were applied.
func (g *Graph[T]) Edges() []Edge { return slices.Clone(g.edges) }

// Len returns the number of vertices.
func (g *Graph[T]) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *Graph[T]) EdgeCount() int { return len(g.edges) }

// WriteDOT writes the graph in Graphviz syntax. label renders a vertex; a nil
// label prints the ids only.
func (g *Graph[T]) WriteDOT(w io.Writer, label func(T) string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph reduction {")
	fmt.Fprintln(bw, "\tnode [shape=box];")
	for _, id := range g.Vertices() {
		text := strconv.Itoa(id)
		if label != nil {
			text = label(g.vertices[id])
		}
		attrs := ""
		if id == 0 {
			attrs = ", style=bold"
		}
		fmt.Fprintf(bw, "\t%d [label=%s%s];\n", id, strconv.Quote(text), attrs)
	}
	for _, e := range g.edges {
		fmt.Fprintf(bw, "\t%d -> %d;\n", e.From, e.To)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// History keeps every record pulled from an iterator so the caller can step
// backwards and forwards through the exploration. Stepping back retracts
// records from the graph; stepping forward replays them before pulling new
// ones from the iterator.
type History[T Node[T]] struct {
	it      *Iterator[T]
	graph   *Graph[T]
	records []Record[T]
	applied int
}

// NewHistory returns a history over it with an empty graph.
func NewHistory[T Node[T]](it *Iterator[T]) *History[T] {
	return &History[T]{it: it, graph: NewGraph[T]()}
}

// Forward applies up to n records and returns them. The second result is
// false once the iterator is exhausted and nothing is left to replay.
// Non-positive n applies nothing.
func (h *History[T]) Forward(n int) ([]Record[T], bool) {
	out := make([]Record[T], 0, max(n, 0))
	for len(out) < n {
		var r Record[T]
		if h.applied < len(h.records) {
			r = h.records[h.applied]
		} else {
			next, ok := h.it.Next()
			if !ok {
				return out, false
			}
			r = next
			h.records = append(h.records, r)
		}
		h.graph.Apply(r)
		h.applied++
		out = append(out, r)
	}
	return out, true
}

// Backward retracts up to n of the most recently applied records, newest
// first, and returns them in that order.
func (h *History[T]) Backward(n int) []Record[T] {
	var out []Record[T]
	for ; n > 0 && h.applied > 0; n-- {
		h.applied--
		r := h.records[h.applied]
		h.graph.Retract(r)
		out = append(out, r)
	}
	return out
}

// Graph returns the graph as currently applied.
func (h *History[T]) Graph() *Graph[T] { return h.graph }

// Stats returns the counters of the underlying iterator.
func (h *History[T]) Stats() Stats { return h.it.Stats() }

// Applied returns the number of records currently applied.
func (h *History[T]) Applied() int { return h.applied }

// Recorded returns the number of records pulled from the iterator so far.
func (h *History[T]) Recorded() int { return len(h.records) }
