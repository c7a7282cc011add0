// Package reduction explores reduction graphs breadth first.
//
// A reduction graph has one vertex per distinct term reachable from a root
// and one edge per single reduction step. The Iterator discovers it lazily:
// every call does the work of expanding at most one term, so graphs of
// non-terminating terms can be explored a slice at a time.
//
// The package is independent of the term language. Any type with a
// structural hash and structural equality can be explored by supplying a
// StepFunc that lists its reducts.
package reduction

import (
	"context"
	"fmt"
)

// Node is a term that can be deduplicated. Equal terms must have equal
// hashes.
type Node[T any] interface {
	Hash() uint64
	Equal(other T) bool
}

// StepFunc returns the reducts of a term, one per redex, in a deterministic
// order.
type StepFunc[T any] func(T) []T

// NoParent is the ParentID of the root record.
const NoParent = -1

// Record describes one delivered vertex or edge. The root is delivered first
// with ParentID NoParent. Every other record is an edge from ParentID to ID;
// IsNew reports whether ID was assigned by this record.
type Record[T any] struct {
	Term     T
	ID       int
	ParentID int
	IsNew    bool
}

// IsRoot reports whether r is the root record.
func (r Record[T]) IsRoot() bool { return r.ParentID == NoParent }

// String renders "parent -> id" with a trailing "*" for new vertices.
func (r Record[T]) String() string {
	mark := ""
	if r.IsNew {
		mark = "*"
	}
	if r.IsRoot() {
		return fmt.Sprintf("root %d%s", r.ID, mark)
	}
	return fmt.Sprintf("%d -> %d%s", r.ParentID, r.ID, mark)
}

// Stats summarises the work an iterator has done.
type Stats struct {
	Nodes      int // distinct terms with an id
	Edges      int // edge records produced
	Expanded   int // terms taken off the frontier
	SelfLoops  int // reducts dropped because they equal their source
	Dropped    int // reducts dropped by the node limit
	Frontier   int // terms waiting to be expanded
	Pending    int // records computed but not yet delivered
	Exhausted  bool
	NodeLimit  int
	LimitFired bool
}

type entry[T any] struct {
	term T
	id   int
}

// Iterator is a resumable breadth-first walk of a reduction graph. Ids are
// assigned in discovery order starting at 0 for the root and never change.
// An Iterator is not safe for concurrent use; independent iterators share
// nothing.
type Iterator[T Node[T]] struct {
	step     StepFunc[T]
	maxNodes int

	seen     map[uint64][]entry[T]
	frontier queue[entry[T]]
	pending  queue[Record[T]]
	nextID   int
	stats    Stats
}

// Option configures an Iterator.
type Option func(*options)

type options struct {
	maxNodes int
}

// WithMaxNodes stops the graph from growing beyond n vertices. Reducts that
// would need a new vertex are dropped; edges to known vertices are still
// delivered. Non-positive n means no limit.
func WithMaxNodes(n int) Option {
	return func(o *options) { o.maxNodes = n }
}

// New returns an iterator rooted at root. The root record is the first one
// delivered.
func New[T Node[T]](root T, step StepFunc[T], opts ...Option) *Iterator[T] {
	if step == nil {
		panic("reduction: New requires a step function")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	it := &Iterator[T]{
		step:     step,
		maxNodes: o.maxNodes,
		seen:     make(map[uint64][]entry[T]),
	}
	it.stats.NodeLimit = o.maxNodes
	id, _ := it.intern(root)
	it.frontier.push(entry[T]{term: root, id: id})
	it.pending.push(Record[T]{Term: root, ID: id, ParentID: NoParent, IsNew: true})
	recordNode(context.Background())
	return it
}

// lookup returns the id of a term equal to t.
func (it *Iterator[T]) lookup(t T) (int, bool) {
	for _, e := range it.seen[t.Hash()] {
		if e.term.Equal(t) {
			return e.id, true
		}
	}
	return 0, false
}

// intern returns the id of t, assigning the next one if t is new.
func (it *Iterator[T]) intern(t T) (int, bool) {
	if id, ok := it.lookup(t); ok {
		return id, false
	}
	id := it.nextID
	it.nextID++
	h := t.Hash()
	it.seen[h] = append(it.seen[h], entry[T]{term: t, id: id})
	it.stats.Nodes++
	return id, true
}

// Next returns the next record. The second result is false once the graph
// is fully explored, which is a normal end rather than an error. Each call
// expands at most one term.
func (it *Iterator[T]) Next() (Record[T], bool) {
	for it.pending.empty() {
		if it.frontier.empty() {
			it.stats.Exhausted = true
			return Record[T]{}, false
		}
		it.expand(it.frontier.pop())
	}
	return it.pending.pop(), true
}

// expand queues one record per reduct of e. Reducts equal to e itself are
// skipped.
func (it *Iterator[T]) expand(e entry[T]) {
	ctx := context.Background()
	it.stats.Expanded++
	var edges, nodes, loops int
	for _, r := range it.step(e.term) {
		if r.Equal(e.term) {
			it.stats.SelfLoops++
			loops++
			continue
		}
		id, known := it.lookup(r)
		isNew := false
		if !known {
			if it.maxNodes > 0 && it.stats.Nodes >= it.maxNodes {
				it.stats.Dropped++
				it.stats.LimitFired = true
				continue
			}
			id, isNew = it.intern(r)
			it.frontier.push(entry[T]{term: r, id: id})
			nodes++
		}
		it.pending.push(Record[T]{Term: r, ID: id, ParentID: e.id, IsNew: isNew})
		it.stats.Edges++
		edges++
	}
	recordExpansion(ctx, nodes, edges, loops)
}

// Take returns up to n records. The second result is false when the graph
// was exhausted before n records could be delivered. Non-positive n
// delivers nothing.
func (it *Iterator[T]) Take(n int) ([]Record[T], bool) {
	out := make([]Record[T], 0, max(n, 0))
	for len(out) < n {
		r, ok := it.Next()
		if !ok {
			return out, false
		}
		out = append(out, r)
	}
	return out, true
}

// Exhausted reports whether Next has signalled the end of the graph.
func (it *Iterator[T]) Exhausted() bool { return it.stats.Exhausted }

// Stats returns a snapshot of the iterator's counters.
func (it *Iterator[T]) Stats() Stats {
	s := it.stats
	s.Frontier = it.frontier.len()
	s.Pending = it.pending.len()
	return s
}

// ID returns the id assigned to a term equal to t, if any.
func (it *Iterator[T]) ID(t T) (int, bool) { return it.lookup(t) }
