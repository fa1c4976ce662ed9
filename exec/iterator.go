package exec

import (
	"context"

	"github.com/rdfgraph/engine/term"
)

// BindingIterator is Iterator under the name the embedded API (package
// rdfgraph) exposes to callers of PreparedQuery.Execute; the two are the
// same type; the alias exists only so call sites outside this package
// read naturally as "an iterator of bindings".
type BindingIterator = Iterator

// Iterator is the pull-based solution-sequence interface every compiled
// Algebra node returns, mirroring store.Cursor's Next/Err/Close shape.
// Compile builds each node's full output before returning it, so a
// Slice(LIMIT 1) sitting on top of an expensive Join still computes the
// whole Join first.
type Iterator interface {
	// Next advances to the next solution, returning false when the
	// sequence is exhausted or ctx is done (check Err to tell the two
	// apart).
	Next(ctx context.Context) bool

	// Result returns the current solution. Valid only after a Next call
	// that returned true.
	Result() Binding

	// Err returns the first error encountered, including ErrCancelled
	// if ctx was done.
	Err() error

	Close() error
}

// sliceIterator adapts a pre-materialized []Binding to Iterator. The
// operators here, Join and Slice included, build their full output
// eagerly (matching store.QuadStore.Scan's own non-streaming design) and
// hand it back wrapped in a sliceIterator rather than threading lazy
// evaluation through any node; Next checks ctx before handing out each
// row.
type sliceIterator struct {
	rows []Binding
	pos  int
	cur  Binding
	err  error
}

func newSliceIterator(rows []Binding) *sliceIterator {
	return &sliceIterator{rows: rows, pos: -1}
}

func (it *sliceIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if ctx.Err() != nil {
		it.err = ErrCancelled
		return false
	}
	it.pos++
	if it.pos >= len(it.rows) {
		return false
	}
	it.cur = it.rows[it.pos]
	return true
}

func (it *sliceIterator) Result() Binding { return it.cur }
func (it *sliceIterator) Err() error      { return it.err }
func (it *sliceIterator) Close() error    { return nil }

// drain pulls every remaining solution from it into a slice, the
// materialization step compileJoin and the aggregate/order/distinct
// operators need before they can do their whole-set work.
func drain(ctx context.Context, it Iterator) ([]Binding, error) {
	defer it.Close()
	var out []Binding
	for it.Next(ctx) {
		out = append(out, it.Result())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// QuadIterator is the raw-quad counterpart to Iterator, returned by
// rdfgraph.Store.Scan for a direct pattern lookup that never goes
// through the SPARQL algebra at all.
type QuadIterator interface {
	Next(ctx context.Context) bool
	Quad() term.Quad
	Err() error
	Close() error
}

type quadSliceIterator struct {
	quads []term.Quad
	pos   int
	cur   term.Quad
	err   error
}

// NewQuadIterator adapts a materialized quad slice (the shape
// store.QuadStore.Scan already returns) to QuadIterator.
func NewQuadIterator(quads []term.Quad) QuadIterator {
	return &quadSliceIterator{quads: quads, pos: -1}
}

func (it *quadSliceIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if ctx.Err() != nil {
		it.err = ErrCancelled
		return false
	}
	it.pos++
	if it.pos >= len(it.quads) {
		return false
	}
	it.cur = it.quads[it.pos]
	return true
}

func (it *quadSliceIterator) Quad() term.Quad { return it.cur }
func (it *quadSliceIterator) Err() error      { return it.err }
func (it *quadSliceIterator) Close() error    { return nil }
