package rdfgraph

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/rdfgraph/engine/exec"
	"github.com/rdfgraph/engine/parse"
	"github.com/rdfgraph/engine/reason"
	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
)

// Store is the handle Open returns: a term.Dictionary, a store.QuadStore
// and a reason.Engine wired together, plus the SPARQL front end compiled
// against them, as a concrete struct rather than an interface, since
// this engine has exactly one storage abstraction behind it
// (store.QuadStore).
type Store struct {
	store       *store.QuadStore
	dict        *term.Dictionary
	reasoner    *reason.Engine
	concurrency int
}

// Pattern is a quad pattern for Scan: a zero term.Term in any field acts
// as a wildcard, the same convention term.Quad.Matches uses.
type Pattern struct {
	Subject, Predicate, Object, Graph term.Term
}

// ingestBatchSize bounds how many decoded quads Ingest buffers before
// handing them to store.QuadStore.InsertBatch, keeping memory use bounded
// on a large document while still giving the batch writer enough quads
// per call to make its per-ordering fan-out worthwhile.
const ingestBatchSize = 4096

// Ingest decodes every quad format emits from r and inserts it in bulk via
// store.QuadStore.InsertBatch, batching quads into the index writer
// rather than issuing one insert call per line.
func (s *Store) Ingest(format parse.Format, r io.Reader) error {
	dec := parse.NewDecoder(format, r, s.dict)
	ctx := context.Background()
	batch := make([]term.Quad, 0, ingestBatchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.store.InsertBatch(ctx, batch, s.concurrency); err != nil {
			return fmt.Errorf("rdfgraph: ingest: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		q, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("rdfgraph: ingest: %w", err)
		}
		batch = append(batch, q)
		if len(batch) == ingestBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	glog.V(1).Infof("rdfgraph: ingested %d quads", total)
	return nil
}

// Insert asserts q.
func (s *Store) Insert(ctx context.Context, q term.Quad) error {
	return s.store.Insert(ctx, q)
}

// Delete retracts q. Deleting a quad that was only ever reachable as an
// entailment does not retract the entailment's premises; a subsequent
// Materialize call may re-derive it.
func (s *Store) Delete(ctx context.Context, q term.Quad) error {
	return s.store.Remove(ctx, q)
}

// Contains reports whether q is present, asserted or inferred.
func (s *Store) Contains(ctx context.Context, q term.Quad) (bool, error) {
	return s.store.Contains(ctx, q)
}

// Scan returns every quad matching pattern. store.QuadStore.Scan already
// drains its backend cursor into a materialized slice before returning,
// so the QuadIterator a caller receives here is already a consistent
// point-in-time snapshot: a concurrent Insert can only ever bump the
// store's state after this call has already finished reading (for
// memkv, the copied key slice backing RangeScan/PrefixScan; for
// badgerkv/leveldbkv, their own MVCC read transactions), never changing
// rows already handed back.
func (s *Store) Scan(ctx context.Context, pattern Pattern) (exec.QuadIterator, error) {
	quads, err := s.store.Scan(ctx, pattern.Subject, pattern.Predicate, pattern.Object, pattern.Graph)
	if err != nil {
		return nil, fmt.Errorf("rdfgraph: scan: %w", err)
	}
	return exec.NewQuadIterator(quads), nil
}

// Materialize runs the configured reasoner profile's rule table to a
// fixpoint. A Reasoner of ReasonerOff makes this a no-op.
func (s *Store) Materialize(ctx context.Context) error {
	res, err := s.reasoner.Materialize(ctx)
	if err != nil {
		if err == reason.ErrCancelled {
			return ErrCancelled
		}
		return err
	}
	if res.Incomplete {
		glog.Warningf("rdfgraph: materialize hit a resource limit after %d inferred quads", res.Inferred)
	}
	return nil
}

// Close flushes the backend and releases the store's scan cache.
func (s *Store) Close() error {
	return s.store.Close()
}

// Query parses and optimizes text, returning a PreparedQuery ready to
// Execute repeatedly against this Store's live state.
func (s *Store) Query(text string) (*PreparedQuery, error) {
	q, err := sparql.Parse(text, s.dict)
	if err != nil {
		return nil, fmt.Errorf("rdfgraph: parse query: %w", err)
	}
	q.Where = sparql.Optimize(q.Where)
	return &PreparedQuery{query: q, store: s}, nil
}
