package store

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rdfgraph/engine/term"
)

// InsertBatch writes quads in bulk, one errgroup goroutine per enabled
// ordering (bounded by concurrency, <1 treated as 1) rather than one
// goroutine per quad: every ordering is an independent key subspace
// (index.go's one-byte ordering tag prefixes every key), so the six
// index-build passes this method fans out never contend with each other,
// unlike Insert's single sequential pass across qs.enabled used for a
// single quad at a time.
func (qs *QuadStore) InsertBatch(ctx context.Context, quads []term.Quad, concurrency int) error {
	if len(quads) == 0 {
		return nil
	}
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if concurrency < 1 {
		concurrency = 1
	}

	allIDs := make([][4]uint64, len(quads))
	for i, q := range quads {
		allIDs[i] = quadIDs(qs.dict, q)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for ord := range qs.enabled {
		ord := ord
		g.Go(func() error {
			pairs := make([]KV, len(quads))
			for i, q := range quads {
				pairs[i] = KV{Key: encodeKey(ord, allIDs[i]), Value: encodeQuadValue(q)}
			}
			if err := qs.backend.BatchPut(gctx, pairs); err != nil {
				return fmt.Errorf("store: insert batch (%s): %w", ord, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, ids := range allIDs {
		qs.exists.Add(bloomKey(ids))
	}
	qs.invalidateScanCache(allIDs[0])
	return nil
}
