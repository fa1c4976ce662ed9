package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	boom "github.com/tylertreat/BoomFilters"

	"github.com/rdfgraph/engine/term"
)

// DefaultEnabledOrderings enables all six orderings. Every set of bound
// positions has an ordering that leads with exactly those positions,
// except subject+object with predicate and graph free: no ordering starts
// with S-O or O-S, so such a pattern scans on a one-position prefix.
func DefaultEnabledOrderings() map[Ordering]bool {
	return map[Ordering]bool{
		SPOG: true, POGS: true, OGSP: true, GSPO: true, GPSO: true, OGPS: true,
	}
}

// QuadStore layers the six key orderings (index.go) over a single
// Backend: every index is a plain key in the same backend keyspace,
// prefixed by a one-byte ordering tag, rather than a separate bucket per
// ordering.
type QuadStore struct {
	mu      sync.Mutex
	backend Backend
	dict    *term.Dictionary
	enabled map[Ordering]bool

	// exists is a deletable Bloom filter guarding Contains: a negative
	// test short-circuits without a backend round-trip. Bloom filters
	// never false-negative, so a positive test still confirms against
	// the index.
	exists *boom.DeletableBloomFilter

	// scanCache holds recently-scanned (ordering, prefix) -> quad
	// lists; every write clears the whole cache (invalidateScanCache).
	// This is what gives warm reads their sub-millisecond latency.
	scanCache *ristretto.Cache[string, []term.Quad]

	// inferred marks reasoner-derived quads without touching the quad's
	// own representation.
	inferred map[uint64]bool
}

// Option configures a QuadStore at construction.
type Option func(*QuadStore)

// WithOrderings restricts the set of maintained index orderings. Fewer
// orderings cost less on every write, at the cost of some patterns
// falling back to a lower-scoring (wider) scan.
func WithOrderings(orderings ...Ordering) Option {
	return func(qs *QuadStore) {
		m := make(map[Ordering]bool, len(orderings))
		for _, o := range orderings {
			m[o] = true
		}
		qs.enabled = m
	}
}

// NewQuadStore wraps backend with the full index layer. dict is the
// dictionary used to resolve terms to dictionary ids; the store does not
// own the dictionary's lifetime.
func NewQuadStore(backend Backend, dict *term.Dictionary, opts ...Option) (*QuadStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []term.Quad]{
		NumCounters: 1e6,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("store: building scan cache: %w", err)
	}
	qs := &QuadStore{
		backend:   backend,
		dict:      dict,
		enabled:   DefaultEnabledOrderings(),
		exists:    boom.NewDeletableBloomFilter(10*1000*1000, 40, 0.01),
		scanCache: cache,
		inferred:  make(map[uint64]bool),
	}
	for _, opt := range opts {
		opt(qs)
	}
	return qs, nil
}

func bloomKey(ids [4]uint64) []byte {
	key := make([]byte, 32)
	for i, id := range ids {
		for j := 0; j < 8; j++ {
			key[i*8+j] = byte(id >> (56 - 8*j))
		}
	}
	return key
}

// Insert writes every enabled index entry for q inside one logical
// transaction: on partial failure, already-written entries for q are
// rolled back before the error is returned.
func (qs *QuadStore) Insert(ctx context.Context, q term.Quad) error {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ids := quadIDs(qs.dict, q)
	written := make([]Ordering, 0, len(qs.enabled))
	var writeErr error
	for ord := range qs.enabled {
		key := encodeKey(ord, ids)
		if err := qs.backend.Put(ctx, key, encodeQuadValue(q)); err != nil {
			writeErr = err
			break
		}
		written = append(written, ord)
	}
	if writeErr != nil {
		for _, ord := range written {
			_ = qs.backend.Delete(ctx, encodeKey(ord, ids))
		}
		return fmt.Errorf("store: insert: %w", writeErr)
	}
	qs.exists.Add(bloomKey(ids))
	qs.invalidateScanCache(ids)
	return nil
}

// Remove deletes every enabled index entry for q. Missing entries are
// tolerated (delete is idempotent).
func (qs *QuadStore) Remove(ctx context.Context, q term.Quad) error {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ids := quadIDs(qs.dict, q)
	for ord := range qs.enabled {
		if err := qs.backend.Delete(ctx, encodeKey(ord, ids)); err != nil {
			return fmt.Errorf("store: remove: %w", err)
		}
	}
	qs.exists.TestAndRemove(bloomKey(ids))
	qs.invalidateScanCache(ids)
	hash := term.QuadHash(q)
	delete(qs.inferred, hash)
	return nil
}

// Contains reports whether q is present, short-circuiting on the Bloom
// filter before touching the backend.
func (qs *QuadStore) Contains(ctx context.Context, q term.Quad) (bool, error) {
	ids := quadIDs(qs.dict, q)
	if !qs.exists.Test(bloomKey(ids)) {
		return false, nil
	}
	ord := qs.bestFullOrdering()
	_, err := qs.backend.Get(ctx, encodeKey(ord, ids))
	if err == ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (qs *QuadStore) bestFullOrdering() Ordering {
	for _, ord := range allOrderings {
		if qs.enabled[ord] {
			return ord
		}
	}
	return SPOG
}

// Scan returns every stored quad matching the pattern (s, p, o, g), a
// zero Term in any slot acting as a wildcard. It selects the
// highest-scoring enabled ordering for the pattern's bound prefix,
// consulting the scan cache for a warm hit first.
func (qs *QuadStore) Scan(ctx context.Context, s, p, o, g term.Term) ([]term.Quad, error) {
	bound := boundMask(s, p, o, g)
	ord := chooseOrdering(qs.enabled, bound)
	prefix := scanPrefix(qs.dict, ord, s, p, o, g)
	cacheKey := fmt.Sprintf("%s:%x", ord, prefix)

	if cached, ok := qs.scanCache.Get(cacheKey); ok {
		return filterExact(cached, s, p, o, g), nil
	}

	cursor, err := qs.backend.PrefixScan(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	defer cursor.Close()

	var out []term.Quad
	for cursor.Next(ctx) {
		q, err := decodeQuadValue(qs.dict, cursor.Value())
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, q)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}

	qs.scanCache.Set(cacheKey, out, int64(len(out)+1))
	return filterExact(out, s, p, o, g), nil
}

func filterExact(quads []term.Quad, s, p, o, g term.Term) []term.Quad {
	out := make([]term.Quad, 0, len(quads))
	for _, q := range quads {
		if q.Matches(s, p, o, g) {
			out = append(out, q)
		}
	}
	return out
}

// scanPrefix builds the prefix bytes to scan under ordering for the
// pattern's bound leading positions.
func scanPrefix(dict *term.Dictionary, ord Ordering, s, p, o, g term.Term) []byte {
	bound := [4]term.Term{s, p, o, g}
	dirs := ord.dirs()
	var prefix []byte
	for _, dir := range dirs {
		t := bound[dirIndex(dir)]
		if t.Zero() {
			break
		}
		id := dict.Intern(t.String()).ID()
		b := make([]byte, 8)
		for j := 0; j < 8; j++ {
			b[j] = byte(id >> (56 - 8*j))
		}
		prefix = append(prefix, b...)
	}
	return prefix
}

// invalidateScanCache drops any cached scan whose prefix could include
// ids. A precise invalidation would require reverse-indexing every
// cached key by the ids it covers; instead the cache is cleared whenever
// a write touches it, trading some warm-cache churn for correctness —
// acceptable because index.go's prefix scans are already index lookups,
// not full-table scans.
func (qs *QuadStore) invalidateScanCache(ids [4]uint64) {
	qs.scanCache.Clear()
}

// MarkInferred flags q as reasoner-derived. Stored separately from the
// quad itself so an asserted and an inferred copy of the same quad are
// never distinguishable except through this side table.
func (qs *QuadStore) MarkInferred(q term.Quad) {
	qs.inferred[term.QuadHash(q)] = true
}

// IsInferred reports whether q carries the inferred flag.
func (qs *QuadStore) IsInferred(q term.Quad) bool {
	return qs.inferred[term.QuadHash(q)]
}

// Close flushes the backend and releases the scan cache.
func (qs *QuadStore) Close() error {
	qs.scanCache.Close()
	return qs.backend.Flush(context.Background())
}
