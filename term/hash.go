package term

import "github.com/zeebo/xxh3"

// HashOf returns a 64-bit content hash of t's canonical N-Triples
// rendering, used for deterministic hashing of a single term.
//
// Uses xxh3 (non-cryptographic, an order of magnitude faster than a
// cryptographic hash) since quality of hash distribution, not collision
// resistance, is what the dictionary and index layers need.
func HashOf(t Term) uint64 {
	return xxh3.HashString(t.String())
}

// QuadHash returns a content hash over all four quad positions.
func QuadHash(q Quad) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(q.Subject.String())
	_, _ = h.WriteString(q.Predicate.String())
	_, _ = h.WriteString(q.Object.String())
	_, _ = h.WriteString(q.Graph.String())
	return h.Sum64()
}
