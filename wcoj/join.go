package wcoj

import (
	"context"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
)

// Join evaluates patterns as a worst-case-optimal join against scan,
// returning one binding map per solution. The result set equals the one
// a naive nested-loop join over the same patterns would produce (just
// computed without materializing the full cross product along the way);
// exec delegates to Join only once a Bgp meets the configured
// size/shared-variable threshold, falling back to pairwise hash joins
// otherwise.
func Join(ctx context.Context, scan ScanFunc, patterns []*sparql.TriplePattern, estimate DistinctEstimator) ([]map[string]term.Term, error) {
	if len(patterns) == 0 {
		return []map[string]term.Term{{}}, nil
	}
	for _, p := range patterns {
		if len(patternVars(p)) > 0 {
			continue
		}
		quads, err := scan(ctx, p.Subject, p.Predicate, p.Object, p.Graph)
		if err != nil {
			return nil, err
		}
		if len(quads) == 0 {
			return nil, nil
		}
	}
	order := VariableOrder(patterns, estimate)
	tries := make([]*Trie, len(patterns))
	for i, p := range patterns {
		tries[i] = newTrie(p)
	}
	var out []map[string]term.Term
	if err := Leapfrog(ctx, scan, tries, order, map[string]term.Term{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
