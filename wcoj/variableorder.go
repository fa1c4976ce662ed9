package wcoj

import (
	"sort"

	"github.com/rdfgraph/engine/sparql"
)

// DistinctEstimator estimates the number of distinct values a variable
// takes across the store, used as the selectivity tie-break in
// VariableOrder. A nil estimator (or one returning 0 for every variable)
// degrades the ordering to reference-count-then-lexicographic, which is
// still a valid, if less selective, order.
type DistinctEstimator func(varName string) int

// VariableOrder picks the global variable evaluation order fed to
// Leapfrog: variables referenced by more patterns first (they prune the
// search the most), then variables with fewer estimated distinct values
// (more selective), then lexicographic order as a deterministic
// tie-break.
func VariableOrder(patterns []*sparql.TriplePattern, estimate DistinctEstimator) []string {
	if estimate == nil {
		estimate = func(string) int { return 0 }
	}
	refCount := map[string]int{}
	var order []string
	for _, p := range patterns {
		for _, v := range patternVars(p) {
			if refCount[v] == 0 {
				order = append(order, v)
			}
			refCount[v]++
		}
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if refCount[a] != refCount[b] {
			return refCount[a] > refCount[b]
		}
		ea, eb := estimate(a), estimate(b)
		if ea != eb {
			return ea < eb
		}
		return a < b
	})
	return order
}
