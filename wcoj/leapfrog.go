package wcoj

import (
	"context"

	"github.com/rdfgraph/engine/term"
)

// Leapfrog drives the seek/intersect/backtrack loop over order: for its
// head variable it gathers, from every Trie that mentions it, the sorted
// candidate list consistent with partial, intersects those lists with the
// classic leapfrog pointer-advance (seek every iterator to the current
// max, check agreement, repeat), then recurses into the tail for each
// surviving candidate. Backtracking falls out of the recursion unwinding:
// partial is restored to its caller's state before returning.
func Leapfrog(ctx context.Context, scan ScanFunc, tries []*Trie, order []string, partial map[string]term.Term, out *[]map[string]term.Term) error {
	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}
	if len(order) == 0 {
		row := make(map[string]term.Term, len(partial))
		for k, v := range partial {
			row[k] = v
		}
		*out = append(*out, row)
		return nil
	}

	v := order[0]
	rest := order[1:]

	var sets [][]term.Term
	for _, tr := range tries {
		if !tr.mentions(v) {
			continue
		}
		vals, err := tr.valuesAt(ctx, scan, v, partial)
		if err != nil {
			return err
		}
		sets = append(sets, vals)
	}

	for _, val := range intersectSorted(sets) {
		partial[v] = val
		if err := Leapfrog(ctx, scan, tries, rest, partial, out); err != nil {
			delete(partial, v)
			return err
		}
	}
	delete(partial, v)
	return nil
}

// intersectSorted computes the intersection of len(sets) sorted,
// de-duplicated term lists by repeatedly seeking every list to the
// largest current element (by N-Triples string order) until all agree,
// emitting the agreed value and advancing every pointer once it's found.
// An empty input set (no relation mentions the variable) yields no
// results, matching the join's "no candidates" semantics rather than an
// unconstrained wildcard.
func intersectSorted(sets [][]term.Term) []term.Term {
	if len(sets) == 0 {
		return nil
	}
	for _, s := range sets {
		if len(s) == 0 {
			return nil
		}
	}
	idx := make([]int, len(sets))
	var out []term.Term
	for {
		max := sets[0][idx[0]].String()
		for i := 1; i < len(sets); i++ {
			k := sets[i][idx[i]].String()
			if k > max {
				max = k
			}
		}
		allEqual := true
		for i := range sets {
			for idx[i] < len(sets[i]) && sets[i][idx[i]].String() < max {
				idx[i]++
			}
			if idx[i] >= len(sets[i]) {
				return out
			}
			if sets[i][idx[i]].String() != max {
				allEqual = false
			}
		}
		if allEqual {
			out = append(out, sets[0][idx[0]])
			for i := range sets {
				idx[i]++
				if idx[i] >= len(sets[i]) {
					return out
				}
			}
		}
	}
}
