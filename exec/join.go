package exec

import (
	"context"

	"github.com/rdfgraph/engine/sparql"
)

// compileJoin materializes both sub-plans (Scan and Compile never
// stream past a single call in this design) and hash-joins them.
func compileJoin(ctx context.Context, env *Env, n *sparql.Join) (Iterator, error) {
	left, err := compileRows(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileRows(ctx, env, n.Right)
	if err != nil {
		return nil, err
	}
	return newSliceIterator(hashJoin(left, right)), nil
}

// compileLeftJoin implements OPTIONAL: every left row survives, matched
// with every compatible (and, if Expr is set, Expr-satisfying) right
// row when at least one exists, or alone with no right-side bindings
// added otherwise.
func compileLeftJoin(ctx context.Context, env *Env, n *sparql.LeftJoin) (Iterator, error) {
	left, err := compileRows(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileRows(ctx, env, n.Right)
	if err != nil {
		return nil, err
	}

	var out []Binding
	for _, l := range left {
		matched := false
		for _, r := range right {
			if !l.Compatible(r) {
				continue
			}
			merged := l.Merge(r)
			if n.Expr != nil {
				ok, err := evalBool(env, merged, n.Expr)
				if err != nil {
					continue // error => not-true, per SPARQL FILTER semantics
				}
				if !ok {
					continue
				}
			}
			out = append(out, merged)
			matched = true
		}
		if !matched {
			out = append(out, l)
		}
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	return newSliceIterator(out), nil
}

func compileUnion(ctx context.Context, env *Env, n *sparql.Union) (Iterator, error) {
	left, err := compileRows(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileRows(ctx, env, n.Right)
	if err != nil {
		return nil, err
	}
	out := make([]Binding, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return newSliceIterator(out), nil
}

// compileRows is the common Compile-then-drain helper every operator
// that needs a materialized side uses.
func compileRows(ctx context.Context, env *Env, a sparql.Algebra) ([]Binding, error) {
	it, err := Compile(ctx, env, a)
	if err != nil {
		return nil, err
	}
	return drain(ctx, it)
}

// sharedVars returns the variable names present in both left and right
// rows, used both to build the join's hash key and, by LeftJoin's
// Compatible check, to decide which bindings must agree.
func sharedVars(left, right Binding) []string {
	var out []string
	for k := range left {
		if _, ok := right[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// joinKey renders row's values for vars as a single comparable string,
// the hash-join bucket key.
func joinKey(row Binding, vars []string) string {
	key := ""
	for _, v := range vars {
		val, ok := row[v]
		if !ok {
			return "" // callers only use this once vars is known present
		}
		key += v + "=" + val.String() + "\x00"
	}
	return key
}

// hashJoin computes the natural join of left and right: builds a hash
// index over the smaller side keyed by the variables it shares with the
// first row of the other side, then probes with the larger side. When
// the two sides share no variables at all it degrades to crossJoin,
// SPARQL join's correct behavior for disjoint variable sets.
func hashJoin(left, right []Binding) []Binding {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	vars := sharedVars(left[0], right[0])
	if len(vars) == 0 {
		return crossJoin(left, right)
	}

	build, probe := left, right
	swapped := false
	if len(right) < len(left) {
		build, probe = right, left
		swapped = true
	}

	index := make(map[string][]Binding, len(build))
	for _, row := range build {
		k := joinKey(row, vars)
		index[k] = append(index[k], row)
	}

	var out []Binding
	for _, row := range probe {
		k := joinKey(row, vars)
		for _, cand := range index[k] {
			if !cand.Compatible(row) {
				continue
			}
			if swapped {
				out = append(out, row.Merge(cand))
			} else {
				out = append(out, cand.Merge(row))
			}
		}
	}
	return out
}

// crossJoin pairs every left row with every right row, the correct join
// result when the two sides bind disjoint variable sets (an empty
// shared-key set would otherwise make every row collide into one hash
// bucket, which happens to also be correct but is worth naming
// separately for clarity and for the Compatible check it still needs).
func crossJoin(left, right []Binding) []Binding {
	out := make([]Binding, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			if l.Compatible(r) {
				out = append(out, l.Merge(r))
			}
		}
	}
	return out
}
