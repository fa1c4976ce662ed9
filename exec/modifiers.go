package exec

import (
	"context"
	"sort"

	"github.com/rdfgraph/engine/sparql"
)

func compileFilter(ctx context.Context, env *Env, n *sparql.Filter) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	out := rows[:0:0]
	for _, r := range rows {
		ok, err := evalBool(env, r, n.Expr)
		if err != nil {
			continue // unbound/type-error => effective false, per FILTER semantics
		}
		if ok {
			out = append(out, r)
		}
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	return newSliceIterator(out), nil
}

func compileExtend(ctx context.Context, env *Env, n *sparql.Extend) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	out := make([]Binding, 0, len(rows))
	for _, r := range rows {
		val, err := evalExpr(ctx, env, r, n.Expr)
		next := r.Clone()
		if err == nil {
			next[n.Var] = val
		}
		out = append(out, next)
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	return newSliceIterator(out), nil
}

func compileProject(ctx context.Context, env *Env, n *sparql.Project) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	out := make([]Binding, len(rows))
	for i, r := range rows {
		proj := Binding{}
		for _, v := range n.Vars {
			if val, ok := r.Get(v); ok {
				proj[v] = val
			}
		}
		out[i] = proj
	}
	return newSliceIterator(out), nil
}

func compileDistinct(ctx context.Context, env *Env, n *sparql.Distinct) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := rows[:0:0]
	for _, r := range rows {
		k := rowKey(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return newSliceIterator(out), nil
}

// compileReduced is Distinct's heuristic cousin: SPARQL permits (but
// does not require) REDUCED to eliminate fewer duplicates than DISTINCT
// would. Deduplicating exactly like Distinct is a valid implementation
// of that permission, and keeps this operator's output deterministic
// for tests.
func compileReduced(ctx context.Context, env *Env, n *sparql.Reduced) (Iterator, error) {
	return compileDistinct(ctx, env, &sparql.Distinct{Input: n.Input})
}

func rowKey(r Binding) string {
	vars := sortedVarNames(r)
	key := ""
	for _, v := range vars {
		key += v + "=" + r[v].String() + "\x00"
	}
	return key
}

func compileOrderBy(ctx context.Context, env *Env, n *sparql.OrderBy) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, cond := range n.Conditions {
			vi, erri := evalExpr(ctx, env, rows[i], cond.Expr)
			vj, errj := evalExpr(ctx, env, rows[j], cond.Expr)
			if erri != nil || errj != nil {
				continue
			}
			cmp, err := compareTerms(vi, vj)
			if err != nil || cmp == 0 {
				continue
			}
			if cond.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return newSliceIterator(rows), nil
}

func compileSlice(ctx context.Context, env *Env, n *sparql.Slice) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}
	start := 0
	if n.HasOffset && n.Offset > 0 {
		start = int(n.Offset)
	}
	if start > len(rows) {
		start = len(rows)
	}
	rows = rows[start:]
	if n.HasLimit && n.Limit >= 0 && int(n.Limit) < len(rows) {
		rows = rows[:n.Limit]
	}
	return newSliceIterator(rows), nil
}
