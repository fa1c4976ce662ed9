package exec

import (
	"context"
	"sort"
	"strings"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
)

// compileGroup implements GROUP BY plus SELECT-list aggregates. Rows are
// partitioned by the N-Triples-rendered tuple of their By expressions
// (the empty tuple when By is empty groups everything into one bucket,
// the implicit-group case a bare aggregate SELECT needs), then each
// Aggregate is folded over its bucket.
func compileGroup(ctx context.Context, env *Env, n *sparql.Group) (Iterator, error) {
	rows, err := compileRows(ctx, env, n.Input)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		keyVals []term.Term
		rows    []Binding
	}
	order := []string{}
	buckets := map[string]*bucket{}

	for _, r := range rows {
		keyVals := make([]term.Term, len(n.By))
		var key strings.Builder
		for i, by := range n.By {
			v, err := evalExpr(ctx, env, r, by)
			if err == nil {
				keyVals[i] = v
				key.WriteString(v.String())
			}
			key.WriteByte(0)
		}
		k := key.String()
		b, ok := buckets[k]
		if !ok {
			b = &bucket{keyVals: keyVals}
			buckets[k] = b
			order = append(order, k)
		}
		b.rows = append(b.rows, r)
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}

	// Deterministic bucket order: buckets sorted by their group-key
	// string, so the same input always yields groups in the same order.
	sort.Strings(order)

	out := make([]Binding, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		row := Binding{}
		for i, by := range n.By {
			if name, ok := groupKeyVarName(by); ok {
				row[name] = b.keyVals[i]
			}
		}
		for _, agg := range n.Aggregates {
			val, err := evalAggregate(ctx, env, agg, b.rows)
			if err == nil {
				row[agg.OutVar] = val
			}
		}
		out = append(out, row)
	}
	return newSliceIterator(out), nil
}

// groupKeyVarName returns the variable name a bare "GROUP BY ?x" key
// should also be exposed as in the output row (a computed grouping key
// like "GROUP BY (?x + 1)" has no natural variable name and is only
// reachable through an enclosing BIND, so it returns false).
func groupKeyVarName(e *sparql.Expr) (string, bool) {
	if e.Kind == sparql.ExprVar {
		return e.Var, true
	}
	return "", false
}

func evalAggregate(ctx context.Context, env *Env, agg sparql.Aggregate, rows []Binding) (term.Term, error) {
	var values []term.Term
	seen := map[string]bool{}
	for _, r := range rows {
		if agg.Kind == sparql.AggCount && agg.Expr == nil {
			values = append(values, term.Term{}) // placeholder, COUNT(*) only counts rows
			continue
		}
		v, err := evalExpr(ctx, env, r, agg.Expr)
		if err != nil {
			continue
		}
		if agg.Distinct {
			k := v.String()
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		values = append(values, v)
	}

	switch agg.Kind {
	case sparql.AggCount:
		return intTerm(env, int64(len(values))), nil
	case sparql.AggSum:
		var sumInt int64
		var sumF float64
		allInt := true
		for _, v := range values {
			n, isInt, f, err := numericValue(v)
			if err != nil {
				continue
			}
			if isInt && allInt {
				sumInt += n
			} else {
				allInt = false
			}
			sumF += f
		}
		if allInt {
			return intTerm(env, sumInt), nil
		}
		return doubleTerm(env, sumF), nil
	case sparql.AggAvg:
		if len(values) == 0 {
			return intTerm(env, 0), nil
		}
		var sum float64
		for _, v := range values {
			_, _, f, err := numericValue(v)
			if err != nil {
				continue
			}
			sum += f
		}
		return doubleTerm(env, sum/float64(len(values))), nil
	case sparql.AggMin, sparql.AggMax:
		if len(values) == 0 {
			return term.Term{}, ErrUnbound
		}
		best := values[0]
		for _, v := range values[1:] {
			cmp, err := compareTerms(v, best)
			if err != nil {
				continue
			}
			if (agg.Kind == sparql.AggMin && cmp < 0) || (agg.Kind == sparql.AggMax && cmp > 0) {
				best = v
			}
		}
		return best, nil
	case sparql.AggSample:
		if len(values) == 0 {
			return term.Term{}, ErrUnbound
		}
		return values[0], nil
	case sparql.AggGroupConcat:
		sep := agg.Separator
		if sep == "" {
			sep = " "
		}
		var b strings.Builder
		for i, v := range values {
			if i > 0 {
				b.WriteString(sep)
			}
			lex, _ := v.LiteralLexical()
			b.WriteString(lex.String())
		}
		return term.Literal(env.Dict.Intern(b.String())), nil
	default:
		return term.Term{}, ErrUnsupported
	}
}
