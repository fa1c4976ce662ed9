package exec

import (
	"context"
	"sort"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/wcoj"
)

// wcojMinPatterns and wcojMinSharedVars gate Bgp delegation to the
// worst-case-optimal joiner: a Bgp below this shape is cheaper to
// evaluate as a chain of pairwise hash joins than to pay Leapfrog's
// variable-ordering overhead for.
const (
	wcojMinPatterns   = 3
	wcojMinSharedVars = 2
)

// Env is the state threaded through every compileX call: the store to
// scan and the dictionary patterns were interned against.
type Env struct {
	Store *store.QuadStore
	Dict  *term.Dictionary

	// DistinctEstimate feeds wcoj.VariableOrder's selectivity tie-break.
	// Nil is valid (VariableOrder degrades to reference-count-then-
	// lexicographic ordering).
	DistinctEstimate wcoj.DistinctEstimator

	rnd *randSource
}

// Compile translates a as an Iterator against env. It is the single
// entry point sparql callers use; every compileX function below handles
// one Algebra concrete type and is otherwise unreachable from outside
// the package.
func Compile(ctx context.Context, env *Env, a sparql.Algebra) (Iterator, error) {
	switch n := a.(type) {
	case *sparql.TriplePattern:
		return compileBgp(ctx, env, &sparql.Bgp{Patterns: []*sparql.TriplePattern{n}})
	case *sparql.Bgp:
		return compileBgp(ctx, env, n)
	case *sparql.Join:
		return compileJoin(ctx, env, n)
	case *sparql.LeftJoin:
		return compileLeftJoin(ctx, env, n)
	case *sparql.Union:
		return compileUnion(ctx, env, n)
	case *sparql.Filter:
		return compileFilter(ctx, env, n)
	case *sparql.Extend:
		return compileExtend(ctx, env, n)
	case *sparql.Project:
		return compileProject(ctx, env, n)
	case *sparql.Distinct:
		return compileDistinct(ctx, env, n)
	case *sparql.Reduced:
		return compileReduced(ctx, env, n)
	case *sparql.OrderBy:
		return compileOrderBy(ctx, env, n)
	case *sparql.Slice:
		return compileSlice(ctx, env, n)
	case *sparql.Group:
		return compileGroup(ctx, env, n)
	case *sparql.Path:
		return compilePath(ctx, env, n)
	default:
		return nil, ErrUnsupported
	}
}

// scanPattern converts a single triple pattern's variables to the zero
// (wildcard) Term that store.QuadStore.Scan expects, issues the scan,
// then reconstructs a Binding per matching quad — term.MatchValue/
// Quad.Matches treat an unconverted Variable term as an ordinary
// kind-compared value rather than a wildcard, so this translation step
// is mandatory, not an optimization.
func scanPattern(ctx context.Context, env *Env, p *sparql.TriplePattern) ([]Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}
	s, sVar := wildcard(p.Subject)
	pr, prVar := wildcard(p.Predicate)
	o, oVar := wildcard(p.Object)
	g, gVar := wildcard(p.Graph)

	quads, err := env.Store.Scan(ctx, s, pr, o, g)
	if err != nil {
		return nil, err
	}

	rows := make([]Binding, 0, len(quads))
	for _, q := range quads {
		b := Binding{}
		ok := true
		if sVar != "" {
			ok = ok && bindVar(b, sVar, q.Subject)
		}
		if ok && prVar != "" {
			ok = ok && bindVar(b, prVar, q.Predicate)
		}
		if ok && oVar != "" {
			ok = ok && bindVar(b, oVar, q.Object)
		}
		if ok && gVar != "" {
			ok = ok && bindVar(b, gVar, q.Graph)
		}
		if ok {
			rows = append(rows, b)
		}
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
	}
	return rows, nil
}

// wildcard returns the Term to pass to store.Scan for t (itself if t is
// a concrete pattern term, the zero Term if t is a Variable) plus the
// variable name to bind on a match, or "" if t is not a variable.
func wildcard(t term.Term) (term.Term, string) {
	if name, ok := t.VariableName(); ok {
		return term.Term{}, name.String()
	}
	return t, ""
}

// compileBgp evaluates a conjunction of triple patterns. Patterns
// meeting the WCOJ shape threshold delegate to wcoj.Join; smaller or
// less-connected Bgps fold left with compileJoin's pairwise hash join,
// which is exactly what a two-pattern Bgp reduces to anyway.
func compileBgp(ctx context.Context, env *Env, n *sparql.Bgp) (Iterator, error) {
	if len(n.Patterns) == 0 {
		return newSliceIterator([]Binding{{}}), nil
	}
	if len(n.Patterns) >= wcojMinPatterns && sharedVarCount(n.Patterns) >= wcojMinSharedVars {
		rows, err := wcoj.Join(ctx, env.Store.Scan, n.Patterns, env.DistinctEstimate)
		if err != nil {
			if err == wcoj.ErrCancelled {
				return nil, ErrCancelled
			}
			return nil, err
		}
		out := make([]Binding, len(rows))
		for i, r := range rows {
			out[i] = Binding(r)
		}
		return newSliceIterator(out), nil
	}

	rows, err := scanPattern(ctx, env, n.Patterns[0])
	if err != nil {
		return nil, err
	}
	for _, p := range n.Patterns[1:] {
		next, err := scanPattern(ctx, env, p)
		if err != nil {
			return nil, err
		}
		rows = hashJoin(rows, next)
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
	}
	return newSliceIterator(rows), nil
}

// sharedVarCount counts how many distinct variables appear in two or
// more of patterns, the signal used to decide whether a Bgp has enough
// join structure for WCOJ to pay off.
func sharedVarCount(patterns []*sparql.TriplePattern) int {
	count := map[string]int{}
	for _, p := range patterns {
		seen := map[string]bool{}
		for _, t := range []term.Term{p.Subject, p.Predicate, p.Object, p.Graph} {
			name, ok := t.VariableName()
			if !ok || seen[name.String()] {
				continue
			}
			seen[name.String()] = true
			count[name.String()]++
		}
	}
	shared := 0
	for _, c := range count {
		if c >= 2 {
			shared++
		}
	}
	return shared
}

// sortedVarNames returns b's variable names in a deterministic order,
// used wherever two bindings' shared-key set needs to be iterated
// reproducibly (join keys, ORDER BY tie-breaks).
func sortedVarNames(b Binding) []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
