package exec

import (
	"context"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
)

// pathRelation is a materialized binary relation between path endpoints:
// out[sKey] holds every reachable oKey->term pair from the node keyed by
// sKey, and nodes maps every key (subject or object side) back to its
// term.Term so callers can bind a free endpoint variable. Every Path
// operator builds and combines these in memory, consistent with
// store.QuadStore.Scan's own non-streaming design.
type pathRelation struct {
	out   map[string]map[string]term.Term
	nodes map[string]term.Term
}

func newPathRelation() *pathRelation {
	return &pathRelation{out: map[string]map[string]term.Term{}, nodes: map[string]term.Term{}}
}

func (r *pathRelation) addEdge(s, o term.Term) {
	sk, ok := s.String(), o.String()
	if r.out[sk] == nil {
		r.out[sk] = map[string]term.Term{}
	}
	r.out[sk][ok] = o
	r.nodes[sk] = s
	r.nodes[ok] = o
}

func compilePath(ctx context.Context, env *Env, n *sparql.Path) (Iterator, error) {
	rel, err := evalPath(ctx, env, n, n.Graph)
	if err != nil {
		return nil, err
	}

	subjVar, subjIsVar := n.Subject.VariableName()
	objVar, objIsVar := n.Object.VariableName()

	var rows []Binding
	switch {
	case !subjIsVar && !objIsVar:
		if outs, ok := rel.out[n.Subject.String()]; ok {
			if _, found := outs[n.Object.String()]; found {
				rows = append(rows, Binding{})
			}
		}
	case !subjIsVar && objIsVar:
		for _, oTerm := range rel.out[n.Subject.String()] {
			rows = append(rows, Binding{objVar.String(): oTerm})
		}
	case subjIsVar && !objIsVar:
		target := n.Object.String()
		for sk, outs := range rel.out {
			if _, found := outs[target]; found {
				rows = append(rows, Binding{subjVar.String(): rel.nodes[sk]})
			}
		}
	default:
		for sk, outs := range rel.out {
			sTerm := rel.nodes[sk]
			for _, oTerm := range outs {
				rows = append(rows, Binding{subjVar.String(): sTerm, objVar.String(): oTerm})
			}
		}
	}
	return newSliceIterator(rows), nil
}

// evalPath recursively evaluates p into its full (subject, object)
// relation over graph, the building block compilePath slices down to
// whichever endpoint(s) are actually free variables.
func evalPath(ctx context.Context, env *Env, p *sparql.Path, graph term.Term) (*pathRelation, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}
	switch p.Op {
	case sparql.PathIRI:
		return scanEdgeRelation(ctx, env, p.IRI, graph, false)
	case sparql.PathNegated:
		return scanEdgeRelation(ctx, env, p.IRI, graph, true)
	case sparql.PathInverse:
		sub, err := evalPath(ctx, env, p.Sub, graph)
		if err != nil {
			return nil, err
		}
		return invertRelation(sub), nil
	case sparql.PathSeq:
		left, err := evalPath(ctx, env, p.Left, graph)
		if err != nil {
			return nil, err
		}
		right, err := evalPath(ctx, env, p.Right, graph)
		if err != nil {
			return nil, err
		}
		return composeRelation(left, right), nil
	case sparql.PathAlt:
		left, err := evalPath(ctx, env, p.Left, graph)
		if err != nil {
			return nil, err
		}
		right, err := evalPath(ctx, env, p.Right, graph)
		if err != nil {
			return nil, err
		}
		return unionRelation(left, right), nil
	case sparql.PathZeroOrMore:
		sub, err := evalPath(ctx, env, p.Sub, graph)
		if err != nil {
			return nil, err
		}
		return closureRelation(sub, true), nil
	case sparql.PathOneOrMore:
		sub, err := evalPath(ctx, env, p.Sub, graph)
		if err != nil {
			return nil, err
		}
		return closureRelation(sub, false), nil
	case sparql.PathZeroOrOne:
		sub, err := evalPath(ctx, env, p.Sub, graph)
		if err != nil {
			return nil, err
		}
		rel := unionRelation(sub, newPathRelation())
		for _, t := range sub.nodes {
			rel.addEdge(t, t)
		}
		return rel, nil
	default:
		return nil, ErrUnsupported
	}
}

// scanEdgeRelation builds the base relation for a single predicate IRI:
// every (subject, object) pair of a matching quad. negate builds the
// complement over every predicate seen in graph instead (the single-IRI
// "negated property set" form of the property-path grammar).
func scanEdgeRelation(ctx context.Context, env *Env, iri term.Term, graph term.Term, negate bool) (*pathRelation, error) {
	rel := newPathRelation()
	if !negate {
		quads, err := env.Store.Scan(ctx, term.Term{}, iri, term.Term{}, graph)
		if err != nil {
			return nil, err
		}
		for _, q := range quads {
			rel.addEdge(q.Subject, q.Object)
		}
		return rel, nil
	}
	quads, err := env.Store.Scan(ctx, term.Term{}, term.Term{}, term.Term{}, graph)
	if err != nil {
		return nil, err
	}
	for _, q := range quads {
		if q.Predicate.Equal(iri) {
			continue
		}
		rel.addEdge(q.Subject, q.Object)
	}
	return rel, nil
}

func invertRelation(sub *pathRelation) *pathRelation {
	rel := newPathRelation()
	for sk, outs := range sub.out {
		sTerm := sub.nodes[sk]
		for _, oTerm := range outs {
			rel.addEdge(oTerm, sTerm)
		}
	}
	return rel
}

func composeRelation(left, right *pathRelation) *pathRelation {
	rel := newPathRelation()
	for sk, mids := range left.out {
		sTerm := left.nodes[sk]
		for mk := range mids {
			rightOuts, ok := right.out[mk]
			if !ok {
				continue
			}
			for _, oTerm := range rightOuts {
				rel.addEdge(sTerm, oTerm)
			}
		}
	}
	return rel
}

func unionRelation(left, right *pathRelation) *pathRelation {
	rel := newPathRelation()
	for sk, outs := range left.out {
		sTerm := left.nodes[sk]
		for _, oTerm := range outs {
			rel.addEdge(sTerm, oTerm)
		}
	}
	for sk, outs := range right.out {
		sTerm := right.nodes[sk]
		for _, oTerm := range outs {
			rel.addEdge(sTerm, oTerm)
		}
	}
	return rel
}

// closureRelation computes the transitive (includeZero: reflexive-
// transitive) closure of sub by BFS from every node sub mentions — a
// bounded graph-reachability search for property-path `*`/`+`, realized
// here over the already-materialized adjacency rather than a live store
// walk.
func closureRelation(sub *pathRelation, includeZero bool) *pathRelation {
	rel := newPathRelation()
	for sk, sTerm := range sub.nodes {
		visited := map[string]term.Term{}
		visitedSet := map[string]bool{sk: true}
		queue := []string{sk}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for ok, oTerm := range sub.out[cur] {
				if visitedSet[ok] {
					continue
				}
				visitedSet[ok] = true
				visited[ok] = oTerm
				queue = append(queue, ok)
			}
		}
		if includeZero {
			visited[sk] = sTerm
		}
		for _, oTerm := range visited {
			rel.addEdge(sTerm, oTerm)
		}
	}
	return rel
}
