package reason

import (
	"context"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/owl"
	"github.com/rdfgraph/engine/voc/rdf"
)

// listMembers walks an rdf:List starting at head via rdf:first/rdf:rest
// and returns its members in order, stopping at rdf:nil. A cyclic list
// (a node reached twice) ends the walk rather than looping forever; the
// members collected so far are returned with a nil error.
func listMembers(ctx context.Context, qs *store.QuadStore, dict *term.Dictionary, head term.Term) ([]term.Term, error) {
	rdfFirst := term.IRI(dict.Intern(rdf.First))
	rdfRest := term.IRI(dict.Intern(rdf.Rest))
	rdfNil := term.IRI(dict.Intern(rdf.Nil))

	var out []term.Term
	cur := head
	seen := map[term.Term]bool{}
	for !cur.Equal(rdfNil) {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		if seen[cur] {
			break // cyclic list; stop rather than loop forever
		}
		seen[cur] = true

		firsts, err := qs.Scan(ctx, cur, rdfFirst, term.Term{}, term.Term{})
		if err != nil {
			return nil, err
		}
		if len(firsts) == 0 {
			break
		}
		out = append(out, firsts[0].Object)

		rests, err := qs.Scan(ctx, cur, rdfRest, term.Term{}, term.Term{})
		if err != nil {
			return nil, err
		}
		if len(rests) == 0 {
			break
		}
		cur = rests[0].Object
	}
	return out, nil
}

// evaluateClassIntersection implements the OWL-2 RL cls-int1/cls-int2
// pair: given `c owl:intersectionOf (c1 ... cn)`, an instance of every
// ci is an instance of c, and an instance of c is an instance of every
// ci. The list has variable arity, so it cannot be expressed as one of
// package reason's fixed-Atom Rule values; it is walked directly here
// instead.
func evaluateClassIntersection(ctx context.Context, qs *store.QuadStore, dict *term.Dictionary) ([]term.Quad, error) {
	rdfType := term.IRI(dict.Intern(rdf.Type))
	intersectionOf := term.IRI(dict.Intern(owl.IntersectionOf))

	axioms, err := qs.Scan(ctx, term.Term{}, intersectionOf, term.Term{}, term.Term{})
	if err != nil {
		return nil, err
	}
	var out []term.Quad
	for _, ax := range axioms {
		members, err := listMembers(ctx, qs, dict, ax.Object)
		if err != nil || len(members) == 0 {
			continue
		}
		c := ax.Subject

		// cls-int1: intersect the instance sets of every member class.
		instSets := make([][]term.Quad, len(members))
		for i, ci := range members {
			insts, err := qs.Scan(ctx, term.Term{}, rdfType, ci, term.Term{})
			if err != nil {
				return nil, err
			}
			instSets[i] = insts
		}
		counts := map[term.Term]int{}
		for _, insts := range instSets {
			seen := map[term.Term]bool{}
			for _, q := range insts {
				if !seen[q.Subject] {
					seen[q.Subject] = true
					counts[q.Subject]++
				}
			}
		}
		for inst, n := range counts {
			if n == len(members) {
				out = append(out, term.Quad{Subject: inst, Predicate: rdfType, Object: c})
			}
		}

		// cls-int2: every instance of c is an instance of each member.
		cInsts, err := qs.Scan(ctx, term.Term{}, rdfType, c, term.Term{})
		if err != nil {
			return nil, err
		}
		for _, q := range cInsts {
			for _, ci := range members {
				out = append(out, term.Quad{Subject: q.Subject, Predicate: rdfType, Object: ci})
			}
		}
	}
	return out, nil
}

// evaluatePropertyChains implements prp-spo2: given `p
// owl:propertyChainAxiom (p1 ... pn)`, a chain x p1 y1 p2 y2 ... pn z
// entails (x p z). Like class intersection, the chain has variable
// arity and is walked directly rather than expressed as a Rule.
func evaluatePropertyChains(ctx context.Context, qs *store.QuadStore, dict *term.Dictionary) ([]term.Quad, error) {
	chainAxiom := term.IRI(dict.Intern(owl.PropertyChainAxiom))

	axioms, err := qs.Scan(ctx, term.Term{}, chainAxiom, term.Term{}, term.Term{})
	if err != nil {
		return nil, err
	}
	var out []term.Quad
	for _, ax := range axioms {
		chain, err := listMembers(ctx, qs, dict, ax.Object)
		if err != nil || len(chain) == 0 {
			continue
		}
		p := ax.Subject

		frontier, err := qs.Scan(ctx, term.Term{}, chain[0], term.Term{}, term.Term{})
		if err != nil {
			return nil, err
		}
		type pair struct{ start, end term.Term }
		var paths []pair
		for _, q := range frontier {
			paths = append(paths, pair{start: q.Subject, end: q.Object})
		}
		for _, link := range chain[1:] {
			var next []pair
			for _, pth := range paths {
				if err := ctx.Err(); err != nil {
					return nil, ErrCancelled
				}
				steps, err := qs.Scan(ctx, pth.end, link, term.Term{}, term.Term{})
				if err != nil {
					return nil, err
				}
				for _, q := range steps {
					next = append(next, pair{start: pth.start, end: q.Object})
				}
			}
			paths = next
		}
		for _, pth := range paths {
			out = append(out, term.Quad{Subject: pth.start, Predicate: p, Object: pth.end})
		}
	}
	return out, nil
}
