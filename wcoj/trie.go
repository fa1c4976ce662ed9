package wcoj

import (
	"context"
	"sort"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
)

// ScanFunc matches store.QuadStore.Scan's signature. wcoj depends only on
// this function type rather than the concrete store package so it can be
// unit-tested against a fake backing relation without a real QuadStore.
type ScanFunc func(ctx context.Context, s, p, o, g term.Term) ([]term.Quad, error)

// Trie is a logical per-pattern trie: it has no materialized nodes of
// its own, realizing each level by re-issuing a store scan with the
// variables bound so far substituted in.
type Trie struct {
	pattern *sparql.TriplePattern
	vars    []string
}

func newTrie(p *sparql.TriplePattern) *Trie {
	return &Trie{pattern: p, vars: patternVars(p)}
}

func (t *Trie) mentions(v string) bool {
	for _, x := range t.vars {
		if x == v {
			return true
		}
	}
	return false
}

// valuesAt returns the sorted, de-duplicated candidates v may take given
// the bindings already fixed in partial, scanning only the positions of
// t.pattern that remain free.
func (t *Trie) valuesAt(ctx context.Context, scan ScanFunc, v string, partial map[string]term.Term) ([]term.Term, error) {
	s, p, o, g := substitute(t.pattern, partial)
	quads, err := scan(ctx, s, p, o, g)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(quads))
	out := make([]term.Term, 0, len(quads))
	for _, q := range quads {
		val, ok := valueForVar(t.pattern, v, q)
		if !ok {
			continue
		}
		key := val.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, val)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func patternVars(p *sparql.TriplePattern) []string {
	seen := map[string]bool{}
	var out []string
	add := func(t term.Term) {
		name, ok := t.VariableName()
		if !ok {
			return
		}
		n := name.String()
		if seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
	}
	add(p.Subject)
	add(p.Predicate)
	add(p.Object)
	add(p.Graph)
	return out
}

// substitute builds the four scan arguments for p given the bindings
// fixed so far: bound variables become their bound term, unbound
// variables become the zero Term (the store.Scan wildcard), and
// non-variable pattern terms pass through unchanged (a concrete pattern
// term is already the most specific scan constraint possible).
func substitute(p *sparql.TriplePattern, partial map[string]term.Term) (s, pr, o, g term.Term) {
	return resolve(p.Subject, partial), resolve(p.Predicate, partial), resolve(p.Object, partial), resolve(p.Graph, partial)
}

func resolve(t term.Term, partial map[string]term.Term) term.Term {
	name, ok := t.VariableName()
	if !ok {
		return t
	}
	if bound, ok := partial[name.String()]; ok {
		return bound
	}
	return term.Term{}
}

// valueForVar extracts the value bound to v in q according to p's
// pattern shape, reporting false if p does not mention v at all (a Graph
// variable on a default-graph quad yields the zero Term and true).
func valueForVar(p *sparql.TriplePattern, v string, q term.Quad) (term.Term, bool) {
	if name, ok := p.Subject.VariableName(); ok && name.String() == v {
		return q.Subject, true
	}
	if name, ok := p.Predicate.VariableName(); ok && name.String() == v {
		return q.Predicate, true
	}
	if name, ok := p.Object.VariableName(); ok && name.String() == v {
		return q.Object, true
	}
	if name, ok := p.Graph.VariableName(); ok && name.String() == v {
		return q.Graph, true
	}
	return term.Term{}, false
}
