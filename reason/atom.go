package reason

import (
	"context"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/term"
)

// Atom is a rule premise or head: a triple pattern matched across every
// graph in the store. Any of Subject/Predicate/Object may hold a
// term.Variable; unlike sparql.TriplePattern, an Atom never carries a
// graph slot — the reasoner entails over the merged, graph-agnostic view
// of the store and always asserts derived quads into the default graph
// (see DESIGN.md's Open Question resolution for why named-graph scoping
// is out of scope for entailment).
type Atom struct {
	Subject, Predicate, Object term.Term
}

// binding is the reasoner's own partial variable-to-term map, kept
// independent of package exec's Binding so reason never imports the
// executor — the two packages solve the same small join problem
// (SPARQL bindings vs. rule-premise bindings) but are otherwise
// unrelated consumers of store.QuadStore.
type binding map[string]term.Term

func (b binding) clone() binding {
	out := make(binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// substitute resolves t against b: a bound variable returns its value, an
// unbound variable returns the zero Term (the wildcard the store's Scan
// matches anything against), and a concrete term is returned as-is.
func substitute(b binding, t term.Term) term.Term {
	if name, ok := t.VariableName(); ok {
		if v, ok := b[name.String()]; ok {
			return v
		}
		return term.Term{}
	}
	return t
}

// matchAtom evaluates a against qs, extending every row of in with the
// atom's new bindings. It substitutes already-bound variables from each
// input row before scanning, so chained atoms narrow rather than
// cross-join the full store.
func matchAtom(ctx context.Context, qs *store.QuadStore, a Atom, in []binding) ([]binding, error) {
	var out []binding
	for _, row := range in {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}
		s, sVar := wildcard(substitute(row, a.Subject), a.Subject)
		p, pVar := wildcard(substitute(row, a.Predicate), a.Predicate)
		o, oVar := wildcard(substitute(row, a.Object), a.Object)

		quads, err := qs.Scan(ctx, s, p, o, term.Term{})
		if err != nil {
			return nil, err
		}
		for _, q := range quads {
			next := row.clone()
			if bindOK(next, sVar, q.Subject) && bindOK(next, pVar, q.Predicate) && bindOK(next, oVar, q.Object) {
				out = append(out, next)
			}
		}
	}
	return out, nil
}

// wildcard returns the term to scan with (the zero Term if pattern is an
// unbound variable) and the variable name to bind on a match, mirroring
// exec.wildcard's role for package exec's own pattern scans.
func wildcard(resolved, pattern term.Term) (term.Term, string) {
	if name, ok := pattern.VariableName(); ok {
		if resolved.Zero() {
			return term.Term{}, name.String()
		}
		return resolved, ""
	}
	return pattern, ""
}

func bindOK(b binding, name string, val term.Term) bool {
	if name == "" {
		return true
	}
	if existing, ok := b[name]; ok {
		return existing.Equal(val)
	}
	b[name] = val
	return true
}

// instantiate builds the concrete quad a rule's Head produces under row,
// returning false if any of the head's variables is unbound (a
// malformed rule — every head variable must also appear in a premise).
func instantiate(head Atom, row binding) (term.Quad, bool) {
	s, ok := resolve(row, head.Subject)
	if !ok {
		return term.Quad{}, false
	}
	p, ok := resolve(row, head.Predicate)
	if !ok {
		return term.Quad{}, false
	}
	o, ok := resolve(row, head.Object)
	if !ok {
		return term.Quad{}, false
	}
	return term.Quad{Subject: s, Predicate: p, Object: o}, true
}

func resolve(row binding, t term.Term) (term.Term, bool) {
	if name, ok := t.VariableName(); ok {
		v, ok := row[name.String()]
		return v, ok
	}
	return t, true
}

// atomVars returns the set of variable names a references.
func atomVars(a Atom) map[string]bool {
	out := map[string]bool{}
	for _, t := range []term.Term{a.Subject, a.Predicate, a.Object} {
		if name, ok := t.VariableName(); ok {
			out[name.String()] = true
		}
	}
	return out
}
