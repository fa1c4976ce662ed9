package exec

import "github.com/rdfgraph/engine/term"

// Binding is one solution row: a partial function from variable name to
// bound term.Term. Unlike term.Quad's positional fields, a Binding's
// shape varies per query, so it's a map keyed by name rather than a
// fixed tuple struct.
type Binding map[string]term.Term

// Clone returns an independent copy of b.
func (b Binding) Clone() Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Get returns the term bound to name, or the zero Term and false if name
// is unbound in b.
func (b Binding) Get(name string) (term.Term, bool) {
	v, ok := b[name]
	return v, ok
}

// Compatible reports whether b and o agree on every variable they share
// (SPARQL's join condition): shared variables must be bound to equal
// terms, and variables present in only one of the two never conflict.
func (b Binding) Compatible(o Binding) bool {
	for k, v := range b {
		if ov, ok := o[k]; ok && !ov.Equal(v) {
			return false
		}
	}
	return true
}

// Merge returns a new Binding holding every variable from both b and o,
// assuming the two are already known Compatible.
func (b Binding) Merge(o Binding) Binding {
	out := make(Binding, len(b)+len(o))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// bindVar attempts to add name=val to b, returning false if name is
// already bound to a different term (the repeated-variable-in-one-
// pattern case, e.g. "?x ?p ?x", where the same row must agree with
// itself before it's a valid solution).
func bindVar(b Binding, name string, val term.Term) bool {
	if existing, ok := b[name]; ok {
		return existing.Equal(val)
	}
	b[name] = val
	return true
}
