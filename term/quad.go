package term

// Quad is a Triple plus an optional named-graph term. A zero-value Graph
// denotes the default graph.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

// NewQuad builds a Quad from a validated Triple and an optional graph
// term (IRI or blank node; pass the zero Term for the default graph).
func NewQuad(t Triple, graph Term) Quad {
	return Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object, Graph: graph}
}

// Triple extracts the triple portion of the quad, discarding the graph.
func (q Quad) Triple() Triple {
	return Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object}
}

// InDefaultGraph reports whether q carries no named graph.
func (q Quad) InDefaultGraph() bool { return q.Graph.Zero() }

// Matches reports whether q satisfies a pattern; a zero Term in any slot,
// including graph, is a wildcard.
func (q Quad) Matches(s, p, o, g Term) bool {
	if !MatchValue(s, q.Subject) || !MatchValue(p, q.Predicate) || !MatchValue(o, q.Object) {
		return false
	}
	if g.Zero() {
		return true
	}
	return g.Equal(q.Graph)
}

// Equal reports structural equality of all four positions.
func (q Quad) Equal(o Quad) bool {
	return q.Subject.Equal(o.Subject) && q.Predicate.Equal(o.Predicate) &&
		q.Object.Equal(o.Object) && q.Graph.Equal(o.Graph)
}

// Direction enumerates the four quad positions, used throughout index
// and pattern code.
type Direction byte

const (
	Any Direction = iota
	Subject
	Predicate
	Object
	Graph
)

func (d Direction) String() string {
	switch d {
	case Subject:
		return "subject"
	case Predicate:
		return "predicate"
	case Object:
		return "object"
	case Graph:
		return "graph"
	default:
		return "any"
	}
}

// Get returns the term at the given position.
func (q Quad) Get(d Direction) Term {
	switch d {
	case Subject:
		return q.Subject
	case Predicate:
		return q.Predicate
	case Object:
		return q.Object
	case Graph:
		return q.Graph
	default:
		return Term{}
	}
}

// Set assigns the term at the given position.
func (q *Quad) Set(d Direction, t Term) {
	switch d {
	case Subject:
		q.Subject = t
	case Predicate:
		q.Predicate = t
	case Object:
		q.Object = t
	case Graph:
		q.Graph = t
	}
}
