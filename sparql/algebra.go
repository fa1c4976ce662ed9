// Package sparql implements the SPARQL 1.1 query language front end: a
// lexer and recursive-descent parser producing an Algebra tree, plus a
// fixed-point optimizer. The exec package compiles an Algebra tree to a
// pull-based Iterator; sparql itself never touches the store.
package sparql

import "github.com/rdfgraph/engine/term"

// Algebra is the common interface of every SPARQL algebra node.
type Algebra interface {
	algebraNode()
}

// TriplePattern is a single (s, p, o) pattern; any position may hold a
// term.Variable. Graph restricts the pattern to one named graph
// (term.Variable for "GRAPH ?g", a concrete IRI for "GRAPH <iri>", or the
// zero Term for the default graph / no GRAPH clause).
type TriplePattern struct {
	Subject, Predicate, Object, Graph term.Term
}

func (*TriplePattern) algebraNode() {}

// Bgp is a basic graph pattern: a conjunction of triple patterns
// evaluated together, a candidate for wcoj.Join delegation.
type Bgp struct {
	Patterns []*TriplePattern
}

func (*Bgp) algebraNode() {}

// Join is the pairwise natural join of two sub-plans (used for joining
// across { } group boundaries; a Bgp below the WCOJ threshold is joined
// pattern by pattern inside the executor without a Join node).
type Join struct{ Left, Right Algebra }

func (*Join) algebraNode() {}

// LeftJoin implements OPTIONAL: every Left row appears at least once,
// extended with Right's bindings when Expr (if non-nil) holds.
type LeftJoin struct {
	Left, Right Algebra
	Expr        *Expr
}

func (*LeftJoin) algebraNode() {}

// Union evaluates both branches and concatenates their results.
type Union struct{ Left, Right Algebra }

func (*Union) algebraNode() {}

// Filter restricts Input to rows where Expr evaluates to an effective
// true boolean value.
type Filter struct {
	Input Algebra
	Expr  *Expr
}

func (*Filter) algebraNode() {}

// Extend implements BIND: adds a new binding for Var computed from Expr.
type Extend struct {
	Input Algebra
	Var   string
	Expr  *Expr
}

func (*Extend) algebraNode() {}

// Project keeps only the named variables in the output rows.
type Project struct {
	Input Algebra
	Vars  []string
}

func (*Project) algebraNode() {}

// Distinct/Reduced drop exact or heuristic duplicate rows.
type Distinct struct{ Input Algebra }

func (*Distinct) algebraNode() {}

type Reduced struct{ Input Algebra }

func (*Reduced) algebraNode() {}

// OrderCondition is one ORDER BY key.
type OrderCondition struct {
	Expr       *Expr
	Descending bool
}

type OrderBy struct {
	Input      Algebra
	Conditions []OrderCondition
}

func (*OrderBy) algebraNode() {}

// Slice implements LIMIT/OFFSET. Negative Limit means "no limit".
type Slice struct {
	Input       Algebra
	Offset      int64
	Limit       int64
	HasLimit    bool
	HasOffset   bool
}

func (*Slice) algebraNode() {}

// PathOp enumerates the SPARQL 1.1 property-path operators.
type PathOp uint8

const (
	PathIRI PathOp = iota
	PathInverse
	PathSeq
	PathAlt
	PathZeroOrMore
	PathOneOrMore
	PathZeroOrOne
	PathNegated
)

// Path is a property path expression between Subject and Object, e.g.
// foaf:knows+ or ^rdf:type|rdfs:subClassOf.
type Path struct {
	Op                 PathOp
	IRI                term.Term // PathIRI, PathNegated (single predicate form)
	Sub                *Path     // PathInverse, PathZeroOrMore, PathOneOrMore, PathZeroOrOne
	Left, Right        *Path     // PathSeq, PathAlt
	Subject, Object    term.Term
	Graph              term.Term
}

func (*Path) algebraNode() {}

// AggKind enumerates the SPARQL aggregate functions.
type AggKind uint8

const (
	AggCount AggKind = iota
	AggSum
	AggAvg
	AggMin
	AggMax
	AggSample
	AggGroupConcat
)

// Aggregate is one SELECT-clause aggregate expression bound to OutVar.
type Aggregate struct {
	Kind      AggKind
	Expr      *Expr // nil for COUNT(*)
	Distinct  bool
	Separator string // GROUP_CONCAT only
	OutVar    string
}

// Group implements GROUP BY with aggregate projection.
type Group struct {
	Input      Algebra
	By         []*Expr
	Aggregates []Aggregate
}

func (*Group) algebraNode() {}

// QueryForm distinguishes the supported SPARQL query forms (DESCRIBE is
// deliberately not implemented; see DESIGN.md).
type QueryForm uint8

const (
	FormSelect QueryForm = iota
	FormAsk
	FormConstruct
)

// Query is the parsed top-level SPARQL query: a form, its algebra body,
// and (for SELECT) the projected variables or `*`.
type Query struct {
	Form           QueryForm
	Vars           []string // SELECT projection; empty+SelectStar means "*"
	SelectStar     bool
	ConstructTmpl  []*TriplePattern
	Where          Algebra
	Prefixes       map[string]string
}
