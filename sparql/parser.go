package sparql

import (
	"fmt"

	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/rdf"
	"github.com/rdfgraph/engine/voc/xsd"
)

// parser is a hand-rolled recursive-descent, grammar-driven SPARQL
// parser over the lexer's token stream. One token of lookahead is
// buffered in tok.
type parser struct {
	lex      *lexer
	tok      Token
	err      error
	dict     *term.Dictionary
	prefixes map[string]string
	base     string
	blankSeq uint64
}

// Parse compiles SPARQL query text into a Query, interning all IRI and
// literal terms it encounters into dict.
func Parse(query string, dict *term.Dictionary) (*Query, error) {
	p := &parser{lex: newLexer(query), dict: dict, prefixes: make(map[string]string)}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	q, err := p.parseQueryBody()
	if err != nil {
		return nil, err
	}
	q.Prefixes = p.prefixes
	return q, nil
}

func (p *parser) next() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("sparql: %d:%d: %s", p.tok.Line, p.tok.Col, fmt.Sprintf(format, args...))
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.Kind == TokKeyword && p.tok.Text == kw
}

func (p *parser) isPunct(s string) bool {
	return p.tok.Kind == TokPunct && p.tok.Text == s
}

func (p *parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return p.errf("expected %q, got %q", s, p.tok.Text)
	}
	return p.next()
}

func (p *parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.errf("expected %s", kw)
	}
	return p.next()
}

func (p *parser) parsePrologue() error {
	for {
		switch {
		case p.isKeyword("PREFIX"):
			if err := p.next(); err != nil {
				return err
			}
			if p.tok.Kind != TokPrefixedName || p.tok.Local != "" {
				return p.errf("expected prefix label")
			}
			prefix := p.tok.Prefix
			if err := p.next(); err != nil {
				return err
			}
			if p.tok.Kind != TokIRIRef {
				return p.errf("expected IRI after PREFIX")
			}
			p.prefixes[prefix] = p.tok.Text
			if err := p.next(); err != nil {
				return err
			}
		case p.isKeyword("BASE"):
			if err := p.next(); err != nil {
				return err
			}
			if p.tok.Kind != TokIRIRef {
				return p.errf("expected IRI after BASE")
			}
			p.base = p.tok.Text
			if err := p.next(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *parser) parseQueryBody() (*Query, error) {
	switch {
	case p.isKeyword("SELECT"):
		return p.parseSelect()
	case p.isKeyword("ASK"):
		return p.parseAsk()
	case p.isKeyword("CONSTRUCT"):
		return p.parseConstruct()
	default:
		return nil, p.errf("expected SELECT, ASK, or CONSTRUCT")
	}
}

func (p *parser) parseSelect() (*Query, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	q := &Query{Form: FormSelect}
	if p.isKeyword("DISTINCT") {
		q.Vars = append(q.Vars, "__distinct__")
		if err := p.next(); err != nil {
			return nil, err
		}
	} else if p.isKeyword("REDUCED") {
		q.Vars = append(q.Vars, "__reduced__")
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	// Distinguish the marker we pushed above from real projected vars.
	modifier := ""
	if len(q.Vars) == 1 {
		modifier = q.Vars[0]
		q.Vars = nil
	}

	var pendingExtends []Extend
	var aggregates []Aggregate
	if p.isPunct("*") {
		q.SelectStar = true
		if err := p.next(); err != nil {
			return nil, err
		}
	} else {
		for p.tok.Kind == TokVar || p.isPunct("(") {
			if p.tok.Kind == TokVar {
				q.Vars = append(q.Vars, p.tok.Text)
				if err := p.next(); err != nil {
					return nil, err
				}
				continue
			}
			if err := p.next(); err != nil { // '('
				return nil, err
			}
			agg, isAgg, err := p.tryParseAggregate()
			if err != nil {
				return nil, err
			}
			var v string
			if isAgg {
				if err := p.expectKeyword("AS"); err != nil {
					return nil, err
				}
				if p.tok.Kind != TokVar {
					return nil, p.errf("expected variable after AS")
				}
				v = p.tok.Text
				if err := p.next(); err != nil {
					return nil, err
				}
				agg.OutVar = v
				aggregates = append(aggregates, agg)
			} else {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				if err := p.expectKeyword("AS"); err != nil {
					return nil, err
				}
				if p.tok.Kind != TokVar {
					return nil, p.errf("expected variable after AS")
				}
				v = p.tok.Text
				if err := p.next(); err != nil {
					return nil, err
				}
				pendingExtends = append(pendingExtends, Extend{Var: v, Expr: e})
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			q.Vars = append(q.Vars, v)
		}
	}

	where, err := p.parseWhereClause()
	if err != nil {
		return nil, err
	}
	for _, ext := range pendingExtends {
		where = &Extend{Input: where, Var: ext.Var, Expr: ext.Expr}
	}
	body, err := p.parseSolutionModifiers(where, aggregates)
	if err != nil {
		return nil, err
	}
	if !q.SelectStar {
		body = &Project{Input: body, Vars: q.Vars}
	}
	switch modifier {
	case "__distinct__":
		body = &Distinct{Input: body}
	case "__reduced__":
		body = &Reduced{Input: body}
	}
	q.Where = body
	return q, nil
}

var aggregateNames = map[string]AggKind{
	"COUNT": AggCount, "SUM": AggSum, "AVG": AggAvg, "MIN": AggMin,
	"MAX": AggMax, "SAMPLE": AggSample, "GROUP_CONCAT": AggGroupConcat,
}

// tryParseAggregate attempts to parse an aggregate call immediately
// after a just-consumed '(' in SELECT-list position; the parser is
// positioned just past '(' on entry regardless of outcome (on a
// non-aggregate it has consumed nothing further, so parseExpr can run
// from the same identifier token).
func (p *parser) tryParseAggregate() (Aggregate, bool, error) {
	if p.tok.Kind != TokIdent {
		return Aggregate{}, false, nil
	}
	kind, ok := aggregateNames[p.tok.Text]
	if !ok {
		return Aggregate{}, false, nil
	}
	if err := p.next(); err != nil {
		return Aggregate{}, false, err
	}
	if err := p.expectPunct("("); err != nil {
		return Aggregate{}, false, err
	}
	agg := Aggregate{Kind: kind}
	if p.isKeyword("DISTINCT") {
		agg.Distinct = true
		if err := p.next(); err != nil {
			return Aggregate{}, false, err
		}
	}
	if kind == AggCount && p.isPunct("*") {
		if err := p.next(); err != nil {
			return Aggregate{}, false, err
		}
	} else {
		e, err := p.parseExpr()
		if err != nil {
			return Aggregate{}, false, err
		}
		agg.Expr = e
	}
	if kind == AggGroupConcat && p.isPunct(";") {
		if err := p.next(); err != nil {
			return Aggregate{}, false, err
		}
		if p.tok.Kind == TokIdent && p.tok.Text == "SEPARATOR" {
			if err := p.next(); err != nil {
				return Aggregate{}, false, err
			}
			if err := p.expectPunct("="); err != nil {
				return Aggregate{}, false, err
			}
			if p.tok.Kind == TokString {
				agg.Separator = p.tok.Text
				if err := p.next(); err != nil {
					return Aggregate{}, false, err
				}
			}
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return Aggregate{}, false, err
	}
	return agg, true, nil
}

func (p *parser) parseAsk() (*Query, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	where, err := p.parseWhereClause()
	if err != nil {
		return nil, err
	}
	return &Query{Form: FormAsk, Where: where}, nil
}

func (p *parser) parseConstruct() (*Query, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	tmpl, err := p.parseTriplesTemplateBlock()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhereClause()
	if err != nil {
		return nil, err
	}
	return &Query{Form: FormConstruct, ConstructTmpl: tmpl, Where: where}, nil
}

func (p *parser) parseTriplesTemplateBlock() ([]*TriplePattern, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var out []*TriplePattern
	g := &groupBuilder{p: p}
	for !p.isPunct("}") {
		pats, _, err := g.parseTriplesSameSubject(term.Term{})
		if err != nil {
			return nil, err
		}
		out = append(out, pats...)
		if p.isPunct(".") {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return out, p.expectPunct("}")
}

func (p *parser) parseWhereClause() (Algebra, error) {
	if p.isKeyword("WHERE") {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return p.parseGroupGraphPattern()
}

func (p *parser) resolveIRI(prefix, local string) (string, error) {
	ns, ok := p.prefixes[prefix]
	if !ok {
		return "", p.errf("undefined prefix %q", prefix)
	}
	return ns + local, nil
}

// parseSolutionModifiers parses GROUP BY / HAVING / ORDER BY / LIMIT /
// OFFSET, wrapping body with the corresponding algebra nodes. aggregates
// discovered in the SELECT list during projection expansion are combined
// with any GROUP BY keys into a single Group node, so a query with both
// clauses (e.g. "SELECT ?x (COUNT(*) AS ?n) WHERE {...} GROUP BY ?x")
// produces one Group rather than two nested ones with HAVING/ORDER BY
// wrongly sandwiched between them.
func (p *parser) parseSolutionModifiers(body Algebra, aggregates []Aggregate) (Algebra, error) {
	var bys []*Expr
	hasGroupBy := false
	if p.isKeyword("GROUP") {
		hasGroupBy = true
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExprAtomOrBracketed()
			if err != nil {
				return nil, err
			}
			bys = append(bys, e)
			if p.tok.Kind != TokVar && !p.isPunct("(") {
				break
			}
		}
	}
	if hasGroupBy || len(aggregates) > 0 {
		body = &Group{Input: body, By: bys, Aggregates: aggregates}
	}
	if p.isKeyword("HAVING") {
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body = &Filter{Input: body, Expr: e}
	}
	if p.isKeyword("ORDER") {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		var conds []OrderCondition
		for p.tok.Kind == TokVar || p.isKeyword("ASC") || p.isKeyword("DESC") || p.isPunct("(") {
			desc := false
			if p.isKeyword("ASC") {
				if err := p.next(); err != nil {
					return nil, err
				}
			} else if p.isKeyword("DESC") {
				desc = true
				if err := p.next(); err != nil {
					return nil, err
				}
			}
			e, err := p.parseExprAtomOrBracketed()
			if err != nil {
				return nil, err
			}
			conds = append(conds, OrderCondition{Expr: e, Descending: desc})
		}
		body = &OrderBy{Input: body, Conditions: conds}
	}
	var slice Slice
	hasSlice := false
	if p.isKeyword("LIMIT") {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		slice.Limit, slice.HasLimit, hasSlice = n, true, true
	}
	if p.isKeyword("OFFSET") {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		slice.Offset, slice.HasOffset, hasSlice = n, true, true
	}
	if hasSlice {
		slice.Input = body
		body = &slice
	}
	return body, nil
}

func (p *parser) parseIntLiteral() (int64, error) {
	if p.tok.Kind != TokNumber {
		return 0, p.errf("expected integer")
	}
	var n int64
	_, err := fmt.Sscanf(p.tok.Text, "%d", &n)
	if err != nil {
		return 0, p.errf("invalid integer %q", p.tok.Text)
	}
	return n, p.next()
}

// parseExprAtomOrBracketed handles both "?var" and "(expr)" in ORDER
// BY / GROUP BY position.
func (p *parser) parseExprAtomOrBracketed() (*Expr, error) {
	if p.tok.Kind == TokVar {
		v := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		return VarRef(v), nil
	}
	return p.parseExpr()
}

// ---- Graph pattern groups ----

func (p *parser) parseGroupGraphPattern() (Algebra, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	g := &groupBuilder{p: p}
	body, err := g.build()
	if err != nil {
		return nil, err
	}
	return body, p.expectPunct("}")
}

// groupBuilder accumulates one GroupGraphPatternSub: triple patterns get
// folded into the running Bgp; other elements (OPTIONAL/UNION/GRAPH/
// BIND) join sequentially; FILTERs are collected and wrapped around the
// finished group, matching SPARQL's position-independent filter scope.
type groupBuilder struct {
	p       *parser
	acc     Algebra
	filters []*Expr
	pending []*TriplePattern
}

func (g *groupBuilder) flushPending() {
	if len(g.pending) == 0 {
		return
	}
	bgp := &Bgp{Patterns: g.pending}
	g.pending = nil
	g.join(bgp)
}

func (g *groupBuilder) join(a Algebra) {
	if g.acc == nil {
		g.acc = a
		return
	}
	g.acc = &Join{Left: g.acc, Right: a}
}

func (g *groupBuilder) build() (Algebra, error) {
	p := g.p
	for !p.isPunct("}") && p.tok.Kind != TokEOF {
		switch {
		case p.isKeyword("FILTER"):
			if err := p.next(); err != nil {
				return nil, err
			}
			e, err := p.parseConstraint()
			if err != nil {
				return nil, err
			}
			g.filters = append(g.filters, e)
		case p.isKeyword("OPTIONAL"):
			if err := p.next(); err != nil {
				return nil, err
			}
			g.flushPending()
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			if g.acc == nil {
				g.acc = inner
			} else {
				g.acc = &LeftJoin{Left: g.acc, Right: inner}
			}
		case p.isKeyword("GRAPH"):
			if err := p.next(); err != nil {
				return nil, err
			}
			g.flushPending()
			gTerm, err := p.parseVarOrTerm()
			if err != nil {
				return nil, err
			}
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			setGraphTerm(inner, gTerm)
			g.join(inner)
		case p.isKeyword("BIND"):
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.expectPunct("("); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectKeyword("AS"); err != nil {
				return nil, err
			}
			if p.tok.Kind != TokVar {
				return nil, p.errf("expected variable after AS")
			}
			v := p.tok.Text
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			g.flushPending()
			g.acc = &Extend{Input: g.acc, Var: v, Expr: e}
		case p.isPunct("{"):
			g.flushPending()
			first, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			branch := first
			for p.isKeyword("UNION") {
				if err := p.next(); err != nil {
					return nil, err
				}
				next, err := p.parseGroupGraphPattern()
				if err != nil {
					return nil, err
				}
				branch = &Union{Left: branch, Right: next}
			}
			g.join(branch)
		default:
			terminated, err := g.parseTriplesSameSubjectPath()
			if err != nil {
				return nil, err
			}
			if !terminated && !p.isPunct(".") {
				// no trailing '.' and nothing else recognizable: stop to
				// avoid an infinite loop on unexpected input.
				if !p.isPunct("}") {
					return nil, p.errf("expected '.' or '}' in graph pattern")
				}
			}
		}
		if p.isPunct(".") {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	g.flushPending()
	body := g.acc
	if body == nil {
		body = &Bgp{}
	}
	for _, f := range g.filters {
		body = &Filter{Input: body, Expr: f}
	}
	return body, nil
}

// setGraphTerm stamps gTerm onto every TriplePattern reachable under a,
// used by the GRAPH clause.
func setGraphTerm(a Algebra, gTerm term.Term) {
	switch n := a.(type) {
	case *TriplePattern:
		n.Graph = gTerm
	case *Bgp:
		for _, tp := range n.Patterns {
			tp.Graph = gTerm
		}
	case *Join:
		setGraphTerm(n.Left, gTerm)
		setGraphTerm(n.Right, gTerm)
	case *LeftJoin:
		setGraphTerm(n.Left, gTerm)
		setGraphTerm(n.Right, gTerm)
	case *Union:
		setGraphTerm(n.Left, gTerm)
		setGraphTerm(n.Right, gTerm)
	case *Filter:
		setGraphTerm(n.Input, gTerm)
	case *Extend:
		setGraphTerm(n.Input, gTerm)
	case *Path:
		n.Graph = gTerm
	}
}

// parseTriplesSameSubject parses one "subject verb objectlist (';'
// verb objectlist)*" production, possibly expanding into several
// TriplePattern results (predicate-object lists, blank node property
// lists, collections). If forcedSubject is non-zero it is used instead
// of reading a subject token (used for nested property lists).
func (g *groupBuilder) parseTriplesSameSubject(forcedSubject term.Term) ([]*TriplePattern, bool, error) {
	p := g.p
	var out []*TriplePattern
	subj := forcedSubject
	if subj.Zero() {
		s, extra, err := g.parseGraphNode()
		if err != nil {
			return nil, false, err
		}
		subj = s
		out = append(out, extra...)
	}
	for {
		pred, err := g.parseVerb()
		if err != nil {
			return nil, false, err
		}
		objs, extra, err := g.parseObjectList()
		if err != nil {
			return nil, false, err
		}
		out = append(out, extra...)
		for _, o := range objs {
			out = append(out, &TriplePattern{Subject: subj, Predicate: pred, Object: o})
		}
		if !p.isPunct(";") {
			break
		}
		if err := p.next(); err != nil {
			return nil, false, err
		}
		if p.isPunct(".") || p.isPunct("}") {
			break
		}
	}
	return out, p.isPunct("."), nil
}

// parseTriplesSameSubjectPath is parseTriplesSameSubject's WHERE-clause
// counterpart: predicates may be property-path expressions, not just
// plain terms. Plain-term predicates fold into g.pending exactly as
// before; a compound path predicate is stamped with its subject/object
// and joined into g.acc immediately (flushing any pending patterns
// first, to preserve left-to-right evaluation order).
func (g *groupBuilder) parseTriplesSameSubjectPath() (bool, error) {
	p := g.p
	subj, extra, err := g.parseGraphNode()
	if err != nil {
		return false, err
	}
	g.pending = append(g.pending, extra...)
	for {
		plainPred, path, err := g.parseVerbOrPath()
		if err != nil {
			return false, err
		}
		objs, objExtra, err := g.parseObjectList()
		if err != nil {
			return false, err
		}
		g.pending = append(g.pending, objExtra...)
		for _, o := range objs {
			if path == nil {
				g.pending = append(g.pending, &TriplePattern{Subject: subj, Predicate: plainPred, Object: o})
				continue
			}
			g.flushPending()
			stamped := *path
			stamped.Subject = subj
			stamped.Object = o
			g.join(&stamped)
		}
		if !p.isPunct(";") {
			break
		}
		if err := p.next(); err != nil {
			return false, err
		}
		if p.isPunct(".") || p.isPunct("}") {
			break
		}
	}
	return p.isPunct("."), nil
}

func (g *groupBuilder) parseVerb() (term.Term, error) {
	p := g.p
	if p.tok.Kind == TokA {
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.IRI(p.dict.Intern(rdf.Type)), nil
	}
	return p.parseVarOrTerm()
}

func (g *groupBuilder) parseObjectList() ([]term.Term, []*TriplePattern, error) {
	p := g.p
	var objs []term.Term
	var extra []*TriplePattern
	for {
		o, ex, err := g.parseGraphNode()
		if err != nil {
			return nil, nil, err
		}
		objs = append(objs, o)
		extra = append(extra, ex...)
		if !p.isPunct(",") {
			break
		}
		if err := p.next(); err != nil {
			return nil, nil, err
		}
	}
	return objs, extra, nil
}

// parseGraphNode parses one term in subject/object position: a plain
// VarOrTerm, a blank node property list "[ ... ]", or a collection
// "( ... )". Extra triples produced by nested structures are returned
// alongside the term that stands in for them.
func (g *groupBuilder) parseGraphNode() (term.Term, []*TriplePattern, error) {
	p := g.p
	switch {
	case p.isPunct("["):
		if err := p.next(); err != nil {
			return term.Term{}, nil, err
		}
		p.blankSeq++
		blank := term.Blank(p.blankSeq)
		var extra []*TriplePattern
		if !p.isPunct("]") {
			pats, _, err := g.parseTriplesSameSubject(blank)
			if err != nil {
				return term.Term{}, nil, err
			}
			extra = pats
		}
		if err := p.expectPunct("]"); err != nil {
			return term.Term{}, nil, err
		}
		return blank, extra, nil
	case p.isPunct("("):
		if err := p.next(); err != nil {
			return term.Term{}, nil, err
		}
		var items []term.Term
		var extra []*TriplePattern
		for !p.isPunct(")") {
			item, ex, err := g.parseGraphNode()
			if err != nil {
				return term.Term{}, nil, err
			}
			items = append(items, item)
			extra = append(extra, ex...)
		}
		if err := p.next(); err != nil {
			return term.Term{}, nil, err
		}
		nilTerm := term.IRI(p.dict.Intern(rdf.Nil))
		head := nilTerm
		first := term.IRI(p.dict.Intern(rdf.First))
		rest := term.IRI(p.dict.Intern(rdf.Rest))
		for i := len(items) - 1; i >= 0; i-- {
			p.blankSeq++
			node := term.Blank(p.blankSeq)
			extra = append(extra,
				&TriplePattern{Subject: node, Predicate: first, Object: items[i]},
				&TriplePattern{Subject: node, Predicate: rest, Object: head})
			head = node
		}
		return head, extra, nil
	default:
		t, err := p.parseVarOrTerm()
		return t, nil, err
	}
}

// parseVarOrTerm parses a SPARQL term: ?var, $var, <iri>, prefixed
// name, literal, or boolean.
func (p *parser) parseVarOrTerm() (term.Term, error) {
	switch p.tok.Kind {
	case TokVar:
		v := p.tok.Text
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.Variable(p.dict.Intern(v)), nil
	case TokIRIRef:
		iri := p.tok.Text
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.IRI(p.dict.Intern(iri)), nil
	case TokPrefixedName:
		iri, err := p.resolveIRI(p.tok.Prefix, p.tok.Local)
		if err != nil {
			return term.Term{}, err
		}
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.IRI(p.dict.Intern(iri)), nil
	case TokString:
		lex := p.tok.Text
		lang := p.tok.Lang
		hasLang := p.tok.HasLang
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		if hasLang {
			return term.LiteralLang(p.dict.Intern(lex), p.dict.Intern(lang)), nil
		}
		return p.parseLiteralTail(lex)
	case TokNumber:
		return p.parseNumberLiteral()
	case TokBool:
		b := p.tok.Text
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.LiteralTyped(p.dict.Intern(b), p.dict.Intern(xsd.Boolean)), nil
	case TokA:
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		return term.IRI(p.dict.Intern(rdf.Type)), nil
	default:
		return term.Term{}, p.errf("unexpected token %q", p.tok.Text)
	}
}

func (p *parser) parseLiteralTail(lex string) (term.Term, error) {
	switch {
	case p.tok.Kind == TokPunct && p.tok.Text == "^^":
		if err := p.next(); err != nil {
			return term.Term{}, err
		}
		dt, err := p.parseVarOrTerm()
		if err != nil {
			return term.Term{}, err
		}
		dtRef, _ := dt.IRIValue()
		return term.LiteralTyped(p.dict.Intern(lex), dtRef), nil
	default:
		return term.Literal(p.dict.Intern(lex)), nil
	}
}

func (p *parser) parseNumberLiteral() (term.Term, error) {
	lex := p.tok.Text
	if err := p.next(); err != nil {
		return term.Term{}, err
	}
	dt := xsd.Integer
	hasDot, hasExp := false, false
	for i := 0; i < len(lex); i++ {
		if lex[i] == '.' {
			hasDot = true
		}
		if lex[i] == 'e' || lex[i] == 'E' {
			hasExp = true
		}
	}
	if hasExp {
		dt = xsd.Double
	} else if hasDot {
		dt = xsd.Decimal
	}
	return term.LiteralTyped(p.dict.Intern(lex), p.dict.Intern(dt)), nil
}
