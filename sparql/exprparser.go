package sparql

import "github.com/rdfgraph/engine/term"

// parseConstraint parses a FILTER argument: either a bracketed
// expression or a BuiltInCall (REGEX, EXISTS, ...) directly.
func (p *parser) parseConstraint() (*Expr, error) {
	return p.parseExpr()
}

func (p *parser) parseExpr() (*Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (*Expr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isPunct("||") {
		if err := p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = Binary("||", l, r)
	}
	return l, nil
}

func (p *parser) parseAnd() (*Expr, error) {
	l, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.isPunct("&&") {
		if err := p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		l = Binary("&&", l, r)
	}
	return l, nil
}

var relOps = map[string]bool{"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) parseRelational() (*Expr, error) {
	l, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == TokPunct && relOps[p.tok.Text] {
		op := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return Binary(op, l, r), nil
	}
	if p.isKeyword("IN") {
		if err := p.next(); err != nil {
			return nil, err
		}
		args, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprBinary, Op: "in", Operands: append([]*Expr{l}, args...)}, nil
	}
	if p.isKeyword("NOT") {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("IN"); err != nil {
			return nil, err
		}
		args, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprBinary, Op: "not in", Operands: append([]*Expr{l}, args...)}, nil
	}
	return l, nil
}

func (p *parser) parseExprList() ([]*Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var out []*Expr
	if !p.isPunct(")") {
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			out = append(out, e)
			if !p.isPunct(",") {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return out, p.expectPunct(")")
}

func (p *parser) parseAdditive() (*Expr, error) {
	l, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isPunct("+") || p.isPunct("-") {
		op := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		l = Binary(op, l, r)
	}
	return l, nil
}

func (p *parser) parseMultiplicative() (*Expr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isPunct("*") || p.isPunct("/") {
		op := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = Binary(op, l, r)
	}
	return l, nil
}

func (p *parser) parseUnary() (*Expr, error) {
	switch {
	case p.isPunct("!"):
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return Unary("!", x), nil
	case p.isPunct("-"):
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return Unary("-", x), nil
	case p.isPunct("+"):
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parsePrimary()
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (*Expr, error) {
	switch {
	case p.isPunct("("):
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return e, p.expectPunct(")")
	case p.isKeyword("EXISTS"):
		if err := p.next(); err != nil {
			return nil, err
		}
		pat, err := p.parseGroupGraphPattern()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprExists, Pattern: pat}, nil
	case p.isKeyword("NOT"):
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("EXISTS"); err != nil {
			return nil, err
		}
		pat, err := p.parseGroupGraphPattern()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprNotExists, Pattern: pat}, nil
	case p.tok.Kind == TokIdent:
		return p.parseFunctionCall()
	case p.tok.Kind == TokVar:
		v := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		return VarRef(v), nil
	default:
		t, err := p.parseVarOrTerm()
		if err != nil {
			return nil, err
		}
		return Lit(t), nil
	}
}

// parseFunctionCall parses NAME '(' args ')', including the one-arg
// no-paren-comma BuiltInCalls that take an IRI argument (IRI()/URI()).
func (p *parser) parseFunctionCall() (*Expr, error) {
	name := p.tok.Text
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	distinct := false
	if p.isKeyword("DISTINCT") {
		distinct = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	var args []*Expr
	if !p.isPunct(")") {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.isPunct(",") {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	call := Call(name, args...)
	if distinct {
		call.Op = "distinct"
	}
	return call, nil
}

// ---- property paths ----

// parseVerbOrPath parses a predicate position that may be a simple IRI
// (the common case, returned as a plain term.Term with a nil *Path,
// usable directly in a TriplePattern) or a compound property path
// expression (returned as a non-nil *Path the caller turns into a
// sparql.Path algebra node instead).
func (g *groupBuilder) parseVerbOrPath() (term.Term, *Path, error) {
	path, err := g.parsePathAlt()
	if err != nil {
		return term.Term{}, nil, err
	}
	if path.Op == PathIRI {
		return path.IRI, nil, nil
	}
	return term.Term{}, path, nil
}

func (g *groupBuilder) parsePathAlt() (*Path, error) {
	l, err := g.parsePathSeq()
	if err != nil {
		return nil, err
	}
	for g.p.isPunct("|") {
		if err := g.p.next(); err != nil {
			return nil, err
		}
		r, err := g.parsePathSeq()
		if err != nil {
			return nil, err
		}
		l = &Path{Op: PathAlt, Left: l, Right: r}
	}
	return l, nil
}

func (g *groupBuilder) parsePathSeq() (*Path, error) {
	l, err := g.parsePathPostfix()
	if err != nil {
		return nil, err
	}
	for g.p.isPunct("/") {
		if err := g.p.next(); err != nil {
			return nil, err
		}
		r, err := g.parsePathPostfix()
		if err != nil {
			return nil, err
		}
		l = &Path{Op: PathSeq, Left: l, Right: r}
	}
	return l, nil
}

func (g *groupBuilder) parsePathPostfix() (*Path, error) {
	base, err := g.parsePathPrimary()
	if err != nil {
		return nil, err
	}
	switch {
	case g.p.isPunct("*"):
		if err := g.p.next(); err != nil {
			return nil, err
		}
		return &Path{Op: PathZeroOrMore, Sub: base}, nil
	case g.p.isPunct("+"):
		if err := g.p.next(); err != nil {
			return nil, err
		}
		return &Path{Op: PathOneOrMore, Sub: base}, nil
	case g.p.isPunct("?"):
		if err := g.p.next(); err != nil {
			return nil, err
		}
		return &Path{Op: PathZeroOrOne, Sub: base}, nil
	default:
		return base, nil
	}
}

func (g *groupBuilder) parsePathPrimary() (*Path, error) {
	p := g.p
	switch {
	case p.isPunct("^"):
		if err := p.next(); err != nil {
			return nil, err
		}
		sub, err := g.parsePathPrimary()
		if err != nil {
			return nil, err
		}
		return &Path{Op: PathInverse, Sub: sub}, nil
	case p.isPunct("!"):
		if err := p.next(); err != nil {
			return nil, err
		}
		sub, err := g.parsePathPrimary()
		if err != nil {
			return nil, err
		}
		return &Path{Op: PathNegated, IRI: sub.IRI, Sub: sub}, nil
	case p.isPunct("("):
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := g.parsePathAlt()
		if err != nil {
			return nil, err
		}
		return inner, p.expectPunct(")")
	default:
		t, err := g.parseVerb()
		if err != nil {
			return nil, err
		}
		return &Path{Op: PathIRI, IRI: t}, nil
	}
}
