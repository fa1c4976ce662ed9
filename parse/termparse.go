package parse

import (
	"strings"

	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/rdf"
	"github.com/rdfgraph/engine/voc/xsd"
)

// prefixResolver resolves a Turtle/SPARQL-style prefixed name to its expansion.
// The line-based N-Triples/N-Quads decoders never populate this (prefixed
// names are a Turtle-only production), so parseTerm rejects one there.
type prefixResolver interface {
	resolve(prefix string) (string, bool)
	resolveRelative(iri string) string
}

// parseTerm reads one RDF term starting at the cursor's current position:
// an IRIREF, a blank node label, a quoted literal (with optional
// @lang/^^datatype), an RDF-star quoted triple "<< s p o >>", or -- when
// prefixes is non-nil (Turtle only) -- a prefixed name, the "a" keyword,
// a bare numeric literal, or true/false.
func parseTerm(c *cursor, dict *term.Dictionary, session *Session, prefixes prefixResolver) (term.Term, error) {
	switch {
	case c.peek() == '<' && c.peekAt(1) == '<':
		return parseQuotedTriple(c, dict, session, prefixes)
	case c.peek() == '<':
		iri, err := c.readIRIRef()
		if err != nil {
			return term.Term{}, err
		}
		if prefixes != nil {
			iri = prefixes.resolveRelative(iri)
		}
		return term.IRI(dict.Intern(iri)), nil
	case c.peek() == '_':
		label, err := c.readBlankLabel()
		if err != nil {
			return term.Term{}, err
		}
		return term.Blank(session.Blank(label)), nil
	case c.peek() == '"' || c.peek() == '\'':
		return parseLiteral(c, dict, prefixes)
	case prefixes != nil && c.peek() == '?':
		c.advance()
		start := c.pos
		for !c.eof() && !isTermBoundary(c.peek()) {
			c.advance()
		}
		return term.Variable(dict.Intern(c.s[start:c.pos])), nil
	case prefixes != nil:
		return parsePrefixedOrLiteralShorthand(c, dict, prefixes)
	default:
		return term.Term{}, c.errf("unexpected character %q", c.peek())
	}
}

func parseQuotedTriple(c *cursor, dict *term.Dictionary, session *Session, prefixes prefixResolver) (term.Term, error) {
	c.advance() // '<'
	c.advance() // '<'
	c.skipWhitespaceAndComments()
	s, err := parseTerm(c, dict, session, prefixes)
	if err != nil {
		return term.Term{}, err
	}
	c.skipWhitespaceAndComments()
	p, err := parseTerm(c, dict, session, prefixes)
	if err != nil {
		return term.Term{}, err
	}
	c.skipWhitespaceAndComments()
	o, err := parseTerm(c, dict, session, prefixes)
	if err != nil {
		return term.Term{}, err
	}
	c.skipWhitespaceAndComments()
	if c.peek() != '>' || c.peekAt(1) != '>' {
		return term.Term{}, c.errf("expected '>>' to close quoted triple")
	}
	c.advance()
	c.advance()
	tr, err := term.NewTriple(s, p, o)
	if err != nil {
		return term.Term{}, c.errf("invalid quoted triple: %v", err)
	}
	return term.Quoted(&tr), nil
}

func parseLiteral(c *cursor, dict *term.Dictionary, prefixes prefixResolver) (term.Term, error) {
	lex, err := c.readQuotedString()
	if err != nil {
		return term.Term{}, err
	}
	switch {
	case c.peek() == '@':
		lang, err := c.readLangTag()
		if err != nil {
			return term.Term{}, err
		}
		return term.LiteralLang(dict.Intern(lex), dict.Intern(lang)), nil
	case c.peek() == '^' && c.peekAt(1) == '^':
		c.advance()
		c.advance()
		dtIRI, err := parseDatatypeIRI(c, prefixes)
		if err != nil {
			return term.Term{}, err
		}
		return term.LiteralTyped(dict.Intern(lex), dict.Intern(dtIRI)), nil
	default:
		return term.Literal(dict.Intern(lex)), nil
	}
}

func parseDatatypeIRI(c *cursor, prefixes prefixResolver) (string, error) {
	if c.peek() == '<' {
		iri, err := c.readIRIRef()
		if err != nil {
			return "", err
		}
		if prefixes != nil {
			iri = prefixes.resolveRelative(iri)
		}
		return iri, nil
	}
	if prefixes == nil {
		return "", c.errf("datatype must be an IRI reference here")
	}
	prefix, local, err := c.readPrefixedName()
	if err != nil {
		return "", err
	}
	ns, ok := prefixes.resolve(prefix)
	if !ok {
		return "", c.errf("undefined prefix %q", prefix)
	}
	return ns + local, nil
}

// parsePrefixedOrLiteralShorthand handles the Turtle-only productions that
// do not start with a sigil character: "a", prefixed names, booleans, and
// bare numeric literals.
func parsePrefixedOrLiteralShorthand(c *cursor, dict *term.Dictionary, prefixes prefixResolver) (term.Term, error) {
	if c.peek() == ':' || isPNStart(c.peek()) {
		start := c.mark()
		prefix, local, err := c.readPrefixedName()
		if err != nil {
			c.reset(start)
		} else if ns, ok := prefixes.resolve(prefix); ok {
			return term.IRI(dict.Intern(ns + local)), nil
		} else {
			c.reset(start)
		}
	}
	if strings.HasPrefix(c.s[c.pos:], "true") && isTermBoundary(c.peekAt(4)) {
		c.pos += 4
		c.col += 4
		return term.LiteralTyped(dict.Intern("true"), dict.Intern(xsd.Boolean)), nil
	}
	if strings.HasPrefix(c.s[c.pos:], "false") && isTermBoundary(c.peekAt(5)) {
		c.pos += 5
		c.col += 5
		return term.LiteralTyped(dict.Intern("false"), dict.Intern(xsd.Boolean)), nil
	}
	if c.peek() == 'a' && isTermBoundary(c.peekAt(1)) {
		c.advance()
		return term.IRI(dict.Intern(rdf.Type)), nil
	}
	if isNumericStart(c.peek()) {
		return parseNumericLiteral(c, dict)
	}
	return term.Term{}, c.errf("unrecognized term at %q", previewRune(c))
}

func isPNStart(b byte) bool {
	return isAlnum(b) || b >= 0x80
}

func isNumericStart(b byte) bool {
	return (b >= '0' && b <= '9') || b == '+' || b == '-' || b == '.'
}

func parseNumericLiteral(c *cursor, dict *term.Dictionary) (term.Term, error) {
	start := c.pos
	if c.peek() == '+' || c.peek() == '-' {
		c.advance()
	}
	sawDigit := false
	for !c.eof() && c.peek() >= '0' && c.peek() <= '9' {
		c.advance()
		sawDigit = true
	}
	isDouble := false
	if c.peek() == '.' && c.peekAt(1) >= '0' && c.peekAt(1) <= '9' {
		c.advance()
		for !c.eof() && c.peek() >= '0' && c.peek() <= '9' {
			c.advance()
			sawDigit = true
		}
	}
	if c.peek() == 'e' || c.peek() == 'E' {
		isDouble = true
		c.advance()
		if c.peek() == '+' || c.peek() == '-' {
			c.advance()
		}
		for !c.eof() && c.peek() >= '0' && c.peek() <= '9' {
			c.advance()
		}
	}
	if !sawDigit {
		return term.Term{}, c.errf("malformed numeric literal")
	}
	lex := c.s[start:c.pos]
	dt := xsd.Integer
	switch {
	case isDouble:
		dt = xsd.Double
	case strings.Contains(lex, "."):
		dt = xsd.Decimal
	}
	return term.LiteralTyped(dict.Intern(lex), dict.Intern(dt)), nil
}

func previewRune(c *cursor) string {
	if c.eof() {
		return "<eof>"
	}
	end := c.pos + 10
	if end > len(c.s) {
		end = len(c.s)
	}
	return c.s[c.pos:end]
}
