package parse

import (
	"io"
	"strings"

	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/rdf"
)

// turtleDecoder implements Decoder for Turtle: directives, predicate-object
// and object lists, blank-node property lists, RDF collections, and
// RDF-star quoted triples. Turtle statements are not line-oriented (a
// single statement may span many lines and expand into many quads), so
// the whole document is buffered and parsed with a single cursor, unlike
// lineDecoder's one-cursor-per-line approach.
type turtleDecoder struct {
	c       *cursor
	dict    *term.Dictionary
	session *Session
	prefix  map[string]string
	base    string
	queue   []term.Quad
}

func newTurtleDecoder(r io.Reader, dict *term.Dictionary, session *Session) Decoder {
	data, err := io.ReadAll(r)
	if err != nil {
		data = nil
	}
	d := &turtleDecoder{
		c:       newCursor(string(data), 1),
		dict:    dict,
		session: session,
		prefix:  make(map[string]string),
	}
	if err != nil {
		d.queue = nil
		d.c = newCursor("", 1)
	}
	return d
}

func (d *turtleDecoder) resolve(prefix string) (string, bool) {
	ns, ok := d.prefix[prefix]
	return ns, ok
}

func (d *turtleDecoder) resolveRelative(iri string) string {
	if d.base == "" || strings.Contains(iri, "://") {
		return iri
	}
	return d.base + iri
}

func (d *turtleDecoder) Decode() (term.Quad, error) {
	for len(d.queue) == 0 {
		d.c.skipWhitespaceAndComments()
		if d.c.eof() {
			return term.Quad{}, io.EOF
		}
		if err := d.parseNextStatement(); err != nil {
			return term.Quad{}, err
		}
	}
	q := d.queue[0]
	d.queue = d.queue[1:]
	return q, nil
}

func (d *turtleDecoder) enqueue(s, p, o term.Term) error {
	tr, err := term.NewTriple(s, p, o)
	if err != nil {
		return d.c.errf("invalid triple structure: %v", err)
	}
	d.queue = append(d.queue, term.NewQuad(tr, term.Term{}))
	return nil
}

func (d *turtleDecoder) parseNextStatement() error {
	switch {
	case d.tryConsumeKeyword("@prefix"):
		return d.parsePrefixDirective(true)
	case d.tryConsumeKeyword("@base"):
		return d.parseBaseDirective(true)
	case d.tryConsumeKeywordFold("PREFIX"):
		return d.parsePrefixDirective(false)
	case d.tryConsumeKeywordFold("BASE"):
		return d.parseBaseDirective(false)
	default:
		return d.parseTriplesStatement()
	}
}

// tryConsumeKeyword matches kw exactly (case-sensitive), requiring a
// boundary character immediately after, and advances the cursor past it
// on success.
func (d *turtleDecoder) tryConsumeKeyword(kw string) bool {
	c := d.c
	if !strings.HasPrefix(c.s[c.pos:], kw) {
		return false
	}
	if !isTermBoundary(c.peekAt(len(kw))) {
		return false
	}
	for i := 0; i < len(kw); i++ {
		c.advance()
	}
	return true
}

func (d *turtleDecoder) tryConsumeKeywordFold(kw string) bool {
	c := d.c
	if len(c.s)-c.pos < len(kw) {
		return false
	}
	if !strings.EqualFold(c.s[c.pos:c.pos+len(kw)], kw) {
		return false
	}
	after := c.peekAt(len(kw))
	if after != 0 && !isWhitespaceByte(after) {
		return false
	}
	for i := 0; i < len(kw); i++ {
		c.advance()
	}
	return true
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (d *turtleDecoder) parsePrefixDirective(requireDot bool) error {
	c := d.c
	c.skipWhitespaceAndComments()
	prefix, local, err := c.readPrefixedName()
	if err != nil {
		return err
	}
	if local != "" {
		return c.errf("malformed prefix directive")
	}
	c.skipWhitespaceAndComments()
	iri, err := c.readIRIRef()
	if err != nil {
		return err
	}
	d.prefix[prefix] = d.resolveRelative(iri)
	c.skipWhitespaceAndComments()
	if requireDot {
		return c.expect('.')
	}
	return nil
}

func (d *turtleDecoder) parseBaseDirective(requireDot bool) error {
	c := d.c
	c.skipWhitespaceAndComments()
	iri, err := c.readIRIRef()
	if err != nil {
		return err
	}
	d.base = d.resolveRelative(iri)
	c.skipWhitespaceAndComments()
	if requireDot {
		return c.expect('.')
	}
	return nil
}

func (d *turtleDecoder) parseTriplesStatement() error {
	c := d.c
	subj, err := d.parseSubjectOrObject()
	if err != nil {
		return err
	}
	c.skipWhitespaceAndComments()
	if c.peek() != '.' {
		if err := d.parsePredicateObjectList(subj); err != nil {
			return err
		}
		c.skipWhitespaceAndComments()
	}
	return c.expect('.')
}

func (d *turtleDecoder) parsePredicateObjectList(subject term.Term) error {
	c := d.c
	for {
		pred, err := d.parseTerm()
		if err != nil {
			return err
		}
		c.skipWhitespaceAndComments()
		if err := d.parseObjectList(subject, pred); err != nil {
			return err
		}
		c.skipWhitespaceAndComments()
		if c.peek() != ';' {
			return nil
		}
		c.advance()
		c.skipWhitespaceAndComments()
		if c.peek() == '.' || c.peek() == ']' || c.peek() == ')' {
			return nil
		}
		// otherwise loop again: another verb follows the ';'
	}
}

func (d *turtleDecoder) parseObjectList(subject, predicate term.Term) error {
	c := d.c
	for {
		obj, err := d.parseSubjectOrObject()
		if err != nil {
			return err
		}
		if err := d.enqueue(subject, predicate, obj); err != nil {
			return err
		}
		c.skipWhitespaceAndComments()
		if c.peek() != ',' {
			return nil
		}
		c.advance()
		c.skipWhitespaceAndComments()
	}
}

func (d *turtleDecoder) parseTerm() (term.Term, error) {
	return parseTerm(d.c, d.dict, d.session, d)
}

func (d *turtleDecoder) parseSubjectOrObject() (term.Term, error) {
	c := d.c
	c.skipWhitespaceAndComments()
	switch c.peek() {
	case '[':
		return d.parseBlankNodePropertyList()
	case '(':
		return d.parseCollection()
	default:
		return d.parseTerm()
	}
}

func (d *turtleDecoder) parseBlankNodePropertyList() (term.Term, error) {
	c := d.c
	if err := c.expect('['); err != nil {
		return term.Term{}, err
	}
	blank := term.Blank(d.session.FreshBlank())
	c.skipWhitespaceAndComments()
	if c.peek() != ']' {
		if err := d.parsePredicateObjectList(blank); err != nil {
			return term.Term{}, err
		}
		c.skipWhitespaceAndComments()
	}
	if err := c.expect(']'); err != nil {
		return term.Term{}, err
	}
	return blank, nil
}

func (d *turtleDecoder) parseCollection() (term.Term, error) {
	c := d.c
	if err := c.expect('('); err != nil {
		return term.Term{}, err
	}
	c.skipWhitespaceAndComments()
	rdfNil := term.IRI(d.dict.Intern(rdf.Nil))
	if c.peek() == ')' {
		c.advance()
		return rdfNil, nil
	}

	var items []term.Term
	for {
		item, err := d.parseSubjectOrObject()
		if err != nil {
			return term.Term{}, err
		}
		items = append(items, item)
		c.skipWhitespaceAndComments()
		if c.peek() == ')' {
			c.advance()
			break
		}
	}

	first := d.dict.Intern(rdf.First)
	rest := d.dict.Intern(rdf.Rest)
	head := rdfNil
	for i := len(items) - 1; i >= 0; i-- {
		node := term.Blank(d.session.FreshBlank())
		if err := d.enqueue(node, term.IRI(first), items[i]); err != nil {
			return term.Term{}, err
		}
		if err := d.enqueue(node, term.IRI(rest), head); err != nil {
			return term.Term{}, err
		}
		head = node
	}
	return head, nil
}
