package parse

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rdfgraph/engine/term"
)

// lineDecoder implements Decoder for N-Triples and N-Quads, both of which
// are line-oriented grammars with no prefixes and no multi-line
// statements: skip blank/comment lines, parse one statement per
// remaining line, optionally accepting a fourth graph term.
type lineDecoder struct {
	scan     *bufio.Scanner
	dict     *term.Dictionary
	session  *Session
	isNQuads bool
	lineNo   int
}

func newLineDecoder(r io.Reader, dict *term.Dictionary, session *Session, isNQuads bool) Decoder {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &lineDecoder{scan: scan, dict: dict, session: session, isNQuads: isNQuads}
}

func (d *lineDecoder) Decode() (term.Quad, error) {
	for {
		if !d.scan.Scan() {
			if err := d.scan.Err(); err != nil {
				return term.Quad{}, fmt.Errorf("parse: reading line %d: %w", d.lineNo+1, err)
			}
			return term.Quad{}, io.EOF
		}
		d.lineNo++
		line := d.scan.Text()
		c := newCursor(line, d.lineNo)
		c.skipWhitespaceAndComments()
		if c.eof() {
			continue
		}
		return d.parseStatement(c)
	}
}

func (d *lineDecoder) parseStatement(c *cursor) (term.Quad, error) {
	s, err := parseTerm(c, d.dict, d.session, nil)
	if err != nil {
		return term.Quad{}, err
	}
	c.skipWhitespaceAndComments()
	p, err := parseTerm(c, d.dict, d.session, nil)
	if err != nil {
		return term.Quad{}, err
	}
	c.skipWhitespaceAndComments()
	o, err := parseTerm(c, d.dict, d.session, nil)
	if err != nil {
		return term.Quad{}, err
	}
	c.skipWhitespaceAndComments()

	graph := term.Term{}
	if d.isNQuads && c.peek() != '.' {
		graph, err = parseTerm(c, d.dict, d.session, nil)
		if err != nil {
			return term.Quad{}, err
		}
		c.skipWhitespaceAndComments()
	}

	if err := c.expect('.'); err != nil {
		return term.Quad{}, err
	}
	c.skipWhitespaceAndComments()
	if !c.eof() {
		return term.Quad{}, c.errf("unexpected trailing content after '.'")
	}

	tr, err := term.NewTriple(s, p, o)
	if err != nil {
		return term.Quad{}, c.errf("invalid triple structure: %v", err)
	}
	return term.NewQuad(tr, graph), nil
}
