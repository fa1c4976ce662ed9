package store

import (
	"encoding/binary"
	"fmt"

	"github.com/rdfgraph/engine/term"
)

// Quad values are stored as a small self-describing binary encoding
// rather than text, so a warm Scan never re-parses N-Quads syntax on the
// read path. Every position is ground (variables never reach the store),
// so the codec only needs to handle IRI, Literal, Blank, and recursively
// Quoted terms.
const (
	tagIRI byte = iota
	tagLiteralPlain
	tagLiteralLang
	tagLiteralTyped
	tagBlank
	tagQuoted
)

func encodeQuadValue(q term.Quad) []byte {
	var buf []byte
	buf = appendTerm(buf, q.Subject)
	buf = appendTerm(buf, q.Predicate)
	buf = appendTerm(buf, q.Object)
	buf = appendTerm(buf, q.Graph)
	return buf
}

func decodeQuadValue(dict *term.Dictionary, data []byte) (term.Quad, error) {
	rest := data
	var terms [4]term.Term
	var err error
	for i := 0; i < 4; i++ {
		terms[i], rest, err = readTerm(dict, rest)
		if err != nil {
			return term.Quad{}, err
		}
	}
	tr := term.NewTripleUnchecked(terms[0], terms[1], terms[2])
	return term.NewQuad(tr, terms[3]), nil
}

func appendString(buf []byte, s string) []byte {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(s)))
	buf = append(buf, lenBuf[:n]...)
	return append(buf, s...)
}

func readString(data []byte) (string, []byte, error) {
	l, n := binary.Uvarint(data)
	if n <= 0 {
		return "", nil, fmt.Errorf("store: codec: malformed length varint")
	}
	data = data[n:]
	if uint64(len(data)) < l {
		return "", nil, fmt.Errorf("store: codec: truncated string")
	}
	return string(data[:l]), data[l:], nil
}

func appendTerm(buf []byte, t term.Term) []byte {
	if t.Zero() {
		// The graph position of a default-graph quad: a reserved
		// zero-length IRI tag the decoder recognizes as the zero term.
		return append(buf, tagIRI, 0)
	}
	switch {
	case t.IsIRI():
		ref, _ := t.IRIValue()
		buf = append(buf, tagIRI)
		return appendString(buf, ref.String())
	case t.IsBlank():
		id, _ := t.BlankID()
		buf = append(buf, tagBlank)
		var idBuf [8]byte
		binary.BigEndian.PutUint64(idBuf[:], id)
		return append(buf, idBuf[:]...)
	case t.IsLiteral():
		lex, _ := t.LiteralLexical()
		if lang, ok := t.LiteralLang(); ok {
			buf = append(buf, tagLiteralLang)
			buf = appendString(buf, lex.String())
			return appendString(buf, lang.String())
		}
		if dtype, ok := t.LiteralDatatype(); ok {
			buf = append(buf, tagLiteralTyped)
			buf = appendString(buf, lex.String())
			return appendString(buf, dtype.String())
		}
		buf = append(buf, tagLiteralPlain)
		return appendString(buf, lex.String())
	case t.IsQuotedTriple():
		tr, _ := t.QuotedTripleValue()
		buf = append(buf, tagQuoted)
		buf = appendTerm(buf, tr.Subject)
		buf = appendTerm(buf, tr.Predicate)
		return appendTerm(buf, tr.Object)
	default:
		return append(buf, tagIRI, 0)
	}
}

func readTerm(dict *term.Dictionary, data []byte) (term.Term, []byte, error) {
	if len(data) == 0 {
		return term.Term{}, nil, fmt.Errorf("store: codec: truncated term")
	}
	tag := data[0]
	data = data[1:]
	switch tag {
	case tagIRI:
		s, rest, err := readString(data)
		if err != nil {
			return term.Term{}, nil, err
		}
		if s == "" {
			return term.Term{}, rest, nil
		}
		return term.IRI(dict.Intern(s)), rest, nil
	case tagBlank:
		if len(data) < 8 {
			return term.Term{}, nil, fmt.Errorf("store: codec: truncated blank id")
		}
		id := binary.BigEndian.Uint64(data[:8])
		return term.Blank(id), data[8:], nil
	case tagLiteralPlain:
		s, rest, err := readString(data)
		if err != nil {
			return term.Term{}, nil, err
		}
		return term.Literal(dict.Intern(s)), rest, nil
	case tagLiteralLang:
		lex, rest, err := readString(data)
		if err != nil {
			return term.Term{}, nil, err
		}
		lang, rest, err := readString(rest)
		if err != nil {
			return term.Term{}, nil, err
		}
		return term.LiteralLang(dict.Intern(lex), dict.Intern(lang)), rest, nil
	case tagLiteralTyped:
		lex, rest, err := readString(data)
		if err != nil {
			return term.Term{}, nil, err
		}
		dtype, rest, err := readString(rest)
		if err != nil {
			return term.Term{}, nil, err
		}
		return term.LiteralTyped(dict.Intern(lex), dict.Intern(dtype)), rest, nil
	case tagQuoted:
		s, rest, err := readTerm(dict, data)
		if err != nil {
			return term.Term{}, nil, err
		}
		p, rest, err := readTerm(dict, rest)
		if err != nil {
			return term.Term{}, nil, err
		}
		o, rest, err := readTerm(dict, rest)
		if err != nil {
			return term.Term{}, nil, err
		}
		tr := term.NewTripleUnchecked(s, p, o)
		return term.Quoted(&tr), rest, nil
	default:
		return term.Term{}, nil, fmt.Errorf("store: codec: unknown term tag %d", tag)
	}
}
