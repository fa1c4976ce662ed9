package parse

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rdfgraph/engine/term"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, format Format, src string) []term.Quad {
	t.Helper()
	dict := term.NewDictionary()
	dec := NewDecoder(format, strings.NewReader(src), dict)
	var out []term.Quad
	for {
		q, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

func TestNTriplesBasic(t *testing.T) {
	src := `<http://ex/s> <http://ex/p> "hello" .
# a comment line
<http://ex/s> <http://ex/p2> <http://ex/o> .
`
	quads := decodeAll(t, NTriples, src)
	require.Len(t, quads, 2)
	require.True(t, quads[0].InDefaultGraph())
	lex, ok := quads[0].Object.LiteralLexical()
	require.True(t, ok)
	require.Equal(t, "hello", lex.String())
}

func TestNQuadsNamedGraph(t *testing.T) {
	src := `<http://ex/s> <http://ex/p> <http://ex/o> <http://ex/g> .`
	quads := decodeAll(t, NQuads, src)
	require.Len(t, quads, 1)
	require.False(t, quads[0].InDefaultGraph())
	g, ok := quads[0].Graph.IRIValue()
	require.True(t, ok)
	require.Equal(t, "http://ex/g", g.String())
}

func TestNTriplesBlankNodeSessionScoping(t *testing.T) {
	src := `_:a <http://ex/p> _:b .
_:a <http://ex/p> _:a .
`
	quads := decodeAll(t, NTriples, src)
	require.Len(t, quads, 2)
	id1, _ := quads[0].Subject.BlankID()
	id2, _ := quads[1].Subject.BlankID()
	require.Equal(t, id1, id2, "same label within one decoder must resolve to the same blank id")

	idB, _ := quads[0].Object.BlankID()
	idASecond, _ := quads[1].Object.BlankID()
	require.Equal(t, id1, idASecond)
	require.NotEqual(t, id1, idB)
}

func TestNTriplesSessionsAreIndependentAcrossDecoders(t *testing.T) {
	dict := term.NewDictionary()
	d1 := NewDecoder(NTriples, strings.NewReader("_:a <http://ex/p> <http://ex/o> .\n"), dict)
	q1, err := d1.Decode()
	require.NoError(t, err)

	d2 := NewDecoder(NTriples, strings.NewReader("_:a <http://ex/p> <http://ex/o> .\n"), dict)
	q2, err := d2.Decode()
	require.NoError(t, err)

	id1, _ := q1.Subject.BlankID()
	id2, _ := q2.Subject.BlankID()
	require.Equal(t, id1, id2, "both are the first blank allocated in their own fresh session")
}

func TestNTriplesMalformedReportsLineAndColumn(t *testing.T) {
	src := "<http://ex/s> <http://ex/p> \"unterminated\n"
	dict := term.NewDictionary()
	dec := NewDecoder(NTriples, strings.NewReader(src), dict)
	_, err := dec.Decode()
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 1, perr.Line)
	require.True(t, errors.Is(err, ErrParse))
}

func TestNTriplesRejectsPrefixedNames(t *testing.T) {
	src := `ex:s ex:p ex:o .`
	dict := term.NewDictionary()
	dec := NewDecoder(NTriples, strings.NewReader(src), dict)
	_, err := dec.Decode()
	require.Error(t, err)
}

func TestNTriplesRDFStarQuotedTriple(t *testing.T) {
	src := `<< <http://ex/s> <http://ex/p> <http://ex/o> >> <http://ex/certainty> "0.9" .`
	quads := decodeAll(t, NTriples, src)
	require.Len(t, quads, 1)
	require.True(t, quads[0].Subject.IsQuotedTriple())
	inner, ok := quads[0].Subject.QuotedTripleValue()
	require.True(t, ok)
	s, _ := inner.Subject.IRIValue()
	require.Equal(t, "http://ex/s", s.String())
}
