package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTermStringIRI(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, "<http://example.org/a>", IRI(d.Intern("http://example.org/a")).String())
}

func TestTermStringVariable(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, "?x", Variable(d.Intern("x")).String())
}

func TestTermStringBlank(t *testing.T) {
	require.Equal(t, "_:b0", Blank(0).String())
	require.Equal(t, "_:b42", Blank(42).String())
}

func TestTermStringLiteralPlain(t *testing.T) {
	d := NewDictionary()
	require.Equal(t, `"hello"`, Literal(d.Intern("hello")).String())
}

func TestTermStringLiteralLang(t *testing.T) {
	d := NewDictionary()
	got := LiteralLang(d.Intern("hello"), d.Intern("en")).String()
	require.Equal(t, `"hello"@en`, got)
}

func TestTermStringLiteralTyped(t *testing.T) {
	d := NewDictionary()
	got := LiteralTyped(d.Intern("42"), d.Intern("http://www.w3.org/2001/XMLSchema#integer")).String()
	require.Equal(t, `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`, got)
}

func TestTermStringEscapesControlCharacters(t *testing.T) {
	d := NewDictionary()
	got := Literal(d.Intern("a\"b\\c\nd")).String()
	require.Equal(t, `"a\"b\\c\nd"`, got)
}

func TestTermStringQuotedTriple(t *testing.T) {
	d := NewDictionary()
	s := IRI(d.Intern("s"))
	p := IRI(d.Intern("p"))
	o := IRI(d.Intern("o"))
	tr, err := NewTriple(s, p, o)
	require.NoError(t, err)

	got := Quoted(&tr).String()
	require.Equal(t, "<<<s> <p> <o>>>", got)
}

func TestNQuadDefaultGraph(t *testing.T) {
	d := NewDictionary()
	tr, err := NewTriple(IRI(d.Intern("s")), IRI(d.Intern("p")), IRI(d.Intern("o")))
	require.NoError(t, err)
	q := NewQuad(tr, Term{})
	require.Equal(t, "<s> <p> <o> .", q.NQuad())
}

func TestNQuadNamedGraph(t *testing.T) {
	d := NewDictionary()
	tr, err := NewTriple(IRI(d.Intern("s")), IRI(d.Intern("p")), IRI(d.Intern("o")))
	require.NoError(t, err)
	q := NewQuad(tr, IRI(d.Intern("g")))
	require.Equal(t, "<s> <p> <o> <g> .", q.NQuad())
}
