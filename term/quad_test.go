package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildQuad(t *testing.T, d *Dictionary, s, p, o string, graph Term) Quad {
	t.Helper()
	tr, err := NewTriple(IRI(d.Intern(s)), IRI(d.Intern(p)), IRI(d.Intern(o)))
	require.NoError(t, err)
	return NewQuad(tr, graph)
}

func TestQuadDefaultGraph(t *testing.T) {
	d := NewDictionary()
	q := buildQuad(t, d, "s", "p", "o", Term{})
	require.True(t, q.InDefaultGraph())

	named := buildQuad(t, d, "s", "p", "o", IRI(d.Intern("g")))
	require.False(t, named.InDefaultGraph())
}

func TestQuadMatchesGraphWildcard(t *testing.T) {
	d := NewDictionary()
	g := IRI(d.Intern("g"))
	q := buildQuad(t, d, "s", "p", "o", g)

	require.True(t, q.Matches(Term{}, Term{}, Term{}, Term{}), "zero graph pattern is a wildcard")
	require.True(t, q.Matches(Term{}, Term{}, Term{}, g))
	require.False(t, q.Matches(Term{}, Term{}, Term{}, IRI(d.Intern("other"))))
}

func TestQuadGetSetByDirection(t *testing.T) {
	d := NewDictionary()
	q := buildQuad(t, d, "s", "p", "o", Term{})

	require.True(t, q.Get(Subject).Equal(IRI(d.Intern("s"))))
	require.True(t, q.Get(Predicate).Equal(IRI(d.Intern("p"))))
	require.True(t, q.Get(Object).Equal(IRI(d.Intern("o"))))
	require.True(t, q.Get(Graph).Zero())

	q.Set(Graph, IRI(d.Intern("g2")))
	require.False(t, q.InDefaultGraph())
	require.True(t, q.Get(Graph).Equal(IRI(d.Intern("g2"))))
}

func TestDirectionString(t *testing.T) {
	require.Equal(t, "subject", Subject.String())
	require.Equal(t, "predicate", Predicate.String())
	require.Equal(t, "object", Object.String())
	require.Equal(t, "graph", Graph.String())
	require.Equal(t, "any", Any.String())
}

func TestQuadEqual(t *testing.T) {
	d := NewDictionary()
	a := buildQuad(t, d, "s", "p", "o", Term{})
	b := buildQuad(t, d, "s", "p", "o", Term{})
	c := buildQuad(t, d, "s", "p", "other", Term{})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
