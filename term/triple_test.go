package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTripleValidatesStructure(t *testing.T) {
	d := NewDictionary()
	iriTerm := IRI(d.Intern("s"))
	pred := IRI(d.Intern("p"))
	lit := Literal(d.Intern("o"))
	blank := Blank(1)
	variable := Variable(d.Intern("x"))

	_, err := NewTriple(iriTerm, pred, lit)
	require.NoError(t, err)

	_, err = NewTriple(blank, pred, lit)
	require.NoError(t, err, "blank nodes are valid subjects")

	_, err = NewTriple(lit, pred, lit)
	require.ErrorIs(t, err, ErrInvalidStructure, "a literal subject is structurally invalid")

	_, err = NewTriple(iriTerm, lit, lit)
	require.ErrorIs(t, err, ErrInvalidStructure, "a non-IRI predicate is structurally invalid")

	_, err = NewTriple(variable, pred, lit)
	require.ErrorIs(t, err, ErrInvalidStructure, "a variable is not a valid ground subject")
}

func TestTripleMatchesWildcards(t *testing.T) {
	d := NewDictionary()
	s := IRI(d.Intern("s"))
	p := IRI(d.Intern("p"))
	o := IRI(d.Intern("o"))
	tr, err := NewTriple(s, p, o)
	require.NoError(t, err)

	require.True(t, tr.Matches(Term{}, Term{}, Term{}))
	require.True(t, tr.Matches(s, Term{}, Term{}))
	require.False(t, tr.Matches(IRI(d.Intern("other")), Term{}, Term{}))
}

func TestQuotedTripleAsSubject(t *testing.T) {
	d := NewDictionary()
	s := IRI(d.Intern("s"))
	p := IRI(d.Intern("p"))
	o := IRI(d.Intern("o"))
	inner, err := NewTriple(s, p, o)
	require.NoError(t, err)

	outer, err := NewTriple(Quoted(&inner), p, o)
	require.NoError(t, err, "a quoted triple is a valid subject")
	require.True(t, outer.Subject.IsQuotedTriple())
}
