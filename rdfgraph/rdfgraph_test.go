package rdfgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/parse"
	"github.com/rdfgraph/engine/term"
)

func TestOpenMemoryInsertContainsScan(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	alice := term.IRI(s.dict.Intern("http://ex/alice"))
	knows := term.IRI(s.dict.Intern("http://ex/knows"))
	bob := term.IRI(s.dict.Intern("http://ex/bob"))
	q := term.Quad{Subject: alice, Predicate: knows, Object: bob}

	require.NoError(t, s.Insert(ctx, q))
	ok, err := s.Contains(ctx, q)
	require.NoError(t, err)
	assert.True(t, ok)

	it, err := s.Scan(ctx, Pattern{Subject: alice})
	require.NoError(t, err)
	defer it.Close()
	var got []term.Quad
	for it.Next(ctx) {
		got = append(got, it.Quad())
	}
	require.NoError(t, it.Err())
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(q))

	require.NoError(t, s.Delete(ctx, q))
	ok, err = s.Contains(ctx, q)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIngestNTriples(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	doc := strings.NewReader(
		"<http://ex/alice> <http://ex/knows> <http://ex/bob> .\n" +
			"<http://ex/bob> <http://ex/knows> <http://ex/carol> .\n",
	)
	require.NoError(t, s.Ingest(parse.NTriples, doc))

	ctx := context.Background()
	it, err := s.Scan(ctx, Pattern{})
	require.NoError(t, err)
	defer it.Close()
	n := 0
	for it.Next(ctx) {
		n++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, 2, n)
}

func TestQueryExecuteWithParams(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	alice := term.IRI(s.dict.Intern("http://ex/alice"))
	bob := term.IRI(s.dict.Intern("http://ex/bob"))
	carol := term.IRI(s.dict.Intern("http://ex/carol"))
	knows := term.IRI(s.dict.Intern("http://ex/knows"))
	require.NoError(t, s.Insert(ctx, term.Quad{Subject: alice, Predicate: knows, Object: bob}))
	require.NoError(t, s.Insert(ctx, term.Quad{Subject: alice, Predicate: knows, Object: carol}))

	pq, err := s.Query("SELECT ?o WHERE { <http://ex/alice> <http://ex/knows> ?o }")
	require.NoError(t, err)

	it, err := pq.Execute(ctx, nil)
	require.NoError(t, err)
	defer it.Close()
	var rows []term.Term
	for it.Next(ctx) {
		v, ok := it.Result().Get("o")
		require.True(t, ok)
		rows = append(rows, v)
	}
	require.NoError(t, it.Err())
	assert.Len(t, rows, 2)

	it2, err := pq.Execute(ctx, map[string]term.Term{"o": bob})
	require.NoError(t, err)
	defer it2.Close()
	var narrowed []term.Term
	for it2.Next(ctx) {
		v, _ := it2.Result().Get("o")
		narrowed = append(narrowed, v)
	}
	require.NoError(t, it2.Err())
	require.Len(t, narrowed, 1)
	assert.True(t, narrowed[0].Equal(bob))
}

func TestMaterializeViaStore(t *testing.T) {
	s, err := Open(Config{Reasoner: ReasonerRDFS})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	a := term.IRI(s.dict.Intern("http://ex/A"))
	b := term.IRI(s.dict.Intern("http://ex/B"))
	c := term.IRI(s.dict.Intern("http://ex/C"))
	subClassOf := term.IRI(s.dict.Intern("http://www.w3.org/2000/01/rdf-schema#subClassOf"))
	require.NoError(t, s.Insert(ctx, term.Quad{Subject: a, Predicate: subClassOf, Object: b}))
	require.NoError(t, s.Insert(ctx, term.Quad{Subject: b, Predicate: subClassOf, Object: c}))

	require.NoError(t, s.Materialize(ctx))

	ok, err := s.Contains(ctx, term.Quad{Subject: a, Predicate: subClassOf, Object: c})
	require.NoError(t, err)
	assert.True(t, ok)
}
