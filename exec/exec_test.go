package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/store/memkv"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/xsd"
)

func newTestEnv(t *testing.T) (*Env, *term.Dictionary) {
	t.Helper()
	dict := term.NewDictionary()
	qs, err := store.NewQuadStore(memkv.New(), dict)
	require.NoError(t, err)
	t.Cleanup(func() { qs.Close() })
	return &Env{Store: qs, Dict: dict}, dict
}

func insert(t *testing.T, env *Env, s, p, o term.Term) {
	t.Helper()
	require.NoError(t, env.Store.Insert(context.Background(), term.Quad{Subject: s, Predicate: p, Object: o}))
}

func resultRows(t *testing.T, it Iterator) []Binding {
	t.Helper()
	rows, err := drain(context.Background(), it)
	require.NoError(t, err)
	return rows
}

func TestCompileTriplePatternBindsVariables(t *testing.T) {
	env, dict := newTestEnv(t)
	alice := term.IRI(dict.Intern("http://example.org/alice"))
	name := term.IRI(dict.Intern("http://example.org/name"))
	ada := term.Literal(dict.Intern("Ada"))
	insert(t, env, alice, name, ada)

	pattern := &sparql.TriplePattern{
		Subject:   term.Variable(dict.Intern("s")),
		Predicate: name,
		Object:    term.Variable(dict.Intern("o")),
	}
	it, err := Compile(context.Background(), env, pattern)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 1)
	assert.Equal(t, alice, rows[0]["s"])
	assert.Equal(t, ada, rows[0]["o"])
}

func TestCompileBgpJoinsSharedVariable(t *testing.T) {
	env, dict := newTestEnv(t)
	knows := term.IRI(dict.Intern("http://example.org/knows"))
	likes := term.IRI(dict.Intern("http://example.org/likes"))
	alice := term.IRI(dict.Intern("http://example.org/alice"))
	bob := term.IRI(dict.Intern("http://example.org/bob"))
	pizza := term.IRI(dict.Intern("http://example.org/pizza"))
	insert(t, env, alice, knows, bob)
	insert(t, env, alice, likes, pizza)

	bgp := &sparql.Bgp{Patterns: []*sparql.TriplePattern{
		{Subject: term.Variable(dict.Intern("x")), Predicate: knows, Object: term.Variable(dict.Intern("y"))},
		{Subject: term.Variable(dict.Intern("x")), Predicate: likes, Object: term.Variable(dict.Intern("z"))},
	}}
	it, err := Compile(context.Background(), env, bgp)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 1)
	assert.Equal(t, alice, rows[0]["x"])
	assert.Equal(t, bob, rows[0]["y"])
	assert.Equal(t, pizza, rows[0]["z"])
}

func TestCompileLeftJoinKeepsUnmatchedLeftRow(t *testing.T) {
	env, dict := newTestEnv(t)
	person := term.IRI(dict.Intern("http://example.org/Person"))
	typeIRI := term.IRI(dict.Intern("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))
	email := term.IRI(dict.Intern("http://example.org/email"))
	alice := term.IRI(dict.Intern("http://example.org/alice"))
	bob := term.IRI(dict.Intern("http://example.org/bob"))
	aliceEmail := term.Literal(dict.Intern("alice@example.org"))
	insert(t, env, alice, typeIRI, person)
	insert(t, env, bob, typeIRI, person)
	insert(t, env, alice, email, aliceEmail)

	lj := &sparql.LeftJoin{
		Left: &sparql.TriplePattern{Subject: term.Variable(dict.Intern("s")), Predicate: typeIRI, Object: person},
		Right: &sparql.TriplePattern{
			Subject: term.Variable(dict.Intern("s")), Predicate: email, Object: term.Variable(dict.Intern("e")),
		},
	}
	it, err := Compile(context.Background(), env, lj)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 2)
	matched, unmatched := 0, 0
	for _, r := range rows {
		if _, ok := r["e"]; ok {
			matched++
		} else {
			unmatched++
		}
	}
	assert.Equal(t, 1, matched)
	assert.Equal(t, 1, unmatched)
}

func TestCompileFilterDropsNonMatchingRows(t *testing.T) {
	env, dict := newTestEnv(t)
	age := term.IRI(dict.Intern("http://example.org/age"))
	alice := term.IRI(dict.Intern("http://example.org/alice"))
	bob := term.IRI(dict.Intern("http://example.org/bob"))
	insert(t, env, alice, age, term.LiteralTyped(dict.Intern("30"), dict.Intern(xsd.Integer)))
	insert(t, env, bob, age, term.LiteralTyped(dict.Intern("10"), dict.Intern(xsd.Integer)))

	filter := &sparql.Filter{
		Input: &sparql.TriplePattern{Subject: term.Variable(dict.Intern("s")), Predicate: age, Object: term.Variable(dict.Intern("a"))},
		Expr:  sparql.Binary(">", sparql.VarRef("a"), sparql.Lit(term.LiteralTyped(dict.Intern("18"), dict.Intern(xsd.Integer)))),
	}
	it, err := Compile(context.Background(), env, filter)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 1)
	assert.Equal(t, alice, rows[0]["s"])
}

func TestCompileGroupCountsPerKey(t *testing.T) {
	env, dict := newTestEnv(t)
	typeIRI := term.IRI(dict.Intern("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))
	person := term.IRI(dict.Intern("http://example.org/Person"))
	dog := term.IRI(dict.Intern("http://example.org/Dog"))
	insert(t, env, term.IRI(dict.Intern("http://example.org/alice")), typeIRI, person)
	insert(t, env, term.IRI(dict.Intern("http://example.org/bob")), typeIRI, person)
	insert(t, env, term.IRI(dict.Intern("http://example.org/rex")), typeIRI, dog)

	group := &sparql.Group{
		Input: &sparql.TriplePattern{
			Subject: term.Variable(dict.Intern("s")), Predicate: typeIRI, Object: term.Variable(dict.Intern("t")),
		},
		By: []*sparql.Expr{sparql.VarRef("t")},
		Aggregates: []sparql.Aggregate{
			{Kind: sparql.AggCount, Expr: sparql.VarRef("s"), OutVar: "n"},
		},
	}
	it, err := Compile(context.Background(), env, group)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 2)
	counts := map[string]term.Term{}
	for _, r := range rows {
		counts[r["t"].String()] = r["n"]
	}
	n, ok := counts[person.String()].LiteralLexical()
	require.True(t, ok)
	assert.Equal(t, "2", n.String())
}

func TestCompilePathOneOrMoreFindsTransitiveReachability(t *testing.T) {
	env, dict := newTestEnv(t)
	knows := term.IRI(dict.Intern("http://example.org/knows"))
	a := term.IRI(dict.Intern("http://example.org/a"))
	b := term.IRI(dict.Intern("http://example.org/b"))
	c := term.IRI(dict.Intern("http://example.org/c"))
	insert(t, env, a, knows, b)
	insert(t, env, b, knows, c)

	path := &sparql.Path{
		Op:      sparql.PathOneOrMore,
		Sub:     &sparql.Path{Op: sparql.PathIRI, IRI: knows},
		Subject: a,
		Object:  term.Variable(dict.Intern("x")),
	}
	it, err := Compile(context.Background(), env, path)
	require.NoError(t, err)
	rows := resultRows(t, it)
	reached := map[string]bool{}
	for _, r := range rows {
		reached[r["x"].String()] = true
	}
	require.Len(t, reached, 2)
	assert.True(t, reached[b.String()])
	assert.True(t, reached[c.String()])
}

func TestCompileSliceAppliesLimitAndOffset(t *testing.T) {
	env, dict := newTestEnv(t)
	p := term.IRI(dict.Intern("http://example.org/p"))
	for i := 0; i < 5; i++ {
		insert(t, env, term.Blank(uint64(i+1)), p, term.Literal(dict.Intern(string(rune('a'+i)))))
	}
	slice := &sparql.Slice{
		Input:     &sparql.TriplePattern{Subject: term.Variable(dict.Intern("s")), Predicate: p, Object: term.Variable(dict.Intern("o"))},
		Offset:    1,
		HasOffset: true,
		Limit:     2,
		HasLimit:  true,
	}
	it, err := Compile(context.Background(), env, slice)
	require.NoError(t, err)
	rows := resultRows(t, it)
	require.Len(t, rows, 2)
}

func TestCompileRespectsCancellation(t *testing.T) {
	env, dict := newTestEnv(t)
	p := term.IRI(dict.Intern("http://example.org/p"))
	insert(t, env, term.Blank(1), p, term.Literal(dict.Intern("x")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pattern := &sparql.TriplePattern{Subject: term.Variable(dict.Intern("s")), Predicate: p, Object: term.Variable(dict.Intern("o"))}
	_, err := Compile(ctx, env, pattern)
	require.ErrorIs(t, err, ErrCancelled)
}

