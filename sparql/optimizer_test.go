package sparql

import (
	"testing"

	"github.com/rdfgraph/engine/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optParse(t *testing.T, q string) Algebra {
	t.Helper()
	dict := term.NewDictionary()
	query, err := Parse(q, dict)
	require.NoError(t, err)
	return query.Where
}

func TestOptimizeFilterPushdownIntoJoinLeft(t *testing.T) {
	dict := term.NewDictionary()
	x := term.Variable(dict.Intern("x"))
	y := term.Variable(dict.Intern("y"))
	p1 := term.IRI(dict.Intern("http://example.org/p1"))
	p2 := term.IRI(dict.Intern("http://example.org/p2"))

	join := &Join{
		Left:  &TriplePattern{Subject: x, Predicate: p1, Object: y},
		Right: &TriplePattern{Subject: y, Predicate: p2, Object: x},
	}
	f := &Filter{Input: join, Expr: Binary(">", VarRef("x"), Lit(term.Literal(dict.Intern("1"))))}

	optimized := Optimize(f)
	j, ok := optimized.(*Join)
	require.True(t, ok, "filter referencing only ?x should push below the join")
	_, leftIsFilter := j.Left.(*Filter)
	assert.True(t, leftIsFilter)
}

func TestOptimizeConstantTrueFilterDropped(t *testing.T) {
	dict := term.NewDictionary()
	bgp := &Bgp{Patterns: []*TriplePattern{{
		Subject:   term.Variable(dict.Intern("s")),
		Predicate: term.Variable(dict.Intern("p")),
		Object:    term.Variable(dict.Intern("o")),
	}}}
	f := &Filter{Input: bgp, Expr: Lit(term.LiteralTyped(dict.Intern("true"), dict.Intern("http://www.w3.org/2001/XMLSchema#boolean")))}

	optimized := Optimize(f)
	_, stillFilter := optimized.(*Filter)
	assert.False(t, stillFilter, "a literally-true FILTER should fold away")
}

func TestOptimizeConstantFalseFilterCollapsesBranch(t *testing.T) {
	dict := term.NewDictionary()
	bgp := &Bgp{Patterns: []*TriplePattern{{
		Subject:   term.Variable(dict.Intern("s")),
		Predicate: term.Variable(dict.Intern("p")),
		Object:    term.Variable(dict.Intern("o")),
	}}}
	f := &Filter{Input: bgp, Expr: Lit(term.LiteralTyped(dict.Intern("false"), dict.Intern("http://www.w3.org/2001/XMLSchema#boolean")))}

	optimized := Optimize(f)
	empty, ok := optimized.(*Bgp)
	require.True(t, ok)
	assert.Empty(t, empty.Patterns)
}

func TestOptimizeReordersBgpByBoundTermCount(t *testing.T) {
	dict := term.NewDictionary()
	s := term.Variable(dict.Intern("s"))
	o := term.Variable(dict.Intern("o"))
	pVar := term.Variable(dict.Intern("p"))
	typeIRI := term.IRI(dict.Intern("http://example.org/type"))
	knownIRI := term.IRI(dict.Intern("http://example.org/Person"))

	loose := &TriplePattern{Subject: s, Predicate: pVar, Object: o}
	selective := &TriplePattern{Subject: s, Predicate: typeIRI, Object: knownIRI}
	bgp := &Bgp{Patterns: []*TriplePattern{loose, selective}}

	optimized := Optimize(bgp)
	out, ok := optimized.(*Bgp)
	require.True(t, ok)
	require.Len(t, out.Patterns, 2)
	assert.Same(t, selective, out.Patterns[0], "the pattern with more bound terms should sort first")
}

func TestOptimizeDropsUnusedExtend(t *testing.T) {
	dict := term.NewDictionary()
	bgp := &Bgp{Patterns: []*TriplePattern{{
		Subject:   term.Variable(dict.Intern("s")),
		Predicate: term.Variable(dict.Intern("p")),
		Object:    term.Variable(dict.Intern("o")),
	}}}
	ext := &Extend{Input: bgp, Var: "unused", Expr: Binary("+", VarRef("o"), Lit(term.Literal(dict.Intern("1"))))}
	proj := &Project{Input: ext, Vars: []string{"s"}}

	optimized := Optimize(proj)
	p, ok := optimized.(*Project)
	require.True(t, ok)
	_, stillExtend := p.Input.(*Extend)
	assert.False(t, stillExtend, "BIND feeding a variable never projected should be pruned")
}

func TestOptimizeKeepsExtendUsedByProjection(t *testing.T) {
	dict := term.NewDictionary()
	bgp := &Bgp{Patterns: []*TriplePattern{{
		Subject:   term.Variable(dict.Intern("s")),
		Predicate: term.Variable(dict.Intern("p")),
		Object:    term.Variable(dict.Intern("o")),
	}}}
	ext := &Extend{Input: bgp, Var: "y", Expr: Binary("+", VarRef("o"), Lit(term.Literal(dict.Intern("1"))))}
	proj := &Project{Input: ext, Vars: []string{"s", "y"}}

	optimized := Optimize(proj)
	p, ok := optimized.(*Project)
	require.True(t, ok)
	_, stillExtend := p.Input.(*Extend)
	assert.True(t, stillExtend, "BIND feeding a projected variable must survive")
}

func TestOptimizeIsIdempotent(t *testing.T) {
	where := optParse(t, `
		PREFIX ex: <http://example.org/>
		SELECT ?s WHERE {
			?s ex:type ?t .
			?s ex:age ?age .
			FILTER(?age > 18)
		}
	`)
	once := Optimize(where)
	twice := Optimize(once)
	assert.Equal(t, fmtNode(once), fmtNode(twice))
}
