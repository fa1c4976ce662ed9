package sparql

import (
	"testing"

	"github.com/rdfgraph/engine/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, q string) *Query {
	t.Helper()
	dict := term.NewDictionary()
	query, err := Parse(q, dict)
	require.NoError(t, err)
	return query
}

func TestParseSimpleSelect(t *testing.T) {
	q := mustParse(t, `
		PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		SELECT ?name WHERE { ?p foaf:name ?name }
	`)
	assert.Equal(t, FormSelect, q.Form)
	assert.Equal(t, []string{"name"}, q.Vars)
	proj, ok := q.Where.(*Project)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, proj.Vars)
	bgp, ok := proj.Input.(*Bgp)
	require.True(t, ok)
	require.Len(t, bgp.Patterns, 1)
	assert.True(t, bgp.Patterns[0].Subject.IsVariable())
	assert.True(t, bgp.Patterns[0].Object.IsVariable())
}

func TestParseSelectStar(t *testing.T) {
	q := mustParse(t, `SELECT * WHERE { ?s ?p ?o }`)
	assert.True(t, q.SelectStar)
	_, isProject := q.Where.(*Project)
	assert.False(t, isProject, "SELECT * must not wrap in Project")
}

func TestParseAsk(t *testing.T) {
	q := mustParse(t, `ASK { ?s <http://example.org/p> ?o }`)
	assert.Equal(t, FormAsk, q.Form)
	_, ok := q.Where.(*Bgp)
	assert.True(t, ok)
}

func TestParseConstruct(t *testing.T) {
	q := mustParse(t, `
		CONSTRUCT { ?s <http://example.org/knows> ?o }
		WHERE { ?s <http://example.org/friend> ?o }
	`)
	assert.Equal(t, FormConstruct, q.Form)
	require.Len(t, q.ConstructTmpl, 1)
	assert.Equal(t, FormConstruct, q.Form)
}

func TestParseDistinctAndReduced(t *testing.T) {
	q := mustParse(t, `SELECT DISTINCT ?x WHERE { ?x a <http://example.org/Thing> }`)
	_, ok := q.Where.(*Distinct)
	assert.True(t, ok)

	q2 := mustParse(t, `SELECT REDUCED ?x WHERE { ?x a <http://example.org/Thing> }`)
	_, ok2 := q2.Where.(*Reduced)
	assert.True(t, ok2)
}

func TestParseOptional(t *testing.T) {
	q := mustParse(t, `
		SELECT ?s ?o WHERE {
			?s a <http://example.org/Person> .
			OPTIONAL { ?s <http://example.org/email> ?o }
		}
	`)
	proj := q.Where.(*Project)
	_, ok := proj.Input.(*LeftJoin)
	assert.True(t, ok)
}

func TestParseUnion(t *testing.T) {
	q := mustParse(t, `
		SELECT ?s WHERE {
			{ ?s a <http://example.org/Cat> } UNION { ?s a <http://example.org/Dog> }
		}
	`)
	proj := q.Where.(*Project)
	_, ok := proj.Input.(*Union)
	assert.True(t, ok)
}

func TestParseFilter(t *testing.T) {
	q := mustParse(t, `
		SELECT ?age WHERE { ?p <http://example.org/age> ?age . FILTER(?age > 18) }
	`)
	proj := q.Where.(*Project)
	filter, ok := proj.Input.(*Filter)
	require.True(t, ok)
	assert.Equal(t, ExprBinary, filter.Expr.Kind)
	assert.Equal(t, ">", filter.Expr.Op)
}

func TestParseBind(t *testing.T) {
	q := mustParse(t, `
		SELECT ?y WHERE { ?s <http://example.org/x> ?x . BIND(?x + 1 AS ?y) }
	`)
	proj := q.Where.(*Project)
	ext, ok := proj.Input.(*Extend)
	require.True(t, ok)
	assert.Equal(t, "y", ext.Var)
}

func TestParseGraph(t *testing.T) {
	q := mustParse(t, `
		SELECT ?s WHERE { GRAPH ?g { ?s a <http://example.org/Thing> } }
	`)
	proj := q.Where.(*Project)
	bgp, ok := proj.Input.(*Bgp)
	require.True(t, ok)
	assert.True(t, bgp.Patterns[0].Graph.IsVariable())
}

func TestParsePropertyPathSequence(t *testing.T) {
	q := mustParse(t, `
		PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		SELECT ?g WHERE { ?p foaf:knows/foaf:name ?g }
	`)
	proj := q.Where.(*Project)
	path, ok := proj.Input.(*Path)
	require.True(t, ok)
	assert.Equal(t, PathSeq, path.Op)
}

func TestParsePropertyPathOneOrMore(t *testing.T) {
	q := mustParse(t, `
		PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		SELECT ?g WHERE { ?p foaf:knows+ ?g }
	`)
	proj := q.Where.(*Project)
	path, ok := proj.Input.(*Path)
	require.True(t, ok)
	assert.Equal(t, PathOneOrMore, path.Op)
	assert.Equal(t, PathIRI, path.Sub.Op)
}

func TestParsePropertyPathInverseAndAlt(t *testing.T) {
	q := mustParse(t, `
		PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		SELECT ?g WHERE { ?p ^foaf:knows|foaf:name ?g }
	`)
	proj := q.Where.(*Project)
	path, ok := proj.Input.(*Path)
	require.True(t, ok)
	assert.Equal(t, PathAlt, path.Op)
	assert.Equal(t, PathInverse, path.Left.Op)
}

func TestParseAggregateCountStar(t *testing.T) {
	q := mustParse(t, `
		SELECT (COUNT(*) AS ?n) WHERE { ?s ?p ?o }
	`)
	proj, ok := q.Where.(*Project)
	require.True(t, ok)
	group, ok := proj.Input.(*Group)
	require.True(t, ok)
	require.Len(t, group.Aggregates, 1)
	assert.Equal(t, AggCount, group.Aggregates[0].Kind)
	assert.Nil(t, group.Aggregates[0].Expr)
	assert.Equal(t, "n", group.Aggregates[0].OutVar)
}

func TestParseGroupByWithAggregate(t *testing.T) {
	q := mustParse(t, `
		PREFIX ex: <http://example.org/>
		SELECT ?type (COUNT(?s) AS ?n) WHERE { ?s a ?type } GROUP BY ?type
	`)
	proj, ok := q.Where.(*Project)
	require.True(t, ok)
	group, ok := proj.Input.(*Group)
	require.True(t, ok, "GROUP BY and SELECT aggregate must merge into a single Group node")
	require.Len(t, group.By, 1)
	require.Len(t, group.Aggregates, 1)
	assert.Equal(t, AggCount, group.Aggregates[0].Kind)
}

func TestParseGroupByHavingOrderLimit(t *testing.T) {
	q := mustParse(t, `
		SELECT ?type (COUNT(?s) AS ?n) WHERE { ?s a ?type }
		GROUP BY ?type
		HAVING (COUNT(?s) > 1)
		ORDER BY DESC(?n)
		LIMIT 10
		OFFSET 5
	`)
	proj := q.Where.(*Project)
	slice, ok := proj.Input.(*Slice)
	require.True(t, ok)
	assert.True(t, slice.HasLimit)
	assert.Equal(t, int64(10), slice.Limit)
	assert.True(t, slice.HasOffset)
	assert.Equal(t, int64(5), slice.Offset)
	order, ok := slice.Input.(*OrderBy)
	require.True(t, ok)
	require.Len(t, order.Conditions, 1)
	assert.True(t, order.Conditions[0].Descending)
	having, ok := order.Input.(*Filter)
	require.True(t, ok)
	_, groupedBeforeHaving := having.Input.(*Group)
	assert.True(t, groupedBeforeHaving, "HAVING must filter the grouped result, not sit between two Group nodes")
}

func TestParseGroupConcatWithSeparator(t *testing.T) {
	q := mustParse(t, `
		SELECT (GROUP_CONCAT(?name; SEPARATOR=",") AS ?names) WHERE { ?s <http://example.org/name> ?name }
	`)
	proj, ok := q.Where.(*Project)
	require.True(t, ok)
	group, ok := proj.Input.(*Group)
	require.True(t, ok)
	require.Len(t, group.Aggregates, 1)
	assert.Equal(t, AggGroupConcat, group.Aggregates[0].Kind)
	assert.Equal(t, ",", group.Aggregates[0].Separator)
}

func TestParseExtendAsVarInSelectList(t *testing.T) {
	q := mustParse(t, `
		SELECT ?x (?x + 1 AS ?y) WHERE { ?s <http://example.org/x> ?x }
	`)
	proj, ok := q.Where.(*Project)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, proj.Vars)
	ext, ok := proj.Input.(*Extend)
	require.True(t, ok)
	assert.Equal(t, "y", ext.Var)
}

func TestParseLanguageTaggedAndTypedLiterals(t *testing.T) {
	q := mustParse(t, `
		SELECT ?s WHERE {
			?s <http://example.org/name> "Ada"@en .
			?s <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer>
		}
	`)
	proj := q.Where.(*Project)
	bgp := proj.Input.(*Bgp)
	require.Len(t, bgp.Patterns, 2)
	lang, ok := bgp.Patterns[0].Object.LiteralLang()
	require.True(t, ok)
	assert.Equal(t, "en", lang.String())
}

func TestParseUndefinedPrefixIsError(t *testing.T) {
	dict := term.NewDictionary()
	_, err := Parse(`SELECT ?s WHERE { ?s foaf:name ?o }`, dict)
	require.Error(t, err)
}

func TestParseNumericLiteralDatatypes(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s <http://example.org/score> 3.14 }`)
	proj := q.Where.(*Project)
	bgp := proj.Input.(*Bgp)
	dt, ok := bgp.Patterns[0].Object.LiteralDatatype()
	require.True(t, ok)
	assert.Contains(t, dt.String(), "decimal")
}

func TestParseExistsFilter(t *testing.T) {
	q := mustParse(t, `
		SELECT ?s WHERE {
			?s a <http://example.org/Person> .
			FILTER EXISTS { ?s <http://example.org/email> ?e }
		}
	`)
	proj := q.Where.(*Project)
	filter, ok := proj.Input.(*Filter)
	require.True(t, ok)
	assert.Equal(t, ExprExists, filter.Expr.Kind)
}
