package reason

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/store/memkv"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/rdfs"
)

// TestMatrixEligibleRecognizesSubclassTransitivity checks that rdfs11 is
// exactly the (arity=2, positive, single-predicate recursion) shape the
// matrix fast path requires.
func TestMatrixEligibleRecognizesSubclassTransitivity(t *testing.T) {
	dict := term.NewDictionary()
	rules := DefaultRDFSRules(dict)
	var got *Rule
	for _, r := range rules {
		if r.Name == "rdfs11-subclass-transitive" {
			got = r
		}
	}
	require.NotNil(t, got)
	_, ok := matrixEligible(got)
	assert.True(t, ok)
}

func quadKey(q term.Quad) string {
	sub, _ := q.Subject.IRIValue()
	obj, _ := q.Object.IRIValue()
	return sub.String() + ">" + obj.String()
}

// TestMatrixPathMatchesGeneralEvaluator verifies the matrix fast path
// computes the same transitive closure a plain semi-naive evaluation of
// the same single rule would.
func TestMatrixPathMatchesGeneralEvaluator(t *testing.T) {
	ctx := context.Background()
	dict := term.NewDictionary()
	subClassOf := iri(dict, rdfs.SubClassOf)
	nodes := []term.Term{iri(dict, "http://ex/A"), iri(dict, "http://ex/B"), iri(dict, "http://ex/C"), iri(dict, "http://ex/D")}

	build := func() *store.QuadStore {
		qs, err := store.NewQuadStore(memkv.New(), dict)
		require.NoError(t, err)
		t.Cleanup(func() { qs.Close() })
		for i := 0; i < len(nodes)-1; i++ {
			require.NoError(t, qs.Insert(ctx, term.Quad{Subject: nodes[i], Predicate: subClassOf, Object: nodes[i+1]}))
		}
		// add a branch so the closure isn't a single chain
		require.NoError(t, qs.Insert(ctx, term.Quad{Subject: nodes[0], Predicate: subClassOf, Object: nodes[2]}))
		return qs
	}

	matrixStore := build()
	viaMatrix, err := runMatrixPath(ctx, matrixStore, dict, subClassOf)
	require.NoError(t, err)

	generalStore := build()
	rule := &Rule{
		Name:     "subclass-transitive",
		Premises: []Atom{{v(dict, "c"), subClassOf, v(dict, "d")}, {v(dict, "d"), subClassOf, v(dict, "e")}},
		Head:     Atom{v(dict, "c"), subClassOf, v(dict, "e")},
	}
	eng := &Engine{store: generalStore, dict: dict, concurrency: 1}
	var viaGeneral []term.Quad
	for {
		round, err := eng.evalRule(ctx, rule, true, nil)
		require.NoError(t, err)
		var fresh []term.Quad
		for _, q := range round {
			ok, err := generalStore.Contains(ctx, q)
			require.NoError(t, err)
			if !ok {
				require.NoError(t, generalStore.Insert(ctx, q))
				fresh = append(fresh, q)
			}
		}
		viaGeneral = append(viaGeneral, fresh...)
		if len(fresh) == 0 {
			break
		}
	}

	matrixKeys := make([]string, len(viaMatrix))
	for i, q := range viaMatrix {
		matrixKeys[i] = quadKey(q)
	}
	generalKeys := make([]string, len(viaGeneral))
	for i, q := range viaGeneral {
		generalKeys[i] = quadKey(q)
	}
	sort.Strings(matrixKeys)
	sort.Strings(generalKeys)
	assert.Equal(t, generalKeys, matrixKeys)
}
