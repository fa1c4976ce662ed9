package reason

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/store/memkv"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/owl"
	"github.com/rdfgraph/engine/voc/rdf"
)

func newListStore(t *testing.T) (*store.QuadStore, *term.Dictionary) {
	t.Helper()
	dict := term.NewDictionary()
	qs, err := store.NewQuadStore(memkv.New(), dict)
	require.NoError(t, err)
	t.Cleanup(func() { qs.Close() })
	return qs, dict
}

// assertList writes an rdf:List holding members, rooted at a fresh blank
// node, and returns the root term.
func assertList(t *testing.T, ctx context.Context, qs *store.QuadStore, dict *term.Dictionary, blankSeq *uint64, members []term.Term) term.Term {
	t.Helper()
	rdfFirst := term.IRI(dict.Intern(rdf.First))
	rdfRest := term.IRI(dict.Intern(rdf.Rest))
	rdfNil := term.IRI(dict.Intern(rdf.Nil))

	if len(members) == 0 {
		return rdfNil
	}
	*blankSeq++
	head := term.Blank(*blankSeq)
	cur := head
	for idx, m := range members {
		require.NoError(t, qs.Insert(ctx, term.Quad{Subject: cur, Predicate: rdfFirst, Object: m}))
		if idx == len(members)-1 {
			require.NoError(t, qs.Insert(ctx, term.Quad{Subject: cur, Predicate: rdfRest, Object: rdfNil}))
		} else {
			*blankSeq++
			next := term.Blank(*blankSeq)
			require.NoError(t, qs.Insert(ctx, term.Quad{Subject: cur, Predicate: rdfRest, Object: next}))
			cur = next
		}
	}
	return head
}

func TestClassIntersectionBothDirections(t *testing.T) {
	qs, dict := newListStore(t)
	ctx := context.Background()
	var blankSeq uint64

	animal := iri(dict, "http://ex/Animal")
	pet := iri(dict, "http://ex/Pet")
	petAnimal := iri(dict, "http://ex/PetAnimal")
	rex := iri(dict, "http://ex/rex")
	rdfType := iri(dict, rdf.Type)
	intersectionOf := iri(dict, owl.IntersectionOf)

	list := assertList(t, ctx, qs, dict, &blankSeq, []term.Term{animal, pet})
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: petAnimal, Predicate: intersectionOf, Object: list}))
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: rex, Predicate: rdfType, Object: animal}))
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: rex, Predicate: rdfType, Object: pet}))

	derived, err := evaluateClassIntersection(ctx, qs, dict)
	require.NoError(t, err)

	var sawIntersection, sawAnimalFromIntersection bool
	for _, q := range derived {
		if q.Subject.Equal(rex) && q.Predicate.Equal(rdfType) && q.Object.Equal(petAnimal) {
			sawIntersection = true
		}
	}

	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: rex, Predicate: rdfType, Object: petAnimal}))
	derived2, err := evaluateClassIntersection(ctx, qs, dict)
	require.NoError(t, err)
	for _, q := range derived2 {
		if q.Subject.Equal(rex) && q.Predicate.Equal(rdfType) && q.Object.Equal(animal) {
			sawAnimalFromIntersection = true
		}
	}

	assert.True(t, sawIntersection, "cls-int1: instance of both members entails instance of the intersection")
	assert.True(t, sawAnimalFromIntersection, "cls-int2: instance of the intersection entails instance of each member")
}

func TestPropertyChainEvaluation(t *testing.T) {
	qs, dict := newListStore(t)
	ctx := context.Background()
	var blankSeq uint64

	hasParent := iri(dict, "http://ex/hasParent")
	hasGrandparent := iri(dict, "http://ex/hasGrandparent")
	alice, bob, carol := iri(dict, "http://ex/alice"), iri(dict, "http://ex/bob"), iri(dict, "http://ex/carol")
	chainAxiom := iri(dict, owl.PropertyChainAxiom)

	list := assertList(t, ctx, qs, dict, &blankSeq, []term.Term{hasParent, hasParent})
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: hasGrandparent, Predicate: chainAxiom, Object: list}))
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: alice, Predicate: hasParent, Object: bob}))
	require.NoError(t, qs.Insert(ctx, term.Quad{Subject: bob, Predicate: hasParent, Object: carol}))

	derived, err := evaluatePropertyChains(ctx, qs, dict)
	require.NoError(t, err)
	require.Len(t, derived, 1)
	assert.True(t, derived[0].Subject.Equal(alice))
	assert.True(t, derived[0].Predicate.Equal(hasGrandparent))
	assert.True(t, derived[0].Object.Equal(carol))
}
