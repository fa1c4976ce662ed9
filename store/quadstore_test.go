package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store/memkv"
	"github.com/rdfgraph/engine/term"
)

func newTestQuadStore(t *testing.T) (*QuadStore, *term.Dictionary) {
	t.Helper()
	dict := term.NewDictionary()
	qs, err := NewQuadStore(memkv.New(), dict)
	require.NoError(t, err)
	return qs, dict
}

func mustQuad(t *testing.T, d *term.Dictionary, s, p, o string) term.Quad {
	t.Helper()
	tr, err := term.NewTriple(term.IRI(d.Intern(s)), term.IRI(d.Intern(p)), term.IRI(d.Intern(o)))
	require.NoError(t, err)
	return term.NewQuad(tr, term.Term{})
}

func TestInsertThenContains(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()
	q := mustQuad(t, d, "a", "p", "o")

	ok, err := qs.Contains(ctx, q)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, qs.Insert(ctx, q))

	ok, err = qs.Contains(ctx, q)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIndexConsistencyAcrossOrderings(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()
	q := mustQuad(t, d, "a", "p", "o")
	require.NoError(t, qs.Insert(ctx, q))

	for ord := range qs.enabled {
		ids := quadIDs(d, q)
		raw, err := qs.backend.Get(ctx, encodeKey(ord, ids))
		require.NoError(t, err, "ordering %s must carry an entry for the inserted quad", ord)
		got, err := decodeQuadValue(d, raw)
		require.NoError(t, err)
		require.True(t, got.Equal(q))
	}
}

func TestPatternSoundness(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()

	q1 := mustQuad(t, d, "a", "p", "1")
	q2 := mustQuad(t, d, "a", "q", "2")
	q3 := mustQuad(t, d, "b", "p", "3")
	for _, q := range []term.Quad{q1, q2, q3} {
		require.NoError(t, qs.Insert(ctx, q))
	}

	results, err := qs.Scan(ctx, term.IRI(d.Intern("a")), term.Term{}, term.Term{}, term.Term{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.Matches(term.IRI(d.Intern("a")), term.Term{}, term.Term{}, term.Term{}))
	}
}

func TestRemoveDropsFromAllOrderings(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()
	q := mustQuad(t, d, "a", "p", "o")
	require.NoError(t, qs.Insert(ctx, q))
	require.NoError(t, qs.Remove(ctx, q))

	ok, err := qs.Contains(ctx, q)
	require.NoError(t, err)
	require.False(t, ok)

	results, err := qs.Scan(ctx, term.Term{}, term.Term{}, term.Term{}, term.Term{})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestInferredFlagSideTable(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()
	q := mustQuad(t, d, "a", "subClassOf", "b")
	require.NoError(t, qs.Insert(ctx, q))

	require.False(t, qs.IsInferred(q))
	qs.MarkInferred(q)
	require.True(t, qs.IsInferred(q))

	// The flag lives outside the quad's own representation: an
	// independently constructed equal quad is still flagged, since the
	// side table keys on content hash, not object identity.
	again := mustQuad(t, d, "a", "subClassOf", "b")
	require.True(t, qs.IsInferred(again))
}

func TestScanWithDefaultGraphWildcard(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()
	q := mustQuad(t, d, "a", "p", "o")
	require.NoError(t, qs.Insert(ctx, q))

	results, err := qs.Scan(ctx, term.Term{}, term.Term{}, term.Term{}, term.Term{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].InDefaultGraph())
}
