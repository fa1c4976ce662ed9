// Package storetest is a shared backend conformance suite: one function
// invoked from the memkv, badgerkv and leveldbkv tests so backend-specific
// test files stay a few lines of setup/teardown.
package storetest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store"
)

// RunBackend exercises the full store.Backend contract against db. Call
// it from each backend package's own _test.go with a freshly constructed,
// empty backend.
func RunBackend(t *testing.T, db store.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissingReturnsNotFound", func(t *testing.T) {
		_, err := db.Get(ctx, []byte("missing"))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		require.NoError(t, db.Put(ctx, []byte("a"), []byte("1")))
		v, err := db.Get(ctx, []byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("1"), v)
	})

	t.Run("Contains", func(t *testing.T) {
		require.NoError(t, db.Put(ctx, []byte("b"), []byte("2")))
		ok, err := db.Contains(ctx, []byte("b"))
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = db.Contains(ctx, []byte("no-such-key"))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.Put(ctx, []byte("c"), []byte("3")))
		require.NoError(t, db.Delete(ctx, []byte("c")))
		_, err := db.Get(ctx, []byte("c"))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("PrefixScanOrderedAscending", func(t *testing.T) {
		require.NoError(t, db.Put(ctx, []byte("pfx:02"), []byte("two")))
		require.NoError(t, db.Put(ctx, []byte("pfx:01"), []byte("one")))
		require.NoError(t, db.Put(ctx, []byte("pfx:03"), []byte("three")))
		require.NoError(t, db.Put(ctx, []byte("other:01"), []byte("nope")))

		cur, err := db.PrefixScan(ctx, []byte("pfx:"))
		require.NoError(t, err)
		defer cur.Close()

		var keys [][]byte
		for cur.Next(ctx) {
			keys = append(keys, append([]byte{}, cur.Key()...))
		}
		require.NoError(t, cur.Err())
		require.Len(t, keys, 3)
		for i := 1; i < len(keys); i++ {
			require.True(t, bytes.Compare(keys[i-1], keys[i]) < 0, "prefix scan must yield ascending keys")
		}
	})

	t.Run("RangeScanRespectsBounds", func(t *testing.T) {
		require.NoError(t, db.Put(ctx, []byte("range:1"), []byte("1")))
		require.NoError(t, db.Put(ctx, []byte("range:2"), []byte("2")))
		require.NoError(t, db.Put(ctx, []byte("range:3"), []byte("3")))

		cur, err := db.RangeScan(ctx, []byte("range:1"), []byte("range:3"))
		require.NoError(t, err)
		defer cur.Close()

		var vals [][]byte
		for cur.Next(ctx) {
			vals = append(vals, append([]byte{}, cur.Value()...))
		}
		require.NoError(t, cur.Err())
		require.Equal(t, [][]byte{[]byte("1"), []byte("2")}, vals, "hi bound is exclusive")
	})

	t.Run("BatchPutAtomicVisibility", func(t *testing.T) {
		require.NoError(t, db.BatchPut(ctx, []store.KV{
			{Key: []byte("batch:1"), Value: []byte("x")},
			{Key: []byte("batch:2"), Value: []byte("y")},
		}))
		v1, err := db.Get(ctx, []byte("batch:1"))
		require.NoError(t, err)
		require.Equal(t, []byte("x"), v1)
		v2, err := db.Get(ctx, []byte("batch:2"))
		require.NoError(t, err)
		require.Equal(t, []byte("y"), v2)
	})

	t.Run("FlushAndCompactDoNotError", func(t *testing.T) {
		require.NoError(t, db.Flush(ctx))
		require.NoError(t, db.Compact(ctx))
	})
}
