package mmapkv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/store/mmapkv"
)

func TestMmapkvUnimplementedBeyondOpenClose(t *testing.T) {
	db, err := mmapkv.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.Get(ctx, []byte("x"))
	require.ErrorIs(t, err, store.ErrUnimplemented)

	err = db.Put(ctx, []byte("x"), []byte("y"))
	require.ErrorIs(t, err, store.ErrUnimplemented)

	_, err = db.Contains(ctx, []byte("x"))
	require.ErrorIs(t, err, store.ErrUnimplemented)

	_, err = db.PrefixScan(ctx, []byte("x"))
	require.ErrorIs(t, err, store.ErrUnimplemented)
}

func TestMmapkvOpenAndClose(t *testing.T) {
	db, err := mmapkv.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
