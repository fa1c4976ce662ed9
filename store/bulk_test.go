package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/term"
)

func TestInsertBatchMatchesSequentialInsert(t *testing.T) {
	qs, d := newTestQuadStore(t)
	ctx := context.Background()

	quads := []term.Quad{
		mustQuad(t, d, "a", "knows", "b"),
		mustQuad(t, d, "b", "knows", "c"),
		mustQuad(t, d, "c", "knows", "a"),
	}

	require.NoError(t, qs.InsertBatch(ctx, quads, 2))

	for _, q := range quads {
		ok, err := qs.Contains(ctx, q)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	all, err := qs.Scan(ctx, term.Term{}, term.Term{}, term.Term{}, term.Term{})
	require.NoError(t, err)
	assert.Len(t, all, len(quads))
}

func TestInsertBatchEmptyIsNoop(t *testing.T) {
	qs, _ := newTestQuadStore(t)
	require.NoError(t, qs.InsertBatch(context.Background(), nil, 4))
}
