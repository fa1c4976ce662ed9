package leveldbkv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store/leveldbkv"
	"github.com/rdfgraph/engine/store/storetest"
)

func TestLeveldbkvConformance(t *testing.T) {
	db, err := leveldbkv.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	storetest.RunBackend(t, db)
}
