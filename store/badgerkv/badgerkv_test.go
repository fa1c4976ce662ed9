package badgerkv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/store/badgerkv"
	"github.com/rdfgraph/engine/store/storetest"
)

func TestBadgerkvConformance(t *testing.T) {
	db, err := badgerkv.Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	storetest.RunBackend(t, db)
}
