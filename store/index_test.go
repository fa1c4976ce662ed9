package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfgraph/engine/term"
)

func TestEncodeDecodeKeyRoundTrip(t *testing.T) {
	ids := [4]uint64{1, 2, 3, 4}
	for _, ord := range allOrderings {
		key := encodeKey(ord, ids)
		require.Len(t, key, 32)
		got := decodeIDs(ord, key)
		require.Equal(t, ids, got, "ordering %s must round-trip", ord)
	}
}

func TestOrderingsAreDistinctPermutations(t *testing.T) {
	seen := make(map[[4]term.Direction]Ordering)
	for _, ord := range allOrderings {
		dirs := ord.dirs()
		if prev, ok := seen[dirs]; ok {
			t.Fatalf("orderings %s and %s encode identical layouts", ord, prev)
		}
		seen[dirs] = ord
	}
}

func TestChooseOrderingPrefersLongestBoundPrefix(t *testing.T) {
	enabled := DefaultEnabledOrderings()

	// Subject and predicate bound, object and graph free: SPOG scores 2.
	ord := chooseOrdering(enabled, [4]bool{true, true, false, false})
	require.Equal(t, SPOG, ord)

	// Only predicate bound: POGS scores 1, nothing scores higher.
	ord = chooseOrdering(enabled, [4]bool{false, true, false, false})
	require.Equal(t, POGS, ord)
}

func TestChooseOrderingTieBreaksByPriority(t *testing.T) {
	enabled := DefaultEnabledOrderings()
	// Fully unbound pattern: every ordering scores 0; priority picks SPOG.
	ord := chooseOrdering(enabled, [4]bool{false, false, false, false})
	require.Equal(t, SPOG, ord)
}

func TestChooseOrderingRestrictsToEnabledSet(t *testing.T) {
	enabled := map[Ordering]bool{POGS: true}
	ord := chooseOrdering(enabled, [4]bool{true, true, false, false})
	require.Equal(t, POGS, ord, "must fall back to the only enabled ordering")
}
