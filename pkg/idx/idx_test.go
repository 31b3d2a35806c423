package idx

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndSorted(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		require.True(t, Valid(id))
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	require.True(t, slices.IsSorted(ids), "monotonic ids must sort in generation order")
}
