package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID_Sortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 200)
	for i := range ids {
		ids[i] = NewRunID()
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := map[string]bool{}
	for _, id := range ids {
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestCreated(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)
	got, err := Created(At(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))

	_, err = Created("not-a-ulid")
	assert.Error(t, err)
}
