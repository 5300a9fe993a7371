// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "explore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndHistory(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	require.NoError(t, j.BeginSession(ctx, "Time", 2))
	require.NoError(t, j.RecordExpand(ctx, "Time", []string{"Entropy", "Memory"}))
	require.NoError(t, j.RecordPrune(ctx, "Memory", 1))
	require.NoError(t, j.RecordSave(ctx, "time_tree.txt", "time_graph.graphml"))

	events, err := j.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, KindSave, events[0].Kind)
	assert.Equal(t, KindPrune, events[1].Kind)
	assert.Equal(t, KindExpand, events[2].Kind)

	expand := events[2]
	assert.Equal(t, "Time", expand.RootLabel)
	assert.Equal(t, "Time", expand.Label)
	assert.Contains(t, expand.Detail, "Entropy")
	assert.Equal(t, 1, expand.Seq)
	assert.False(t, expand.CreatedAt.IsZero())

	assert.Equal(t, "1", events[1].Detail)
}

func TestJournalHistoryLimit(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	require.NoError(t, j.BeginSession(ctx, "Time", 0))
	for i := 0; i < 5; i++ {
		require.NoError(t, j.RecordExpand(ctx, "Time", []string{"X"}))
	}

	events, err := j.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 5, events[0].Seq)
}

func TestJournalRecordWithoutSession(t *testing.T) {
	j := openJournal(t)
	err := j.RecordExpand(context.Background(), "Time", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active session")
}

func TestJournalReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "explore.db")

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.BeginSession(ctx, "Time", 0))
	require.NoError(t, j.RecordExpand(ctx, "Time", []string{"Entropy"}))
	require.NoError(t, j.Close())

	// Events from earlier sessions survive a reopen.
	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	events, err := j2.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Time", events[0].RootLabel)
}
