// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
		errIs error
	}{
		{name: "plain label", label: "Creativity", want: "Creativity"},
		{name: "label is trimmed", label: "  Time  ", want: "Time"},
		{name: "empty label", label: "", errIs: ErrInvalidInput},
		{name: "whitespace only", label: " \t\n ", errIs: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.label)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)

			root, ok := s.Node(s.Root())
			require.True(t, ok)
			assert.Equal(t, tt.want, root.Label)
			assert.Equal(t, 0, root.Depth)
			assert.Equal(t, NodeID(0), root.Parent)
			assert.True(t, root.IsLeaf())
			assert.Equal(t, 1, s.Len())
		})
	}
}

// timeTree builds the tree used throughout: root "Time" expanded with
// four concepts, then "Memory" expanded with two more.
func timeTree(t *testing.T) *Store {
	t.Helper()
	s, err := New("Time")
	require.NoError(t, err)

	_, err = s.Expand(s.Root(), []string{"Entropy", "Memory", "Relativity", "Perception"}, 2)
	require.NoError(t, err)

	memory, err := s.ResolveLabel("Memory")
	require.NoError(t, err)
	_, err = s.Expand(memory, []string{"Nostalgia", "Trauma"}, 2)
	require.NoError(t, err)

	return s
}

func TestExpand(t *testing.T) {
	t.Run("creates children in input order", func(t *testing.T) {
		s, err := New("Time")
		require.NoError(t, err)

		ids, err := s.Expand(s.Root(), []string{"Entropy", "Memory", "Relativity", "Perception"}, 0)
		require.NoError(t, err)
		require.Len(t, ids, 4)

		root, _ := s.Node(s.Root())
		assert.Equal(t, ids, root.Children)
		assert.False(t, root.IsLeaf())

		wantLabels := []string{"Entropy", "Memory", "Relativity", "Perception"}
		for i, id := range ids {
			child, ok := s.Node(id)
			require.True(t, ok)
			assert.Equal(t, wantLabels[i], child.Label)
			assert.Equal(t, root.Depth+1, child.Depth)
			assert.Equal(t, s.Root(), child.Parent)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		s, _ := New("Time")
		_, err := s.Expand(NodeID(99), []string{"X"}, 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("internal node refuses re-expansion", func(t *testing.T) {
		s := timeTree(t)
		memory, err := s.ResolveLabel("Memory")
		require.NoError(t, err)
		_, err = s.Expand(memory, []string{"Again"}, 0)
		assert.ErrorIs(t, err, ErrAlreadyExpanded)
	})

	t.Run("skips blank suggestions", func(t *testing.T) {
		s, _ := New("Time")
		ids, err := s.Expand(s.Root(), []string{"  Entropy ", "", "   ", "Memory"}, 0)
		require.NoError(t, err)
		require.Len(t, ids, 2)

		first, _ := s.Node(ids[0])
		second, _ := s.Node(ids[1])
		assert.Equal(t, "Entropy", first.Label)
		assert.Equal(t, "Memory", second.Label)
	})

	t.Run("all-blank suggestions leave the node a leaf", func(t *testing.T) {
		s, _ := New("Time")
		ids, err := s.Expand(s.Root(), []string{"", "  ", "\t"}, 0)
		require.NoError(t, err)
		assert.Empty(t, ids)

		root, _ := s.Node(s.Root())
		assert.True(t, root.IsLeaf(), "node must stay expandable after an empty batch")

		// The retry succeeds.
		ids, err = s.Expand(s.Root(), []string{"Entropy"}, 0)
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})
}

func TestExpandDepthLimit(t *testing.T) {
	s := timeTree(t)

	// Nostalgia sits at depth 2, the limit: expansion is refused and
	// nothing is created.
	nostalgia, err := s.ResolveLabel("Nostalgia")
	require.NoError(t, err)

	before := s.Len()
	_, err = s.Expand(nostalgia, []string{"Childhood"}, 2)
	assert.ErrorIs(t, err, ErrDepthLimit)
	assert.Equal(t, before, s.Len())
	assert.ErrorIs(t, s.CanExpand(nostalgia, 2), ErrDepthLimit)

	// A leaf one level above the limit expands and its children land
	// exactly on it.
	entropy, err := s.ResolveLabel("Entropy")
	require.NoError(t, err)
	ids, err := s.Expand(entropy, []string{"Heat Death"}, 2)
	require.NoError(t, err)
	child, _ := s.Node(ids[0])
	assert.Equal(t, 2, child.Depth)

	// Zero means unlimited.
	require.NoError(t, s.CanExpand(nostalgia, 0))
}

func TestPrune(t *testing.T) {
	t.Run("removes the whole subtree and nothing else", func(t *testing.T) {
		s := timeTree(t)
		require.Equal(t, 7, s.Len())

		memory, err := s.ResolveLabel("Memory")
		require.NoError(t, err)

		removed, err := s.Prune(memory)
		require.NoError(t, err)
		assert.Equal(t, 3, removed, "Memory, Nostalgia, Trauma")
		assert.Equal(t, 4, s.Len())

		_, err = s.ResolveLabel("Nostalgia")
		assert.ErrorIs(t, err, ErrNotFound)

		root, _ := s.Node(s.Root())
		assert.Len(t, root.Children, 3)
		assert.False(t, root.IsLeaf(), "root stays internal with remaining children")

		leaves := s.Leaves()
		require.Len(t, leaves, 3)
		assert.Equal(t, "Entropy", leaves[0].Label)
		assert.Equal(t, "Relativity", leaves[1].Label)
		assert.Equal(t, "Perception", leaves[2].Label)
	})

	t.Run("root is not prunable", func(t *testing.T) {
		s := timeTree(t)
		_, err := s.Prune(s.Root())
		assert.ErrorIs(t, err, ErrCannotPruneRoot)
		assert.Equal(t, 7, s.Len())
	})

	t.Run("unknown id", func(t *testing.T) {
		s := timeTree(t)
		_, err := s.Prune(NodeID(404))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("parent with no remaining children becomes a leaf again", func(t *testing.T) {
		s := timeTree(t)
		memory, _ := s.ResolveLabel("Memory")

		nostalgia, _ := s.ResolveLabel("Nostalgia")
		trauma, _ := s.ResolveLabel("Trauma")
		_, err := s.Prune(nostalgia)
		require.NoError(t, err)
		_, err = s.Prune(trauma)
		require.NoError(t, err)

		node, _ := s.Node(memory)
		assert.True(t, node.IsLeaf())
		require.NoError(t, s.CanExpand(memory, 2))
	})

	t.Run("ids are never reused after pruning", func(t *testing.T) {
		s := timeTree(t)
		memory, _ := s.ResolveLabel("Memory")

		var maxBefore NodeID
		for _, n := range s.Snapshot() {
			if n.ID > maxBefore {
				maxBefore = n.ID
			}
		}

		_, err := s.Prune(memory)
		require.NoError(t, err)

		entropy, _ := s.ResolveLabel("Entropy")
		ids, err := s.Expand(entropy, []string{"Heat Death", "Arrow of Time"}, 0)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Greater(t, id, maxBefore)
		}
	})
}

func TestResolveLabel(t *testing.T) {
	t.Run("exact match after trimming", func(t *testing.T) {
		s := timeTree(t)
		id, err := s.ResolveLabel("  Relativity ")
		require.NoError(t, err)
		n, _ := s.Node(id)
		assert.Equal(t, "Relativity", n.Label)
	})

	t.Run("case sensitive", func(t *testing.T) {
		s := timeTree(t)
		_, err := s.ResolveLabel("relativity")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate labels resolve to the first pre-order match", func(t *testing.T) {
		s, err := New("Seed")
		require.NoError(t, err)
		top, err := s.Expand(s.Root(), []string{"Left", "Right"}, 0)
		require.NoError(t, err)

		leftGrowth, err := s.Expand(top[0], []string{"Growth"}, 0)
		require.NoError(t, err)
		_, err = s.Expand(top[1], []string{"Growth"}, 0)
		require.NoError(t, err)

		// The left branch comes first in pre-order, every time.
		for i := 0; i < 5; i++ {
			id, err := s.ResolveLabel("Growth")
			require.NoError(t, err)
			assert.Equal(t, leftGrowth[0], id)
		}
	})
}

func TestLeaves(t *testing.T) {
	s := timeTree(t)

	leaves := s.Leaves()
	require.Len(t, leaves, 5)

	want := []string{"Entropy", "Nostalgia", "Trauma", "Relativity", "Perception"}
	for i, leaf := range leaves {
		assert.Equal(t, i+1, leaf.Number)
		assert.Equal(t, want[i], leaf.Label)
	}

	// Every leaf really has zero children; every internal node is absent.
	byID := make(map[NodeID]bool)
	for _, leaf := range leaves {
		byID[leaf.ID] = true
	}
	for _, n := range s.Snapshot() {
		assert.Equal(t, n.IsLeaf(), byID[n.ID])
	}
}

func TestResolveLeaf(t *testing.T) {
	s := timeTree(t)

	id, err := s.ResolveLeaf(2)
	require.NoError(t, err)
	n, _ := s.Node(id)
	assert.Equal(t, "Nostalgia", n.Label)

	for _, bad := range []int{0, -1, 6, 100} {
		_, err := s.ResolveLeaf(bad)
		assert.ErrorIs(t, err, ErrOutOfRange, "number %d", bad)
	}
}

func TestSnapshot(t *testing.T) {
	s := timeTree(t)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 7)

	// Pre-order: root, then children left to right, depth first.
	wantLabels := []string{"Time", "Entropy", "Memory", "Nostalgia", "Trauma", "Relativity", "Perception"}
	for i, n := range snapshot {
		assert.Equal(t, wantLabels[i], n.Label)
	}

	// Depth invariant holds for every non-root node.
	byID := make(map[NodeID]Node)
	for _, n := range snapshot {
		byID[n.ID] = n
	}
	for _, n := range snapshot {
		if n.Parent != 0 {
			assert.Equal(t, byID[n.Parent].Depth+1, n.Depth)
		}
	}

	// Snapshot copies are detached from the store.
	snapshot[0].Children[0] = NodeID(999)
	root, _ := s.Node(s.Root())
	assert.NotEqual(t, NodeID(999), root.Children[0])
}

func TestPath(t *testing.T) {
	s := timeTree(t)

	trauma, err := s.ResolveLabel("Trauma")
	require.NoError(t, err)

	path, err := s.Path(trauma)
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Memory", "Trauma"}, path)

	_, err = s.Path(NodeID(999))
	assert.ErrorIs(t, err, ErrNotFound)
}
