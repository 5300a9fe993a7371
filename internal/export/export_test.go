// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwentythree/explore/internal/graph"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Creativity", "creativity"},
		{"Time", "time"},
		{"Quantum Foam", "quantum_foam"},
		{"Art & Science!", "art_science"},
		{"  spaced  out  ", "spaced_out"},
		{"C3-PO", "c3_po"},
		{"!!!", "concepts"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.label), "label %q", tt.label)
	}
}

// sampleSnapshot builds the snapshot of a small exploration tree.
func sampleSnapshot(t *testing.T) []graph.Node {
	t.Helper()
	s, err := graph.New("Time")
	require.NoError(t, err)
	top, err := s.Expand(s.Root(), []string{"Entropy", "Memory"}, 0)
	require.NoError(t, err)
	_, err = s.Expand(top[1], []string{"Nostalgia"}, 0)
	require.NoError(t, err)
	return s.Snapshot()
}

func TestTextTree(t *testing.T) {
	got := TextTree(sampleSnapshot(t))
	want := "Time\n" +
		"  Entropy\n" +
		"  Memory\n" +
		"    Nostalgia\n"
	assert.Equal(t, want, got)
}

func TestTextTreeRootOnly(t *testing.T) {
	s, err := graph.New("Creativity")
	require.NoError(t, err)
	assert.Equal(t, "Creativity\n", TextTree(s.Snapshot()))
}

func TestGraphML(t *testing.T) {
	snapshot := sampleSnapshot(t)

	doc, err := GraphML(snapshot)
	require.NoError(t, err)

	// The document must parse as the GraphML structure it claims to be.
	var parsed graphmlDoc
	require.NoError(t, xml.Unmarshal(doc, &parsed))

	assert.Equal(t, graphmlNS, parsed.XMLNS)
	assert.Equal(t, "directed", parsed.Graph.EdgeDefault)
	require.Len(t, parsed.Keys, 2)
	assert.Equal(t, "label", parsed.Keys[0].AttrName)
	assert.Equal(t, "depth", parsed.Keys[1].AttrName)

	require.Len(t, parsed.Graph.Nodes, 4)
	require.Len(t, parsed.Graph.Edges, 3)

	// First node is the root with its label and depth attributes.
	root := parsed.Graph.Nodes[0]
	assert.Equal(t, "n1", root.ID)
	require.Len(t, root.Data, 2)
	assert.Equal(t, "Time", root.Data[0].Value)
	assert.Equal(t, "0", root.Data[1].Value)

	// Every edge joins a parent to its child.
	assert.Equal(t, "n1", parsed.Graph.Edges[0].Source)
	assert.Equal(t, "n2", parsed.Graph.Edges[0].Target)
}

func TestGraphMLRootOnly(t *testing.T) {
	s, err := graph.New("Creativity")
	require.NoError(t, err)

	doc, err := GraphML(s.Snapshot())
	require.NoError(t, err)

	var parsed graphmlDoc
	require.NoError(t, xml.Unmarshal(doc, &parsed))
	assert.Len(t, parsed.Graph.Nodes, 1)
	assert.Empty(t, parsed.Graph.Edges)
}

func TestExportIdempotence(t *testing.T) {
	snapshot := sampleSnapshot(t)

	first, err := GraphML(snapshot)
	require.NoError(t, err)
	second, err := GraphML(snapshot)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same snapshot must produce identical bytes")

	assert.Equal(t, TextTree(snapshot), TextTree(snapshot))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	snapshot := sampleSnapshot(t)

	treePath, graphPath, err := WriteFiles(dir, snapshot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "time_tree.txt"), treePath)
	assert.Equal(t, filepath.Join(dir, "time_graph.graphml"), graphPath)

	tree, err := os.ReadFile(treePath)
	require.NoError(t, err)
	assert.Equal(t, TextTree(snapshot), string(tree))

	// A second save overwrites in place.
	_, _, err = WriteFiles(dir, snapshot)
	require.NoError(t, err)

	_, _, err = WriteFiles(dir, nil)
	assert.Error(t, err)
}
