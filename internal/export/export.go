// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes a graph snapshot to the two save formats:
// a plain indented text tree and a GraphML document that graph tools
// (Gephi, Cytoscape) open directly. Both renderings are pure functions
// of the snapshot — the same snapshot always produces identical bytes.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwentythree/explore/internal/graph"
)

// indentUnit is the per-depth indentation of the text tree.
const indentUnit = "  "

// Slug returns a filesystem-safe filename stem for a root label:
// lower-cased, with every run of non-alphanumeric characters collapsed
// to a single underscore.
func Slug(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return "concepts"
	}
	return b.String()
}

// TextTree renders the snapshot as one label per line, indented by a
// fixed unit per depth level, in pre-order.
func TextTree(snapshot []graph.Node) string {
	var b strings.Builder
	for _, n := range snapshot {
		b.WriteString(strings.Repeat(indentUnit, n.Depth))
		b.WriteString(n.Label)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFiles writes <slug>_tree.txt and <slug>_graph.graphml into dir,
// overwriting any previous save. It returns the two paths written. The
// slug is derived from the root label, which is the label of the first
// snapshot node.
func WriteFiles(dir string, snapshot []graph.Node) (treePath, graphPath string, err error) {
	if len(snapshot) == 0 {
		return "", "", fmt.Errorf("empty snapshot")
	}

	slug := Slug(snapshot[0].Label)
	treePath = filepath.Join(dir, slug+"_tree.txt")
	graphPath = filepath.Join(dir, slug+"_graph.graphml")

	if err := os.WriteFile(treePath, []byte(TextTree(snapshot)), 0o644); err != nil {
		return "", "", fmt.Errorf("writing text tree: %w", err)
	}

	doc, err := GraphML(snapshot)
	if err != nil {
		return "", "", fmt.Errorf("rendering graphml: %w", err)
	}
	if err := os.WriteFile(graphPath, doc, 0o644); err != nil {
		return "", "", fmt.Errorf("writing graphml: %w", err)
	}

	return treePath, graphPath, nil
}
