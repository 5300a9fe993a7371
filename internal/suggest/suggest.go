// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suggest is the boundary to the external generative service
// that proposes related concepts for a leaf. The session depends only on
// the Backend interface; tests supply a mock.
package suggest

import "context"

// Backend proposes related concepts for one leaf. Implementations make
// exactly one attempt per call — retry policy belongs to the user, who
// re-issues the selection.
type Backend interface {
	// Suggest returns 4-5 short concept labels related to concept, given
	// the exploration path from the root (path includes concept as its
	// last element's parent chain; concept itself is passed separately).
	Suggest(ctx context.Context, concept string, path []string) ([]string, error)
}

// FilterSeen drops suggestions whose lower-cased trimmed form is already
// present in seen. The session passes the lower-cased set of every label
// currently in the tree so the model's repeats never attach twice;
// pruning a branch releases its labels for reuse.
func FilterSeen(suggestions []string, seen map[string]bool) []string {
	var out []string
	for _, s := range suggestions {
		if s == "" {
			continue
		}
		if seen[normalize(s)] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SeenSet builds the lower-cased label set FilterSeen expects.
func SeenSet(labels []string) map[string]bool {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		seen[normalize(l)] = true
	}
	return seen
}
