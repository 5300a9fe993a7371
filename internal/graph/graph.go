// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph owns the in-memory concept tree for one exploration
// session. The Store holds every node in an arena keyed by id; parent and
// child references are ids, not pointers, so subtree removal cannot leave
// dangling links. A node with zero children is a leaf and eligible for
// expansion; a node with children is internal and cannot be expanded
// again. The Store is not safe for concurrent use — the session loop is
// its only caller.
package graph

import (
	"strings"
)

// NodeID identifies a concept node within one session. Ids are assigned
// from a monotonically increasing counter and are never reused, even
// after the node is pruned.
type NodeID int

// Node is one concept in the tree.
type Node struct {
	ID       NodeID
	Label    string
	Depth    int
	Parent   NodeID // 0 for the root
	Children []NodeID
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// Store owns all nodes of a single rooted concept tree.
type Store struct {
	nodes  map[NodeID]*Node
	root   NodeID
	nextID NodeID
}

// New creates a store holding a single root node with the given label.
// The label must contain at least one non-whitespace character.
func New(rootLabel string) (*Store, error) {
	label := strings.TrimSpace(rootLabel)
	if label == "" {
		return nil, ErrInvalidInput
	}

	s := &Store{
		nodes:  make(map[NodeID]*Node),
		nextID: 1,
	}
	s.root = s.newNode(label, 0, 0)
	return s, nil
}

func (s *Store) newNode(label string, depth int, parent NodeID) NodeID {
	id := s.nextID
	s.nextID++
	s.nodes[id] = &Node{
		ID:     id,
		Label:  label,
		Depth:  depth,
		Parent: parent,
	}
	return id
}

// Root returns the id of the root node.
func (s *Store) Root() NodeID { return s.root }

// Len returns the number of nodes currently in the tree.
func (s *Store) Len() int { return len(s.nodes) }

// EdgeCount returns the number of parent→child edges.
func (s *Store) EdgeCount() int { return len(s.nodes) - 1 }

// Node returns a copy of the node with the given id.
func (s *Store) Node(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return s.copyNode(n), true
}

func (s *Store) copyNode(n *Node) Node {
	out := *n
	out.Children = append([]NodeID(nil), n.Children...)
	return out
}

// CanExpand reports whether the node may be expanded under the given
// depth limit (0 or negative = unlimited). It performs the same checks
// as Expand without mutating, so the session can reject a selection
// before contacting the suggestion backend.
func (s *Store) CanExpand(id NodeID, maxDepth int) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrNotFound
	}
	if len(n.Children) > 0 {
		return ErrAlreadyExpanded
	}
	if maxDepth > 0 && n.Depth+1 > maxDepth {
		return ErrDepthLimit
	}
	return nil
}

// Expand attaches one child per suggestion to the leaf with the given id
// and returns the new ids in input order. Suggestions that are empty
// after trimming are skipped. If every suggestion is empty the node is
// left untouched — it stays a leaf and can be retried; this is a
// documented policy, not an error. Expand is all-or-nothing: any
// validation failure creates no nodes.
func (s *Store) Expand(id NodeID, suggestions []string, maxDepth int) ([]NodeID, error) {
	if err := s.CanExpand(id, maxDepth); err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(suggestions))
	for _, raw := range suggestions {
		if label := strings.TrimSpace(raw); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return nil, nil
	}

	parent := s.nodes[id]
	created := make([]NodeID, 0, len(labels))
	for _, label := range labels {
		child := s.newNode(label, parent.Depth+1, id)
		parent.Children = append(parent.Children, child)
		created = append(created, child)
	}
	return created, nil
}

// Prune removes the node and its entire descendant subtree in one step
// and returns the number of nodes removed. The root cannot be pruned.
func (s *Store) Prune(id NodeID) (int, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, ErrNotFound
	}
	if id == s.root {
		return 0, ErrCannotPruneRoot
	}

	removed := s.subtreeIDs(id)
	for _, rid := range removed {
		delete(s.nodes, rid)
	}

	parent := s.nodes[n.Parent]
	for i, cid := range parent.Children {
		if cid == id {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	return len(removed), nil
}

// subtreeIDs collects id and all its descendants in pre-order.
func (s *Store) subtreeIDs(id NodeID) []NodeID {
	ids := []NodeID{id}
	for _, child := range s.nodes[id].Children {
		ids = append(ids, s.subtreeIDs(child)...)
	}
	return ids
}

// ResolveLabel finds a node by exact label match (case-sensitive, both
// sides trimmed). When several nodes share the label, the first one found
// by a pre-order traversal wins; this tie-break is deliberate so prune
// targets resolve deterministically.
func (s *Store) ResolveLabel(label string) (NodeID, error) {
	want := strings.TrimSpace(label)
	found := NodeID(0)
	s.walk(func(n *Node) bool {
		if found == 0 && n.Label == want {
			found = n.ID
		}
		return found == 0
	})
	if found == 0 {
		return 0, ErrNotFound
	}
	return found, nil
}

// Path returns the labels from the root down to the given node.
func (s *Store) Path(id NodeID) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	var labels []string
	for {
		labels = append(labels, n.Label)
		if n.Parent == 0 {
			break
		}
		n = s.nodes[n.Parent]
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels, nil
}

// Snapshot returns a pre-order copy of every node. The copies share
// nothing with the store, so exporters can hold them across mutations.
func (s *Store) Snapshot() []Node {
	out := make([]Node, 0, len(s.nodes))
	s.walk(func(n *Node) bool {
		out = append(out, s.copyNode(n))
		return true
	})
	return out
}

// walk visits nodes in pre-order (root first, children in arrival order)
// until fn returns false.
func (s *Store) walk(fn func(*Node) bool) {
	stack := []NodeID{s.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := s.nodes[id]
		if !fn(n) {
			return
		}
		// Push children reversed so the leftmost child is visited first.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
