// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

// Leaf is one entry in the numbered leaf list shown at the prompt.
type Leaf struct {
	Number int // 1-based position in pre-order
	ID     NodeID
	Label  string
	Depth  int
}

// Leaves returns the current leaves in pre-order with 1-based display
// numbers. The numbering is only meaningful until the next mutation;
// callers must re-list after every expand or prune.
func (s *Store) Leaves() []Leaf {
	var leaves []Leaf
	s.walk(func(n *Node) bool {
		if len(n.Children) == 0 {
			leaves = append(leaves, Leaf{
				Number: len(leaves) + 1,
				ID:     n.ID,
				Label:  n.Label,
				Depth:  n.Depth,
			})
		}
		return true
	})
	return leaves
}

// ResolveLeaf maps a display number from the most recent Leaves call to
// a node id.
func (s *Store) ResolveLeaf(number int) (NodeID, error) {
	leaves := s.Leaves()
	if number < 1 || number > len(leaves) {
		return 0, ErrOutOfRange
	}
	return leaves[number-1].ID, nil
}
