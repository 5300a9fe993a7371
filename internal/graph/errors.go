// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import "errors"

// Sentinel errors for store operations. Callers match them with errors.Is.
var (
	// ErrInvalidInput is returned for a blank root label.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a node id or label does not resolve.
	ErrNotFound = errors.New("concept not found")

	// ErrOutOfRange is returned when a leaf number is outside the current list.
	ErrOutOfRange = errors.New("selection out of range")

	// ErrAlreadyExpanded is returned when expanding an internal node.
	ErrAlreadyExpanded = errors.New("concept already expanded")

	// ErrCannotPruneRoot is returned when the prune target is the root.
	ErrCannotPruneRoot = errors.New("cannot prune the root concept")

	// ErrDepthLimit is returned when expansion would exceed the depth limit.
	ErrDepthLimit = errors.New("maximum depth reached")
)
