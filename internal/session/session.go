// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session runs the interactive exploration loop: it reads one
// command at a time, validates it against the current leaf list, calls
// the suggestion backend for expansions, and triggers exports on save
// and exit. Commands are processed strictly one at a time; the store is
// never mutated concurrently.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwentythree/explore/internal/export"
	"github.com/fivetwentythree/explore/internal/graph"
	"github.com/fivetwentythree/explore/internal/suggest"
)

// State is the controller's position in the command cycle.
type State int

const (
	StateRunning State = iota
	StateExpanding
	StatePruning
	StateSaving
	StateTerminated
)

// Journal receives session events. The concrete implementation lives in
// internal/journal; tests supply a stub. A nil Journal disables
// recording.
type Journal interface {
	RecordExpand(ctx context.Context, concept string, children []string) error
	RecordPrune(ctx context.Context, label string, removed int) error
	RecordSave(ctx context.Context, treePath, graphPath string) error
}

// Options configures a Controller.
type Options struct {
	// MaxDepth caps branch depth; zero or negative means unlimited.
	MaxDepth int

	// OutputDir is where save files and the session script are written.
	OutputDir string

	// Journal records events; nil disables journaling.
	Journal Journal

	// Script holds commands replayed before interactive input is read.
	Script []string

	// Input is the command source (stdin in production).
	Input io.Reader

	// Output receives all rendering and status text.
	Output io.Writer
}

// Controller drives one exploration session over a single store.
type Controller struct {
	store   *graph.Store
	backend suggest.Backend
	opts    Options
	state   State

	// recorded accumulates accepted commands for the session script.
	recorded []string
}

// New builds a controller. The store must already hold its root node.
func New(store *graph.Store, backend suggest.Backend, opts Options) *Controller {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	return &Controller{
		store:   store,
		backend: backend,
		opts:    opts,
		state:   StateRunning,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// Run processes commands until exit, end of input, or context
// cancellation. All three paths force a final save before returning.
func (c *Controller) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.opts.Input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	script := c.opts.Script

	for c.state != StateTerminated {
		c.render()

		var line string
		if len(script) > 0 {
			line, script = script[0], script[1:]
			fmt.Fprintf(c.opts.Output, "> %s (replayed)\n", line)
		} else {
			fmt.Fprint(c.opts.Output, "> ")
			select {
			case <-ctx.Done():
				c.terminate(context.Background())
				return nil
			case l, ok := <-lines:
				if !ok {
					c.terminate(ctx)
					return nil
				}
				line = l
			}
		}

		c.dispatch(ctx, line)
	}
	return nil
}

// dispatch interprets one command line. Unrecognized input is reported
// and the state stays Running with no mutation.
func (c *Controller) dispatch(ctx context.Context, line string) {
	cmd := strings.TrimSpace(line)
	lower := strings.ToLower(cmd)

	switch {
	case cmd == "":
		return
	case lower == "exit":
		c.terminate(ctx)
	case lower == "save":
		c.save(ctx)
		c.recorded = append(c.recorded, "save")
	case strings.HasPrefix(lower, "prune "):
		c.prune(ctx, strings.TrimSpace(cmd[len("prune "):]))
	default:
		if n, err := strconv.Atoi(cmd); err == nil && n > 0 {
			c.expand(ctx, n)
			return
		}
		c.reportError("Invalid command. Enter a leaf number, or: prune <label>, save, exit.")
	}
}

// expand resolves a leaf number, asks the backend for related concepts,
// and attaches them. The depth limit is checked before the backend is
// contacted so a rejected selection costs no API call. A backend failure
// leaves the tree untouched; the user may re-issue the same number.
func (c *Controller) expand(ctx context.Context, number int) {
	id, err := c.store.ResolveLeaf(number)
	if err != nil {
		c.reportError("No leaf numbered %d in the current list.", number)
		return
	}
	if err := c.store.CanExpand(id, c.opts.MaxDepth); err != nil {
		c.reportGraphErr(err)
		return
	}

	node, _ := c.store.Node(id)
	path, err := c.store.Path(id)
	if err != nil {
		c.reportGraphErr(err)
		return
	}

	c.state = StateExpanding
	defer func() { c.state = StateRunning }()

	c.reportDim("Asking for concepts related to %q...", node.Label)
	suggestions, err := c.backend.Suggest(ctx, node.Label, path)
	if err != nil {
		c.reportError("Suggestion service failed: %v", err)
		return
	}

	suggestions = suggest.FilterSeen(suggestions, c.seenLabels())

	created, err := c.store.Expand(id, suggestions, c.opts.MaxDepth)
	if err != nil {
		c.reportGraphErr(err)
		return
	}
	if len(created) == 0 {
		c.reportError("No new concepts for %q; the leaf is unchanged, try again.", node.Label)
		return
	}

	labels := make([]string, len(created))
	for i, cid := range created {
		child, _ := c.store.Node(cid)
		labels[i] = child.Label
	}
	c.reportOK("Found %d new concepts.", len(created))

	if c.opts.Journal != nil {
		if err := c.opts.Journal.RecordExpand(ctx, node.Label, labels); err != nil {
			c.reportDim("warning: journal write failed: %v", err)
		}
	}
	c.recorded = append(c.recorded, strconv.Itoa(number))
}

// prune resolves the label (first pre-order match) and removes that
// subtree.
func (c *Controller) prune(ctx context.Context, label string) {
	c.state = StatePruning
	defer func() { c.state = StateRunning }()

	if label == "" {
		c.reportError("Usage: prune <label>")
		return
	}

	id, err := c.store.ResolveLabel(label)
	if err != nil {
		c.reportError("Concept %q not found.", label)
		return
	}

	removed, err := c.store.Prune(id)
	if err != nil {
		c.reportGraphErr(err)
		return
	}
	c.reportOK("Pruned branch %q (%d concepts removed).", label, removed)

	if c.opts.Journal != nil {
		if err := c.opts.Journal.RecordPrune(ctx, label, removed); err != nil {
			c.reportDim("warning: journal write failed: %v", err)
		}
	}
	c.recorded = append(c.recorded, "prune "+label)
}

// save writes both export files from the current snapshot.
func (c *Controller) save(ctx context.Context) {
	prev := c.state
	c.state = StateSaving
	defer func() {
		if c.state == StateSaving {
			c.state = prev
		}
	}()

	treePath, graphPath, err := export.WriteFiles(c.opts.OutputDir, c.store.Snapshot())
	if err != nil {
		c.reportError("Save failed: %v", err)
		return
	}
	c.reportOK("Saved %s and %s.", treePath, graphPath)

	if c.opts.Journal != nil {
		if err := c.opts.Journal.RecordSave(ctx, treePath, graphPath); err != nil {
			c.reportDim("warning: journal write failed: %v", err)
		}
	}
}

// terminate performs the forced save, writes the session script, and
// moves to Terminated.
func (c *Controller) terminate(ctx context.Context) {
	c.save(ctx)
	c.writeScript()
	c.state = StateTerminated
}

// writeScript saves the accepted commands so the session can be re-run.
func (c *Controller) writeScript() {
	root, _ := c.store.Node(c.store.Root())
	path := filepath.Join(c.opts.OutputDir, export.Slug(root.Label)+"_session.yaml")
	s := &Script{
		RootConcept: root.Label,
		MaxDepth:    c.opts.MaxDepth,
		Commands:    c.recorded,
		SavedAt:     time.Now(),
	}
	if err := WriteScript(path, s); err != nil {
		c.reportDim("warning: session script write failed: %v", err)
		return
	}
	c.reportDim("Session script written to %s.", path)
}

// seenLabels returns the lower-cased set of every label in the tree.
func (c *Controller) seenLabels() map[string]bool {
	snapshot := c.store.Snapshot()
	labels := make([]string, len(snapshot))
	for i, n := range snapshot {
		labels[i] = n.Label
	}
	return suggest.SeenSet(labels)
}
