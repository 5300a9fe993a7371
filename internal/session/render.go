// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgYellow, color.Bold)
	treeColor   = color.New(color.FgYellow)
	leafColor   = color.New(color.FgCyan)
	statColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// render prints the tree, the stats line, and the numbered leaf prompt.
func (c *Controller) render() {
	w := c.opts.Output

	headerColor.Fprintln(w, "CONCEPT EXPLORER")

	for _, n := range c.store.Snapshot() {
		for i := 0; i < n.Depth; i++ {
			fmt.Fprint(w, "  ")
		}
		if n.IsLeaf() && n.Depth > 0 {
			okColor.Fprintln(w, n.Label)
		} else {
			treeColor.Fprintln(w, n.Label)
		}
	}

	statColor.Fprintf(w, "Concepts: %d | Connections: %d\n", c.store.Len(), c.store.EdgeCount())

	leaves := c.store.Leaves()
	expandable := 0
	fmt.Fprintln(w, "Choose a concept to explore:")
	for _, leaf := range leaves {
		if c.store.CanExpand(leaf.ID, c.opts.MaxDepth) == nil {
			expandable++
		}
		leafColor.Fprintf(w, "  [%d] ", leaf.Number)
		fmt.Fprintln(w, leaf.Label)
	}
	if expandable == 0 {
		dimColor.Fprintln(w, "Every leaf is at the depth limit; prune, save, or exit.")
	}
	fmt.Fprintln(w, "Commands: prune <label>, save, exit")
}

func (c *Controller) reportOK(format string, args ...any) {
	okColor.Fprintf(c.opts.Output, format+"\n", args...)
}

func (c *Controller) reportError(format string, args ...any) {
	errorColor.Fprintf(c.opts.Output, format+"\n", args...)
}

func (c *Controller) reportDim(format string, args ...any) {
	dimColor.Fprintf(c.opts.Output, format+"\n", args...)
}

// reportGraphErr prints a store error in user terms.
func (c *Controller) reportGraphErr(err error) {
	c.reportError("%v", err)
}
