package app

import (
	"github.com/dshills/inkline/internal/layout"
	"github.com/dshills/inkline/internal/render"
	"github.com/dshills/inkline/internal/render/core"
	"github.com/dshills/inkline/internal/textmodel"
	"github.com/dshills/inkline/internal/wrap"
)

// textContent adapts a text model to the layout tree's content
// interface, wrapping each logical line at the width it is given.
type textContent struct {
	text     *textmodel.Text
	tabWidth int
}

func (tc textContent) Lines(width int) [][]core.Cell {
	if width <= 0 {
		return nil
	}
	var rows [][]core.Cell
	for i, line := range tc.text.Lines() {
		for seg := range wrap.Wrap(line, width, 0, tc.tabWidth) {
			rows = append(rows, tc.text.CellsForSegment(i, seg, tc.tabWidth, 0))
		}
	}
	return rows
}

// Compositor arranges several text panes with a layout tree and draws
// the result through one diff renderer. Panes can be added, hidden,
// and removed between frames.
type Compositor struct {
	tree   *layout.Tree
	root   layout.NodeID
	drawer *render.Drawer
}

// NewCompositor creates a compositor whose root arranges panes in the
// given orientation.
func NewCompositor(sink render.Sink, width, height int, orient layout.Orientation) *Compositor {
	tree := layout.NewTree()
	return &Compositor{
		tree:   tree,
		root:   tree.AddLayout(orient, layout.Constraint{Kind: layout.Fill}),
		drawer: render.NewDrawer(sink, width, height),
	}
}

// Tree exposes the underlying layout tree for nested arrangements.
func (c *Compositor) Tree() *layout.Tree {
	return c.tree
}

// AddPane attaches a text region under the root and returns its node
// id.
func (c *Compositor) AddPane(text *textmodel.Text, constraint layout.Constraint, tabWidth int) layout.NodeID {
	id := c.tree.AddWidget(textContent{text: text, tabWidth: tabWidth}, constraint)
	// Attaching a freshly created widget under the root cannot fail.
	_ = c.tree.Attach(c.root, id)
	return id
}

// RemovePane deletes the pane node. Children of layout nodes removed
// this way are orphaned, not destroyed.
func (c *Compositor) RemovePane(id layout.NodeID) error {
	return c.tree.Remove(id)
}

// HidePane toggles a pane without removing it.
func (c *Compositor) HidePane(id layout.NodeID, hidden bool) error {
	return c.tree.SetHidden(id, hidden)
}

// Resize adopts new terminal dimensions.
func (c *Compositor) Resize(width, height int) {
	c.drawer.Resize(width, height)
}

// Render refreshes the layout at the current size, composes every
// visible pane, and flushes the frame difference to the sink.
// It returns the occupied height in rows.
func (c *Compositor) Render() (int, error) {
	width, height := c.drawer.Size()
	if _, err := c.tree.Refresh(c.root, width, height); err != nil {
		return 0, err
	}
	rows, err := c.tree.Render(c.root)
	if err != nil {
		return 0, err
	}

	for y, row := range rows {
		if y >= height {
			break
		}
		x := 0
		for _, cell := range row {
			if cell.IsContinuation() {
				continue
			}
			if x+cell.Width > width {
				break
			}
			c.drawer.SetCell(x, y, cell)
			x += cell.Width
		}
	}

	if err := c.drawer.Flush(false); err != nil {
		return 0, err
	}
	return c.drawer.ContentHeight(), nil
}
