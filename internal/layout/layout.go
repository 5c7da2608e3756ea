// Package layout arranges text regions into a screen area. Nodes live
// in a flat arena keyed by integer id rather than linked by pointers,
// so widgets can be re-parented, hidden, or orphaned without any
// cascading destruction.
package layout

import (
	"errors"

	"github.com/dshills/inkline/internal/render/core"
)

// ErrNodeNotFound is returned when an operation references a node id
// that does not exist in the tree.
var ErrNodeNotFound = errors.New("layout: node not found")

// NodeID identifies a node in the arena. The zero value is never a
// valid id.
type NodeID int

// Orientation controls how a layout node arranges its children.
type Orientation int

const (
	// Vertical stacks children top to bottom.
	Vertical Orientation = iota
	// Horizontal places children side by side.
	Horizontal
)

// ConstraintKind selects how a node claims width inside a horizontal
// layout.
type ConstraintKind int

const (
	// Fill shares the width left over after guarantees are met.
	Fill ConstraintKind = iota
	// Fixed claims exactly Value columns.
	Fixed
	// Min claims at least Value columns plus a share of the remainder.
	Min
	// Max claims a share of the remainder capped at Value columns.
	Max
	// Percent claims Value percent of the layout's width.
	Percent
)

// Constraint describes a node's width claim.
type Constraint struct {
	Kind  ConstraintKind
	Value int
}

// Size is a computed node extent in cells.
type Size struct {
	Width  int
	Height int
}

// Content supplies a widget's cell rows at a given width. The text
// model's wrapped output satisfies this.
type Content interface {
	Lines(width int) [][]core.Cell
}

type nodeKind int

const (
	widgetNode nodeKind = iota
	layoutNode
)

type node struct {
	id       NodeID
	kind     nodeKind
	orient   Orientation
	children []NodeID
	hidden   bool

	content    Content
	constraint Constraint

	// committed holds the geometry of the last real refresh;
	// speculative holds what-if measurements and never leaks into
	// committed.
	committed   Size
	speculative Size
}

func (n *node) size(speculative bool) Size {
	if speculative {
		return n.speculative
	}
	return n.committed
}

func (n *node) setSize(s Size, speculative bool) {
	if speculative {
		n.speculative = s
	} else {
		n.committed = s
	}
}

// Tree is the node arena. It is not safe for concurrent use.
type Tree struct {
	nodes map[NodeID]*node
	next  NodeID
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*node), next: 1}
}

// AddWidget creates a widget node and returns its id.
func (t *Tree) AddWidget(content Content, constraint Constraint) NodeID {
	id := t.next
	t.next++
	t.nodes[id] = &node{id: id, kind: widgetNode, content: content, constraint: constraint}
	return id
}

// AddLayout creates a container node and returns its id.
func (t *Tree) AddLayout(orient Orientation, constraint Constraint) NodeID {
	id := t.next
	t.next++
	t.nodes[id] = &node{id: id, kind: layoutNode, orient: orient, constraint: constraint}
	return id
}

// Attach makes child the last child of parent, detaching it from any
// previous parent first.
func (t *Tree) Attach(parent, child NodeID) error {
	p, ok := t.nodes[parent]
	if !ok || p.kind != layoutNode {
		return ErrNodeNotFound
	}
	if _, ok := t.nodes[child]; !ok {
		return ErrNodeNotFound
	}
	t.detach(child)
	p.children = append(p.children, child)
	return nil
}

// Remove deletes a node from the arena. Its children are orphaned,
// not destroyed: they stay in the arena and simply stop rendering
// until re-attached.
func (t *Tree) Remove(id NodeID) error {
	if _, ok := t.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	t.detach(id)
	delete(t.nodes, id)
	return nil
}

func (t *Tree) detach(id NodeID) {
	for _, n := range t.nodes {
		for i, c := range n.children {
			if c == id {
				n.children = append(n.children[:i], n.children[i+1:]...)
				return
			}
		}
	}
}

// SetHidden toggles a node's visibility. Hidden nodes contribute zero
// size and render nothing.
func (t *Tree) SetHidden(id NodeID, hidden bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	n.hidden = hidden
	return nil
}

// Hidden reports whether the node itself is marked hidden.
func (t *Tree) Hidden(id NodeID) (bool, error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, ErrNodeNotFound
	}
	return n.hidden, nil
}

// Size returns the node's committed geometry from the last Refresh.
func (t *Tree) Size(id NodeID) (Size, error) {
	n, ok := t.nodes[id]
	if !ok {
		return Size{}, ErrNodeNotFound
	}
	return n.committed, nil
}

// Visible reports whether the node would draw anything: a widget is
// visible when it is not hidden and its committed height is nonzero;
// a layout is visible when any descendant widget is. The answer is
// recomputed on every call so it can never go stale.
func (t *Tree) Visible(id NodeID) (bool, error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, ErrNodeNotFound
	}
	return t.visible(n, false), nil
}

func (t *Tree) visible(n *node, speculative bool) bool {
	if n.hidden {
		return false
	}
	if n.kind == widgetNode {
		return n.size(speculative).Height > 0
	}
	for _, c := range n.children {
		child, ok := t.nodes[c]
		if !ok {
			continue
		}
		if t.visible(child, speculative) {
			return true
		}
	}
	return false
}

// Refresh recomputes sizes for the subtree rooted at id and commits
// them. It returns the root's resulting size.
func (t *Tree) Refresh(id NodeID, maxWidth, maxHeight int) (Size, error) {
	return t.refresh(id, maxWidth, maxHeight, false)
}

// Measure computes what the subtree's size would be at the given
// bounds without touching the committed geometry.
func (t *Tree) Measure(id NodeID, maxWidth, maxHeight int) (Size, error) {
	return t.refresh(id, maxWidth, maxHeight, true)
}

func (t *Tree) refresh(id NodeID, maxWidth, maxHeight int, speculative bool) (Size, error) {
	n, ok := t.nodes[id]
	if !ok {
		return Size{}, ErrNodeNotFound
	}
	size := t.refreshNode(n, maxWidth, maxHeight, speculative)
	return size, nil
}

func (t *Tree) refreshNode(n *node, maxWidth, maxHeight int, speculative bool) Size {
	if n.hidden || maxWidth <= 0 || maxHeight <= 0 {
		n.setSize(Size{}, speculative)
		return Size{}
	}

	var size Size
	switch n.kind {
	case widgetNode:
		height := len(n.content.Lines(maxWidth))
		if height > maxHeight {
			height = maxHeight
		}
		size = Size{Width: maxWidth, Height: height}
	case layoutNode:
		if n.orient == Vertical {
			size = t.refreshVertical(n, maxWidth, maxHeight, speculative)
		} else {
			size = t.refreshHorizontal(n, maxWidth, maxHeight, speculative)
		}
	}
	n.setSize(size, speculative)
	return size
}

// refreshVertical gives every child the full width and whatever height
// remains, top to bottom, stopping once height is exhausted.
func (t *Tree) refreshVertical(n *node, maxWidth, maxHeight int, speculative bool) Size {
	remaining := maxHeight
	total := 0
	for _, c := range n.children {
		child, ok := t.nodes[c]
		if !ok {
			continue
		}
		if remaining <= 0 {
			child.setSize(Size{}, speculative)
			continue
		}
		s := t.refreshNode(child, maxWidth, remaining, speculative)
		remaining -= s.Height
		total += s.Height
	}
	if total == 0 {
		return Size{}
	}
	return Size{Width: maxWidth, Height: total}
}

// refreshHorizontal partitions width among visible children in one
// linear pass: guaranteed minimums first, then the remainder shared
// proportionally among the flexible children. Height is the tallest
// child.
func (t *Tree) refreshHorizontal(n *node, maxWidth, maxHeight int, speculative bool) Size {
	type claim struct {
		node  *node
		width int
		flex  bool
		cap   int
	}
	claims := make([]claim, 0, len(n.children))
	remaining := maxWidth
	flexible := 0
	for _, c := range n.children {
		child, ok := t.nodes[c]
		if !ok {
			continue
		}
		if child.hidden {
			child.setSize(Size{}, speculative)
			continue
		}
		cl := claim{node: child, cap: maxWidth}
		switch child.constraint.Kind {
		case Fixed:
			cl.width = child.constraint.Value
			cl.cap = cl.width
		case Min:
			cl.width = child.constraint.Value
			cl.flex = true
		case Max:
			cl.flex = true
			cl.cap = child.constraint.Value
		case Percent:
			cl.width = maxWidth * child.constraint.Value / 100
			cl.cap = cl.width
		case Fill:
			cl.flex = true
		}
		if cl.width > remaining {
			cl.width = remaining
		}
		remaining -= cl.width
		if cl.flex {
			flexible++
		}
		claims = append(claims, cl)
	}

	// Share the leftover among flexible children, respecting caps.
	for i := range claims {
		if !claims[i].flex || flexible == 0 || remaining <= 0 {
			continue
		}
		share := remaining / flexible
		flexible--
		if claims[i].width+share > claims[i].cap {
			share = claims[i].cap - claims[i].width
		}
		claims[i].width += share
		remaining -= share
	}

	height := 0
	width := 0
	for _, cl := range claims {
		s := t.refreshNode(cl.node, cl.width, maxHeight, speculative)
		width += s.Width
		if s.Height > height {
			height = s.Height
		}
	}
	if height == 0 {
		return Size{}
	}
	return Size{Width: width, Height: height}
}

// Render produces the subtree's cell rows using committed geometry.
// Vertical layouts emit all of one child's rows before the next
// child's; horizontal layouts emit row i of every visible child
// before row i+1, padding finished children with blank cells so
// siblings stay column-aligned.
func (t *Tree) Render(id NodeID) ([][]core.Cell, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return t.render(n), nil
}

func (t *Tree) render(n *node) [][]core.Cell {
	if n.hidden || n.committed.Height == 0 {
		return nil
	}
	if n.kind == widgetNode {
		return t.renderWidget(n)
	}
	if n.orient == Vertical {
		var rows [][]core.Cell
		for _, c := range n.children {
			child, ok := t.nodes[c]
			if !ok {
				continue
			}
			rows = append(rows, t.render(child)...)
		}
		return rows
	}
	return t.renderHorizontal(n)
}

func (t *Tree) renderWidget(n *node) [][]core.Cell {
	lines := n.content.Lines(n.committed.Width)
	if len(lines) > n.committed.Height {
		lines = lines[:n.committed.Height]
	}
	return lines
}

func (t *Tree) renderHorizontal(n *node) [][]core.Cell {
	type column struct {
		rows  [][]core.Cell
		width int
	}
	var cols []column
	for _, c := range n.children {
		child, ok := t.nodes[c]
		if !ok || child.hidden || child.committed.Height == 0 {
			continue
		}
		cols = append(cols, column{rows: t.render(child), width: child.committed.Width})
	}

	rows := make([][]core.Cell, n.committed.Height)
	for i := range rows {
		var row []core.Cell
		for _, col := range cols {
			if i < len(col.rows) {
				row = append(row, padRow(col.rows[i], col.width)...)
			} else {
				row = append(row, blankRow(col.width)...)
			}
		}
		rows[i] = row
	}
	return rows
}

func padRow(row []core.Cell, width int) []core.Cell {
	used := 0
	for _, c := range row {
		used += c.Width
	}
	for used < width {
		row = append(row, core.EmptyCell())
		used++
	}
	return row
}

func blankRow(width int) []core.Cell {
	row := make([]core.Cell, width)
	for i := range row {
		row[i] = core.EmptyCell()
	}
	return row
}
