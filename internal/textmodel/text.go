// Package textmodel holds the rendered document model: an ordered
// sequence of lines, an alignment, a base style, and highlighted byte
// ranges keyed by line. Offsets here are raw byte positions, not
// grapheme units, so producers can splice annotations cheaply.
package textmodel

import (
	"bytes"

	"github.com/dshills/inkline/internal/grapheme"
	"github.com/dshills/inkline/internal/render/core"
	"github.com/dshills/inkline/internal/wrap"
)

// Alignment controls horizontal placement of rendered lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// HighlightedRange styles a byte range within one line. Later-added
// ranges win where ranges overlap.
type HighlightedRange struct {
	// Line is the logical line index the range applies to.
	Line int

	// Start and End are byte offsets within that line, half-open.
	Start, End int

	Style     core.Style
	Namespace string

	// VirtualText is ghost text rendered after the line in the range's
	// style. It is not part of the line's bytes.
	VirtualText string
}

// Text is one rendered document region.
type Text struct {
	lines   [][]byte
	align   Alignment
	base    core.Style
	invalid core.Style
	ranges  []HighlightedRange
}

// New creates an empty document with the given base style and
// alignment.
func New(base core.Style, align Alignment) *Text {
	return &Text{
		align:   align,
		base:    base,
		invalid: core.NewStyle(core.ColorRed).Reversed(),
	}
}

// SetText replaces the document with content split on newlines.
func (t *Text) SetText(content []byte) {
	t.lines = t.lines[:0]
	for {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			t.lines = append(t.lines, append([]byte(nil), content...))
			return
		}
		t.lines = append(t.lines, append([]byte(nil), content[:i]...))
		content = content[i+1:]
	}
}

// AppendLine adds one line to the end of the document.
func (t *Text) AppendLine(line []byte) {
	t.lines = append(t.lines, append([]byte(nil), line...))
}

// SetLine replaces line i. Out-of-range indices are ignored.
func (t *Text) SetLine(i int, line []byte) {
	if i < 0 || i >= len(t.lines) {
		return
	}
	t.lines[i] = append([]byte(nil), line...)
}

// Lines returns the document lines. The returned slice is owned by the
// document.
func (t *Text) Lines() [][]byte {
	return t.lines
}

// LineCount returns the number of logical lines.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// Alignment returns the document's alignment.
func (t *Text) Alignment() Alignment {
	return t.align
}

// BaseStyle returns the document's base style.
func (t *Text) BaseStyle() core.Style {
	return t.base
}

// SetInvalidStyle overrides the style used for escaped byte
// placeholders.
func (t *Text) SetInvalidStyle(s core.Style) {
	t.invalid = s
}

// AddRange registers a highlighted range.
func (t *Text) AddRange(r HighlightedRange) {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	t.ranges = append(t.ranges, r)
}

// ClearRanges removes every highlighted range.
func (t *Text) ClearRanges() {
	t.ranges = t.ranges[:0]
}

// ClearNamespace removes every range carrying the given namespace tag.
func (t *Text) ClearNamespace(ns string) {
	kept := t.ranges[:0]
	for _, r := range t.ranges {
		if r.Namespace != ns {
			kept = append(kept, r)
		}
	}
	t.ranges = kept
}

// RangesForLine returns the ranges applying to line i, in insertion
// order.
func (t *Text) RangesForLine(i int) []HighlightedRange {
	var out []HighlightedRange
	for _, r := range t.ranges {
		if r.Line == i {
			out = append(out, r)
		}
	}
	return out
}

// StyleAt resolves the effective style of the byte at the given offset
// within line i: the base style overridden by the last-added range
// containing the offset.
func (t *Text) StyleAt(i, offset int) core.Style {
	style := t.base
	for _, r := range t.ranges {
		if r.Line == i && offset >= r.Start && offset < r.End {
			style = r.Style
		}
	}
	return style
}

// CellsForSegment renders one wrapped segment of line i into styled
// cells. startCol seeds tab-stop arithmetic for segments that begin
// after an indent. Wide clusters emit a continuation cell; escaped
// placeholders expand to one single-width cell per placeholder
// character so the diff renderer can update them cell by cell.
func (t *Text) CellsForSegment(i int, seg wrap.Segment, tabWidth, startCol int) []core.Cell {
	if i < 0 || i >= len(t.lines) {
		return nil
	}
	if tabWidth <= 0 {
		tabWidth = wrap.DefaultTabWidth
	}

	line := t.lines[i]
	var cells []core.Cell
	col := startCol

	for c := range grapheme.Clusters(line) {
		if c.Start < seg.Start || c.Start >= seg.End {
			continue
		}

		switch {
		case c.Symbol == "\n":
			// Never drawn; wrap has already consumed it as a break.
		case c.Symbol == "\t":
			n := tabWidth - col%tabWidth
			style := t.StyleAt(i, c.Start)
			for range n {
				cells = append(cells, core.NewCell(" ", 1, style))
			}
			col += n
		case c.Invalid:
			for _, ch := range c.Symbol {
				cells = append(cells, core.NewCell(string(ch), 1, t.invalid))
			}
			col += c.Width
		default:
			style := t.StyleAt(i, c.Start)
			cells = append(cells, core.NewCell(c.Symbol, c.Width, style))
			if c.Width == 2 {
				cells = append(cells, core.ContinuationCell(style))
			}
			col += c.Width
		}
	}
	return cells
}

// VirtualCells renders the ghost text of every range on line i, in
// insertion order, each in its range's style.
func (t *Text) VirtualCells(i int) []core.Cell {
	var cells []core.Cell
	for _, r := range t.ranges {
		if r.Line != i || r.VirtualText == "" {
			continue
		}
		for c := range grapheme.Clusters([]byte(r.VirtualText)) {
			if c.Width == 0 {
				continue
			}
			cells = append(cells, core.NewCell(c.Symbol, c.Width, r.Style))
			if c.Width == 2 {
				cells = append(cells, core.ContinuationCell(r.Style))
			}
		}
	}
	return cells
}
