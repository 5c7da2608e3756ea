// Package render turns a composed frame of styled cells into the
// minimal terminal command stream needed to reach it from the previous
// frame. The drawer tracks the real cursor position and the last
// emitted graphics state so redundant moves, style changes, and glyph
// prints never reach the sink.
package render

import (
	"github.com/dshills/inkline/internal/render/core"
)

// Drawer is the incremental renderer. It owns the two retained frames
// and the emitted cursor/graphics state. It is not safe for concurrent
// use; callers serialize render passes.
type Drawer struct {
	sink          Sink
	width, height int

	prev *Grid // what the terminal currently shows
	next *Grid // the freshly computed frame

	lcol, lrow int // logical cursor: where the next cell goes
	col, row   int // emitted cursor: where the terminal cursor is

	fg, bg, ul core.Color
	attrs      core.Attribute

	err       error
	forceNext bool
}

// NewDrawer creates a drawer for a region of the given size, assuming
// the region starts blank with default graphics state.
func NewDrawer(sink Sink, width, height int) *Drawer {
	return &Drawer{
		sink:   sink,
		width:  width,
		height: height,
		prev:   NewGrid(width, height),
		next:   NewGrid(width, height),
		fg:     core.ColorDefault,
		bg:     core.ColorDefault,
		ul:     core.ColorDefault,
	}
}

// Size returns the drawer's region size.
func (d *Drawer) Size() (width, height int) {
	return d.width, d.height
}

// Resize replaces both retained frames and forces a full redraw on the
// next flush, since nothing retained can be trusted across a resize.
func (d *Drawer) Resize(width, height int) {
	d.width, d.height = width, height
	d.prev = NewGrid(width, height)
	d.next = NewGrid(width, height)
	d.col, d.row = 0, 0
	d.lcol, d.lrow = 0, 0
	d.forceNext = true
}

// ForceRedraw discards any pending sink error and marks the retained
// frame untrustworthy, so the next flush redraws every cell.
func (d *Drawer) ForceRedraw() {
	d.err = nil
	d.forceNext = true
}

// Err returns the sink error that aborted the current frame, if any.
func (d *Drawer) Err() error {
	return d.err
}

// fail records a sink failure. The frame is aborted and the retained
// state is treated as out of sync until a forced redraw.
func (d *Drawer) fail(err error) error {
	if err != nil && d.err == nil {
		d.err = err
		d.forceNext = true
	}
	return err
}

// SetCell composes a cell into the freshly computed frame. A wide
// cell that would cross the right edge is dropped: flushing it would
// take the overflow path and leave the retained grid claiming a glyph
// the terminal does not show.
func (d *Drawer) SetCell(x, y int, cell core.Cell) {
	if cell.Width > 1 && x+cell.Width > d.width {
		return
	}
	d.next.SetCell(x, y, cell)
}

// MoveTo sets the logical cursor; no output is emitted until a cell is
// drawn or a clear is needed there.
func (d *Drawer) MoveTo(col, row int) {
	d.lcol, d.lrow = col, row
}

// CursorPos returns the emitted cursor position after the last
// command.
func (d *Drawer) CursorPos() (col, row int) {
	return d.col, d.row
}

// ContentHeight returns the occupied height of the displayed frame in
// rows, for callers reserving scrollback space.
func (d *Drawer) ContentHeight() int {
	return d.prev.ContentHeight()
}

// DrawCell draws a cell at the logical cursor. If the previous frame
// already shows this cell and force is false, all output is skipped
// and only the cursor bookkeeping advances. Drawing past the right
// edge clears the rest of the row and continues at column 0 of the
// next row; callers must not assume the column survives an overflow.
func (d *Drawer) DrawCell(cell core.Cell, force bool) error {
	if d.err != nil {
		return d.err
	}
	if cell.Width <= 0 {
		return nil
	}

	if d.lcol+cell.Width > d.width {
		if err := d.ClearToEndOfLine(); err != nil {
			return err
		}
		d.lrow++
		d.lcol = 0
	}
	if d.lrow >= d.height {
		return nil
	}

	if !force && d.prev.Cell(d.lcol, d.lrow).Equals(cell) {
		d.lcol += cell.Width
		return nil
	}

	if err := d.moveTo(d.lcol, d.lrow); err != nil {
		return err
	}
	if err := d.applyStyle(cell.Style); err != nil {
		return err
	}
	if err := d.sink.Print(cell.Symbol); err != nil {
		return d.fail(err)
	}

	d.prev.SetCell(d.lcol, d.lrow, cell)
	d.col += cell.Width
	d.lcol = d.col
	return nil
}

// moveTo brings the emitted cursor to (x, y) with the fewest commands:
// nothing when already there, otherwise an absolute column set and/or
// a relative row move.
func (d *Drawer) moveTo(x, y int) error {
	if x != d.col {
		if err := d.sink.SetColumn(x); err != nil {
			return d.fail(err)
		}
		d.col = x
	}
	if y != d.row {
		if err := d.sink.MoveRows(y - d.row); err != nil {
			return d.fail(err)
		}
		d.row = y
	}
	return nil
}

// applyStyle emits only the changed subset of graphics attributes.
// Removed modifiers are turned off individually; because bold and dim
// share a terminal reset code, clearing one re-asserts the other when
// it survives.
func (d *Drawer) applyStyle(s core.Style) error {
	removed := d.attrs &^ s.Attributes
	added := s.Attributes &^ d.attrs

	if removed != 0 {
		if err := d.sink.ClearAttr(removed); err != nil {
			return d.fail(err)
		}
		if removed.Has(core.AttrBold) && s.Attributes.Has(core.AttrDim) {
			added |= core.AttrDim
		}
		if removed.Has(core.AttrDim) && s.Attributes.Has(core.AttrBold) {
			added |= core.AttrBold
		}
	}
	if added != 0 {
		if err := d.sink.SetAttr(added); err != nil {
			return d.fail(err)
		}
	}

	if !d.fg.Equals(s.Foreground) || !d.bg.Equals(s.Background) {
		if err := d.sink.SetColors(s.Foreground, s.Background); err != nil {
			return d.fail(err)
		}
		d.fg, d.bg = s.Foreground, s.Background
	}
	if !d.ul.Equals(s.Underline) {
		if err := d.sink.SetUnderlineColor(s.Underline); err != nil {
			return d.fail(err)
		}
		d.ul = s.Underline
	}

	d.attrs = s.Attributes
	return nil
}

// ClearToEndOfLine erases from the logical cursor to the end of the
// row. The terminal command is skipped entirely when the previous
// frame already shows empties there.
func (d *Drawer) ClearToEndOfLine() error {
	if d.err != nil {
		return d.err
	}
	if d.prev.RowEmpty(d.lcol, d.lrow) {
		return nil
	}
	if err := d.moveTo(d.lcol, d.lrow); err != nil {
		return err
	}
	if err := d.applyStyle(core.DefaultStyle()); err != nil {
		return err
	}
	if err := d.sink.ClearToEndOfLine(); err != nil {
		return d.fail(err)
	}
	for x := d.lcol; x < d.width; x++ {
		d.prev.SetCell(x, d.lrow, core.EmptyCell())
	}
	return nil
}

// ClearToEndOfScreen erases from the logical cursor to the end of the
// region, skipping the command when everything there is already empty.
func (d *Drawer) ClearToEndOfScreen() error {
	if d.err != nil {
		return d.err
	}
	if d.prev.EmptyFrom(d.lcol, d.lrow) {
		return nil
	}
	if err := d.moveTo(d.lcol, d.lrow); err != nil {
		return err
	}
	if err := d.applyStyle(core.DefaultStyle()); err != nil {
		return err
	}
	if err := d.sink.ClearToEndOfScreen(); err != nil {
		return d.fail(err)
	}
	d.prev.ClearFrom(d.lcol, d.lrow)
	return nil
}

// GotoNewline clears the rest of the current row and advances the
// logical cursor to column 0 of the next row. No physical newline is
// emitted; later draws reach the row with relative movement, keeping
// the operation idempotent with respect to scrollback.
func (d *Drawer) GotoNewline() error {
	if err := d.ClearToEndOfLine(); err != nil {
		return err
	}
	d.lrow++
	d.lcol = 0
	return nil
}

// Flush diffs the freshly computed frame against the previous one,
// emits the minimal command stream, and swaps the retained frames.
// When force is set (or a prior sink failure left the state out of
// sync) every cell is redrawn.
func (d *Drawer) Flush(force bool) error {
	d.err = nil
	force = force || d.forceNext

	for y := 0; y < d.height; y++ {
		d.lcol, d.lrow = 0, y
		for x := 0; x < d.width; {
			cell := d.next.Cell(x, y)
			if cell.IsContinuation() {
				x++
				continue
			}
			w := cell.Width
			if w < 1 {
				w = 1
			}
			d.lcol = x
			if err := d.DrawCell(cell, force); err != nil {
				// Drop the aborted frame's cells so they cannot
				// leak into the next recomposition.
				d.next.Clear()
				return err
			}
			x += w
		}
	}

	d.prev, d.next = d.next, d.prev
	d.next.Clear()
	d.forceNext = false
	return nil
}
