package render

import (
	"github.com/dshills/inkline/internal/render/core"
)

// Sink receives the minimal command stream produced by the drawer.
// Implementations write to a real terminal (TermSink), a tcell screen
// (backend package), or a recorder in tests.
//
// A failed write is fatal to the current frame: the drawer stops
// emitting, reports the error, and requires a forced full redraw on
// the next frame because its retained state is no longer trustworthy.
type Sink interface {
	// SetColumn moves the cursor to an absolute column on the current
	// row.
	SetColumn(col int) error

	// MoveRows moves the cursor delta rows down (negative moves up),
	// keeping the column.
	MoveRows(delta int) error

	// ClearToEndOfLine erases from the cursor to the end of the row.
	ClearToEndOfLine() error

	// ClearToEndOfScreen erases from the cursor to the end of the
	// screen.
	ClearToEndOfScreen() error

	// SetColors sets the foreground and background colors.
	SetColors(fg, bg core.Color) error

	// SetUnderlineColor sets the underline color.
	SetUnderlineColor(c core.Color) error

	// SetAttr enables the given modifier flags individually.
	SetAttr(attr core.Attribute) error

	// ClearAttr disables the given modifier flags individually. Some
	// terminals share a reset code between modifiers (bold and dim);
	// the drawer re-asserts the survivor after such a reset.
	ClearAttr(attr core.Attribute) error

	// Print writes text at the cursor, advancing it by the text's
	// width.
	Print(text string) error
}
