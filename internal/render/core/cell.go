package core

// Cell represents a single terminal cell.
//
// Symbol holds one grapheme cluster (possibly several code points), or an
// escaped placeholder for bytes that cannot be displayed. An empty Symbol
// with Width 0 marks a continuation cell occupied by the previous wide
// symbol.
type Cell struct {
	// Symbol is the displayed grapheme cluster.
	Symbol string

	// Width is the display width of this cell.
	// 0 for continuation cells, 1 for normal symbols, 2 for wide symbols.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{Symbol: " ", Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell with the given symbol, width, and style.
func NewCell(symbol string, width int, style Style) Cell {
	return Cell{Symbol: symbol, Width: width, Style: style}
}

// ContinuationCell returns a continuation cell for wide symbols,
// carrying the style of its owning cell.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// IsEmpty returns true if this cell shows a default-styled blank.
func (c Cell) IsEmpty() bool {
	return (c.Symbol == " " || c.Symbol == "") && c.Style.Equals(DefaultStyle())
}

// IsContinuation returns true if this is a continuation cell
// (trailing cell of a wide symbol).
func (c Cell) IsContinuation() bool {
	return c.Symbol == "" && c.Width == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Symbol == other.Symbol &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}
