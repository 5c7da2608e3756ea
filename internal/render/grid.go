package render

import (
	"github.com/dshills/inkline/internal/render/core"
)

// Grid is a rectangular frame of styled cells. The drawer retains two
// of them at all times: the previously drawn frame and the freshly
// computed one, so diffing is a pure comparison rather than an
// in-place mutation.
type Grid struct {
	width, height int
	cells         [][]core.Cell
}

// NewGrid creates a grid filled with empty cells.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{width: width, height: height}
	g.allocate()
	return g
}

func (g *Grid) allocate() {
	g.cells = make([][]core.Cell, g.height)
	for y := range g.cells {
		g.cells[y] = make([]core.Cell, g.width)
		for x := range g.cells[y] {
			g.cells[y][x] = core.EmptyCell()
		}
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Cell returns the cell at (x, y), or an empty cell out of bounds.
func (g *Grid) Cell(x, y int) core.Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return core.EmptyCell()
	}
	return g.cells[y][x]
}

// SetCell writes the cell at (x, y). Out-of-bounds writes are dropped.
// Wide cells occupy their following column with a continuation cell.
func (g *Grid) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = cell
	if cell.Width == 2 && x+1 < g.width {
		g.cells[y][x+1] = core.ContinuationCell(cell.Style)
	}
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	empty := core.EmptyCell()
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = empty
		}
	}
}

// ClearFrom resets every cell at or after (x, y) in reading order.
func (g *Grid) ClearFrom(x, y int) {
	empty := core.EmptyCell()
	for row := y; row < g.height; row++ {
		startX := 0
		if row == y {
			startX = x
		}
		for col := startX; col < g.width; col++ {
			g.cells[row][col] = empty
		}
	}
}

// RowEmpty reports whether every cell in row y from column x on is in
// the default empty state.
func (g *Grid) RowEmpty(x, y int) bool {
	if y < 0 || y >= g.height {
		return true
	}
	for col := max(x, 0); col < g.width; col++ {
		if !g.cells[y][col].IsEmpty() {
			return false
		}
	}
	return true
}

// EmptyFrom reports whether every cell at or after (x, y) in reading
// order is in the default empty state.
func (g *Grid) EmptyFrom(x, y int) bool {
	for row := max(y, 0); row < g.height; row++ {
		startX := 0
		if row == y {
			startX = x
		}
		if !g.RowEmpty(startX, row) {
			return false
		}
	}
	return true
}

// ContentHeight returns the number of rows up to and including the
// last row holding non-empty content.
func (g *Grid) ContentHeight() int {
	for y := g.height - 1; y >= 0; y-- {
		if !g.RowEmpty(0, y) {
			return y + 1
		}
	}
	return 0
}
