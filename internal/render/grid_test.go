package render

import (
	"testing"

	"github.com/dshills/inkline/internal/render/core"
)

func TestGridSetGetCell(t *testing.T) {
	g := NewGrid(10, 4)

	cell := core.NewCell("A", 1, core.NewStyle(core.ColorBlue))
	g.SetCell(3, 2, cell)

	if got := g.Cell(3, 2); !got.Equals(cell) {
		t.Errorf("cell = %+v, want %+v", got, cell)
	}

	// Out of bounds reads come back empty, writes are dropped.
	g.SetCell(-1, 0, cell)
	g.SetCell(100, 0, cell)
	if !g.Cell(-1, 0).Equals(core.EmptyCell()) {
		t.Error("out of bounds should read empty")
	}
}

func TestGridWideCellContinuation(t *testing.T) {
	g := NewGrid(10, 2)
	g.SetCell(4, 0, core.NewCell("世", 2, core.DefaultStyle()))

	if !g.Cell(5, 0).IsContinuation() {
		t.Error("cell after a wide cell should be a continuation")
	}
}

func TestGridRowEmpty(t *testing.T) {
	g := NewGrid(10, 2)
	if !g.RowEmpty(0, 0) {
		t.Error("fresh row should be empty")
	}
	g.SetCell(7, 0, core.NewCell("x", 1, core.DefaultStyle()))
	if g.RowEmpty(0, 0) {
		t.Error("row with content should not be empty")
	}
	if !g.RowEmpty(8, 0) {
		t.Error("row tail past the content should be empty")
	}
}

func TestGridClearFrom(t *testing.T) {
	g := NewGrid(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			g.SetCell(x, y, core.NewCell("x", 1, core.DefaultStyle()))
		}
	}
	g.ClearFrom(2, 1)

	if g.Cell(1, 1).IsEmpty() {
		t.Error("cell before the clear start should survive")
	}
	if !g.Cell(2, 1).IsEmpty() || !g.Cell(0, 2).IsEmpty() {
		t.Error("cells at and after the clear start should be empty")
	}
	if !g.EmptyFrom(2, 1) {
		t.Error("EmptyFrom should report the cleared region empty")
	}
}

func TestGridContentHeight(t *testing.T) {
	g := NewGrid(10, 5)
	if g.ContentHeight() != 0 {
		t.Errorf("empty grid height = %d, want 0", g.ContentHeight())
	}
	g.SetCell(0, 3, core.NewCell("x", 1, core.DefaultStyle()))
	if g.ContentHeight() != 4 {
		t.Errorf("height = %d, want 4", g.ContentHeight())
	}
}
