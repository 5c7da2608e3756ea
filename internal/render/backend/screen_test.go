package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkline/internal/render/core"
)

func TestToTcellColor(t *testing.T) {
	if got := toTcellColor(core.ColorDefault); got != tcell.ColorDefault {
		t.Errorf("default color = %v, want ColorDefault", got)
	}
	if got := toTcellColor(core.ColorFromIndex(5)); got != tcell.PaletteColor(5) {
		t.Errorf("indexed color = %v, want palette 5", got)
	}
	if got := toTcellColor(core.ColorFromRGB(10, 20, 30)); got != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("rgb color = %v, want RGB 10,20,30", got)
	}
}

func TestApplyAttr(t *testing.T) {
	style := applyAttr(tcell.StyleDefault, core.AttrBold|core.AttrItalic, true)
	_, _, attrs := style.Decompose()
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrItalic == 0 {
		t.Errorf("attrs = %v, want bold and italic set", attrs)
	}

	style = applyAttr(style, core.AttrBold, false)
	_, _, attrs = style.Decompose()
	if attrs&tcell.AttrBold != 0 {
		t.Error("bold should be cleared")
	}
	if attrs&tcell.AttrItalic == 0 {
		t.Error("italic should survive clearing bold")
	}
}

func TestScreenCursorTracking(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(20, 5)

	s := NewScreenFrom(sim)

	if err := s.SetColumn(3); err != nil {
		t.Fatal(err)
	}
	if err := s.MoveRows(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Print("x"); err != nil {
		t.Fatal(err)
	}
	if s.col != 4 || s.row != 2 {
		t.Errorf("cursor = (%d,%d), want (4,2)", s.col, s.row)
	}

	r, _, _, _ := sim.GetContent(3, 2)
	if r != 'x' {
		t.Errorf("content at (3,2) = %q, want 'x'", r)
	}

	// Wide symbols advance by their display width.
	if err := s.Print("世"); err != nil {
		t.Fatal(err)
	}
	if s.col != 6 {
		t.Errorf("col after wide print = %d, want 6", s.col)
	}

	// Moving above the top row clamps.
	if err := s.MoveRows(-10); err != nil {
		t.Fatal(err)
	}
	if s.row != 0 {
		t.Errorf("row = %d, want 0 after clamp", s.row)
	}
}

func TestScreenClears(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(10, 3)

	s := NewScreenFrom(sim)
	for col := 0; col < 10; col++ {
		_ = s.SetColumn(col)
		_ = s.Print("a")
	}
	_ = s.MoveRows(1)
	_ = s.SetColumn(0)
	_ = s.Print("b")

	_ = s.SetColumn(5)
	if err := s.ClearToEndOfScreen(); err != nil {
		t.Fatal(err)
	}

	if r, _, _, _ := sim.GetContent(0, 1); r != 'b' {
		t.Errorf("cell before the cursor should survive the clear; got %q", r)
	}
	if r, _, _, _ := sim.GetContent(5, 1); r != ' ' {
		t.Errorf("cell at the cursor should be cleared; got %q", r)
	}
	if r, _, _, _ := sim.GetContent(0, 2); r != ' ' {
		t.Errorf("row below the cursor should be cleared; got %q", r)
	}
}
