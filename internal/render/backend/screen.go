// Package backend provides a tcell-based full-screen implementation of
// the render.Sink command stream, for hosts that own the whole
// terminal rather than an inline region.
package backend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkline/internal/render/core"
)

// Screen adapts a tcell.Screen to the drawer's sink commands. It
// tracks the cursor position and current graphics state itself, since
// tcell's cell model has neither.
type Screen struct {
	screen tcell.Screen

	col, row int
	style    tcell.Style
}

// NewScreen creates and initializes a tcell-backed sink.
func NewScreen() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Screen{screen: screen, style: tcell.StyleDefault}, nil
}

// NewScreenFrom wraps an existing tcell.Screen (e.g. a simulation
// screen in tests). The screen must already be initialized.
func NewScreenFrom(screen tcell.Screen) *Screen {
	return &Screen{screen: screen, style: tcell.StyleDefault}
}

// Fini releases the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// Size returns the terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Show flushes pending cell updates to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// ShowCursor places the visible terminal cursor.
func (s *Screen) ShowCursor(col, row int) {
	s.screen.ShowCursor(col, row)
}

// SetColumn moves the tracked cursor to an absolute column.
func (s *Screen) SetColumn(col int) error {
	s.col = col
	return nil
}

// MoveRows moves the tracked cursor delta rows down.
func (s *Screen) MoveRows(delta int) error {
	s.row += delta
	if s.row < 0 {
		s.row = 0
	}
	return nil
}

// ClearToEndOfLine blanks the rest of the cursor's row.
func (s *Screen) ClearToEndOfLine() error {
	width, _ := s.screen.Size()
	for x := s.col; x < width; x++ {
		s.screen.SetContent(x, s.row, ' ', nil, tcell.StyleDefault)
	}
	return nil
}

// ClearToEndOfScreen blanks everything at or below the cursor.
func (s *Screen) ClearToEndOfScreen() error {
	if err := s.ClearToEndOfLine(); err != nil {
		return err
	}
	width, height := s.screen.Size()
	for y := s.row + 1; y < height; y++ {
		for x := 0; x < width; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	return nil
}

// SetColors updates the current foreground and background.
func (s *Screen) SetColors(fg, bg core.Color) error {
	s.style = s.style.Foreground(toTcellColor(fg)).Background(toTcellColor(bg))
	return nil
}

// SetUnderlineColor updates the current underline color.
func (s *Screen) SetUnderlineColor(c core.Color) error {
	s.style = s.style.Underline(toTcellColor(c))
	return nil
}

// SetAttr enables modifier flags on the current style.
func (s *Screen) SetAttr(attr core.Attribute) error {
	s.style = applyAttr(s.style, attr, true)
	return nil
}

// ClearAttr disables modifier flags on the current style.
func (s *Screen) ClearAttr(attr core.Attribute) error {
	s.style = applyAttr(s.style, attr, false)
	return nil
}

// Print writes one symbol at the cursor and advances it by the
// symbol's width.
func (s *Screen) Print(text string) error {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	var comb []rune
	if len(runes) > 1 {
		comb = runes[1:]
	}
	s.screen.SetContent(s.col, s.row, runes[0], comb, s.style)
	s.col += runewidth.StringWidth(text)
	return nil
}

func applyAttr(style tcell.Style, attr core.Attribute, on bool) tcell.Style {
	if attr.Has(core.AttrBold) {
		style = style.Bold(on)
	}
	if attr.Has(core.AttrDim) {
		style = style.Dim(on)
	}
	if attr.Has(core.AttrItalic) {
		style = style.Italic(on)
	}
	if attr.Has(core.AttrUnderline) {
		style = style.Underline(on)
	}
	if attr.Has(core.AttrBlink) {
		style = style.Blink(on)
	}
	if attr.Has(core.AttrReverse) {
		style = style.Reverse(on)
	}
	if attr.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(on)
	}
	return style
}

func toTcellColor(c core.Color) tcell.Color {
	if c.Default {
		return tcell.ColorDefault
	}
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
