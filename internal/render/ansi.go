package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/dshills/inkline/internal/render/core"
)

// TermSink writes the drawer's command stream to a terminal as CSI and
// SGR escape sequences. Color sequences are cached by a hash of the
// color pair, since a frame typically cycles through a handful of
// styles thousands of cells at a time.
type TermSink struct {
	w        io.Writer
	colorSeq map[uint64]string
}

// NewTermSink creates a sink writing escape sequences to w.
func NewTermSink(w io.Writer) *TermSink {
	return &TermSink{
		w:        w,
		colorSeq: make(map[uint64]string),
	}
}

func (t *TermSink) emit(s string) error {
	_, err := io.WriteString(t.w, s)
	return err
}

// SetColumn moves to an absolute column (0-based) on the current row.
func (t *TermSink) SetColumn(col int) error {
	return t.emit("\x1b[" + strconv.Itoa(col+1) + "G")
}

// MoveRows moves the cursor delta rows down; negative values move up.
func (t *TermSink) MoveRows(delta int) error {
	switch {
	case delta < 0:
		return t.emit("\x1b[" + strconv.Itoa(-delta) + "A")
	case delta > 0:
		return t.emit("\x1b[" + strconv.Itoa(delta) + "B")
	}
	return nil
}

// ClearToEndOfLine erases from the cursor to the end of the row.
func (t *TermSink) ClearToEndOfLine() error {
	return t.emit("\x1b[K")
}

// ClearToEndOfScreen erases from the cursor down.
func (t *TermSink) ClearToEndOfScreen() error {
	return t.emit("\x1b[J")
}

// colorPair keys the SGR cache.
type colorPair struct {
	Fg, Bg core.Color
}

// SetColors emits the SGR parameters for a foreground/background pair.
func (t *TermSink) SetColors(fg, bg core.Color) error {
	key, err := hashstructure.Hash(colorPair{Fg: fg, Bg: bg}, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing a plain struct cannot fail; fall through uncached.
		return t.emit(colorSGR(fg, bg))
	}
	seq, ok := t.colorSeq[key]
	if !ok {
		seq = colorSGR(fg, bg)
		t.colorSeq[key] = seq
	}
	return t.emit(seq)
}

func colorSGR(fg, bg core.Color) string {
	var b strings.Builder
	b.WriteString("\x1b[")
	b.WriteString(strings.Join(append(colorParams(fg, 38, 39), colorParams(bg, 48, 49)...), ";"))
	b.WriteString("m")
	return b.String()
}

// colorParams renders one color as SGR parameters. set is the extended
// color introducer (38 fg, 48 bg); reset is the default code (39, 49).
func colorParams(c core.Color, set, reset int) []string {
	switch {
	case c.Default:
		return []string{strconv.Itoa(reset)}
	case c.Indexed:
		return []string{strconv.Itoa(set), "5", strconv.Itoa(int(c.R))}
	default:
		return []string{
			strconv.Itoa(set), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)),
		}
	}
}

// SetUnderlineColor emits the extended underline color sequence
// (SGR 58), or the reset (SGR 59) for the default color.
func (t *TermSink) SetUnderlineColor(c core.Color) error {
	switch {
	case c.Default:
		return t.emit("\x1b[59m")
	case c.Indexed:
		return t.emit(fmt.Sprintf("\x1b[58:5:%dm", c.R))
	default:
		return t.emit(fmt.Sprintf("\x1b[58:2::%d:%d:%dm", c.R, c.G, c.B))
	}
}

// attrCodes maps each modifier to its SGR set and reset codes. Bold
// and dim share reset 22; the drawer compensates.
var attrCodes = []struct {
	attr       core.Attribute
	set, reset string
}{
	{core.AttrBold, "1", "22"},
	{core.AttrDim, "2", "22"},
	{core.AttrItalic, "3", "23"},
	{core.AttrUnderline, "4", "24"},
	{core.AttrBlink, "5", "25"},
	{core.AttrReverse, "7", "27"},
	{core.AttrStrikethrough, "9", "29"},
	{core.AttrHidden, "8", "28"},
}

// SetAttr enables each set modifier flag with its own SGR code.
func (t *TermSink) SetAttr(attr core.Attribute) error {
	for _, ac := range attrCodes {
		if attr.Has(ac.attr) {
			if err := t.emit("\x1b[" + ac.set + "m"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClearAttr disables each set modifier flag with its own SGR code.
func (t *TermSink) ClearAttr(attr core.Attribute) error {
	for _, ac := range attrCodes {
		if attr.Has(ac.attr) {
			if err := t.emit("\x1b[" + ac.reset + "m"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Print writes text at the cursor.
func (t *TermSink) Print(text string) error {
	return t.emit(text)
}
