package core

import "strings"

// Attribute represents text modifier flags (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
	AttrHidden                  // Hidden/invisible text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// String returns a readable list of set attributes.
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	names := []struct {
		attr Attribute
		name string
	}{
		{AttrBold, "bold"},
		{AttrDim, "dim"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrBlink, "blink"},
		{AttrReverse, "reverse"},
		{AttrStrikethrough, "strikethrough"},
		{AttrHidden, "hidden"},
	}
	var parts []string
	for _, n := range names {
		if a.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Style represents the visual style of a cell: foreground, background,
// underline color, and modifier attributes.
type Style struct {
	Foreground Color
	Background Color
	Underline  Color // color of the underline, independent of Foreground
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Underline:  ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	s := DefaultStyle()
	s.Foreground = fg
	return s
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithUnderlineColor returns a new style with the given underline color.
func (s Style) WithUnderlineColor(c Color) Style {
	s.Underline = c
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// Bold returns a new style with the bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns a new style with the dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Italic returns a new style with the italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underlined returns a new style with the underline attribute added.
func (s Style) Underlined() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reversed returns a new style with the reverse attribute added.
func (s Style) Reversed() Style {
	s.Attributes |= AttrReverse
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Underline.Equals(other.Underline) &&
		s.Attributes == other.Attributes
}
