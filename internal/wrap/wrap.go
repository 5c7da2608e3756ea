// Package wrap produces the wrapped segments of a single line of
// bytes for a given column budget. Wrapping is exposed as a lazy,
// restartable iterator: a pure function of its inputs with no state
// retained between calls, so scroll recomputation can cheaply re-wrap.
package wrap

import (
	"iter"

	"github.com/dshills/inkline/internal/grapheme"
)

// DefaultTabWidth is the tab stop interval used when a caller passes a
// non-positive tab width.
const DefaultTabWidth = 4

// Segment is one wrapped piece of the input line: a byte range plus
// the visual width of its rendered form.
type Segment struct {
	// Start and End are byte offsets into the wrapped line, excluding
	// any newline that forced the break.
	Start, End int

	// Width is the visual width of the segment in columns, including
	// tab expansion and escaped-byte placeholders.
	Width int
}

// Wrap yields the segments of line fitted to maxWidth columns. The
// first segment's budget is reduced by initialIndent columns (for
// prompts or continuation markers drawn by the caller).
//
// Newlines force a break and are never part of a segment. Tabs expand
// to the next tab stop. Clusters that cannot be displayed expand to
// one placeholder per raw byte, each its own breakable slot. When a
// cluster would overflow, the break happens before it: the pending
// cluster starts the next segment with the running width reset to the
// cluster's own width, so a single over-wide cluster can never produce
// an infinite run of empty segments. The final, possibly empty,
// trailing segment is always yielded.
func Wrap(line []byte, maxWidth, initialIndent, tabWidth int) iter.Seq[Segment] {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return func(yield func(Segment) bool) {
		running := initialIndent
		seg := Segment{}

		for c := range grapheme.Clusters(line) {
			if c.Symbol == "\n" {
				if !yield(seg) {
					return
				}
				running = 0
				seg = Segment{Start: c.End, End: c.End}
				continue
			}

			w := c.Width
			if c.Symbol == "\t" {
				w = tabWidth - running%tabWidth
			}

			if running+w > maxWidth && running > 0 {
				if !yield(seg) {
					return
				}
				seg = Segment{Start: c.Start, End: c.Start}
				running = 0
				if c.Symbol == "\t" {
					w = tabWidth
				}
			}

			seg.End = c.End
			seg.Width += w
			running += w
		}

		yield(seg)
	}
}

// Count returns the number of segments line wraps into.
func Count(line []byte, maxWidth, initialIndent, tabWidth int) int {
	n := 0
	for range Wrap(line, maxWidth, initialIndent, tabWidth) {
		n++
	}
	return n
}
