// Package scroll computes the visible band of wrapped lines for a
// viewport: virtual scrolling over a multi-line document plus a
// proportional scrollbar thumb.
package scroll

import (
	"github.com/dshills/inkline/internal/wrap"
)

// Anchor selects what the viewport tracks.
type Anchor struct {
	sticky bool
	line   int
}

// Line anchors the viewport on a logical line index.
func Line(k int) Anchor {
	return Anchor{line: k}
}

// StickyBottom anchors the viewport to the bottom of the content,
// tracking new lines as they arrive.
func StickyBottom() Anchor {
	return Anchor{sticky: true}
}

// Token is one visible wrapped line: the logical line it came from and
// the wrapped segment within it.
type Token struct {
	// Line is the logical line index.
	Line int

	// Seg is the wrapped byte range within that line.
	Seg wrap.Segment

	// Visual is the token's index in the fully wrapped document.
	Visual int
}

// Thumb is the scrollbar indicator range, in viewport rows, half-open
// [Start, End).
type Thumb struct {
	Start, End int
}

// View is the resolved window over the wrapped document.
type View struct {
	// Tokens are the visible wrapped lines, exactly End-Start of them.
	Tokens []Token

	// Start and End bound the visible band in visual line indices.
	Start, End int

	// Total is the total visual line count of the document.
	Total int

	// Thumb is the scrollbar thumb over the viewport's own rows.
	Thumb Thumb
}

// Compute wraps every line of the document and resolves the viewport.
// The window is centered on the anchor and always spans exactly height
// visual lines unless the whole document is shorter.
func Compute(lines [][]byte, maxWidth, height, tabWidth int, anchor Anchor) View {
	if height < 0 {
		height = 0
	}

	var tokens []Token
	lineStart := make([]int, len(lines)) // first visual index per logical line
	for i, line := range lines {
		lineStart[i] = len(tokens)
		for seg := range wrap.Wrap(line, maxWidth, 0, tabWidth) {
			tokens = append(tokens, Token{Line: i, Seg: seg, Visual: len(tokens)})
		}
	}
	total := len(tokens)

	target := 0
	if anchor.sticky {
		target = total - 1
	} else if len(lines) > 0 {
		k := anchor.line
		if k < 0 {
			k = 0
		}
		if k >= len(lines) {
			k = len(lines) - 1
		}
		target = lineStart[k]
	}
	if target < 0 {
		target = 0
	}
	if target >= total && total > 0 {
		target = total - 1
	}

	// Center the viewport on the target; pull back rather than shrink
	// when the band would fall short.
	start := target - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
	}
	if end-start < height {
		start = end - height
		if start < 0 {
			start = 0
		}
	}

	return View{
		Tokens: tokens[start:end],
		Start:  start,
		End:    end,
		Total:  total,
		Thumb:  thumb(start, end, total),
	}
}

// thumb maps the visible band proportionally onto the viewport's own
// rows. The thumb never touches the top or bottom row unless the
// window actually sits at that extreme, so partial scroll stays
// visually distinct from "no more content".
func thumb(start, end, total int) Thumb {
	rows := end - start
	if rows <= 0 || total <= 0 {
		return Thumb{}
	}
	if start == 0 && end == total {
		return Thumb{Start: 0, End: rows}
	}

	tStart := start * rows / total
	tEnd := (end*rows + total - 1) / total

	if start > 0 && tStart == 0 {
		tStart = 1
	}
	if end < total && tEnd >= rows {
		tEnd = rows - 1
	}
	if tEnd <= tStart {
		tEnd = tStart + 1
		if tEnd > rows {
			tStart, tEnd = rows-1, rows
		}
	}
	return Thumb{Start: tStart, End: tEnd}
}
