package editbuf

import "github.com/dshills/inkline/internal/render/core"

// Highlight is a live range overlay on the buffer. Start and End are
// byte offsets, half-open [Start, End). Highlights are kept consistent
// across every edit, including undo and redo, so external overlays such
// as error underlines survive interleaved edits.
type Highlight struct {
	Start, End int
	Style      core.Style

	// Namespace tags the highlight's producer for bulk clearing.
	Namespace string

	// VirtualText is optional ghost text shown after the range in the
	// range's style. A zero-length highlight with virtual text is not
	// considered empty.
	VirtualText string
}

// IsEmpty reports whether the highlight covers nothing and shows
// nothing.
func (h Highlight) IsEmpty() bool {
	return h.Start == h.End && h.VirtualText == ""
}

// shiftHighlight remaps a highlight across a splice that replaced
// [editStart, editEnd) with newLen bytes. It is a pure function so the
// boundary cases are independently testable.
//
// Start uses <= at the boundary: a highlight starting exactly at the
// edit start is swallowed. End uses <: a highlight ending exactly at
// the edit start is left alone.
func shiftHighlight(editStart, editEnd, newLen int, h Highlight) Highlight {
	delta := newLen - (editEnd - editStart)
	newEnd := editStart + newLen

	switch {
	case editEnd <= h.Start:
		h.Start += delta
	case editStart <= h.Start:
		h.Start = newEnd
	}

	switch {
	case editEnd < h.End:
		h.End += delta
	case editStart < h.End:
		h.End = newEnd
	}

	if h.Start > h.End {
		h.Start = h.End
	}
	return h
}
