// Package editbuf implements the logical line-edit buffer: content
// bytes, a grapheme-unit cursor, a linear undo/redo history of byte
// splices, and live highlight ranges that track every edit.
//
// Operations at this layer do not fail: malformed offsets are policed
// by clamping, never by error returns, because a line editor must stay
// usable even over binary or garbled input.
package editbuf

import (
	"github.com/dshills/inkline/internal/grapheme"
)

// Buffer is the edit buffer for one session. It is not safe for
// concurrent use; callers serialize access between render passes.
type Buffer struct {
	content []byte
	cursor  int // grapheme units, 0 <= cursor <= Count(content)

	history      []Edit
	historyIndex int // points just past the last applied edit

	highlights []Highlight

	// Single-slot shadow of content+cursor, swapped by Save/Restore.
	saved       []byte
	savedCursor int
	hasSaved    bool

	// Cached grapheme count; -1 when stale.
	graphemes int
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{graphemes: 0}
}

// Contents returns the current content. The returned slice is owned by
// the buffer; callers must not mutate it.
func (b *Buffer) Contents() []byte {
	return b.content
}

// Cursor returns the cursor position in grapheme units.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor, clamping to the buffer's grapheme count.
func (b *Buffer) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if n := b.GraphemeCount(); pos > n {
		pos = n
	}
	b.cursor = pos
}

// GraphemeCount returns the number of grapheme units in the buffer.
// The count is cached and invalidated on mutation.
func (b *Buffer) GraphemeCount() int {
	if b.graphemes < 0 {
		b.graphemes = grapheme.Count(b.content)
	}
	return b.graphemes
}

// SetContents replaces the content wholesale. All highlights are
// invalidated (they cannot be remapped across an unrelated
// replacement), the cursor resets to 0, and one edit is recorded.
func (b *Buffer) SetContents(data []byte) {
	b.highlights = nil
	b.pushEdit(Edit{Before: b.content, After: append([]byte(nil), data...), Pos: 0})
	b.cursor = 0
}

// SpliceAtCursor replaces replaceGraphemes grapheme units starting at
// the cursor with data. A negative replaceGraphemes means "to end of
// buffer". Any redo branch beyond the current history index is
// discarded.
func (b *Buffer) SpliceAtCursor(data []byte, replaceGraphemes int) {
	start := grapheme.BytePos(b.content, b.cursor)
	end := len(b.content)
	if replaceGraphemes >= 0 {
		end = grapheme.BytePos(b.content, b.cursor+replaceGraphemes)
	}
	if end < start {
		end = start
	}

	before := append([]byte(nil), b.content[start:end]...)
	b.pushEdit(Edit{Before: before, After: append([]byte(nil), data...), Pos: start})
}

// pushEdit truncates the redo branch, appends the edit, and applies it
// forward.
func (b *Buffer) pushEdit(e Edit) {
	b.history = append(b.history[:b.historyIndex], e)
	b.historyIndex = len(b.history)
	b.applyEdit(e, false)
}

// applyEdit splices the edit, shifts every highlight, prunes empties,
// and recomputes the cursor as the first grapheme boundary at or past
// the edit's new end.
func (b *Buffer) applyEdit(e Edit, reverse bool) {
	editStart, editEnd := e.oldRange(reverse)
	newLen := e.newLen(reverse)

	b.content = e.apply(b.content, reverse)
	b.graphemes = -1

	kept := b.highlights[:0]
	for _, h := range b.highlights {
		h = shiftHighlight(editStart, editEnd, newLen, h)
		if h.IsEmpty() {
			continue
		}
		kept = append(kept, h)
	}
	b.highlights = kept

	b.cursor = grapheme.IndexAtOrAfter(b.content, editStart+newLen)
	if n := b.GraphemeCount(); b.cursor > n {
		b.cursor = n
	}
}

// MoveInHistory re-applies (forward) or un-applies (backward) the edit
// at the current history index. It reports whether a move occurred;
// false at either end of history is a no-op, not an error. It never
// truncates history.
func (b *Buffer) MoveInHistory(forward bool) bool {
	if forward {
		if b.historyIndex >= len(b.history) {
			return false
		}
		b.applyEdit(b.history[b.historyIndex], false)
		b.historyIndex++
		return true
	}
	if b.historyIndex == 0 {
		return false
	}
	b.historyIndex--
	b.applyEdit(b.history[b.historyIndex], true)
	return true
}

// AddHighlight registers a highlight range. Offsets are clamped to the
// buffer; an empty highlight without virtual text is dropped.
func (b *Buffer) AddHighlight(h Highlight) {
	n := len(b.content)
	if h.Start < 0 {
		h.Start = 0
	}
	if h.End > n {
		h.End = n
	}
	if h.Start > h.End {
		h.Start = h.End
	}
	if h.IsEmpty() {
		return
	}
	b.highlights = append(b.highlights, h)
}

// Highlights returns the live highlights. The returned slice is owned
// by the buffer.
func (b *Buffer) Highlights() []Highlight {
	return b.highlights
}

// ClearNamespace removes every highlight carrying the given namespace
// tag.
func (b *Buffer) ClearNamespace(ns string) {
	kept := b.highlights[:0]
	for _, h := range b.highlights {
		if h.Namespace != ns {
			kept = append(kept, h)
		}
	}
	b.highlights = kept
}

// Save stashes a copy of content and cursor into the single shadow
// slot, replacing any previous stash.
func (b *Buffer) Save() {
	b.saved = append(b.saved[:0], b.content...)
	b.savedCursor = b.cursor
	b.hasSaved = true
}

// Restore swaps the shadow slot back into the buffer. Content and
// cursor return verbatim to their stashed values; the values they had
// before Restore land in the slot. No-op when nothing was saved.
func (b *Buffer) Restore() {
	if !b.hasSaved {
		return
	}
	b.content, b.saved = b.saved, b.content
	b.cursor, b.savedCursor = b.savedCursor, b.cursor
	b.graphemes = -1
	if n := b.GraphemeCount(); b.cursor > n {
		b.cursor = n
	}
}

// Reset clears content, history, and highlights atomically.
func (b *Buffer) Reset() {
	b.content = nil
	b.cursor = 0
	b.history = nil
	b.historyIndex = 0
	b.highlights = nil
	b.saved = nil
	b.hasSaved = false
	b.graphemes = 0
}
