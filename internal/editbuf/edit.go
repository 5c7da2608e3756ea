package editbuf

// Edit records a single byte-range splice so it can be replayed in
// either direction.
type Edit struct {
	// Before is the region that was replaced.
	Before []byte

	// After is the replacement.
	After []byte

	// Pos is the byte offset where the splice occurred.
	Pos int
}

// apply splices the edit into content and returns the result. Reverse
// swaps the roles of Before and After, so apply(apply(c, false), true)
// is the identity.
func (e Edit) apply(content []byte, reverse bool) []byte {
	old, repl := e.Before, e.After
	if reverse {
		old, repl = repl, old
	}

	end := e.Pos + len(old)
	if e.Pos > len(content) {
		return content
	}
	if end > len(content) {
		end = len(content)
	}

	out := make([]byte, 0, len(content)-(end-e.Pos)+len(repl))
	out = append(out, content[:e.Pos]...)
	out = append(out, repl...)
	out = append(out, content[end:]...)
	return out
}

// oldRange returns the byte range the edit removes when applied in the
// given direction.
func (e Edit) oldRange(reverse bool) (start, end int) {
	if reverse {
		return e.Pos, e.Pos + len(e.After)
	}
	return e.Pos, e.Pos + len(e.Before)
}

// newLen returns the length of the bytes the edit inserts when applied
// in the given direction.
func (e Edit) newLen(reverse bool) int {
	if reverse {
		return len(e.Before)
	}
	return len(e.After)
}
