// Package grapheme maps between byte offsets, user-perceived character
// (grapheme cluster) offsets, and on-screen column widths.
//
// The package is a pure function library; it keeps no state. Buffers are
// not required to be valid UTF-8: bytes that cannot be displayed are
// expanded into one escaped placeholder per raw byte so malformed input
// is never silently invisible.
package grapheme

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// PlaceholderWidth is the printed width of an escaped byte placeholder
// such as "<u0080>".
const PlaceholderWidth = 7

// Cluster is one logical rendering slot: a grapheme cluster, a control
// character, or a single escaped byte from an undisplayable run.
type Cluster struct {
	// Start and End are byte offsets into the source buffer.
	Start, End int

	// Symbol is what the slot displays: the raw cluster, or an escaped
	// placeholder when Invalid is set.
	Symbol string

	// Width is the display width of the slot in columns. Control
	// characters report 0; callers decide how to expand them.
	Width int

	// Invalid marks slots whose Symbol is an escaped placeholder.
	Invalid bool
}

// Placeholder returns the escaped display form of a raw byte.
func Placeholder(b byte) string {
	return fmt.Sprintf("<u%04x>", b)
}

// Clusters yields the logical rendering slots of buf in order. The
// sequence is finite and restartable; iterating twice yields identical
// slots.
//
// A cluster is expanded into per-byte placeholders when its raw bytes
// are not valid UTF-8, when it decodes to U+FFFD from exactly 3 raw
// bytes, or when it has zero display width. Newline and tab pass
// through unexpanded with Width 0 so that layout layers can give them
// meaning.
func Clusters(buf []byte) iter.Seq[Cluster] {
	return func(yield func(Cluster) bool) {
		rest := buf
		offset := 0
		state := -1
		for len(rest) > 0 {
			var cluster []byte
			cluster, rest, _, state = uniseg.Step(rest, state)
			start := offset
			offset += len(cluster)

			sym := string(cluster)
			if sym == "\n" || sym == "\t" {
				if !yield(Cluster{Start: start, End: offset, Symbol: sym}) {
					return
				}
				continue
			}

			if needsEscape(sym) {
				for i, b := range cluster {
					c := Cluster{
						Start:   start + i,
						End:     start + i + 1,
						Symbol:  Placeholder(b),
						Width:   PlaceholderWidth,
						Invalid: true,
					}
					if !yield(c) {
						return
					}
				}
				continue
			}

			if !yield(Cluster{Start: start, End: offset, Symbol: sym, Width: clusterWidth(sym)}) {
				return
			}
		}
	}
}

// needsEscape reports whether a cluster must be rendered as escaped
// placeholders. A 3-byte sequence decoding to U+FFFD is treated as
// already invalid, so real decode failures are not masked behind the
// replacement character's success case.
func needsEscape(cluster string) bool {
	if !utf8.ValidString(cluster) {
		return true
	}
	if len(cluster) == 3 {
		if r, _ := utf8.DecodeRuneInString(cluster); r == utf8.RuneError {
			return true
		}
	}
	return clusterWidth(cluster) == 0
}

// clusterWidth returns the display width of a valid cluster.
func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		// go-runewidth reports 0 for some emoji sequences that terminals
		// render two columns wide; uniseg gets these right.
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	return w
}

// Count returns the number of logical clusters in buf. Each escaped
// byte counts as its own cluster.
func Count(buf []byte) int {
	n := 0
	for range Clusters(buf) {
		n++
	}
	return n
}

// BytePos returns the byte offset of the nth cluster boundary, or the
// end of the buffer if idx is past the last cluster. It never fails.
func BytePos(buf []byte, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	for c := range Clusters(buf) {
		if n == idx {
			return c.Start
		}
		n++
	}
	return len(buf)
}

// IndexAtByte returns the cluster index containing the given byte
// offset. Offsets at or past the end of buf return the cluster count.
func IndexAtByte(buf []byte, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for c := range Clusters(buf) {
		if offset < c.End {
			return n
		}
		n++
	}
	return n
}

// IndexAtOrAfter returns the index of the first cluster whose byte
// start is at or past the given offset, or the cluster count when no
// such cluster exists.
func IndexAtOrAfter(buf []byte, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for c := range Clusters(buf) {
		if c.Start >= offset {
			return n
		}
		n++
	}
	return n
}

// Width returns the total display width of buf. Tabs and newlines
// contribute nothing; expand them with a layout layer when column
// positions matter.
func Width(buf []byte) int {
	w := 0
	for c := range Clusters(buf) {
		w += c.Width
	}
	return w
}
