package wrap

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/inkline/internal/grapheme"
)

func collect(line string, maxWidth, indent, tab int) []Segment {
	var out []Segment
	for s := range Wrap([]byte(line), maxWidth, indent, tab) {
		out = append(out, s)
	}
	return out
}

func reconstruct(line string, segs []Segment) string {
	out := ""
	for _, s := range segs {
		out += line[s.Start:s.End]
	}
	return out
}

func TestWrapDeterminism(t *testing.T) {
	line := "hello world"
	segs := collect(line, 5, 0, 4)

	// Every segment fits the budget and the segments reconstruct the
	// input exactly.
	for i, s := range segs {
		if s.Width > 5 {
			t.Errorf("segment %d width %d exceeds 5", i, s.Width)
		}
	}
	if got := reconstruct(line, segs); got != line {
		t.Errorf("reconstructed %q, want %q", got, line)
	}
	want := []Segment{
		{Start: 0, End: 5, Width: 5},   // "hello"
		{Start: 5, End: 10, Width: 5},  // " worl"
		{Start: 10, End: 11, Width: 1}, // "d"
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapRestartable(t *testing.T) {
	line := []byte("a\tb 世界 c\x80d")
	seq := Wrap(line, 6, 2, 4)

	var first, second []Segment
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("iterator not restartable (-first +second):\n%s", diff)
	}
}

func TestWrapNewlineForcesBreak(t *testing.T) {
	segs := collect("ab\ncd", 10, 0, 4)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Width != 2 || segs[1].Width != 2 {
		t.Errorf("unexpected widths: %+v", segs)
	}
	// The newline byte belongs to neither segment.
	if segs[0].End != 2 || segs[1].Start != 3 {
		t.Errorf("newline should be skipped: %+v", segs)
	}
}

func TestWrapTrailingNewlineEmitsEmptySegment(t *testing.T) {
	segs := collect("ab\n", 10, 0, 4)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[1].Width != 0 || segs[1].Start != segs[1].End {
		t.Errorf("expected empty trailing segment, got %+v", segs[1])
	}
}

func TestWrapEmptyInput(t *testing.T) {
	segs := collect("", 10, 0, 4)
	if len(segs) != 1 {
		t.Fatalf("expected 1 empty segment, got %d", len(segs))
	}
	if segs[0].Width != 0 {
		t.Errorf("expected width 0, got %d", segs[0].Width)
	}
}

func TestWrapTabExpansion(t *testing.T) {
	// "a" at column 0, tab advances to column 4, "b" at column 4.
	segs := collect("a\tb", 10, 0, 4)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Width != 5 {
		t.Errorf("width = %d, want 5 (a + 3-col tab + b)", segs[0].Width)
	}
}

func TestWrapTabAtStop(t *testing.T) {
	// Tab exactly at a stop advances a full interval.
	segs := collect("abcd\tx", 20, 0, 4)
	if segs[0].Width != 9 {
		t.Errorf("width = %d, want 9", segs[0].Width)
	}
}

func TestWrapInitialIndent(t *testing.T) {
	// Budget 5 with indent 3 leaves room for 2 columns on the first
	// segment only.
	segs := collect("abcdef", 5, 3, 4)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Width != 2 {
		t.Errorf("first segment width = %d, want 2", segs[0].Width)
	}
	if segs[1].Width != 4 {
		t.Errorf("second segment width = %d, want 4", segs[1].Width)
	}
}

func TestWrapIndentWiderThanFirstCluster(t *testing.T) {
	// Indent 4 of 5 leaves 1 column; a wide cluster breaks before,
	// producing an empty first segment rather than overflowing.
	segs := collect("世x", 5, 4, 4)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Width != 0 {
		t.Errorf("first segment should be empty, got width %d", segs[0].Width)
	}
	if segs[1].Width != 3 {
		t.Errorf("second segment width = %d, want 3", segs[1].Width)
	}
}

func TestWrapOverWideClusterNoInfiniteLoop(t *testing.T) {
	// A placeholder (width 7) wider than the budget must still be
	// emitted, one per segment, never as an endless run of empties.
	line := []byte{0x80, 0x81}
	var segs []Segment
	for s := range Wrap(line, 5, 0, 4) {
		segs = append(segs, s)
		if len(segs) > 10 {
			t.Fatal("runaway segmentation")
		}
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	for i, s := range segs {
		if s.Width != grapheme.PlaceholderWidth {
			t.Errorf("segment %d width = %d, want %d", i, s.Width, grapheme.PlaceholderWidth)
		}
	}
}

func TestWrapWideCharBoundary(t *testing.T) {
	// Width 5: "ab" + 世 (2) = 4, 界 would make 6, so it breaks before.
	segs := collect("ab世界", 5, 0, 4)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Width != 4 || segs[1].Width != 2 {
		t.Errorf("unexpected widths: %+v", segs)
	}
}

func TestCount(t *testing.T) {
	if got := Count([]byte("hello world"), 5, 0, 4); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := Count(nil, 5, 0, 4); got != 1 {
		t.Errorf("Count(empty) = %d, want 1", got)
	}
}
