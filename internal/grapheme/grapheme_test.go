package grapheme

import (
	"testing"
)

func collect(buf []byte) []Cluster {
	var out []Cluster
	for c := range Clusters(buf) {
		out = append(out, c)
	}
	return out
}

func TestClustersASCII(t *testing.T) {
	got := collect([]byte("abc"))
	if len(got) != 3 {
		t.Fatalf("expected 3 clusters, got %d", len(got))
	}
	for i, c := range got {
		if c.Symbol != string([]byte{'a' + byte(i)}) {
			t.Errorf("cluster %d: expected %q, got %q", i, 'a'+byte(i), c.Symbol)
		}
		if c.Width != 1 {
			t.Errorf("cluster %d: expected width 1, got %d", i, c.Width)
		}
		if c.Start != i || c.End != i+1 {
			t.Errorf("cluster %d: bad range [%d,%d)", i, c.Start, c.End)
		}
	}
}

func TestClustersCombining(t *testing.T) {
	// "e" + combining acute accent is one cluster of width 1.
	got := collect([]byte("éx"))
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	if got[0].Symbol != "é" || got[0].Width != 1 {
		t.Errorf("expected combined cluster width 1, got %q width %d", got[0].Symbol, got[0].Width)
	}
	if got[1].Start != 3 {
		t.Errorf("expected second cluster at byte 3, got %d", got[1].Start)
	}
}

func TestClustersWide(t *testing.T) {
	got := collect([]byte("世"))
	if len(got) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(got))
	}
	if got[0].Width != 2 {
		t.Errorf("expected width 2 for CJK, got %d", got[0].Width)
	}
}

func TestClustersLoneContinuationByte(t *testing.T) {
	got := collect([]byte{0x80})
	if len(got) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(got))
	}
	c := got[0]
	if c.Symbol != "<u0080>" {
		t.Errorf("expected placeholder <u0080>, got %q", c.Symbol)
	}
	if !c.Invalid {
		t.Error("expected Invalid to be set")
	}
	if c.Width != PlaceholderWidth {
		t.Errorf("expected width %d, got %d", PlaceholderWidth, c.Width)
	}
	if c.Start != 0 || c.End != 1 {
		t.Errorf("expected range [0,1), got [%d,%d)", c.Start, c.End)
	}
}

func TestClustersInvalidRunPerByte(t *testing.T) {
	// Two garbage bytes between valid text expand to one placeholder each.
	buf := []byte{'a', 0xfe, 0xff, 'b'}
	got := collect(buf)
	if len(got) != 4 {
		t.Fatalf("expected 4 clusters, got %d", len(got))
	}
	if got[1].Symbol != "<u00fe>" || got[2].Symbol != "<u00ff>" {
		t.Errorf("expected per-byte placeholders, got %q %q", got[1].Symbol, got[2].Symbol)
	}
	if got[1].End != 2 || got[2].Start != 2 {
		t.Errorf("placeholders should each cover one byte: [%d,%d) [%d,%d)",
			got[1].Start, got[1].End, got[2].Start, got[2].End)
	}
}

func TestClustersReplacementCharEscaped(t *testing.T) {
	// A literal U+FFFD (3 bytes) is treated as already invalid.
	got := collect([]byte("�"))
	if len(got) != 3 {
		t.Fatalf("expected 3 per-byte placeholders, got %d", len(got))
	}
	for _, c := range got {
		if !c.Invalid {
			t.Errorf("expected placeholder, got %q", c.Symbol)
		}
	}
}

func TestClustersControlPassThrough(t *testing.T) {
	got := collect([]byte("a\tb\n"))
	if len(got) != 4 {
		t.Fatalf("expected 4 clusters, got %d", len(got))
	}
	if got[1].Symbol != "\t" || got[1].Width != 0 || got[1].Invalid {
		t.Errorf("tab should pass through with width 0: %+v", got[1])
	}
	if got[3].Symbol != "\n" || got[3].Width != 0 || got[3].Invalid {
		t.Errorf("newline should pass through with width 0: %+v", got[3])
	}
}

func TestClustersRestartable(t *testing.T) {
	buf := []byte("áb\x80")
	first := collect(buf)
	second := collect(buf)
	if len(first) != len(second) {
		t.Fatalf("iteration not restartable: %d vs %d clusters", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cluster %d differs across iterations: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want int
	}{
		{"empty", nil, 0},
		{"ascii", []byte("hello"), 5},
		{"combining", []byte("é"), 1},
		{"invalid run", []byte{0x80, 0x81}, 2},
		{"mixed", []byte("a\x80b"), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.buf); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.buf, got, tt.want)
			}
		})
	}
}

func TestBytePos(t *testing.T) {
	buf := []byte("aéb") // clusters: a (1 byte), e+accent (3 bytes), b
	tests := []struct {
		idx  int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},  // end of buffer
		{10, 5}, // out of range clamps to end
	}
	for _, tt := range tests {
		if got := BytePos(buf, tt.idx); got != tt.want {
			t.Errorf("BytePos(%d) = %d, want %d", tt.idx, got, tt.want)
		}
	}
}

func TestIndexAtOrAfter(t *testing.T) {
	buf := []byte("aéb")
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, 2}, // inside the combined cluster: next boundary
		{4, 2},
		{5, 3},
		{99, 3},
	}
	for _, tt := range tests {
		if got := IndexAtOrAfter(buf, tt.offset); got != tt.want {
			t.Errorf("IndexAtOrAfter(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestWidth(t *testing.T) {
	if got := Width([]byte("a世")); got != 3 {
		t.Errorf("Width = %d, want 3", got)
	}
	if got := Width([]byte{0x80}); got != PlaceholderWidth {
		t.Errorf("Width of invalid byte = %d, want %d", got, PlaceholderWidth)
	}
}
