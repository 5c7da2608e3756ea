package app

import (
	"github.com/dshills/inkline/internal/config"
	"github.com/dshills/inkline/internal/editbuf"
	"github.com/dshills/inkline/internal/grapheme"
	"github.com/dshills/inkline/internal/render"
	"github.com/dshills/inkline/internal/render/core"
	"github.com/dshills/inkline/internal/scroll"
	"github.com/dshills/inkline/internal/textmodel"
	"github.com/dshills/inkline/internal/wrap"
)

// Session composes an edit buffer, text model, scroll window, and diff
// renderer into one render pipeline. It is single-caller: edits happen
// strictly between Render calls.
type Session struct {
	cfg    config.Config
	theme  config.Theme
	log    *Logger
	buffer *editbuf.Buffer
	text   *textmodel.Text
	drawer *render.Drawer
	anchor scroll.Anchor
}

// Frame reports where a render left the terminal.
type Frame struct {
	// CursorCol and CursorRow are the final on-screen cursor position.
	CursorCol int
	CursorRow int

	// Height is the number of rows the frame occupies, so the caller
	// can reserve scrollback space before the next draw.
	Height int
}

// NewSession builds a pipeline drawing to sink at the given size.
func NewSession(sink render.Sink, width, height int, cfg config.Config, log *Logger) (*Session, error) {
	theme, err := cfg.Theme.Styles()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = NullLogger
	}

	text := textmodel.New(theme.Base, textmodel.AlignLeft)
	text.SetInvalidStyle(theme.Invalid)

	return &Session{
		cfg:    cfg,
		theme:  theme,
		log:    log.WithComponent("session"),
		buffer: editbuf.New(),
		text:   text,
		drawer: render.NewDrawer(sink, width, height),
		anchor: scroll.StickyBottom(),
	}, nil
}

// Buffer exposes the session's edit buffer.
func (s *Session) Buffer() *editbuf.Buffer {
	return s.buffer
}

// Theme returns the resolved style palette.
func (s *Session) Theme() config.Theme {
	return s.theme
}

// SetAnchor changes which part of the document the viewport follows.
func (s *Session) SetAnchor(a scroll.Anchor) {
	s.anchor = a
}

// Resize adopts new terminal dimensions. The next frame is drawn in
// full.
func (s *Session) Resize(width, height int) {
	s.drawer.Resize(width, height)
}

// ForceRedraw marks the retained frame state stale, typically after a
// sink failure.
func (s *Session) ForceRedraw() {
	s.drawer.ForceRedraw()
}

// Render composes the buffer into cells and flushes the difference
// from the previous frame to the sink. On sink failure the frame is
// aborted and the next Render repaints from scratch.
func (s *Session) Render() (Frame, error) {
	content := s.buffer.Contents()
	s.text.SetText(content)
	s.syncHighlights(content)

	width, height := s.drawer.Size()
	tabWidth := s.cfg.Editor.TabWidth
	textWidth := width
	view := scroll.Compute(s.text.Lines(), textWidth, height, tabWidth, s.anchor)
	if view.Total > height && width > 1 {
		// Reserve the last column for the scrollbar and re-wrap.
		textWidth = width - 1
		view = scroll.Compute(s.text.Lines(), textWidth, height, tabWidth, s.anchor)
	}

	cursorByte := grapheme.BytePos(content, s.buffer.Cursor())
	cursorLine, cursorOff := locateLine(s.text.Lines(), cursorByte)
	cursorCol, cursorRow := 0, 0

	for row, tok := range view.Tokens {
		line := s.text.Lines()[tok.Line]
		cells := s.text.CellsForSegment(tok.Line, tok.Seg, tabWidth, 0)
		if tok.Seg.End >= len(line) {
			cells = append(cells, s.text.VirtualCells(tok.Line)...)
		}

		x := 0
		for _, c := range cells {
			if c.IsContinuation() {
				continue
			}
			if x+c.Width > textWidth {
				break
			}
			s.drawer.SetCell(x, row, c)
			x += c.Width
		}

		if tok.Line == cursorLine && segmentHolds(tok.Seg, cursorOff, len(line)) {
			cursorRow = row
			cursorCol = columnAt(line, tok.Seg, cursorOff, tabWidth)
		}
	}

	if textWidth < width {
		s.drawScrollbar(width-1, height, view.Thumb)
	}

	if err := s.drawer.Flush(false); err != nil {
		s.log.Error("frame aborted: %v", err)
		return Frame{}, err
	}

	return Frame{
		CursorCol: cursorCol,
		CursorRow: cursorRow,
		Height:    s.drawer.ContentHeight(),
	}, nil
}

// syncHighlights projects the buffer's whole-content highlights onto
// per-line ranges of the text model.
func (s *Session) syncHighlights(content []byte) {
	s.text.ClearRanges()

	highlights := s.buffer.Highlights()
	if len(highlights) == 0 {
		return
	}

	lineStart := 0
	for i, line := range s.text.Lines() {
		lineEnd := lineStart + len(line)
		for _, h := range highlights {
			start := max(h.Start, lineStart)
			end := min(h.End, lineEnd)
			if start > end {
				continue
			}
			r := textmodel.HighlightedRange{
				Line:      i,
				Start:     start - lineStart,
				End:       end - lineStart,
				Style:     h.Style,
				Namespace: h.Namespace,
			}
			// Ghost text trails the final covered line.
			if h.VirtualText != "" && h.End <= lineEnd {
				r.VirtualText = h.VirtualText
			}
			if r.Start == r.End && r.VirtualText == "" {
				continue
			}
			s.text.AddRange(r)
		}
		lineStart = lineEnd + 1
	}
}

func (s *Session) drawScrollbar(col, height int, thumb scroll.Thumb) {
	track := core.NewCell("│", 1, s.theme.VirtualText)
	bar := core.NewCell(" ", 1, s.theme.Highlight.Reversed())
	for row := 0; row < height; row++ {
		cell := track
		if row >= thumb.Start && row < thumb.End {
			cell = bar
		}
		s.drawer.SetCell(col, row, cell)
	}
}

// locateLine maps a whole-content byte offset to (line index, offset
// within that line). Lines exclude their trailing newline byte; an
// offset pointing at the newline resolves to the end of its line.
func locateLine(lines [][]byte, offset int) (line, lineOffset int) {
	start := 0
	for i, l := range lines {
		end := start + len(l)
		if offset <= end {
			return i, offset - start
		}
		start = end + 1
	}
	if n := len(lines); n > 0 {
		return n - 1, len(lines[n-1])
	}
	return 0, 0
}

// segmentHolds reports whether the cursor offset belongs to this
// wrapped segment. End-of-line offsets land on the last segment.
func segmentHolds(seg wrap.Segment, offset, lineLen int) bool {
	if offset >= seg.Start && offset < seg.End {
		return true
	}
	return offset == seg.End && seg.End >= lineLen
}

// columnAt computes the display column of a byte offset within a
// wrapped segment, expanding tabs the same way cell composition does.
func columnAt(line []byte, seg wrap.Segment, offset, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = wrap.DefaultTabWidth
	}
	col := 0
	for c := range grapheme.Clusters(line) {
		if c.Start < seg.Start || c.Start >= seg.End || c.Start >= offset {
			continue
		}
		switch c.Symbol {
		case "\n":
		case "\t":
			col += tabWidth - col%tabWidth
		default:
			col += c.Width
		}
	}
	return col
}
