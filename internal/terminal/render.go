package terminal

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/muesli/termenv"

	"github.com/steferic/workbench/internal/vt"
)

// ViewANSI returns the VT's own ANSI-rendered screen. This is the most
// correct rendering (attrs, reverse-video) when the pane fills a region
// on its own.
func (s *Session) ViewANSI() string {
	if s == nil {
		return ""
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return ""
	}
	return s.term.Render()
}

// RenderOptions controls cell rendering.
type RenderOptions struct {
	ShowCursor bool
	Profile    termenv.Profile
}

// ViewLipgloss renders the VT screen by walking cells and applying
// lipgloss styles. Use it to composite the pane inside other lipgloss
// layouts.
func (s *Session) ViewLipgloss(opts RenderOptions) string {
	if s == nil {
		return ""
	}

	s.termMu.Lock()
	term := s.term
	if term == nil {
		s.termMu.Unlock()
		return ""
	}
	cols, rows := term.Width(), term.Height()
	if cols <= 0 || rows <= 0 {
		s.termMu.Unlock()
		return ""
	}

	// Copy cells out under the lock; styling happens without it.
	blank := uv.EmptyCell
	cells := make([]uv.Cell, cols*rows)
	for y := 0; y < rows; y++ {
		rowOff := y * cols
		for x := 0; x < cols; x++ {
			if c := term.CellAt(x, y); c != nil {
				cells[rowOff+x] = *c
			} else {
				cells[rowOff+x] = blank
			}
		}
	}
	curX, curY := term.CursorPosition()
	s.termMu.Unlock()

	cellAt := func(x, y int) *uv.Cell {
		if x < 0 || x >= cols || y < 0 || y >= rows {
			return nil
		}
		return &cells[y*cols+x]
	}

	showCursor := opts.ShowCursor && s.cursorVisible.Load()
	r := newCellRenderer(cols, cellAt, opts.Profile)

	var b strings.Builder
	b.Grow(cols * rows)
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		r.renderRow(y, showCursor, curX, curY, &b)
	}
	return b.String()
}

// PlainSnapshot returns the visible screen as plain text, one line per
// row with trailing blanks trimmed.
func (s *Session) PlainSnapshot() string {
	if s == nil {
		return ""
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return ""
	}
	return s.term.PlainScreen()
}

type renderKey struct {
	fg, bg                  string
	bold, italic, underline bool
	reverse, strike, blink  bool
	cursor                  bool
}

type cellRenderer struct {
	cols       int
	cellAt     func(x, y int) *uv.Cell
	renderer   *lipgloss.Renderer
	styleCache map[renderKey]lipgloss.Style
}

func newCellRenderer(cols int, cellAt func(x, y int) *uv.Cell, profile termenv.Profile) *cellRenderer {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(normalizeProfile(profile))
	return &cellRenderer{
		cols:       cols,
		cellAt:     cellAt,
		renderer:   renderer,
		styleCache: make(map[renderKey]lipgloss.Style, 128),
	}
}

func normalizeProfile(profile termenv.Profile) termenv.Profile {
	switch profile {
	case termenv.TrueColor, termenv.ANSI256, termenv.ANSI, termenv.Ascii:
		return profile
	default:
		return termenv.TrueColor
	}
}

func (r *cellRenderer) renderRow(y int, showCursor bool, curX, curY int, b *strings.Builder) {
	var run strings.Builder
	var prev renderKey
	var hasPrev bool

	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(r.renderText(prev, run.String()))
		run.Reset()
	}

	for x := 0; x < r.cols; {
		cell := r.cellAt(x, y)
		if cell != nil && cell.Width == 0 {
			x++
			continue
		}

		ch, w := cellContent(cell)
		kc := keyFromCell(cell)
		if showCursor && x == curX && y == curY {
			kc.cursor = true
		}

		if !hasPrev {
			prev = kc
			hasPrev = true
		} else if kc != prev {
			flush()
			prev = kc
		}

		run.WriteString(ch)
		x += w
	}
	flush()
}

func (r *cellRenderer) renderText(k renderKey, text string) string {
	if text == "" {
		return ""
	}
	if k == (renderKey{}) {
		return text
	}
	return r.styleForKey(k).Render(text)
}

func (r *cellRenderer) styleForKey(k renderKey) lipgloss.Style {
	if st, ok := r.styleCache[k]; ok {
		return st
	}
	st := r.renderer.NewStyle()
	if k.fg != "" {
		st = st.Foreground(lipgloss.Color(k.fg))
	}
	if k.bg != "" {
		st = st.Background(lipgloss.Color(k.bg))
	}
	if k.bold {
		st = st.Bold(true)
	}
	if k.italic {
		st = st.Italic(true)
	}
	if k.underline {
		st = st.Underline(true)
	}
	if k.strike {
		st = st.Strikethrough(true)
	}
	if k.blink {
		st = st.Blink(true)
	}
	if k.reverse {
		st = st.Reverse(true)
	}
	if k.cursor {
		st = st.Reverse(true).Bold(true)
	}
	r.styleCache[k] = st
	return st
}

func cellContent(cell *uv.Cell) (string, int) {
	if cell == nil {
		return " ", 1
	}
	ch := " "
	if cell.Content != "" {
		ch = cell.Content
	}
	width := 1
	if cell.Width > 1 {
		width = cell.Width
	}
	return ch, width
}

func keyFromCell(cell *uv.Cell) (k renderKey) {
	if cell == nil {
		return k
	}

	k.fg = colorToHex(cell.Style.Fg)
	k.bg = colorToHex(cell.Style.Bg)

	attrs := cell.Style.Attrs
	k.bold = attrs&vt.AttrBold != 0
	k.italic = attrs&vt.AttrItalic != 0
	k.blink = attrs&(vt.AttrBlink|vt.AttrRapidBlink) != 0
	k.reverse = attrs&vt.AttrReverse != 0
	k.strike = attrs&vt.AttrStrikethrough != 0
	k.underline = cell.Style.Underline != 0

	return k
}

func colorToHex(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
