package vt

import uv "github.com/charmbracelet/ultraviolet"

// Cursor is a grid position plus the pen applied to subsequent writes.
type Cursor struct {
	Pos     uv.Position
	Pen     uv.Style
	Link    uv.Link
	Visible bool
}

// Screen is one mutable cell buffer (primary or alternate) with its cursor.
// Invariant: after every mutation the cursor stays within
// [0,rows) × [0,cols); all op arguments are clamped before use.
type Screen struct {
	grid  cellGrid
	cur   Cursor
	saved Cursor

	// pendingWrap delays the wrap after writing in the last column until
	// the next printable, so CR/LF at the margin doesn't double-advance.
	pendingWrap bool

	damage *DamageTracker
}

// NewScreen creates a blank screen. A nil damage tracker disables tracking.
func NewScreen(cols, rows int) *Screen {
	s := &Screen{grid: newCellGrid(cols, rows)}
	s.cur.Visible = true
	return s
}

func (s *Screen) setDamage(d *DamageTracker) { s.damage = d }

func (s *Screen) Width() int  { return s.grid.Width() }
func (s *Screen) Height() int { return s.grid.Height() }

func (s *Screen) CursorPosition() (int, int) { return s.cur.Pos.X, s.cur.Pos.Y }

func (s *Screen) Pen() uv.Style           { return s.cur.Pen }
func (s *Screen) SetPen(pen uv.Style)     { s.cur.Pen = pen }
func (s *Screen) CursorVisible() bool     { return s.cur.Visible }
func (s *Screen) setCursorVisible(v bool) { s.cur.Visible = v }

func (s *Screen) CellAt(x, y int) *uv.Cell { return s.grid.CellAt(x, y) }
func (s *Screen) Row(y int) []uv.Cell      { return s.grid.Row(y) }

// blankCell returns the cell used for erased regions: default glyph with
// the pen's background, or nil (the shared empty cell) with no background.
func (s *Screen) blankCell() *uv.Cell {
	if s.cur.Pen.Bg == nil {
		return nil
	}
	c := uv.EmptyCell
	c.Style.Bg = s.cur.Pen.Bg
	return &c
}

func (s *Screen) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if max := s.grid.Width() - 1; x > max {
		if max < 0 {
			return 0
		}
		return max
	}
	return x
}

func (s *Screen) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if max := s.grid.Height() - 1; y > max {
		if max < 0 {
			return 0
		}
		return max
	}
	return y
}

// setCursor moves the cursor, clamping into bounds and clearing any
// pending wrap.
func (s *Screen) setCursor(x, y int) {
	s.cur.Pos.X = s.clampX(x)
	s.cur.Pos.Y = s.clampY(y)
	s.pendingWrap = false
}

func (s *Screen) moveCursor(dx, dy int) {
	s.setCursor(s.cur.Pos.X+dx, s.cur.Pos.Y+dy)
}

func (s *Screen) carriageReturn() {
	s.cur.Pos.X = 0
	s.pendingWrap = false
}

// linefeed moves down one row, scrolling the screen up at the bottom.
func (s *Screen) linefeed() {
	s.pendingWrap = false
	if s.cur.Pos.Y < s.grid.Height()-1 {
		s.cur.Pos.Y++
		return
	}
	s.ScrollUp(1)
}

// reverseIndex moves up one row, scrolling the screen down at the top.
func (s *Screen) reverseIndex() {
	s.pendingWrap = false
	if s.cur.Pos.Y > 0 {
		s.cur.Pos.Y--
		return
	}
	s.ScrollDown(1)
}

func (s *Screen) saveCursor()    { s.saved = s.cur }
func (s *Screen) restoreCursor() {
	s.cur = s.saved
	s.cur.Pos.X = s.clampX(s.cur.Pos.X)
	s.cur.Pos.Y = s.clampY(s.cur.Pos.Y)
	s.pendingWrap = false
}

// printCell writes a cell at the cursor and advances it, wrapping to the
// next row and scrolling when the cursor would pass the last row.
func (s *Screen) printCell(content string, width int, insert bool) {
	cols := s.grid.Width()
	if cols <= 0 || s.grid.Height() <= 0 {
		return
	}
	if width < 1 {
		width = 1
	}
	if s.pendingWrap {
		s.carriageReturn()
		s.linefeed()
	}
	if s.cur.Pos.X+width > cols {
		// Wide cell that doesn't fit in the remaining columns.
		s.cur.Pos.X = s.clampX(cols - width)
	}
	if insert {
		s.InsertCell(width)
	}
	c := uv.Cell{Content: content, Width: width, Style: s.cur.Pen, Link: s.cur.Link}
	s.grid.SetCell(s.cur.Pos.X, s.cur.Pos.Y, &c)
	s.markRow(s.cur.Pos.Y)

	if s.cur.Pos.X+width >= cols {
		s.cur.Pos.X = cols - 1
		s.pendingWrap = true
		return
	}
	s.cur.Pos.X += width
}

// ScrollUp removes n top rows, shifts the rest up, and blank-fills the
// bottom. Content scrolled off the top is discarded.
func (s *Screen) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	s.grid.ScrollUpArea(n, s.blankCell(), s.grid.Bounds())
	s.markScroll(-n)
}

// ScrollDown inserts n blank rows at the top, shifting the rest down.
func (s *Screen) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	s.grid.ScrollDownArea(n, s.blankCell(), s.grid.Bounds())
	s.markScroll(n)
}

func (s *Screen) InsertLine(n int) bool {
	if n <= 0 || s.grid.Height() <= 0 {
		return false
	}
	s.grid.InsertLineArea(s.cur.Pos.Y, n, s.blankCell(), s.grid.Bounds())
	s.markAll()
	return true
}

func (s *Screen) DeleteLine(n int) bool {
	if n <= 0 || s.grid.Height() <= 0 {
		return false
	}
	s.grid.DeleteLineArea(s.cur.Pos.Y, n, s.blankCell(), s.grid.Bounds())
	s.markAll()
	return true
}

func (s *Screen) InsertCell(n int) {
	if n <= 0 {
		return
	}
	s.grid.InsertCellArea(s.cur.Pos.X, s.cur.Pos.Y, n, s.blankCell(), s.grid.Bounds())
	s.markRow(s.cur.Pos.Y)
}

func (s *Screen) DeleteCell(n int) {
	if n <= 0 {
		return
	}
	s.grid.DeleteCellArea(s.cur.Pos.X, s.cur.Pos.Y, n, s.blankCell(), s.grid.Bounds())
	s.markRow(s.cur.Pos.Y)
}

// eraseCharacter blanks n cells from the cursor without moving it.
func (s *Screen) eraseCharacter(n int) {
	if n <= 0 {
		return
	}
	rect := uv.Rect(s.cur.Pos.X, s.cur.Pos.Y, n, 1)
	s.grid.FillArea(s.blankCell(), rect)
	s.markRow(s.cur.Pos.Y)
}

// ClearRegion identifies the erase operations of ED/EL.
type ClearRegion int

const (
	ClearToEndOfLine ClearRegion = iota
	ClearToStartOfLine
	ClearWholeLine
	ClearToEndOfScreen
	ClearToStartOfScreen
	ClearWholeScreen
)

// ClearKind erases a region relative to the cursor. The cursor cell is
// included in directional erases.
func (s *Screen) ClearKind(kind ClearRegion) {
	w, h := s.grid.Width(), s.grid.Height()
	x, y := s.cur.Pos.X, s.cur.Pos.Y
	blank := s.blankCell()
	switch kind {
	case ClearToEndOfLine:
		s.grid.FillArea(blank, uv.Rect(x, y, w-x, 1))
		s.markRow(y)
	case ClearToStartOfLine:
		s.grid.FillArea(blank, uv.Rect(0, y, x+1, 1))
		s.markRow(y)
	case ClearWholeLine:
		s.grid.FillArea(blank, uv.Rect(0, y, w, 1))
		s.markRow(y)
	case ClearToEndOfScreen:
		s.grid.FillArea(blank, uv.Rect(x, y, w-x, 1))
		s.grid.FillArea(blank, uv.Rect(0, y+1, w, h-y-1))
		s.markAll()
	case ClearToStartOfScreen:
		s.grid.FillArea(blank, uv.Rect(0, 0, w, y))
		s.grid.FillArea(blank, uv.Rect(0, y, x+1, 1))
		s.markAll()
	case ClearWholeScreen:
		s.grid.FillArea(blank, s.grid.Bounds())
		s.markAll()
	}
}

// Clear blanks the whole screen with the default style.
func (s *Screen) Clear() {
	s.grid.Clear()
	s.markAll()
}

// Resize preserves the top-left min(old,new) rectangle of content, fills
// newly exposed cells with the default style, and clamps the cursor.
func (s *Screen) Resize(cols, rows int) {
	s.grid.Resize(cols, rows)
	s.cur.Pos.X = s.clampX(s.cur.Pos.X)
	s.cur.Pos.Y = s.clampY(s.cur.Pos.Y)
	s.saved.Pos.X = s.clampX(s.saved.Pos.X)
	s.saved.Pos.Y = s.clampY(s.saved.Pos.Y)
	s.pendingWrap = false
	if s.damage != nil {
		s.damage.Resize(cols, rows)
	}
}

func (s *Screen) markRow(y int) {
	if s.damage != nil {
		s.damage.MarkRow(y)
	}
}

func (s *Screen) markAll() {
	if s.damage != nil {
		s.damage.MarkAll()
	}
}

func (s *Screen) markScroll(dy int) {
	if s.damage != nil {
		s.damage.MarkScroll(dy)
	}
}
