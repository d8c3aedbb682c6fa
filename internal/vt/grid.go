// Package vt implements the terminal emulation engine: a byte-oriented
// escape sequence parser driving a cell grid, with damage tracking for
// incremental renderers.
package vt

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// cellGrid is a dense rows×cols buffer of cells. It is not thread safe;
// callers serialize access (typically via the session's terminal mutex).
type cellGrid struct {
	cols  int
	rows  int
	cells []uv.Cell
}

func newCellGrid(cols, rows int) cellGrid {
	var g cellGrid
	g.Resize(cols, rows)
	return g
}

func (g *cellGrid) Width() int  { return g.cols }
func (g *cellGrid) Height() int { return g.rows }

func (g *cellGrid) Bounds() uv.Rectangle {
	return uv.Rect(0, 0, g.cols, g.rows)
}

func (g *cellGrid) Row(y int) []uv.Cell {
	if y < 0 || y >= g.rows || g.cols <= 0 {
		return nil
	}
	start := y * g.cols
	return g.cells[start : start+g.cols]
}

func (g *cellGrid) CellAt(x, y int) *uv.Cell {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return nil
	}
	return &g.cells[y*g.cols+x]
}

func (g *cellGrid) SetCell(x, y int, c *uv.Cell) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	row := uv.Line(g.Row(y))
	row.Set(x, c)
}

// Resize preserves the top-left min(old,new) rectangle of content and
// fills newly exposed cells with the default blank cell.
func (g *cellGrid) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols == g.cols && rows == g.rows {
		return
	}

	old := *g
	g.cols = cols
	g.rows = rows
	if cols == 0 || rows == 0 {
		g.cells = nil
		return
	}

	g.cells = make([]uv.Cell, cols*rows)
	fillEmptyCells(g.cells)

	copyCols := min(cols, old.cols)
	copyRows := min(rows, old.rows)
	for y := 0; y < copyRows; y++ {
		src := old.cells[y*old.cols : y*old.cols+copyCols]
		dst := g.cells[y*cols : y*cols+copyCols]
		copy(dst, src)
	}
}

// String renders the grid as plain text, one line per row.
func (g *cellGrid) String() string {
	if g.cols <= 0 || g.rows <= 0 {
		return ""
	}
	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		line := uv.Line(g.Row(y))
		b.WriteString(line.String())
		if y < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func fillEmptyCells(dst []uv.Cell) {
	for i := range dst {
		dst[i] = uv.EmptyCell
	}
}

func fillCells(dst []uv.Cell, c *uv.Cell) {
	if c == nil {
		fillEmptyCells(dst)
		return
	}
	val := *c
	for i := range dst {
		dst[i] = val
	}
}

func fillRowArea(row []uv.Cell, start, end int, c *uv.Cell) {
	if start < 0 {
		start = 0
	}
	if end > len(row) {
		end = len(row)
	}
	if start >= end {
		return
	}
	line := uv.Line(row)
	step := 1
	if c != nil && c.Width > 1 {
		step = c.Width
	}
	for x := start; x < end; x += step {
		line.Set(x, c)
	}
}
