package vt

import uv "github.com/charmbracelet/ultraviolet"

func (g *cellGrid) Clear() { g.ClearArea(g.Bounds()) }

func (g *cellGrid) ClearArea(area uv.Rectangle) {
	g.FillArea(nil, area)
}

func (g *cellGrid) FillArea(c *uv.Cell, area uv.Rectangle) {
	if g.cols <= 0 || g.rows <= 0 || area.Empty() {
		return
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() {
		return
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		if area.Min.X == 0 && area.Max.X == g.cols && (c == nil || c.Width <= 1) {
			fillCells(g.Row(y), c)
			continue
		}
		fillRowArea(g.Row(y), area.Min.X, area.Max.X, c)
	}
}

// ScrollUpArea removes n rows from the top of the area, shifts the rest up,
// and blank-fills the bottom. Content scrolled off is discarded.
func (g *cellGrid) ScrollUpArea(n int, c *uv.Cell, area uv.Rectangle) {
	if g.cols <= 0 || g.rows <= 0 || n <= 0 {
		return
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() {
		return
	}
	height := area.Max.Y - area.Min.Y
	if n >= height {
		g.FillArea(c, area)
		return
	}
	for y := area.Min.Y; y < area.Max.Y-n; y++ {
		dst := g.Row(y)[area.Min.X:area.Max.X]
		src := g.Row(y + n)[area.Min.X:area.Max.X]
		copy(dst, src)
	}
	fill := uv.Rect(area.Min.X, area.Max.Y-n, area.Max.X-area.Min.X, n)
	g.FillArea(c, fill)
}

// ScrollDownArea inserts n blank rows at the top of the area, shifting the
// rest down. Content pushed past the bottom is discarded.
func (g *cellGrid) ScrollDownArea(n int, c *uv.Cell, area uv.Rectangle) {
	if g.cols <= 0 || g.rows <= 0 || n <= 0 {
		return
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() {
		return
	}
	height := area.Max.Y - area.Min.Y
	if n >= height {
		g.FillArea(c, area)
		return
	}
	for y := area.Max.Y - 1; y >= area.Min.Y+n; y-- {
		dst := g.Row(y)[area.Min.X:area.Max.X]
		src := g.Row(y - n)[area.Min.X:area.Max.X]
		copy(dst, src)
	}
	fill := uv.Rect(area.Min.X, area.Min.Y, area.Max.X-area.Min.X, n)
	g.FillArea(c, fill)
}

func (g *cellGrid) InsertLineArea(y, n int, c *uv.Cell, area uv.Rectangle) {
	if g.cols <= 0 || g.rows <= 0 || n <= 0 {
		return
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() || y < area.Min.Y || y >= area.Max.Y {
		return
	}
	if y+n > area.Max.Y {
		n = area.Max.Y - y
	}
	if n <= 0 {
		return
	}
	for row := area.Max.Y - 1; row >= y+n; row-- {
		dst := g.Row(row)[area.Min.X:area.Max.X]
		src := g.Row(row - n)[area.Min.X:area.Max.X]
		copy(dst, src)
	}
	fill := uv.Rect(area.Min.X, y, area.Max.X-area.Min.X, n)
	g.FillArea(c, fill)
}

func (g *cellGrid) DeleteLineArea(y, n int, c *uv.Cell, area uv.Rectangle) {
	if g.cols <= 0 || g.rows <= 0 || n <= 0 {
		return
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() || y < area.Min.Y || y >= area.Max.Y {
		return
	}
	if n > area.Max.Y-y {
		n = area.Max.Y - y
	}
	for row := y; row < area.Max.Y-n; row++ {
		dst := g.Row(row)[area.Min.X:area.Max.X]
		src := g.Row(row + n)[area.Min.X:area.Max.X]
		copy(dst, src)
	}
	fill := uv.Rect(area.Min.X, area.Max.Y-n, area.Max.X-area.Min.X, n)
	g.FillArea(c, fill)
}

func (g *cellGrid) InsertCellArea(x, y, n int, c *uv.Cell, area uv.Rectangle) {
	area, n, ok := g.prepareCellOp(x, y, n, area)
	if !ok {
		return
	}
	row := g.Row(y)
	if x+n < area.Max.X {
		src := row[x : area.Max.X-n]
		dst := row[x+n : area.Max.X]
		copy(dst, src)
	}
	fillRowArea(row, x, x+n, c)
}

func (g *cellGrid) DeleteCellArea(x, y, n int, c *uv.Cell, area uv.Rectangle) {
	area, n, ok := g.prepareCellOp(x, y, n, area)
	if !ok {
		return
	}
	row := g.Row(y)
	if x+n < area.Max.X {
		src := row[x+n : area.Max.X]
		dst := row[x : area.Max.X-n]
		copy(dst, src)
	}
	fillRowArea(row, area.Max.X-n, area.Max.X, c)
}

func (g *cellGrid) prepareCellOp(x, y, n int, area uv.Rectangle) (uv.Rectangle, int, bool) {
	if g.cols <= 0 || g.rows <= 0 || n <= 0 {
		return uv.Rectangle{}, 0, false
	}
	area = area.Intersect(g.Bounds())
	if area.Empty() || y < area.Min.Y || y >= area.Max.Y || x < area.Min.X || x >= area.Max.X {
		return uv.Rectangle{}, 0, false
	}
	if n > area.Max.X-x {
		n = area.Max.X - x
	}
	if n <= 0 {
		return uv.Rectangle{}, 0, false
	}
	return area, n, true
}
