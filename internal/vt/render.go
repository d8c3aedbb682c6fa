package vt

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Render converts the active screen into an ANSI string, one line per
// row, batching runs with the same style to reduce escape churn.
func (e *Emulator) Render() string {
	var b strings.Builder
	rows := e.Height()
	b.Grow(e.Width() * rows)
	for y := 0; y < rows; y++ {
		e.renderLine(&b, y)
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderLine renders a single row as an ANSI string without a trailing
// newline.
func (e *Emulator) RenderLine(y int) string {
	var b strings.Builder
	e.renderLine(&b, y)
	return b.String()
}

func (e *Emulator) renderLine(b *strings.Builder, y int) {
	var pen uv.Style
	var link uv.Link
	pendingSpaces := 0

	for x := 0; x < e.Width(); {
		cell := e.CellAt(x, y)
		if cell == nil || cell.Width == 0 {
			x++
			continue
		}

		if cellIsBlank(cell) {
			if pendingSpaces == 0 {
				resetPen(b, &pen, &link)
			}
			pendingSpaces++
			x++
			continue
		}

		if pendingSpaces > 0 {
			writeSpaces(b, pendingSpaces)
			pendingSpaces = 0
		}

		applyStyle(b, &pen, cell.Style)
		applyLink(b, &link, cell.Link)
		b.WriteString(cellContent(cell))
		x += cell.Width
	}
	if pendingSpaces > 0 {
		writeSpaces(b, pendingSpaces)
	}
	resetPen(b, &pen, &link)
}

// PlainLine renders a single row as plain text without styling.
func (e *Emulator) PlainLine(y int) string {
	line := uv.Line(e.scr.Row(y))
	return line.String()
}

// PlainScreen renders the whole active screen as plain text.
func (e *Emulator) PlainScreen() string {
	var b strings.Builder
	rows := e.Height()
	for y := 0; y < rows; y++ {
		b.WriteString(strings.TrimRight(e.PlainLine(y), " "))
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellIsBlank(cell *uv.Cell) bool {
	if !cell.Style.IsZero() || cell.Link != (uv.Link{}) {
		return false
	}
	return cell.Content == "" || cell.Content == " "
}

func cellContent(cell *uv.Cell) string {
	if cell.Content == "" {
		return " "
	}
	return cell.Content
}

func writeSpaces(b *strings.Builder, n int) {
	for n > 0 {
		b.WriteByte(' ')
		n--
	}
}

func resetPen(b *strings.Builder, pen *uv.Style, link *uv.Link) {
	if *link != (uv.Link{}) {
		b.WriteString(ansi.ResetHyperlink())
		*link = uv.Link{}
	}
	if !pen.IsZero() {
		b.WriteString(ansi.ResetStyle)
		*pen = uv.Style{}
	}
}

func applyStyle(b *strings.Builder, pen *uv.Style, next uv.Style) {
	if next.IsZero() {
		if !pen.IsZero() {
			b.WriteString(ansi.ResetStyle)
			*pen = uv.Style{}
		}
		return
	}
	if next.Equal(pen) {
		return
	}
	b.WriteString(next.Diff(pen))
	*pen = next
}

func applyLink(b *strings.Builder, link *uv.Link, next uv.Link) {
	if next == *link {
		return
	}
	if *link != (uv.Link{}) {
		b.WriteString(ansi.ResetHyperlink())
		*link = uv.Link{}
	}
	if next == (uv.Link{}) {
		return
	}
	b.WriteString(ansi.SetHyperlink(next.URL, next.Params))
	*link = next
}
