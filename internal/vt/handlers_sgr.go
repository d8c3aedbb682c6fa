package vt

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

const (
	underlineNone   = uv.Underline(0)
	underlineSingle = uv.Underline(1)
	underlineDouble = uv.Underline(2)
)

// Attribute bits of uv.Style.Attrs, in SGR order. Exported so renderers
// can inspect cell styles without depending on ultraviolet internals.
const (
	AttrBold uint8 = 1 << iota
	AttrFaint
	AttrItalic
	AttrBlink
	AttrRapidBlink
	AttrReverse
	AttrConceal
	AttrStrikethrough
)

func (e *Emulator) registerSgrHandler() {
	e.RegisterCsiHandler(csiKey(0, 'm'), func(params Params) bool {
		// Select Graphic Rendition (SGR)
		e.handleSgr(params)
		return true
	})
}

func (e *Emulator) handleSgr(params Params) {
	pen := e.scr.Pen()
	if params.Len() == 0 {
		pen = uv.Style{}
	}
	for i := 0; i < params.Len(); i++ {
		n := params.Param(i, 0)
		switch {
		case n == 0:
			pen = uv.Style{}
		case n == 1:
			pen.Attrs |= AttrBold
		case n == 2:
			pen.Attrs |= AttrFaint
		case n == 3:
			pen.Attrs |= AttrItalic
		case n == 4:
			pen.Underline = underlineSingle
		case n == 5:
			pen.Attrs |= AttrBlink
		case n == 6:
			pen.Attrs |= AttrRapidBlink
		case n == 7:
			pen.Attrs |= AttrReverse
		case n == 8:
			pen.Attrs |= AttrConceal
		case n == 9:
			pen.Attrs |= AttrStrikethrough
		case n == 21:
			pen.Underline = underlineDouble
		case n == 22:
			pen.Attrs &^= AttrBold | AttrFaint
		case n == 23:
			pen.Attrs &^= AttrItalic
		case n == 24:
			pen.Underline = underlineNone
		case n == 25:
			pen.Attrs &^= AttrBlink | AttrRapidBlink
		case n == 27:
			pen.Attrs &^= AttrReverse
		case n == 28:
			pen.Attrs &^= AttrConceal
		case n == 29:
			pen.Attrs &^= AttrStrikethrough
		case n >= 30 && n <= 37:
			pen.Fg = ansi.BasicColor(n - 30)
		case n == 38:
			c, skip := extendedColor(params, i)
			if skip == 0 {
				return
			}
			pen.Fg = c
			i += skip
		case n == 39:
			pen.Fg = nil
		case n >= 40 && n <= 47:
			pen.Bg = ansi.BasicColor(n - 40)
		case n == 48:
			c, skip := extendedColor(params, i)
			if skip == 0 {
				return
			}
			pen.Bg = c
			i += skip
		case n == 49:
			pen.Bg = nil
		case n == 58:
			c, skip := extendedColor(params, i)
			if skip == 0 {
				return
			}
			pen.UnderlineColor = c
			i += skip
		case n == 59:
			pen.UnderlineColor = nil
		case n >= 90 && n <= 97:
			pen.Fg = ansi.BasicColor(n - 90 + 8)
		case n >= 100 && n <= 107:
			pen.Bg = ansi.BasicColor(n - 100 + 8)
		}
	}
	e.scr.SetPen(pen)
}

// extendedColor decodes the 38/48/58 color forms (5;n and 2;r;g;b). It
// returns the number of extra parameters consumed, zero when malformed.
func extendedColor(params Params, i int) (ansi.Color, int) {
	switch params.Param(i+1, -1) {
	case 5:
		idx := params.Param(i+2, -1)
		if idx < 0 || idx > 255 {
			return nil, 0
		}
		return ansi.IndexedColor(idx), 2
	case 2:
		r := params.Param(i+2, -1)
		g := params.Param(i+3, -1)
		b := params.Param(i+4, -1)
		if r < 0 || g < 0 || b < 0 || r > 255 || g > 255 || b > 255 {
			return nil, 0
		}
		return ansi.RGBColor{R: uint8(r), G: uint8(g), B: uint8(b)}, 4
	default:
		return nil, 0
	}
}
