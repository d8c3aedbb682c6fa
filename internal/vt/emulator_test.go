package vt

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func feed(t *testing.T, e *Emulator, chunks ...string) {
	t.Helper()
	for _, chunk := range chunks {
		if _, err := e.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q) error: %v", chunk, err)
		}
	}
}

func screenText(e *Emulator) string {
	return e.PlainScreen()
}

func TestEmulatorPrintAndCursor(t *testing.T) {
	e := NewEmulator(10, 3)
	feed(t, e, "hi\r\nthere")
	if got := screenText(e); got != "hi\nthere\n" {
		t.Fatalf("screen = %q", got)
	}
	if x, y := e.CursorPosition(); x != 5 || y != 1 {
		t.Fatalf("cursor = %d,%d", x, y)
	}
}

func TestEmulatorCursorMovement(t *testing.T) {
	e := NewEmulator(10, 5)
	feed(t, e, "\x1b[3;4H")
	if x, y := e.CursorPosition(); x != 3 || y != 2 {
		t.Fatalf("CUP cursor = %d,%d", x, y)
	}
	feed(t, e, "\x1b[2A\x1b[3C")
	if x, y := e.CursorPosition(); x != 6 || y != 0 {
		t.Fatalf("CUU/CUF cursor = %d,%d", x, y)
	}
	// Movement past the edges clamps.
	feed(t, e, "\x1b[99B\x1b[99C")
	if x, y := e.CursorPosition(); x != 9 || y != 4 {
		t.Fatalf("clamped cursor = %d,%d", x, y)
	}
}

func TestEmulatorSplitCsiAcrossWrites(t *testing.T) {
	e := NewEmulator(10, 5)
	feed(t, e, "\x1b[3", "B")
	if x, y := e.CursorPosition(); x != 0 || y != 3 {
		t.Fatalf("cursor = %d,%d", x, y)
	}
	// Following text prints normally.
	feed(t, e, "ok")
	if got := e.PlainLine(3); !strings.HasPrefix(got, "ok") {
		t.Fatalf("line3 = %q", got)
	}
}

func TestEmulatorSgr(t *testing.T) {
	e := NewEmulator(10, 2)
	feed(t, e, "\x1b[31;1mA\x1b[0mB")

	a := e.CellAt(0, 0)
	if a == nil || a.Content != "A" {
		t.Fatalf("cell A = %+v", a)
	}
	if a.Style.Fg != ansi.BasicColor(1) {
		t.Fatalf("A fg = %v", a.Style.Fg)
	}
	if a.Style.Attrs&AttrBold == 0 {
		t.Fatalf("A not bold: %+v", a.Style)
	}

	b := e.CellAt(1, 0)
	if b == nil || b.Content != "B" {
		t.Fatalf("cell B = %+v", b)
	}
	if !b.Style.IsZero() {
		t.Fatalf("B style not reset: %+v", b.Style)
	}
}

func TestEmulatorSgrExtendedColors(t *testing.T) {
	e := NewEmulator(10, 1)
	feed(t, e, "\x1b[38;5;196mX\x1b[48;2;10;20;30mY")

	x := e.CellAt(0, 0)
	if x.Style.Fg != ansi.IndexedColor(196) {
		t.Fatalf("X fg = %v", x.Style.Fg)
	}
	y := e.CellAt(1, 0)
	if y.Style.Bg != (ansi.RGBColor{R: 10, G: 20, B: 30}) {
		t.Fatalf("Y bg = %v", y.Style.Bg)
	}
}

func TestEmulatorEraseDisplay(t *testing.T) {
	e := NewEmulator(5, 3)
	feed(t, e, "aaaaa\r\nbbbbb\r\nccccc")
	feed(t, e, "\x1b[2;3H\x1b[J")
	if got := e.PlainLine(0); got != "aaaaa" {
		t.Fatalf("line0 = %q", got)
	}
	if got := strings.TrimRight(e.PlainLine(1), " "); got != "bb" {
		t.Fatalf("line1 = %q", got)
	}
	if got := strings.TrimRight(e.PlainLine(2), " "); got != "" {
		t.Fatalf("line2 = %q", got)
	}
}

func TestEmulatorAltScreen(t *testing.T) {
	e := NewEmulator(10, 3)
	feed(t, e, "primary")
	feed(t, e, "\x1b[?1049h")
	if !e.IsAltScreen() {
		t.Fatalf("expected alt screen active")
	}
	feed(t, e, "alt")
	if got := e.PlainLine(0); !strings.HasPrefix(got, "alt") {
		t.Fatalf("alt line0 = %q", got)
	}
	feed(t, e, "\x1b[?1049l")
	if e.IsAltScreen() {
		t.Fatalf("expected primary screen active")
	}
	if got := e.PlainLine(0); !strings.HasPrefix(got, "primary") {
		t.Fatalf("primary line0 = %q", got)
	}
}

func TestEmulatorCursorVisibilityCallback(t *testing.T) {
	e := NewEmulator(5, 2)
	var events []bool
	e.SetCallbacks(Callbacks{CursorVisibility: func(v bool) {
		events = append(events, v)
	}})
	feed(t, e, "\x1b[?25l\x1b[?25h")
	if e.CursorVisible() != true {
		t.Fatalf("cursor should be visible")
	}
	if len(events) != 2 || events[0] != false || events[1] != true {
		t.Fatalf("events = %v", events)
	}
}

func TestEmulatorTitle(t *testing.T) {
	e := NewEmulator(5, 2)
	var title string
	e.SetCallbacks(Callbacks{Title: func(s string) { title = s }})
	feed(t, e, "\x1b]0;hello world\x07")
	if e.Title() != "hello world" || title != "hello world" {
		t.Fatalf("title = %q / %q", e.Title(), title)
	}

	// OSC 1 and 2 update the title too.
	feed(t, e, "\x1b]1;icon\x07")
	if e.Title() != "icon" {
		t.Fatalf("title after OSC 1 = %q", e.Title())
	}
	feed(t, e, "\x1b]2;window\x07")
	if e.Title() != "window" {
		t.Fatalf("title after OSC 2 = %q", e.Title())
	}
}

func TestEmulatorDeviceReports(t *testing.T) {
	e := NewEmulator(10, 5)
	feed(t, e, "\x1b[2;2H\x1b[6n\x1b[c\x1b[5n")

	buf := make([]byte, 64)
	var out []byte
	for len(out) < len("\x1b[2;2R\x1b[?6c\x1b[0n") {
		n, err := e.Read(buf)
		if err != nil {
			t.Fatalf("Read error: %v", err)
		}
		out = append(out, buf[:n]...)
	}
	if got := string(out); got != "\x1b[2;2R\x1b[?6c\x1b[0n" {
		t.Fatalf("responses = %q", got)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := e.Read(buf); err != io.EOF {
		t.Fatalf("expected EOF after close, got %v", err)
	}
}

func TestEmulatorResize(t *testing.T) {
	e := NewEmulator(80, 24)
	feed(t, e, "hello")
	e.Resize(40, 10)
	if e.Width() != 40 || e.Height() != 10 {
		t.Fatalf("dims = %dx%d", e.Width(), e.Height())
	}
	if got := e.PlainLine(0); !strings.HasPrefix(got, "hello") {
		t.Fatalf("line0 = %q", got)
	}
	e.Resize(80, 24)
	if got := e.PlainLine(0); !strings.HasPrefix(got, "hello") {
		t.Fatalf("line0 after grow = %q", got)
	}
	x, y := e.CursorPosition()
	if x < 0 || x >= 80 || y < 0 || y >= 24 {
		t.Fatalf("cursor out of bounds: %d,%d", x, y)
	}
}

func TestEmulatorGarbageKeepsCursorInBounds(t *testing.T) {
	e := NewEmulator(8, 4)
	inputs := []string{
		"\x1b[999;999H", "\x1b[999A", "plain text that wraps around the edge",
		"\x1b[?47h\x1b[999B\x1b[?47l", "\x1bM\x1bM\x1bM\x1bM\x1bM",
		"\x1b[10L\x1b[10M\x1b[100@\x1b[100P", "\xff\xfe\xfd",
	}
	for _, in := range inputs {
		feed(t, e, in)
		x, y := e.CursorPosition()
		if x < 0 || x >= 8 || y < 0 || y >= 4 {
			t.Fatalf("cursor out of bounds after %q: %d,%d", in, x, y)
		}
	}
}

func TestEmulatorBracketedPaste(t *testing.T) {
	e := NewEmulator(5, 2)
	feed(t, e, "\x1b[?2004h")
	if !e.BracketedPaste() {
		t.Fatalf("expected bracketed paste on")
	}
	feed(t, e, "\x1b[?2004l")
	if e.BracketedPaste() {
		t.Fatalf("expected bracketed paste off")
	}
}

func TestEmulatorRenderRoundTrip(t *testing.T) {
	e := NewEmulator(10, 2)
	feed(t, e, "\x1b[31mred\x1b[0m ok")

	out := e.Render()
	// Rendering must carry the color and reset it before plain text.
	if !strings.Contains(out, "red") || !strings.Contains(out, "ok") {
		t.Fatalf("render = %q", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected styled output, got %q", out)
	}

	// Feeding the render into a fresh emulator reproduces the text.
	e2 := NewEmulator(10, 2)
	feed(t, e2, strings.ReplaceAll(out, "\n", "\r\n"))
	if screenText(e2) != screenText(e) {
		t.Fatalf("round trip mismatch: %q vs %q", screenText(e2), screenText(e))
	}
}

func TestEmulatorFullReset(t *testing.T) {
	e := NewEmulator(5, 2)
	feed(t, e, "ab\x1b[31m\x1b[?25l\x1b[?1049h")
	feed(t, e, "\x1bc")
	if e.IsAltScreen() {
		t.Fatalf("alt screen survived reset")
	}
	if !e.CursorVisible() {
		t.Fatalf("cursor hidden after reset")
	}
	if got := strings.TrimSpace(screenText(e)); got != "" {
		t.Fatalf("screen not cleared: %q", got)
	}
	if x, y := e.CursorPosition(); x != 0 || y != 0 {
		t.Fatalf("cursor = %d,%d", x, y)
	}
}
