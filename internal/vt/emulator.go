package vt

import (
	"io"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
)

// Callbacks are invoked synchronously from Write as sequences are decoded.
type Callbacks struct {
	// Bell is called when a BEL control is received.
	Bell func()
	// Title is called when the application sets the window title.
	Title func(title string)
	// CursorVisibility is called when DECTCEM toggles the cursor.
	CursorVisibility func(visible bool)
	// AltScreen is called when the screen buffer switches.
	AltScreen func(active bool)
}

// Emulator decodes a PTY byte stream into a terminal screen. It is not
// safe for concurrent use except for Read and Close; callers serialize
// Write/Resize/snapshot access.
type Emulator struct {
	handlers

	parser *parser
	cb     Callbacks

	primary *Screen
	alt     *Screen
	scr     *Screen // active screen

	damage *DamageTracker

	title     string
	altScreen bool

	// Modes.
	insertMode     bool // IRM
	autowrap       bool // DECAWM
	bracketedPaste bool

	lastRune  rune // for REP
	lastWidth int

	// Responses the application must read and relay to the PTY.
	respMu     sync.Mutex
	resp       chan []byte
	pending    []byte
	respClosed bool
}

// NewEmulator creates an emulator with a blank primary and alternate
// screen of the given dimensions.
func NewEmulator(cols, rows int) *Emulator {
	e := &Emulator{
		primary:  NewScreen(cols, rows),
		alt:      NewScreen(cols, rows),
		damage:   NewDamageTracker(cols, rows),
		autowrap: true,
		resp:     make(chan []byte, 32),
	}
	e.scr = e.primary
	e.primary.setDamage(e.damage)
	e.parser = newParser(e)
	e.registerDefaultHandlers()
	return e
}

// SetCallbacks installs event callbacks. Call before the first Write.
func (e *Emulator) SetCallbacks(cb Callbacks) { e.cb = cb }

func (e *Emulator) Width() int  { return e.scr.Width() }
func (e *Emulator) Height() int { return e.scr.Height() }

// Screen returns the active screen buffer.
func (e *Emulator) Screen() *Screen { return e.scr }

// Damage returns the shared damage tracker for the active screen.
func (e *Emulator) Damage() *DamageTracker { return e.damage }

func (e *Emulator) CellAt(x, y int) *uv.Cell   { return e.scr.CellAt(x, y) }
func (e *Emulator) CursorPosition() (int, int) { return e.scr.CursorPosition() }
func (e *Emulator) CursorVisible() bool        { return e.scr.CursorVisible() }

// Title returns the last title set via OSC 0/1/2.
func (e *Emulator) Title() string { return e.title }

// IsAltScreen reports whether the alternate screen is active.
func (e *Emulator) IsAltScreen() bool { return e.altScreen }

// BracketedPaste reports whether the application enabled paste bracketing.
func (e *Emulator) BracketedPaste() bool { return e.bracketedPaste }

// Write feeds PTY output through the decoder. It always consumes the full
// chunk; partial escape sequences are carried across calls.
func (e *Emulator) Write(p []byte) (int, error) {
	e.parser.Parse(p)
	return len(p), nil
}

// Read returns pending terminal responses (cursor position reports, device
// attributes). It blocks until data is available and returns io.EOF after
// Close once drained.
func (e *Emulator) Read(p []byte) (int, error) {
	e.respMu.Lock()
	for len(e.pending) == 0 {
		e.respMu.Unlock()
		chunk, ok := <-e.resp
		if !ok {
			return 0, io.EOF
		}
		e.respMu.Lock()
		e.pending = append(e.pending, chunk...)
	}
	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	e.respMu.Unlock()
	return n, nil
}

// Close releases the response stream, unblocking readers with io.EOF.
func (e *Emulator) Close() error {
	e.respMu.Lock()
	defer e.respMu.Unlock()
	if !e.respClosed {
		e.respClosed = true
		close(e.resp)
	}
	return nil
}

// respond queues a reply for the PTY. Replies are dropped when nobody
// drains them fast enough; a stalled reader must not block decoding.
func (e *Emulator) respond(seq string) {
	e.respMu.Lock()
	defer e.respMu.Unlock()
	if e.respClosed {
		return
	}
	select {
	case e.resp <- []byte(seq):
	default:
	}
}

// Resize applies new dimensions to both screen buffers, preserving the
// top-left intersection of content.
func (e *Emulator) Resize(cols, rows int) {
	e.primary.Resize(cols, rows)
	e.alt.Resize(cols, rows)
	e.damage.Resize(cols, rows)
	e.damage.MarkAll()
}

// enterAltScreen switches to the alternate buffer, clearing it first.
func (e *Emulator) enterAltScreen() {
	if e.altScreen {
		return
	}
	e.altScreen = true
	e.primary.setDamage(nil)
	e.alt.setDamage(e.damage)
	e.scr = e.alt
	e.damage.MarkAll()
	if e.cb.AltScreen != nil {
		e.cb.AltScreen(true)
	}
}

// exitAltScreen switches back to the primary buffer, whose content is
// preserved from before the switch.
func (e *Emulator) exitAltScreen() {
	if !e.altScreen {
		return
	}
	e.altScreen = false
	e.alt.setDamage(nil)
	e.primary.setDamage(e.damage)
	e.scr = e.primary
	e.damage.MarkAll()
	if e.cb.AltScreen != nil {
		e.cb.AltScreen(false)
	}
}

// print implements dispatcher.
func (e *Emulator) print(r rune) {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Zero-width runes append to the previous cell's content.
		x, y := e.scr.CursorPosition()
		if prev := e.scr.CellAt(x-1, y); prev != nil && prev.Content != "" {
			prev.Content += string(r)
		}
		return
	}
	e.lastRune, e.lastWidth = r, w
	e.scr.printCell(string(r), w, e.insertMode)
	if !e.autowrap {
		e.scr.pendingWrap = false
	}
}

// repeatLast re-prints the last graphic character n times (CSI b).
func (e *Emulator) repeatLast(n int) {
	if e.lastRune == 0 {
		return
	}
	for i := 0; i < n; i++ {
		e.scr.printCell(string(e.lastRune), e.lastWidth, e.insertMode)
	}
}

// execute implements dispatcher.
func (e *Emulator) execute(b byte) {
	e.handleCc(b)
}

// csiDispatch implements dispatcher.
func (e *Emulator) csiDispatch(prefix byte, params Params, intermediate, final byte) {
	if intermediate != 0 {
		// Sequences with intermediates (DECSCUSR etc.) are unhandled but
		// must not desynchronize the stream.
		return
	}
	e.handleCsi(csiKey(prefix, final), params)
}

// escDispatch implements dispatcher.
func (e *Emulator) escDispatch(intermediate, final byte) {
	e.handleEsc(escKey(intermediate, final))
}

// oscDispatch implements dispatcher.
func (e *Emulator) oscDispatch(data []byte) {
	cmd, rest, ok := parseOsc(data)
	if !ok {
		return
	}
	e.handleOsc(cmd, rest)
}

// nextTab advances the cursor to the n-th following tab stop (fixed every
// eight columns).
func (e *Emulator) nextTab(n int) {
	x, y := e.scr.CursorPosition()
	for i := 0; i < n; i++ {
		x = (x/8 + 1) * 8
	}
	e.scr.setCursor(x, y)
}

func (e *Emulator) backspace() {
	e.scr.moveCursor(-1, 0)
}
