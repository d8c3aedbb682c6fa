package vt

import uv "github.com/charmbracelet/ultraviolet"

// registerDefaultEscHandlers registers the default ESC escape sequence handlers.
func (e *Emulator) registerDefaultEscHandlers() {
	e.RegisterEscHandler(escKey(0, '7'), func() bool {
		// Save Cursor (DECSC)
		e.scr.saveCursor()
		return true
	})

	e.RegisterEscHandler(escKey(0, '8'), func() bool {
		// Restore Cursor (DECRC)
		e.scr.restoreCursor()
		return true
	})

	e.RegisterEscHandler(escKey(0, 'D'), func() bool {
		// Index (IND)
		e.scr.linefeed()
		return true
	})

	e.RegisterEscHandler(escKey(0, 'E'), func() bool {
		// Next Line (NEL)
		e.scr.carriageReturn()
		e.scr.linefeed()
		return true
	})

	e.RegisterEscHandler(escKey(0, 'M'), func() bool {
		// Reverse Index (RI)
		e.scr.reverseIndex()
		return true
	})

	e.RegisterEscHandler(escKey(0, 'c'), func() bool {
		// Reset Initial State (RIS)
		e.fullReset()
		return true
	})

	for _, key := range []int{escKey(0, '='), escKey(0, '>')} {
		// Keypad application/numeric mode: accepted and ignored.
		e.RegisterEscHandler(key, func() bool {
			return true
		})
	}

	for _, im := range []byte{'(', ')', '*', '+'} {
		for _, final := range []byte{'A', 'B', '0'} {
			// Character set designators: the emulator is UTF-8 only.
			e.RegisterEscHandler(escKey(im, final), func() bool {
				return true
			})
		}
	}
}

// fullReset restores the emulator to its initial state, keeping dimensions.
func (e *Emulator) fullReset() {
	e.exitAltScreen()
	e.primary.Clear()
	e.alt.Clear()
	e.primary.setCursor(0, 0)
	e.alt.setCursor(0, 0)
	e.primary.SetPen(uv.Style{})
	e.alt.SetPen(uv.Style{})
	e.setCursorVisible(true)
	e.insertMode = false
	e.autowrap = true
	e.bracketedPaste = false
	e.title = ""
	e.damage.MarkAll()
}
