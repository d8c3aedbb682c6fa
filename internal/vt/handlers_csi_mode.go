package vt

func (e *Emulator) registerCsiModeHandlers() {
	e.RegisterCsiHandler(csiKey(0, 'h'), func(params Params) bool {
		// Set Mode (SM) - ANSI
		e.handleAnsiMode(params, true)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'l'), func(params Params) bool {
		// Reset Mode (RM) - ANSI
		e.handleAnsiMode(params, false)
		return true
	})

	e.RegisterCsiHandler(csiKey('?', 'h'), func(params Params) bool {
		// Set Mode (SM) - DEC private
		e.handleDecMode(params, true)
		return true
	})

	e.RegisterCsiHandler(csiKey('?', 'l'), func(params Params) bool {
		// Reset Mode (RM) - DEC private
		e.handleDecMode(params, false)
		return true
	})
}

func (e *Emulator) handleAnsiMode(params Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		switch params.Param(i, 0) {
		case 4: // Insert/Replace Mode (IRM)
			e.insertMode = set
		}
	}
}

func (e *Emulator) handleDecMode(params Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		switch params.Param(i, 0) {
		case 7: // Autowrap Mode (DECAWM)
			e.autowrap = set
			if !set {
				e.scr.pendingWrap = false
			}
		case 25: // Text Cursor Enable Mode (DECTCEM)
			e.setCursorVisible(set)
		case 47: // Alternate Screen Buffer
			if set {
				e.enterAltScreen()
			} else {
				e.exitAltScreen()
			}
		case 1047: // Alternate Screen Buffer, cleared on exit
			if set {
				e.enterAltScreen()
				e.alt.Clear()
			} else {
				e.alt.Clear()
				e.exitAltScreen()
			}
		case 1048: // Save/Restore Cursor
			if set {
				e.scr.saveCursor()
			} else {
				e.scr.restoreCursor()
			}
		case 1049: // Save Cursor and Alternate Screen Buffer
			if set {
				e.primary.saveCursor()
				e.enterAltScreen()
				e.alt.Clear()
				e.alt.setCursor(0, 0)
			} else {
				e.exitAltScreen()
				e.primary.restoreCursor()
			}
		case 2004: // Bracketed Paste
			e.bracketedPaste = set
		}
	}
}

func (e *Emulator) setCursorVisible(v bool) {
	if e.scr.CursorVisible() == v {
		return
	}
	e.primary.setCursorVisible(v)
	e.alt.setCursorVisible(v)
	if e.cb.CursorVisibility != nil {
		e.cb.CursorVisibility(v)
	}
}
