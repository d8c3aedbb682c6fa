package vt

func (e *Emulator) registerCsiCursorHandlers() {
	e.RegisterCsiHandler(csiKey(0, '@'), func(params Params) bool {
		// Insert Character (ICH)
		e.scr.InsertCell(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'A'), func(params Params) bool {
		// Cursor Up (CUU)
		e.scr.moveCursor(0, -params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'B'), func(params Params) bool {
		// Cursor Down (CUD)
		e.scr.moveCursor(0, params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'C'), func(params Params) bool {
		// Cursor Forward (CUF)
		e.scr.moveCursor(params.Param(0, 1), 0)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'D'), func(params Params) bool {
		// Cursor Backward (CUB)
		e.scr.moveCursor(-params.Param(0, 1), 0)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'E'), func(params Params) bool {
		// Cursor Next Line (CNL)
		e.scr.moveCursor(0, params.Param(0, 1))
		e.scr.carriageReturn()
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'F'), func(params Params) bool {
		// Cursor Previous Line (CPL)
		e.scr.moveCursor(0, -params.Param(0, 1))
		e.scr.carriageReturn()
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'G'), func(params Params) bool {
		// Cursor Horizontal Absolute (CHA)
		_, y := e.scr.CursorPosition()
		e.scr.setCursor(params.Param(0, 1)-1, y)
		return true
	})

	for _, final := range []byte{'H', 'f'} {
		// Cursor Position (CUP) / Horizontal and Vertical Position (HVP)
		e.RegisterCsiHandler(csiKey(0, final), func(params Params) bool {
			row := params.Param(0, 1)
			col := params.Param(1, 1)
			if row < 1 {
				row = 1
			}
			if col < 1 {
				col = 1
			}
			e.scr.setCursor(col-1, row-1)
			return true
		})
	}

	e.RegisterCsiHandler(csiKey(0, 'I'), func(params Params) bool {
		// Cursor Horizontal Tabulation (CHT)
		e.nextTab(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, '`'), func(params Params) bool {
		// Horizontal Position Absolute (HPA)
		_, y := e.scr.CursorPosition()
		e.scr.setCursor(params.Param(0, 1)-1, y)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'a'), func(params Params) bool {
		// Horizontal Position Relative (HPR)
		x, y := e.scr.CursorPosition()
		e.scr.setCursor(x+params.Param(0, 1), y)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'b'), func(params Params) bool {
		// Repeat Previous Character (REP)
		e.repeatLast(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'd'), func(params Params) bool {
		// Vertical Position Absolute (VPA)
		x, _ := e.scr.CursorPosition()
		e.scr.setCursor(x, params.Param(0, 1)-1)
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'e'), func(params Params) bool {
		// Vertical Position Relative (VPR)
		x, y := e.scr.CursorPosition()
		e.scr.setCursor(x, y+params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 's'), func(params Params) bool {
		// Save Cursor (SCOSC)
		e.scr.saveCursor()
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'u'), func(params Params) bool {
		// Restore Cursor (SCORC)
		e.scr.restoreCursor()
		return true
	})
}
