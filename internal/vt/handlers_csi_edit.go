package vt

func (e *Emulator) registerCsiEditHandlers() {
	e.RegisterCsiHandler(csiKey(0, 'J'), func(params Params) bool {
		// Erase in Display (ED)
		switch params.Param(0, 0) {
		case 0:
			e.scr.ClearKind(ClearToEndOfScreen)
		case 1:
			e.scr.ClearKind(ClearToStartOfScreen)
		case 2, 3:
			e.scr.ClearKind(ClearWholeScreen)
		default:
			return false
		}
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'K'), func(params Params) bool {
		// Erase in Line (EL)
		switch params.Param(0, 0) {
		case 0:
			e.scr.ClearKind(ClearToEndOfLine)
		case 1:
			e.scr.ClearKind(ClearToStartOfLine)
		case 2:
			e.scr.ClearKind(ClearWholeLine)
		default:
			return false
		}
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'L'), func(params Params) bool {
		// Insert Line (IL)
		if e.scr.InsertLine(params.Param(0, 1)) {
			e.scr.carriageReturn()
		}
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'M'), func(params Params) bool {
		// Delete Line (DL)
		if e.scr.DeleteLine(params.Param(0, 1)) {
			e.scr.carriageReturn()
		}
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'P'), func(params Params) bool {
		// Delete Character (DCH)
		e.scr.DeleteCell(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'S'), func(params Params) bool {
		// Scroll Up (SU)
		e.scr.ScrollUp(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'T'), func(params Params) bool {
		// Scroll Down (SD)
		e.scr.ScrollDown(params.Param(0, 1))
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'X'), func(params Params) bool {
		// Erase Character (ECH)
		e.scr.eraseCharacter(params.Param(0, 1))
		return true
	})
}
