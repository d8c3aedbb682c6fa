package vt

import "fmt"

func (e *Emulator) registerCsiDeviceHandlers() {
	e.RegisterCsiHandler(csiKey(0, 'c'), func(params Params) bool {
		// Primary Device Attributes (DA1): VT102
		if params.Param(0, 0) != 0 {
			return false
		}
		e.respond("\x1b[?6c")
		return true
	})

	e.RegisterCsiHandler(csiKey('>', 'c'), func(params Params) bool {
		// Secondary Device Attributes (DA2)
		if params.Param(0, 0) != 0 {
			return false
		}
		e.respond("\x1b[>0;0;0c")
		return true
	})

	e.RegisterCsiHandler(csiKey(0, 'n'), func(params Params) bool {
		// Device Status Report (DSR)
		switch params.Param(0, 0) {
		case 5: // Operating Status: always ready
			e.respond("\x1b[0n")
		case 6: // Cursor Position Report (CPR)
			x, y := e.scr.CursorPosition()
			e.respond(fmt.Sprintf("\x1b[%d;%dR", y+1, x+1))
		default:
			return false
		}
		return true
	})

	e.RegisterCsiHandler(csiKey('?', 'n'), func(params Params) bool {
		// Extended Cursor Position Report (DECXCPR)
		if params.Param(0, 0) != 6 {
			return false
		}
		x, y := e.scr.CursorPosition()
		e.respond(fmt.Sprintf("\x1b[?%d;%dR", y+1, x+1))
		return true
	})
}
