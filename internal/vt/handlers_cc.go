package vt

// C0 control bytes the emulator reacts to.
const (
	ccNul = 0x00
	ccBel = 0x07
	ccBs  = 0x08
	ccHt  = 0x09
	ccLf  = 0x0a
	ccVt  = 0x0b
	ccFf  = 0x0c
	ccCr  = 0x0d
	ccSo  = 0x0e
	ccSi  = 0x0f
)

// registerDefaultCcHandlers registers the default control character handlers.
func (e *Emulator) registerDefaultCcHandlers() {
	e.registerCcHandler(ccNul, func() bool {
		// Ignored
		return true
	})

	e.registerCcHandler(ccBel, func() bool {
		if e.cb.Bell != nil {
			e.cb.Bell()
		}
		return true
	})

	e.registerCcHandler(ccBs, func() bool {
		e.backspace()
		return true
	})

	e.registerCcHandler(ccHt, func() bool {
		e.nextTab(1)
		return true
	})

	for _, b := range []byte{ccLf, ccVt, ccFf} {
		e.registerCcHandler(b, func() bool {
			e.scr.linefeed()
			return true
		})
	}

	e.registerCcHandler(ccCr, func() bool {
		e.scr.carriageReturn()
		return true
	})

	for _, b := range []byte{ccSo, ccSi} {
		// Charset shifts are accepted and ignored; the emulator is
		// UTF-8 only.
		e.registerCcHandler(b, func() bool {
			return true
		})
	}
}
