package vt

// CsiHandler is a function that handles a CSI escape sequence.
type CsiHandler func(params Params) bool

// OscHandler is a function that handles an OSC escape sequence.
type OscHandler func(data []byte) bool

// EscHandler is a function that handles an ESC escape sequence.
type EscHandler func() bool

// CcHandler is a function that handles a control character.
type CcHandler func() bool

// csiKey packs a CSI private prefix and final byte into one handler key.
func csiKey(prefix, final byte) int {
	return int(prefix)<<8 | int(final)
}

// escKey packs an ESC intermediate and final byte into one handler key.
func escKey(intermediate, final byte) int {
	return int(intermediate)<<8 | int(final)
}

// handlers contains the emulator's escape sequence handlers.
type handlers struct {
	ccHandlers  map[byte][]CcHandler
	csiHandlers map[int][]CsiHandler
	oscHandlers map[int][]OscHandler
	escHandlers map[int][]EscHandler
}

// RegisterCsiHandler registers a CSI escape sequence handler.
func (h *handlers) RegisterCsiHandler(key int, handler CsiHandler) {
	if h.csiHandlers == nil {
		h.csiHandlers = make(map[int][]CsiHandler)
	}
	h.csiHandlers[key] = append(h.csiHandlers[key], handler)
}

// RegisterOscHandler registers an OSC escape sequence handler.
func (h *handlers) RegisterOscHandler(cmd int, handler OscHandler) {
	if h.oscHandlers == nil {
		h.oscHandlers = make(map[int][]OscHandler)
	}
	h.oscHandlers[cmd] = append(h.oscHandlers[cmd], handler)
}

// RegisterEscHandler registers an ESC escape sequence handler.
func (h *handlers) RegisterEscHandler(key int, handler EscHandler) {
	if h.escHandlers == nil {
		h.escHandlers = make(map[int][]EscHandler)
	}
	h.escHandlers[key] = append(h.escHandlers[key], handler)
}

// registerCcHandler registers a control character handler.
func (h *handlers) registerCcHandler(b byte, handler CcHandler) {
	if h.ccHandlers == nil {
		h.ccHandlers = make(map[byte][]CcHandler)
	}
	h.ccHandlers[b] = append(h.ccHandlers[b], handler)
}

// handleCc handles a control character.
// It returns true if the control character was handled.
func (h *handlers) handleCc(b byte) bool {
	// Reverse iterate over the handlers so that the last registered handler
	// is the first to be called.
	for i := len(h.ccHandlers[b]) - 1; i >= 0; i-- {
		if h.ccHandlers[b][i]() {
			return true
		}
	}
	return false
}

// handleCsi handles a CSI escape sequence.
// It returns true if the sequence was handled.
func (h *handlers) handleCsi(key int, params Params) bool {
	if handlers, ok := h.csiHandlers[key]; ok {
		for i := len(handlers) - 1; i >= 0; i-- {
			if handlers[i](params) {
				return true
			}
		}
	}
	return false
}

// handleOsc handles an OSC escape sequence.
// It returns true if the sequence was handled.
func (h *handlers) handleOsc(cmd int, data []byte) bool {
	if handlers, ok := h.oscHandlers[cmd]; ok {
		for i := len(handlers) - 1; i >= 0; i-- {
			if handlers[i](data) {
				return true
			}
		}
	}
	return false
}

// handleEsc handles an ESC escape sequence.
// It returns true if the sequence was handled.
func (h *handlers) handleEsc(key int) bool {
	if handlers, ok := h.escHandlers[key]; ok {
		for i := len(handlers) - 1; i >= 0; i-- {
			if handlers[i]() {
				return true
			}
		}
	}
	return false
}

// registerDefaultHandlers registers the default escape sequence handlers.
func (e *Emulator) registerDefaultHandlers() {
	e.registerDefaultCcHandlers()
	e.registerDefaultCsiHandlers()
	e.registerDefaultEscHandlers()
	e.registerDefaultOscHandlers()
}

// registerDefaultCsiHandlers registers the default CSI escape sequence handlers.
func (e *Emulator) registerDefaultCsiHandlers() {
	e.registerCsiCursorHandlers()
	e.registerCsiEditHandlers()
	e.registerCsiModeHandlers()
	e.registerCsiDeviceHandlers()
	e.registerSgrHandler()
}
