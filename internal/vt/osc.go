package vt

import "bytes"

// parseOsc splits an OSC payload into its numeric command and the rest of
// the string (still including the command prefix, matching handler
// expectations that re-split on ';').
func parseOsc(data []byte) (int, []byte, bool) {
	end := bytes.IndexByte(data, ';')
	num := data
	if end >= 0 {
		num = data[:end]
	}
	if len(num) == 0 {
		return 0, nil, false
	}
	cmd := 0
	for _, b := range num {
		if b < '0' || b > '9' {
			return 0, nil, false
		}
		cmd = cmd*10 + int(b-'0')
		if cmd > 1<<16 {
			return 0, nil, false
		}
	}
	return cmd, data, true
}

// registerDefaultOscHandlers registers the default OSC escape sequence handlers.
func (e *Emulator) registerDefaultOscHandlers() {
	for _, cmd := range []int{
		0, // Set window title and icon name
		1, // Set icon name
		2, // Set window title
	} {
		e.RegisterOscHandler(cmd, func(data []byte) bool {
			e.handleTitle(data)
			return true
		})
	}

	e.RegisterOscHandler(8, func(data []byte) bool {
		// Set/Reset Hyperlink
		e.handleHyperlink(data)
		return true
	})
}

func (e *Emulator) handleTitle(data []byte) {
	parts := bytes.SplitN(data, []byte{';'}, 2)
	if len(parts) != 2 {
		// Invalid, ignore
		return
	}
	e.title = string(parts[1])
	if e.cb.Title != nil {
		e.cb.Title(e.title)
	}
}

func (e *Emulator) handleHyperlink(data []byte) {
	parts := bytes.Split(data, []byte{';'})
	if len(parts) != 3 {
		// Invalid, ignore
		return
	}
	e.scr.cur.Link.URL = string(parts[2])
	e.scr.cur.Link.Params = string(parts[1])
}
