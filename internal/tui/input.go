package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// encodeKeyMsg turns a bubbletea key event into the byte sequence the
// PTY expects. Returns nil for keys with no terminal encoding.
func encodeKeyMsg(msg tea.KeyMsg) []byte {
	if msg.Type == tea.KeyRunes {
		if msg.Alt {
			return append([]byte{0x1b}, []byte(string(msg.Runes))...)
		}
		return []byte(string(msg.Runes))
	}
	if msg.Type == tea.KeySpace {
		return []byte{' '}
	}

	if seq, ok := keySequences[msg.String()]; ok {
		return seq
	}

	if seq := ctrlSequence(msg.String()); seq != nil {
		return seq
	}

	if seq := altSequence(msg.String()); seq != nil {
		return seq
	}

	return nil
}

var keySequences = map[string][]byte{
	" ":          {' '},
	"space":      {' '},
	"enter":      {'\r'},
	"tab":        {'\t'},
	"shift+tab":  []byte("\x1b[Z"),
	"esc":        {0x1b},
	"backspace":  {0x7f},
	"up":         []byte("\x1b[A"),
	"down":       []byte("\x1b[B"),
	"right":      []byte("\x1b[C"),
	"left":       []byte("\x1b[D"),
	"home":       []byte("\x1b[H"),
	"end":        []byte("\x1b[F"),
	"pgup":       []byte("\x1b[5~"),
	"pgdown":     []byte("\x1b[6~"),
	"delete":     []byte("\x1b[3~"),
	"insert":     []byte("\x1b[2~"),
	"f1":         []byte("\x1bOP"),
	"f2":         []byte("\x1bOQ"),
	"f3":         []byte("\x1bOR"),
	"f4":         []byte("\x1bOS"),
	"f5":         []byte("\x1b[15~"),
	"f6":         []byte("\x1b[17~"),
	"f7":         []byte("\x1b[18~"),
	"f8":         []byte("\x1b[19~"),
	"f9":         []byte("\x1b[20~"),
	"f10":        []byte("\x1b[21~"),
	"f11":        []byte("\x1b[23~"),
	"f12":        []byte("\x1b[24~"),
	"ctrl+space": {0x00},
	"ctrl+\\":    {0x1c},
	"ctrl+]":     {0x1d},
}

func ctrlSequence(key string) []byte {
	if !strings.HasPrefix(key, "ctrl+") || len(key) != len("ctrl+a") {
		return nil
	}
	ch := key[len("ctrl+")]
	if ch < 'a' || ch > 'z' {
		return nil
	}
	return []byte{ch - 'a' + 1}
}

func altSequence(key string) []byte {
	if !strings.HasPrefix(key, "alt+") || len(key) != len("alt+a") {
		return nil
	}
	ch := key[len("alt+"):]
	return []byte("\x1b" + ch)
}
