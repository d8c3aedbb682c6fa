package vt

import (
	"fmt"
	"testing"
)

type recordingDispatcher struct {
	events []string
}

func (r *recordingDispatcher) print(ru rune) {
	r.events = append(r.events, fmt.Sprintf("print %q", ru))
}

func (r *recordingDispatcher) execute(b byte) {
	r.events = append(r.events, fmt.Sprintf("exec %#x", b))
}

func (r *recordingDispatcher) csiDispatch(prefix byte, params Params, intermediate, final byte) {
	ps := make([]int, params.Len())
	for i := range ps {
		ps[i] = params.Param(i, -1)
	}
	r.events = append(r.events, fmt.Sprintf("csi %q %v %q %q", prefix, ps, intermediate, final))
}

func (r *recordingDispatcher) escDispatch(intermediate, final byte) {
	r.events = append(r.events, fmt.Sprintf("esc %q %q", intermediate, final))
}

func (r *recordingDispatcher) oscDispatch(data []byte) {
	r.events = append(r.events, fmt.Sprintf("osc %q", data))
}

func parseEvents(t *testing.T, chunks ...string) []string {
	t.Helper()
	var rec recordingDispatcher
	p := newParser(&rec)
	for _, chunk := range chunks {
		p.Parse([]byte(chunk))
	}
	return rec.events
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParserPrintAndExecute(t *testing.T) {
	got := parseEvents(t, "a\r\nb")
	assertEvents(t, got, []string{
		`print 'a'`, "exec 0xd", "exec 0xa", `print 'b'`,
	})
}

func TestParserCsiParams(t *testing.T) {
	got := parseEvents(t, "\x1b[2;5H")
	assertEvents(t, got, []string{`csi '\x00' [2 5] '\x00' 'H'`})

	got = parseEvents(t, "\x1b[m")
	assertEvents(t, got, []string{`csi '\x00' [] '\x00' 'm'`})

	got = parseEvents(t, "\x1b[;5f")
	assertEvents(t, got, []string{`csi '\x00' [-1 5] '\x00' 'f'`})

	got = parseEvents(t, "\x1b[?25l")
	assertEvents(t, got, []string{`csi '?' [25] '\x00' 'l'`})
}

func TestParserSplitSequences(t *testing.T) {
	// A CSI split across writes must decode the same as a single write.
	got := parseEvents(t, "\x1b[3", "B")
	assertEvents(t, got, []string{`csi '\x00' [3] '\x00' 'B'`})

	// Split OSC.
	got = parseEvents(t, "\x1b]0;he", "llo\x07")
	assertEvents(t, got, []string{`osc "0;hello"`})

	// Split UTF-8 rune.
	got = parseEvents(t, "\xc3", "\xa9")
	assertEvents(t, got, []string{`print 'é'`})
}

func TestParserOscTerminators(t *testing.T) {
	got := parseEvents(t, "\x1b]2;bel\x07")
	assertEvents(t, got, []string{`osc "2;bel"`})

	got = parseEvents(t, "\x1b]2;st\x1b\\")
	assertEvents(t, got, []string{`osc "2;st"`})
}

func TestParserResyncAfterUnknown(t *testing.T) {
	// An unsupported final byte must not swallow following text.
	got := parseEvents(t, "\x1b[1 q", "ok")
	if got[len(got)-2] != `print 'o'` || got[len(got)-1] != `print 'k'` {
		t.Fatalf("parser did not resync: %v", got)
	}

	// A stray ESC followed by printable dispatches and resumes.
	got = parseEvents(t, "\x1bZok")
	assertEvents(t, got, []string{`esc '\x00' 'Z'`, `print 'o'`, `print 'k'`})
}

func TestParserExecuteInsideCsi(t *testing.T) {
	// C0 controls inside a CSI run immediately without killing the sequence.
	got := parseEvents(t, "\x1b[2\x08C")
	assertEvents(t, got, []string{"exec 0x8", `csi '\x00' [2] '\x00' 'C'`})
}

func TestParserParamLimits(t *testing.T) {
	got := parseEvents(t, "\x1b[99999d")
	assertEvents(t, got, []string{`csi '\x00' [65535] '\x00' 'd'`})
}

func TestParserInvalidUtf8(t *testing.T) {
	got := parseEvents(t, "\xffA")
	assertEvents(t, got, []string{`print '�'`, `print 'A'`})
}
