package vt

import "unicode/utf8"

// parserState is the explicit decoder state. Every byte fed to the parser
// lands in exactly one state; unknown sequences drop back to stateGround
// without losing sync.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCsiParam
	stateCsiIntermediate
	stateOscString
	stateOscEsc // saw ESC inside an OSC string, expecting ST
)

const (
	maxParams    = 32
	maxOscLength = 4096
)

// Param is a single numeric parameter. missingParam marks a position the
// sequence left empty, so handlers can apply their own default.
type Param int

const missingParam Param = -1

// Params is the parameter list of a CSI sequence.
type Params []Param

// Param returns the i-th parameter, or def when absent or empty.
func (p Params) Param(i, def int) int {
	if i < 0 || i >= len(p) || p[i] == missingParam {
		return def
	}
	return int(p[i])
}

// Len reports how many parameters were supplied.
func (p Params) Len() int { return len(p) }

// dispatcher receives decoded terminal actions. The parser owns framing
// only; all semantics live behind this interface.
type dispatcher interface {
	// print handles a decoded printable rune.
	print(r rune)
	// execute handles a C0 control byte (also mid-sequence).
	execute(b byte)
	// csiDispatch handles a complete CSI sequence.
	csiDispatch(prefix byte, params Params, intermediate, final byte)
	// escDispatch handles a complete ESC sequence.
	escDispatch(intermediate, final byte)
	// oscDispatch handles a complete OSC string (without terminator).
	oscDispatch(data []byte)
}

type parser struct {
	state parserState
	d     dispatcher

	// CSI accumulation.
	params       [maxParams]Param
	nparams      int
	paramDigits  bool // current param has at least one digit
	prefix       byte // private marker: '?', '>', '<', '='
	intermediate byte

	// OSC accumulation, capped at maxOscLength.
	osc         []byte
	oscOverflow bool

	// UTF-8 accumulation for ground-state printables.
	utf8Buf [utf8.UTFMax]byte
	utf8Len int
	utf8Exp int
}

func newParser(d dispatcher) *parser {
	return &parser{d: d}
}

// Parse feeds a chunk of PTY output through the state machine. Chunks may
// split sequences and UTF-8 runes at any byte boundary.
func (p *parser) Parse(data []byte) {
	for _, b := range data {
		p.advance(b)
	}
}

func (p *parser) advance(b byte) {
	switch p.state {
	case stateGround:
		p.ground(b)
	case stateEscape:
		p.escape(b)
	case stateCsiParam:
		p.csiParam(b)
	case stateCsiIntermediate:
		p.csiIntermediate(b)
	case stateOscString:
		p.oscString(b)
	case stateOscEsc:
		p.oscEsc(b)
	}
}

func (p *parser) ground(b byte) {
	switch {
	case b == 0x1b:
		p.flushUtf8()
		p.intermediate = 0
		p.state = stateEscape
	case b < 0x20 || b == 0x7f:
		p.flushUtf8()
		p.d.execute(b)
	case b < 0x80:
		p.flushUtf8()
		p.d.print(rune(b))
	default:
		p.utf8Byte(b)
	}
}

// utf8Byte accumulates continuation bytes for a multi-byte rune. Invalid
// sequences emit the replacement rune and resync on the offending byte.
func (p *parser) utf8Byte(b byte) {
	if p.utf8Len == 0 {
		switch {
		case b&0xe0 == 0xc0:
			p.utf8Exp = 2
		case b&0xf0 == 0xe0:
			p.utf8Exp = 3
		case b&0xf8 == 0xf0:
			p.utf8Exp = 4
		default:
			p.d.print(utf8.RuneError)
			return
		}
		p.utf8Buf[0] = b
		p.utf8Len = 1
		return
	}
	if b&0xc0 != 0x80 {
		// Not a continuation byte: emit what we have and reprocess.
		p.flushUtf8()
		p.ground(b)
		return
	}
	p.utf8Buf[p.utf8Len] = b
	p.utf8Len++
	if p.utf8Len == p.utf8Exp {
		r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
		p.utf8Len = 0
		p.d.print(r)
	}
}

func (p *parser) flushUtf8() {
	if p.utf8Len == 0 {
		return
	}
	p.utf8Len = 0
	p.d.print(utf8.RuneError)
}

func (p *parser) escape(b byte) {
	switch {
	case b == '[':
		p.startCsi()
	case b == ']':
		p.startOsc()
	case b == 0x1b:
		// Restart the sequence.
	case b < 0x20:
		p.d.execute(b)
	case b >= 0x20 && b <= 0x2f:
		// Single intermediate is enough for everything we handle.
		p.intermediate = b
		p.state = stateEscape
	case b >= 0x30 && b <= 0x7e:
		p.d.escDispatch(p.intermediate, b)
		p.intermediate = 0
		p.state = stateGround
	default:
		p.intermediate = 0
		p.state = stateGround
	}
}

func (p *parser) startCsi() {
	p.state = stateCsiParam
	p.nparams = 0
	p.paramDigits = false
	p.prefix = 0
	p.intermediate = 0
	p.params[0] = missingParam
}

func (p *parser) startOsc() {
	p.state = stateOscString
	p.osc = p.osc[:0]
	p.oscOverflow = false
}

func (p *parser) csiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		i := p.nparams
		if i >= maxParams {
			return
		}
		if p.params[i] == missingParam {
			p.params[i] = 0
		}
		v := int(p.params[i])*10 + int(b-'0')
		if v > 0xffff {
			v = 0xffff
		}
		p.params[i] = Param(v)
		p.paramDigits = true
	case b == ';' || b == ':':
		// Sub-parameter colons are flattened into the list.
		if p.nparams < maxParams {
			p.nparams++
			if p.nparams < maxParams {
				p.params[p.nparams] = missingParam
			}
		}
		p.paramDigits = false
	case b >= '<' && b <= '?':
		p.prefix = b
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = b
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.finishCsi(b)
	case b == 0x1b:
		p.state = stateEscape
		p.intermediate = 0
	case b < 0x20 || b == 0x7f:
		// C0 controls execute without aborting the sequence.
		p.d.execute(b)
	default:
		p.state = stateGround
	}
}

func (p *parser) csiIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = b
	case b >= 0x40 && b <= 0x7e:
		p.finishCsi(b)
	case b == 0x1b:
		p.state = stateEscape
		p.intermediate = 0
	case b < 0x20 || b == 0x7f:
		p.d.execute(b)
	default:
		p.state = stateGround
	}
}

func (p *parser) finishCsi(final byte) {
	n := p.nparams
	if n < maxParams && (p.paramDigits || n > 0) {
		n++
	}
	p.d.csiDispatch(p.prefix, Params(p.params[:n]), p.intermediate, final)
	p.intermediate = 0
	p.state = stateGround
}

func (p *parser) oscString(b byte) {
	switch {
	case b == 0x07:
		p.finishOsc()
	case b == 0x1b:
		p.state = stateOscEsc
	case b < 0x20 && b != 0x09:
		// Other C0 bytes abort the string.
		p.state = stateGround
	default:
		if len(p.osc) < maxOscLength {
			p.osc = append(p.osc, b)
		} else {
			p.oscOverflow = true
		}
	}
}

func (p *parser) oscEsc(b byte) {
	if b == '\\' {
		p.finishOsc()
		return
	}
	// ESC without ST terminates the string and restarts sequence parsing.
	p.state = stateEscape
	p.escape(b)
}

func (p *parser) finishOsc() {
	if !p.oscOverflow {
		p.d.oscDispatch(p.osc)
	}
	p.state = stateGround
}
