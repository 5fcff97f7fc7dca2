package terminal

import "unicode/utf8"

// parserState is the decoder position within the escape-sequence
// grammar. State persists across Feed calls so sequences split over
// read boundaries decode identically to sequences arriving whole.
type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateSS3
	stateOSC
	stateMouseX10
	stateIgnore // DCS/SOS/PM/APC string, discarded until terminator
)

const (
	// Unterminated OSC strings are discarded past this cap so a
	// malformed stream cannot grow the buffer indefinitely.
	oscMaxLen = 4096

	// CSI sequences are short; anything longer is junk.
	csiMaxLen = 64

	maxParams   = 16
	maxParamVal = 65535
)

// Parser decodes the terminal input byte stream into events. It is a
// total function over byte streams: malformed input degrades to
// EventUnrecognized, never an error. Not safe for concurrent use; the
// session confines it to the reader goroutine.
type Parser struct {
	state parserState

	// Raw bytes of the sequence being collected, for Unrecognized
	// events
	seq []byte

	// CSI collectors
	params    []int
	curParam  int
	haveDigit bool
	inters    []byte
	private   byte

	oscEsc    bool // saw ESC inside OSC, awaiting ST backslash
	ignoreEsc bool

	x10n int // mouse report bytes collected (of 3)

	utf8     [4]byte
	utf8n    int
	utf8need int
}

// Feed consumes one read's worth of bytes and returns the events
// completed by them, in byte order. Incomplete trailing sequences are
// retained and continue on the next call; chunk boundaries never
// change the decoded result.
func (p *Parser) Feed(data []byte) []Event {
	var evs []Event
	for i := 0; i < len(data); {
		var consumed bool
		evs, consumed = p.step(data[i], evs)
		if consumed {
			i++
		}
	}
	return evs
}

// Flush resolves state parked at an end-of-input boundary: a lone ESC
// becomes the Escape key, partial sequences become Unrecognized
// events. The caller decides when input has paused; the parser itself
// applies no timeout.
func (p *Parser) Flush() []Event {
	var evs []Event
	switch p.state {
	case stateGround:
		if p.utf8need > 0 {
			evs = append(evs, unrecognizedEvent(p.utf8[:p.utf8n]))
		}
	case stateEscape:
		evs = append(evs, keyEvent(KeyEscape))
	case stateCSI, stateSS3, stateOSC, stateMouseX10:
		evs = append(evs, unrecognizedEvent(p.seq))
	case stateIgnore:
		// Nothing buffered
	}
	p.reset()
	p.utf8n = 0
	p.utf8need = 0
	return evs
}

// step consumes one byte, or reports consumed=false after a state
// change that requires the byte to be reprocessed.
func (p *Parser) step(b byte, evs []Event) ([]Event, bool) {
	switch p.state {
	case stateGround:
		return p.stepGround(b, evs)
	case stateEscape:
		return p.stepEscape(b, evs)
	case stateCSI:
		return p.stepCSI(b, evs)
	case stateSS3:
		return p.stepSS3(b, evs)
	case stateOSC:
		return p.stepOSC(b, evs)
	case stateMouseX10:
		return p.stepMouseX10(b, evs)
	default:
		return p.stepIgnore(b, evs)
	}
}

func (p *Parser) stepGround(b byte, evs []Event) ([]Event, bool) {
	if p.utf8need > 0 {
		if b&0xc0 == 0x80 {
			p.utf8[p.utf8n] = b
			p.utf8n++
			if p.utf8n == p.utf8need {
				r, _ := utf8.DecodeRune(p.utf8[:p.utf8n])
				if r == utf8.RuneError {
					evs = append(evs, unrecognizedEvent(p.utf8[:p.utf8n]))
				} else {
					evs = append(evs, runeEvent(r))
				}
				p.utf8n = 0
				p.utf8need = 0
			}
			return evs, true
		}
		// Continuation broken off; surface the partial rune and
		// reprocess the offending byte
		evs = append(evs, unrecognizedEvent(p.utf8[:p.utf8n]))
		p.utf8n = 0
		p.utf8need = 0
		return evs, false
	}

	switch {
	case b == 0x1b:
		p.state = stateEscape
		p.seq = append(p.seq[:0], b)
	case b < 0x20:
		evs = append(evs, keyEvent(controlKeys[b]))
	case b == 0x7f:
		evs = append(evs, keyEvent(KeyBackspace))
	case b < 0x80:
		evs = append(evs, runeEvent(rune(b)))
	default:
		n := utf8SeqLen(b)
		if n == 0 {
			evs = append(evs, unrecognizedEvent([]byte{b}))
		} else {
			p.utf8[0] = b
			p.utf8n = 1
			p.utf8need = n
		}
	}
	return evs, true
}

func (p *Parser) stepEscape(b byte, evs []Event) ([]Event, bool) {
	switch {
	case b == '[':
		p.toCSI()
	case b == 'O':
		p.state = stateSS3
		p.seq = append(p.seq, b)
	case b == ']':
		p.state = stateOSC
		p.oscEsc = false
		p.seq = append(p.seq, b)
	case b == 'P' || b == 'X' || b == '^' || b == '_':
		p.state = stateIgnore
		p.ignoreEsc = false
		p.seq = p.seq[:0]
	case b == 0x1b:
		evs = append(evs, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt})
		p.reset()
	case b < 0x20:
		ev := keyEvent(controlKeys[b])
		ev.Modifiers |= ModAlt
		evs = append(evs, ev)
		p.reset()
	case b == 0x7f:
		evs = append(evs, Event{Type: EventKey, Key: KeyBackspace, Modifiers: ModAlt})
		p.reset()
	case b < 0x80:
		evs = append(evs, Event{Type: EventKey, Key: KeyRune, Rune: rune(b), Modifiers: ModAlt})
		p.reset()
	default:
		// ESC followed by a multi-byte rune: resolve the ESC alone and
		// let ground state reassemble the rune
		evs = append(evs, keyEvent(KeyEscape))
		p.reset()
		return evs, false
	}
	return evs, true
}

func (p *Parser) toCSI() {
	p.state = stateCSI
	p.seq = append(p.seq, '[')
	p.params = p.params[:0]
	p.curParam = 0
	p.haveDigit = false
	p.inters = p.inters[:0]
	p.private = 0
}

func (p *Parser) stepCSI(b byte, evs []Event) ([]Event, bool) {
	if b < 0x20 || b > 0x7e {
		// Control byte or high byte inside a CSI sequence is
		// malformed; surface what was collected and reprocess
		evs = append(evs, unrecognizedEvent(p.seq))
		p.reset()
		return evs, false
	}

	p.seq = append(p.seq, b)
	if len(p.seq) > csiMaxLen {
		evs = append(evs, unrecognizedEvent(p.seq))
		p.reset()
		return evs, true
	}

	switch {
	case b >= '0' && b <= '9':
		p.haveDigit = true
		if p.curParam < maxParamVal {
			p.curParam = p.curParam*10 + int(b-'0')
		}
	case b == ';':
		p.pushParam()
	case b == ':' || (b >= 0x3c && b <= 0x3f):
		// Private markers < = > ? and the sub-parameter colon. A colon
		// marks the sequence as one of the extended encodings this
		// package does not decode; dispatch degrades to Unrecognized.
		if p.private == 0 {
			p.private = b
		}
	case b >= 0x20 && b <= 0x2f:
		p.inters = append(p.inters, b)
	default:
		// Final byte 0x40-0x7e
		return p.dispatchCSI(b, evs), true
	}
	return evs, true
}

func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = 0
	p.haveDigit = false
}

func (p *Parser) dispatchCSI(final byte, evs []Event) []Event {
	if p.haveDigit || len(p.params) > 0 {
		p.pushParam()
	}

	switch {
	case p.private == '<' && (final == 'M' || final == 'm'):
		evs = p.dispatchSGRMouse(final, evs)
	case final == 'M' && p.private == 0 && len(p.inters) == 0 && len(p.params) == 0:
		// X10 mouse report: three raw bytes follow
		p.state = stateMouseX10
		p.x10n = 0
		return evs
	case p.private == 0 && len(p.inters) == 0:
		if key, mod, ok := lookupCSIKey(final, p.params); ok {
			evs = append(evs, Event{Type: EventKey, Key: key, Modifiers: mod})
		} else {
			evs = append(evs, unrecognizedEvent(p.seq))
		}
	default:
		evs = append(evs, unrecognizedEvent(p.seq))
	}
	p.reset()
	return evs
}

// dispatchSGRMouse decodes ESC [ < btn ; x ; y M/m. Position is
// 1-indexed on the wire, 0-indexed in the event.
func (p *Parser) dispatchSGRMouse(final byte, evs []Event) []Event {
	if len(p.params) != 3 {
		return append(evs, unrecognizedEvent(p.seq))
	}
	btn, mod, release := decodeMouseButton(p.params[0])
	ev := Event{
		Type:      EventMouse,
		MouseX:    p.params[1] - 1,
		MouseY:    p.params[2] - 1,
		MouseBtn:  btn,
		Modifiers: mod,
	}
	isMotion := p.params[0]&32 != 0
	switch {
	case final == 'm' || release:
		ev.MouseAction = MouseActionRelease
		if release {
			ev.MouseBtn = MouseBtnNone
		}
	case isMotion:
		ev.MouseAction = MouseActionDrag
	default:
		ev.MouseAction = MouseActionPress
	}
	if isMotion && ev.MouseBtn == MouseBtnNone {
		ev.MouseAction = MouseActionMove
	}
	return append(evs, ev)
}

func (p *Parser) stepSS3(b byte, evs []Event) ([]Event, bool) {
	if b < 0x20 || b > 0x7e {
		evs = append(evs, unrecognizedEvent(p.seq))
		p.reset()
		return evs, false
	}
	p.seq = append(p.seq, b)
	if key, ok := ss3Keys[b]; ok {
		evs = append(evs, keyEvent(key))
	} else {
		evs = append(evs, unrecognizedEvent(p.seq))
	}
	p.reset()
	return evs, true
}

func (p *Parser) stepOSC(b byte, evs []Event) ([]Event, bool) {
	if p.oscEsc {
		p.oscEsc = false
		if b == '\\' {
			// ST terminator
			p.seq = append(p.seq, b)
			evs = append(evs, unrecognizedEvent(p.seq))
			p.reset()
			return evs, true
		}
	}
	switch b {
	case 0x07:
		// BEL terminator
		p.seq = append(p.seq, b)
		evs = append(evs, unrecognizedEvent(p.seq))
		p.reset()
		return evs, true
	case 0x1b:
		p.oscEsc = true
		p.seq = append(p.seq, b)
	default:
		p.seq = append(p.seq, b)
	}
	if len(p.seq) > oscMaxLen {
		// Terminator withheld; discard without emitting
		p.reset()
	}
	return evs, true
}

func (p *Parser) stepMouseX10(b byte, evs []Event) ([]Event, bool) {
	p.seq = append(p.seq, b)
	p.x10n++
	if p.x10n < 3 {
		return evs, true
	}

	raw := p.seq[len(p.seq)-3:]
	btn, mod, release := decodeMouseButton(int(raw[0]) - 32)
	ev := Event{
		Type:      EventMouse,
		MouseX:    int(raw[1]) - 33,
		MouseY:    int(raw[2]) - 33,
		MouseBtn:  btn,
		Modifiers: mod,
	}
	isMotion := (int(raw[0])-32)&32 != 0
	switch {
	case release:
		ev.MouseAction = MouseActionRelease
	case isMotion:
		ev.MouseAction = MouseActionDrag
	default:
		ev.MouseAction = MouseActionPress
	}
	evs = append(evs, ev)
	p.reset()
	return evs, true
}

func (p *Parser) stepIgnore(b byte, evs []Event) ([]Event, bool) {
	switch {
	case b == 0x07:
		p.reset()
	case p.ignoreEsc && b == '\\':
		p.reset()
	case b == 0x1b:
		p.ignoreEsc = true
	default:
		p.ignoreEsc = false
	}
	return evs, true
}

func (p *Parser) reset() {
	p.state = stateGround
	p.seq = p.seq[:0]
	p.params = p.params[:0]
	p.curParam = 0
	p.haveDigit = false
	p.inters = p.inters[:0]
	p.private = 0
	p.oscEsc = false
	p.ignoreEsc = false
	p.x10n = 0
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte,
// 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}
