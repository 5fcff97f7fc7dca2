package terminal

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParserKeySequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{"Up arrow", "\x1b[A", Event{Type: EventKey, Key: KeyUp}},
		{"Down arrow", "\x1b[B", Event{Type: EventKey, Key: KeyDown}},
		{"Ctrl+Up", "\x1b[1;5A", Event{Type: EventKey, Key: KeyUp, Modifiers: ModCtrl}},
		{"Shift+Right", "\x1b[1;2C", Event{Type: EventKey, Key: KeyRight, Modifiers: ModShift}},
		{"Alt+Left", "\x1b[1;3D", Event{Type: EventKey, Key: KeyLeft, Modifiers: ModAlt}},
		{"Ctrl+Shift+End", "\x1b[1;6F", Event{Type: EventKey, Key: KeyEnd, Modifiers: ModCtrl | ModShift}},
		{"Home", "\x1b[H", Event{Type: EventKey, Key: KeyHome}},
		{"Delete", "\x1b[3~", Event{Type: EventKey, Key: KeyDelete}},
		{"Ctrl+Delete", "\x1b[3;5~", Event{Type: EventKey, Key: KeyDelete, Modifiers: ModCtrl}},
		{"PageUp", "\x1b[5~", Event{Type: EventKey, Key: KeyPageUp}},
		{"PageDown", "\x1b[6~", Event{Type: EventKey, Key: KeyPageDown}},
		{"Insert", "\x1b[2~", Event{Type: EventKey, Key: KeyInsert}},
		{"Shift+Tab", "\x1b[Z", Event{Type: EventKey, Key: KeyBacktab, Modifiers: ModShift}},
		{"F5", "\x1b[15~", Event{Type: EventKey, Key: KeyF5}},
		{"F12", "\x1b[24~", Event{Type: EventKey, Key: KeyF12}},
		{"Shift+F6", "\x1b[17;2~", Event{Type: EventKey, Key: KeyF6, Modifiers: ModShift}},
		{"SS3 F1", "\x1bOP", Event{Type: EventKey, Key: KeyF1}},
		{"SS3 Up", "\x1bOA", Event{Type: EventKey, Key: KeyUp}},
		{"SS3 keypad Enter", "\x1bOM", Event{Type: EventKey, Key: KeyEnter}},
		{"Modified F1", "\x1b[1;5P", Event{Type: EventKey, Key: KeyF1, Modifiers: ModCtrl}},
		{"Alt+x", "\x1bx", Event{Type: EventKey, Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"Alt+Escape", "\x1b\x1b", Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}},
		{"Alt+Enter", "\x1b\r", Event{Type: EventKey, Key: KeyEnter, Modifiers: ModAlt}},
		{"Alt+Backspace", "\x1b\x7f", Event{Type: EventKey, Key: KeyBackspace, Modifiers: ModAlt}},
		{"Tab", "\t", Event{Type: EventKey, Key: KeyTab}},
		{"Enter CR", "\r", Event{Type: EventKey, Key: KeyEnter}},
		{"Enter LF", "\n", Event{Type: EventKey, Key: KeyEnter}},
		{"Backspace DEL", "\x7f", Event{Type: EventKey, Key: KeyBackspace}},
		{"Backspace BS", "\x08", Event{Type: EventKey, Key: KeyBackspace}},
		{"Ctrl+A", "\x01", Event{Type: EventKey, Key: KeyCtrlA}},
		{"Ctrl+Z", "\x1a", Event{Type: EventKey, Key: KeyCtrlZ}},
		{"Ctrl+Underscore", "\x1f", Event{Type: EventKey, Key: KeyCtrlUnderscore}},
		{"Plain rune", "a", Event{Type: EventKey, Key: KeyRune, Rune: 'a'}},
		{"Space rune", " ", Event{Type: EventKey, Key: KeyRune, Rune: ' '}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parser
			evs := p.Feed([]byte(tt.input))
			if len(evs) != 1 {
				t.Fatalf("Expected 1 event for %q, got %d: %v", tt.input, len(evs), evs)
			}
			if diff := cmp.Diff(tt.want, evs[0]); diff != "" {
				t.Errorf("Event mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParserChunkInvariance(t *testing.T) {
	inputs := []string{
		"\x1b[A",
		"\x1b[1;5A",
		"hello\x1b[B中\x1b[3~",
		"\x1b[<0;3;7M\x1bOPx",
		"\x1b]0;title\x07after",
		"\x1b[Mabc",
		"\x1bq\x1b[1;2C\xe4\xb8\xad",
	}

	for _, input := range inputs {
		var whole Parser
		want := whole.Feed([]byte(input))

		var split Parser
		var got []Event
		for i := 0; i < len(input); i++ {
			got = append(got, split.Feed([]byte{input[i]})...)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Byte-by-byte parse of %q differs from whole parse (-whole +split):\n%s", input, diff)
		}
	}
}

func TestParserTotality(t *testing.T) {
	// Any byte stream must parse without panicking, and the result
	// must not depend on how the stream is chunked
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 4096)
	rng.Read(data)

	var whole Parser
	want := whole.Feed(data)

	var split Parser
	var got []Event
	for off := 0; off < len(data); {
		n := 1 + rng.Intn(17)
		if off+n > len(data) {
			n = len(data) - off
		}
		got = append(got, split.Feed(data[off:off+n])...)
		off += n
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Chunked parse of random data differs (-whole +split):\n%s", diff)
	}
}

func TestParserUTF8(t *testing.T) {
	t.Run("Multi-byte rune", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte("中"))
		want := []Event{{Type: EventKey, Key: KeyRune, Rune: '中'}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Rune split across reads", func(t *testing.T) {
		var p Parser
		raw := []byte("🙂")
		if evs := p.Feed(raw[:2]); len(evs) != 0 {
			t.Fatalf("Expected no events for partial rune, got %v", evs)
		}
		evs := p.Feed(raw[2:])
		want := []Event{{Type: EventKey, Key: KeyRune, Rune: '🙂'}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Broken continuation", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte{0xe4, 'A'})
		want := []Event{
			{Type: EventUnrecognized, Raw: []byte{0xe4}},
			{Type: EventKey, Key: KeyRune, Rune: 'A'},
		}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Stray continuation byte", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte{0x80})
		want := []Event{{Type: EventUnrecognized, Raw: []byte{0x80}}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})
}

func TestParserOSC(t *testing.T) {
	t.Run("BEL terminated", func(t *testing.T) {
		var p Parser
		raw := "\x1b]0;window title\x07"
		evs := p.Feed([]byte(raw))
		want := []Event{{Type: EventUnrecognized, Raw: []byte(raw)}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("ST terminated", func(t *testing.T) {
		var p Parser
		raw := "\x1b]52;c;aGk=\x1b\\"
		evs := p.Feed([]byte(raw))
		want := []Event{{Type: EventUnrecognized, Raw: []byte(raw)}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Unterminated past cap resets to ground", func(t *testing.T) {
		var p Parser
		payload := bytes.Repeat([]byte{'x'}, oscMaxLen-1)
		if evs := p.Feed([]byte("\x1b]")); len(evs) != 0 {
			t.Fatalf("Expected no events for OSC start, got %v", evs)
		}
		if evs := p.Feed(payload); len(evs) != 0 {
			t.Fatalf("Expected overflowing OSC to be discarded silently, got %d events", len(evs))
		}
		// Parser must be back in ground state
		evs := p.Feed([]byte("A"))
		want := []Event{{Type: EventKey, Key: KeyRune, Rune: 'A'}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Parser did not recover to ground (-want +got):\n%s", diff)
		}
	})
}

func TestParserMouse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{
			"SGR left press", "\x1b[<0;3;7M",
			Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionPress, MouseX: 2, MouseY: 6},
		},
		{
			"SGR left release", "\x1b[<0;3;7m",
			Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionRelease, MouseX: 2, MouseY: 6},
		},
		{
			"SGR right press", "\x1b[<2;10;1M",
			Event{Type: EventMouse, MouseBtn: MouseBtnRight, MouseAction: MouseActionPress, MouseX: 9, MouseY: 0},
		},
		{
			"SGR wheel up", "\x1b[<64;5;5M",
			Event{Type: EventMouse, MouseBtn: MouseBtnWheelUp, MouseAction: MouseActionPress, MouseX: 4, MouseY: 4},
		},
		{
			"SGR wheel down", "\x1b[<65;5;5M",
			Event{Type: EventMouse, MouseBtn: MouseBtnWheelDown, MouseAction: MouseActionPress, MouseX: 4, MouseY: 4},
		},
		{
			"SGR drag", "\x1b[<32;8;2M",
			Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionDrag, MouseX: 7, MouseY: 1},
		},
		{
			"SGR ctrl press", "\x1b[<16;1;1M",
			Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionPress, Modifiers: ModCtrl, MouseX: 0, MouseY: 0},
		},
		{
			"X10 left press", "\x1b[M\x20\x24\x25",
			Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionPress, MouseX: 3, MouseY: 4},
		},
		{
			"X10 release", "\x1b[M\x23\x21\x21",
			Event{Type: EventMouse, MouseBtn: MouseBtnNone, MouseAction: MouseActionRelease, MouseX: 0, MouseY: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parser
			evs := p.Feed([]byte(tt.input))
			if len(evs) != 1 {
				t.Fatalf("Expected 1 event for %q, got %d: %v", tt.input, len(evs), evs)
			}
			if diff := cmp.Diff(tt.want, evs[0]); diff != "" {
				t.Errorf("Event mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParserUnrecognized(t *testing.T) {
	t.Run("Unknown CSI final", func(t *testing.T) {
		var p Parser
		raw := "\x1b[5X"
		evs := p.Feed([]byte(raw))
		want := []Event{{Type: EventUnrecognized, Raw: []byte(raw)}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Unknown SS3 final", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte("\x1bOz"))
		want := []Event{{Type: EventUnrecognized, Raw: []byte("\x1bOz")}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Control byte inside CSI", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte("\x1b[1\x01"))
		want := []Event{
			{Type: EventUnrecognized, Raw: []byte("\x1b[1")},
			{Type: EventKey, Key: KeyCtrlA},
		}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("ESC restarts inside CSI", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte("\x1b[1\x1b[A"))
		want := []Event{
			{Type: EventUnrecognized, Raw: []byte("\x1b[1")},
			{Type: EventKey, Key: KeyUp},
		}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("DCS discarded silently", func(t *testing.T) {
		var p Parser
		evs := p.Feed([]byte("\x1bPsome device string\x1b\\A"))
		want := []Event{{Type: EventKey, Key: KeyRune, Rune: 'A'}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})
}

func TestParserFlush(t *testing.T) {
	t.Run("Lone escape", func(t *testing.T) {
		var p Parser
		if evs := p.Feed([]byte{0x1b}); len(evs) != 0 {
			t.Fatalf("Expected ESC to park the parser, got %v", evs)
		}
		evs := p.Flush()
		want := []Event{{Type: EventKey, Key: KeyEscape}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Escape then disambiguating byte", func(t *testing.T) {
		var p Parser
		p.Feed([]byte{0x1b})
		evs := p.Feed([]byte("[A"))
		want := []Event{{Type: EventKey, Key: KeyUp}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Partial CSI", func(t *testing.T) {
		var p Parser
		p.Feed([]byte("\x1b[1;"))
		evs := p.Flush()
		want := []Event{{Type: EventUnrecognized, Raw: []byte("\x1b[1;")}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Partial rune", func(t *testing.T) {
		var p Parser
		p.Feed([]byte{0xe4, 0xb8})
		evs := p.Flush()
		want := []Event{{Type: EventUnrecognized, Raw: []byte{0xe4, 0xb8}}}
		if diff := cmp.Diff(want, evs); diff != "" {
			t.Errorf("Unexpected events (-want +got):\n%s", diff)
		}
	})

	t.Run("Ground flush is empty", func(t *testing.T) {
		var p Parser
		if evs := p.Flush(); len(evs) != 0 {
			t.Errorf("Expected no events from idle flush, got %v", evs)
		}
	})
}
