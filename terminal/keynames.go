package terminal

import (
	"strconv"
	"strings"
)

// keyToName maps Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     "space",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA: "ctrl_a",
	KeyCtrlB: "ctrl_b",
	KeyCtrlC: "ctrl_c",
	KeyCtrlD: "ctrl_d",
	KeyCtrlE: "ctrl_e",
	KeyCtrlF: "ctrl_f",
	KeyCtrlG: "ctrl_g",
	KeyCtrlH: "ctrl_h",
	KeyCtrlI: "ctrl_i",
	KeyCtrlJ: "ctrl_j",
	KeyCtrlK: "ctrl_k",
	KeyCtrlL: "ctrl_l",
	KeyCtrlM: "ctrl_m",
	KeyCtrlN: "ctrl_n",
	KeyCtrlO: "ctrl_o",
	KeyCtrlP: "ctrl_p",
	KeyCtrlQ: "ctrl_q",
	KeyCtrlR: "ctrl_r",
	KeyCtrlS: "ctrl_s",
	KeyCtrlT: "ctrl_t",
	KeyCtrlU: "ctrl_u",
	KeyCtrlV: "ctrl_v",
	KeyCtrlW: "ctrl_w",
	KeyCtrlX: "ctrl_x",
	KeyCtrlY: "ctrl_y",
	KeyCtrlZ: "ctrl_z",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

var nameToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyToName))
	for k, name := range keyToName {
		m[name] = k
	}
	return m
}()

// String returns the canonical name of the key, "rune" for printable
// characters and "none" for the zero value.
func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	if k == KeyRune {
		return "rune"
	}
	return "none"
}

// LookupKeyName resolves a canonical key name ("ctrl_a", "page_up")
// back to its Key constant.
func LookupKeyName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// String formats an event for display and logs: "ctrl+up", "alt+x",
// "mouse left press @3,7", "unrecognized(5 bytes)".
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		var sb strings.Builder
		if e.Modifiers&ModCtrl != 0 {
			sb.WriteString("ctrl+")
		}
		if e.Modifiers&ModAlt != 0 {
			sb.WriteString("alt+")
		}
		if e.Modifiers&ModShift != 0 {
			sb.WriteString("shift+")
		}
		if e.Key == KeyRune {
			sb.WriteRune(e.Rune)
		} else {
			sb.WriteString(e.Key.String())
		}
		return sb.String()
	case EventMouse:
		var sb strings.Builder
		sb.WriteString("mouse ")
		sb.WriteString(strings.ToLower(e.MouseBtn.String()))
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(e.MouseAction.String()))
		sb.WriteString(" @")
		sb.WriteString(strconv.Itoa(e.MouseX))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(e.MouseY))
		return sb.String()
	case EventUnrecognized:
		return "unrecognized(" + strconv.Itoa(len(e.Raw)) + " bytes)"
	case EventError:
		if e.Err != nil {
			return "error: " + e.Err.Error()
		}
		return "error"
	}
	return "unknown"
}
