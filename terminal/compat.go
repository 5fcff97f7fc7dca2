package terminal

import "github.com/gdamore/tcell/v2"

// Bridge to tcell event types, so programs written against tcell can
// consume this package's input stream during migration.

var keyToTcell = map[Key]tcell.Key{
	KeyEscape:    tcell.KeyEscape,
	KeyEnter:     tcell.KeyEnter,
	KeyTab:       tcell.KeyTab,
	KeyBacktab:   tcell.KeyBacktab,
	KeyBackspace: tcell.KeyBackspace2,
	KeyDelete:    tcell.KeyDelete,

	KeyUp:       tcell.KeyUp,
	KeyDown:     tcell.KeyDown,
	KeyLeft:     tcell.KeyLeft,
	KeyRight:    tcell.KeyRight,
	KeyHome:     tcell.KeyHome,
	KeyEnd:      tcell.KeyEnd,
	KeyPageUp:   tcell.KeyPgUp,
	KeyPageDown: tcell.KeyPgDn,
	KeyInsert:   tcell.KeyInsert,

	KeyF1:  tcell.KeyF1,
	KeyF2:  tcell.KeyF2,
	KeyF3:  tcell.KeyF3,
	KeyF4:  tcell.KeyF4,
	KeyF5:  tcell.KeyF5,
	KeyF6:  tcell.KeyF6,
	KeyF7:  tcell.KeyF7,
	KeyF8:  tcell.KeyF8,
	KeyF9:  tcell.KeyF9,
	KeyF10: tcell.KeyF10,
	KeyF11: tcell.KeyF11,
	KeyF12: tcell.KeyF12,

	KeyCtrlA: tcell.KeyCtrlA,
	KeyCtrlB: tcell.KeyCtrlB,
	KeyCtrlC: tcell.KeyCtrlC,
	KeyCtrlD: tcell.KeyCtrlD,
	KeyCtrlE: tcell.KeyCtrlE,
	KeyCtrlF: tcell.KeyCtrlF,
	KeyCtrlG: tcell.KeyCtrlG,
	KeyCtrlH: tcell.KeyCtrlH,
	KeyCtrlI: tcell.KeyCtrlI,
	KeyCtrlJ: tcell.KeyCtrlJ,
	KeyCtrlK: tcell.KeyCtrlK,
	KeyCtrlM: tcell.KeyCtrlM,
	KeyCtrlL: tcell.KeyCtrlL,
	KeyCtrlN: tcell.KeyCtrlN,
	KeyCtrlO: tcell.KeyCtrlO,
	KeyCtrlP: tcell.KeyCtrlP,
	KeyCtrlQ: tcell.KeyCtrlQ,
	KeyCtrlR: tcell.KeyCtrlR,
	KeyCtrlS: tcell.KeyCtrlS,
	KeyCtrlT: tcell.KeyCtrlT,
	KeyCtrlU: tcell.KeyCtrlU,
	KeyCtrlV: tcell.KeyCtrlV,
	KeyCtrlW: tcell.KeyCtrlW,
	KeyCtrlX: tcell.KeyCtrlX,
	KeyCtrlY: tcell.KeyCtrlY,
	KeyCtrlZ: tcell.KeyCtrlZ,

	KeyCtrlSpace:        tcell.KeyCtrlSpace,
	KeyCtrlBackslash:    tcell.KeyCtrlBackslash,
	KeyCtrlBracketRight: tcell.KeyCtrlRightSq,
	KeyCtrlCaret:        tcell.KeyCtrlCarat,
	KeyCtrlUnderscore:   tcell.KeyCtrlUnderscore,
}

func modToTcell(mod Modifier) tcell.ModMask {
	var mask tcell.ModMask
	if mod&ModShift != 0 {
		mask |= tcell.ModShift
	}
	if mod&ModAlt != 0 {
		mask |= tcell.ModAlt
	}
	if mod&ModCtrl != 0 {
		mask |= tcell.ModCtrl
	}
	return mask
}

func mouseBtnToTcell(b MouseButton) tcell.ButtonMask {
	switch b {
	case MouseBtnLeft:
		return tcell.ButtonPrimary
	case MouseBtnMiddle:
		return tcell.ButtonMiddle
	case MouseBtnRight:
		return tcell.ButtonSecondary
	case MouseBtnWheelUp:
		return tcell.WheelUp
	case MouseBtnWheelDown:
		return tcell.WheelDown
	default:
		return tcell.ButtonNone
	}
}

// ToTcell converts an event to its tcell equivalent. Unrecognized and
// error events have no tcell form and convert to nil.
func ToTcell(ev Event) tcell.Event {
	switch ev.Type {
	case EventKey:
		mod := modToTcell(ev.Modifiers)
		if ev.Key == KeyRune {
			return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mod)
		}
		k, ok := keyToTcell[ev.Key]
		if !ok {
			return nil
		}
		return tcell.NewEventKey(k, 0, mod)
	case EventMouse:
		btn := mouseBtnToTcell(ev.MouseBtn)
		if ev.MouseAction == MouseActionRelease {
			btn = tcell.ButtonNone
		}
		return tcell.NewEventMouse(ev.MouseX, ev.MouseY, btn, modToTcell(ev.Modifiers))
	default:
		return nil
	}
}
