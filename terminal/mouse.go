package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// MouseMode controls which mouse events the terminal reports (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Press/release events
	MouseModeDrag   MouseMode = 1 << 1 // Drag events (button held + motion)
	MouseModeMotion MouseMode = 1 << 2 // All motion events
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// decodeMouseButton decodes the shared button encoding of X10 and SGR
// mouse reports: bits 0-1 button id (3 = release), bit 6 wheel,
// bits 2-4 modifiers.
func decodeMouseButton(btn int) (MouseButton, Modifier, bool) {
	var mod Modifier
	if btn&4 != 0 {
		mod |= ModShift
	}
	if btn&8 != 0 {
		mod |= ModAlt
	}
	if btn&16 != 0 {
		mod |= ModCtrl
	}

	if btn&64 != 0 {
		if btn&3 == 0 {
			return MouseBtnWheelUp, mod, false
		}
		return MouseBtnWheelDown, mod, false
	}

	switch btn & 3 {
	case 0:
		return MouseBtnLeft, mod, false
	case 1:
		return MouseBtnMiddle, mod, false
	case 2:
		return MouseBtnRight, mod, false
	default:
		return MouseBtnNone, mod, true
	}
}
