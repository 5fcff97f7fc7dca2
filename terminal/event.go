package terminal

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventUnrecognized // Valid but unknown sequence, or malformed input (check Event.Raw)
	EventError        // Read error terminating the stream (check Event.Err)
)

// Event represents a single parsed terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier

	// Mouse event fields (0-indexed position)
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction

	// Raw holds the undecoded bytes of an EventUnrecognized event
	Raw []byte

	// Err is set on EventError only
	Err error
}

// EventBatch is the ordered sequence of events parsed from a single
// read. Events within a batch preserve byte order; batches are
// delivered in read-completion order.
type EventBatch []Event

func keyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

func runeEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

func unrecognizedEvent(raw []byte) Event {
	// Copy: callers reuse their sequence buffers
	b := make([]byte, len(raw))
	copy(b, raw)
	return Event{Type: EventUnrecognized, Raw: b}
}
