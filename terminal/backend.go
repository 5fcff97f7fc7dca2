package terminal

// Mode selects how the terminal delivers input. A session applies its
// mode once at open; switching modes means opening a new session.
type Mode uint8

const (
	// ModeRaw delivers input byte-by-byte, unechoed, with line
	// editing, software flow control and CR translation disabled.
	ModeRaw Mode = iota

	// ModeCanonical delivers input line-buffered and echoed with
	// OS-side line editing.
	ModeCanonical
)

func (m Mode) String() string {
	if m == ModeCanonical {
		return "canonical"
	}
	return "raw"
}

// Attributes is an opaque snapshot of OS terminal configuration,
// produced and consumed only by the Backend that captured it. The
// session captures one snapshot at open and restores it verbatim at
// close.
type Attributes any

// Backend abstracts platform-specific terminal operations. The session
// and parser are platform-agnostic; Unix and Windows implementations
// are selected by build tags. A Backend's handles are exclusively
// owned by its session: only the background reader reads, only Write
// writes.
type Backend interface {
	// Attributes captures the current terminal configuration.
	Attributes() (Attributes, error)

	// SetAttributes restores a snapshot captured by Attributes.
	SetAttributes(attrs Attributes) error

	// ApplyMode rewrites the terminal configuration for the mode.
	ApplyMode(mode Mode) error

	// WindowSize reports the terminal dimensions in columns and rows.
	WindowSize() (width, height int, err error)

	// Read blocks until input is available, then returns the bytes
	// read. It returns (nil, nil) when the underlying wait times out
	// or the stop channel closes, and io.EOF when the terminal input
	// reaches end of file.
	Read(stop <-chan struct{}) ([]byte, error)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) error
}
