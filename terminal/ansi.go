package terminal

import "io"

// Pre-allocated control sequences
var (
	csiSGR0       = []byte("\x1b[0m")
	csiCursorShow = []byte("\x1b[?25h")

	// Mouse reporting (xterm private modes; 1006 selects SGR encoding)
	csiMouseClickOn   = []byte("\x1b[?1000h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOn    = []byte("\x1b[?1002h")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOn  = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// EmergencyRestore writes the sequences that undo this package's
// terminal-visible state. Call from panic recovery when Close cannot
// run; it cannot restore termios/console attributes, only what escape
// sequences reach.
func EmergencyRestore(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
}
