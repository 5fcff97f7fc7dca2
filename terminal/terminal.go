package terminal

import (
	"fmt"
	"sync"
)

// Size holds terminal dimensions. Both fields are positive for any
// successfully opened session.
type Size struct {
	Width  int
	Height int
}

// Session owns one terminal: its attribute snapshot, its cached size
// and the background reader delivering parsed input. Exactly one
// goroutine reads the terminal and only Write writes it, so syscalls
// on the handle never interleave.
type Session struct {
	backend Backend
	mode    Mode
	saved   Attributes
	size    Size

	parser Parser
	events chan EventBatch
	stopCh chan struct{}
	doneCh chan struct{}

	closeOnce   sync.Once
	restoreOnce sync.Once

	mu        sync.Mutex
	mouseMode MouseMode
}

// Open puts the process terminal into the given mode and starts the
// input reader. Construction is atomic: on error no session exists,
// no reader runs, and any attribute change already applied has been
// rolled back best-effort.
func Open(mode Mode) (*Session, error) {
	return OpenBackend(newBackend(), mode)
}

// OpenBackend opens a session on a caller-supplied backend.
func OpenBackend(b Backend, mode Mode) (*Session, error) {
	saved, err := b.Attributes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAttributeQuery, err)
	}

	if err := b.ApplyMode(mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAttributeSet, err)
	}

	w, h, err := b.WindowSize()
	if err != nil {
		b.SetAttributes(saved)
		return nil, fmt.Errorf("%w: %w", ErrSizeQuery, err)
	}
	if w <= 0 || h <= 0 {
		b.SetAttributes(saved)
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	s := &Session{
		backend: b,
		mode:    mode,
		saved:   saved,
		size:    Size{Width: w, Height: h},
		events:  make(chan EventBatch, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	go s.readLoop()

	logger.Debug("session open", "mode", mode, "width", w, "height", h)
	return s, nil
}

// Mode reports the mode the session was opened with.
func (s *Session) Mode() Mode {
	return s.mode
}

// Size returns the dimensions captured at open. Resize signals are not
// watched; the value does not change over the session's lifetime.
func (s *Session) Size() Size {
	return s.size
}

// Events returns the input stream. Each batch holds the events parsed
// from one read, in byte order. The channel closes on Close; a read
// failure delivers a final EventError batch before closing. Batches
// are never dropped: a slow consumer backs the reader up instead.
func (s *Session) Events() <-chan EventBatch {
	return s.events
}

// Write sends raw bytes to the terminal. Write failures are swallowed:
// a transiently full pipe should not abort an interactive session and
// the caller has no recovery beyond retrying anyway.
func (s *Session) Write(p []byte) {
	if err := s.backend.Write(p); err != nil {
		logger.Debug("terminal write failed", "err", err)
	}
}

// WriteString sends a UTF-8 string to the terminal.
func (s *Session) WriteString(text string) {
	s.Write([]byte(text))
}

// EnableMouse asks the terminal to report mouse events in SGR
// encoding. Modes combine: MouseModeClick | MouseModeDrag.
func (s *Session) EnableMouse(mode MouseMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mouseMode {
		return
	}
	s.writeMouseMode(s.mouseMode, mode)
	s.mouseMode = mode
}

// DisableMouse turns off all mouse reporting.
func (s *Session) DisableMouse() {
	s.EnableMouse(MouseModeNone)
}

func (s *Session) writeMouseMode(old, mode MouseMode) {
	if old&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		s.Write(csiMouseMotionOff)
	}
	if old&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		s.Write(csiMouseDragOff)
	}
	if old&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		s.Write(csiMouseClickOff)
	}
	if mode == MouseModeNone && old != MouseModeNone {
		s.Write(csiMouseSGROff)
	}

	if mode != MouseModeNone && old == MouseModeNone {
		s.Write(csiMouseSGROn)
	}
	if mode&MouseModeClick != 0 && old&MouseModeClick == 0 {
		s.Write(csiMouseClickOn)
	}
	if mode&MouseModeDrag != 0 && old&MouseModeDrag == 0 {
		s.Write(csiMouseDragOn)
	}
	if mode&MouseModeMotion != 0 && old&MouseModeMotion == 0 {
		s.Write(csiMouseMotionOn)
	}
}

// Close stops the reader and restores the attribute snapshot captured
// at open. Idempotent; the restore happens exactly once no matter how
// many times Close is called or whether the stream already ended with
// an error.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh

		s.mu.Lock()
		if s.mouseMode != MouseModeNone {
			s.writeMouseMode(s.mouseMode, MouseModeNone)
			s.mouseMode = MouseModeNone
		}
		s.mu.Unlock()

		s.restore()
		logger.Debug("session closed")
	})
}

func (s *Session) restore() {
	s.restoreOnce.Do(func() {
		if err := s.backend.SetAttributes(s.saved); err != nil {
			// Best-effort cleanliness; nothing to recover at teardown
			logger.Debug("attribute restore failed", "err", err)
		}
	})
}

// readLoop is the single reader of the terminal handle. It feeds the
// parser after every read and hands completed batches to the stream.
func (s *Session) readLoop() {
	defer close(s.doneCh)
	defer close(s.events)

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		data, err := s.backend.Read(s.stopCh)
		if err != nil {
			logger.Debug("terminal read failed", "err", err)
			s.deliver(EventBatch{{Type: EventError, Err: err}})
			return
		}

		if len(data) == 0 {
			// Stop, or a poll timeout: input has paused, so resolve
			// any parked lone ESC or partial sequence
			select {
			case <-s.stopCh:
				return
			default:
			}
			if batch := s.parser.Flush(); len(batch) > 0 {
				if !s.deliver(batch) {
					return
				}
			}
			continue
		}

		if batch := s.parser.Feed(data); len(batch) > 0 {
			if !s.deliver(batch) {
				return
			}
		}
	}
}

// deliver blocks until the consumer accepts the batch or the session
// is closed. Reports false when closed.
func (s *Session) deliver(batch EventBatch) bool {
	select {
	case s.events <- batch:
		return true
	case <-s.stopCh:
		return false
	}
}
