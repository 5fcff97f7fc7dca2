//go:build windows

package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/windows"
)

type windowsBackend struct {
	in   *os.File
	out  *os.File
	hIn  windows.Handle
	hOut windows.Handle
}

// winAttributes snapshots both console modes; input and output are
// configured together.
type winAttributes struct {
	inMode  uint32
	outMode uint32
}

func newBackend() Backend {
	return &windowsBackend{
		in:   os.Stdin,
		out:  os.Stdout,
		hIn:  windows.Handle(os.Stdin.Fd()),
		hOut: windows.Handle(os.Stdout.Fd()),
	}
}

// NewFileBackend returns a Windows backend on the given console files.
func NewFileBackend(in, out *os.File) Backend {
	return &windowsBackend{
		in:   in,
		out:  out,
		hIn:  windows.Handle(in.Fd()),
		hOut: windows.Handle(out.Fd()),
	}
}

func (b *windowsBackend) Attributes() (Attributes, error) {
	var attrs winAttributes
	if err := windows.GetConsoleMode(b.hIn, &attrs.inMode); err != nil {
		return nil, err
	}
	if err := windows.GetConsoleMode(b.hOut, &attrs.outMode); err != nil {
		return nil, err
	}
	return &attrs, nil
}

func (b *windowsBackend) SetAttributes(attrs Attributes) error {
	wa, ok := attrs.(*winAttributes)
	if !ok {
		return errors.New("attribute snapshot is not a console mode pair")
	}
	errIn := windows.SetConsoleMode(b.hIn, wa.inMode)
	errOut := windows.SetConsoleMode(b.hOut, wa.outMode)
	if errIn != nil {
		return errIn
	}
	return errOut
}

// ApplyMode configures the console. Raw mode enables virtual terminal
// input so keys arrive as the same escape-sequence byte stream the
// Unix backend produces.
func (b *windowsBackend) ApplyMode(mode Mode) error {
	var inMode, outMode uint32
	if err := windows.GetConsoleMode(b.hIn, &inMode); err != nil {
		return err
	}
	if err := windows.GetConsoleMode(b.hOut, &outMode); err != nil {
		return err
	}

	switch mode {
	case ModeRaw:
		inMode &^= windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT |
			windows.ENABLE_PROCESSED_INPUT
		inMode |= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	case ModeCanonical:
		inMode |= windows.ENABLE_LINE_INPUT | windows.ENABLE_ECHO_INPUT |
			windows.ENABLE_PROCESSED_INPUT
		inMode &^= windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	}
	outMode |= windows.ENABLE_PROCESSED_OUTPUT |
		windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING

	if err := windows.SetConsoleMode(b.hIn, inMode); err != nil {
		return err
	}
	return windows.SetConsoleMode(b.hOut, outMode)
}

func (b *windowsBackend) WindowSize() (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.hOut, &info); err != nil {
		return 0, 0, err
	}
	w := int(info.Window.Right - info.Window.Left + 1)
	h := int(info.Window.Bottom - info.Window.Top + 1)
	return w, h, nil
}

func (b *windowsBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read waits on the console input handle with a timeout so the stop
// channel is honored, mirroring the Unix poll loop.
func (b *windowsBackend) Read(stop <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	for {
		select {
		case <-stop:
			return nil, nil
		default:
		}

		ev, err := windows.WaitForSingleObject(b.hIn, 100)
		if err != nil {
			return nil, err
		}
		if ev == uint32(windows.WAIT_TIMEOUT) {
			return nil, nil
		}

		var done uint32
		if err := windows.ReadFile(b.hIn, buf, &done, nil); err != nil {
			return nil, err
		}
		if done == 0 {
			return nil, io.EOF
		}

		ret := make([]byte, done)
		copy(ret, buf[:done])
		return ret, nil
	}
}
