//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
}

func newBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// NewFileBackend returns a Unix backend reading from in and writing to
// out. Both must refer to a terminal.
func NewFileBackend(in, out *os.File) Backend {
	return &unixBackend{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (b *unixBackend) Attributes() (Attributes, error) {
	if !term.IsTerminal(b.inFd) {
		return nil, errors.New("input is not a terminal")
	}
	tio, err := unix.IoctlGetTermios(b.inFd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	return tio, nil
}

func (b *unixBackend) SetAttributes(attrs Attributes) error {
	tio, ok := attrs.(*unix.Termios)
	if !ok {
		return errors.New("attribute snapshot is not a termios")
	}
	return unix.IoctlSetTermios(b.inFd, ioctlSetTermios, tio)
}

func (b *unixBackend) ApplyMode(mode Mode) error {
	tio, err := unix.IoctlGetTermios(b.inFd, ioctlGetTermios)
	if err != nil {
		return err
	}
	switch mode {
	case ModeRaw:
		tio.Lflag &^= unix.ICANON | unix.ECHO
		tio.Iflag &^= unix.IXON | unix.ICRNL
		tio.Cc[unix.VMIN] = 1
		tio.Cc[unix.VTIME] = 0
	case ModeCanonical:
		tio.Lflag |= unix.ICANON | unix.ECHO
		tio.Iflag |= unix.IXON | unix.ICRNL
	}
	return unix.IoctlSetTermios(b.inFd, ioctlSetTermios, tio)
}

func (b *unixBackend) WindowSize() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls with a timeout so the stop channel is honored even while
// no input arrives.
func (b *unixBackend) Read(stop <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	for {
		select {
		case <-stop:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		// 100ms timeout
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			return nil, nil // Timeout
		}

		rn, err := unix.Read(b.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}

		if rn == 0 {
			return nil, io.EOF
		}

		ret := make([]byte, rn)
		copy(ret, buf[:rn])
		return ret, nil
	}
}
