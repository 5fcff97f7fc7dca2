// keyprobe opens the terminal in raw mode and dumps every parsed
// input event. Useful for checking what byte sequences a terminal
// emulator actually sends.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/termio/termio/terminal"
	"github.com/termio/termio/textwidth"
)

func main() {
	mouse := flag.Bool("mouse", false, "enable SGR mouse reporting")
	width := flag.Bool("width", false, "show display width of typed characters")
	verbose := flag.Bool("v", false, "log session lifecycle to stderr")
	flag.Parse()

	if *verbose {
		terminal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	s, err := terminal.Open(terminal.ModeRaw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyprobe: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyRestore(os.Stdout)
			panic(r)
		}
	}()

	if *mouse {
		s.EnableMouse(terminal.MouseModeClick | terminal.MouseModeDrag)
	}

	size := s.Size()
	s.WriteString(fmt.Sprintf("terminal %dx%d; press q or ctrl_c to quit\r\n", size.Width, size.Height))

	for batch := range s.Events() {
		for _, ev := range batch {
			switch {
			case ev.Type == terminal.EventError:
				s.WriteString(fmt.Sprintf("read error: %v\r\n", ev.Err))
				return
			case ev.Type == terminal.EventUnrecognized:
				s.WriteString(fmt.Sprintf("%s %q\r\n", ev, ev.Raw))
			case *width && ev.Type == terminal.EventKey && ev.Key == terminal.KeyRune:
				s.WriteString(fmt.Sprintf("%s (width %d)\r\n", ev, textwidth.Rune(ev.Rune)))
			default:
				s.WriteString(fmt.Sprintf("%s\r\n", ev))
			}

			if ev.Type == terminal.EventKey &&
				(ev.Key == terminal.KeyCtrlC || (ev.Key == terminal.KeyRune && ev.Rune == 'q')) {
				return
			}
		}
	}
}
