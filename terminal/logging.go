package terminal

import "log/slog"

// logger discards until SetLogger is called.
var logger = slog.New(slog.DiscardHandler)

// SetLogger routes this package's debug logging (session lifecycle,
// swallowed write errors, reader termination) to l.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
