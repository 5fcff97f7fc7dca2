package terminal

import "errors"

// Session construction fails atomically with one of these sentinels in
// the error chain; test with errors.Is. Attribute changes already
// applied to the terminal are rolled back best-effort before the error
// is returned.
var (
	// ErrAttributeQuery: the initial terminal attribute query failed
	ErrAttributeQuery = errors.New("terminal attribute query failed")

	// ErrAttributeSet: applying the requested mode failed
	ErrAttributeSet = errors.New("terminal attribute set failed")

	// ErrSizeQuery: the window size query failed
	ErrSizeQuery = errors.New("terminal size query failed")

	// ErrInvalidSize: the window size query reported a zero dimension
	ErrInvalidSize = errors.New("terminal reported invalid size")
)
