// Package terminal provides direct cross-platform terminal access:
// raw/canonical mode lifecycle with guaranteed attribute restoration,
// a background input reader delivering parsed key and mouse events,
// and raw escape-sequence output.
//
// Input parsing is a chunk-invariant state machine over the terminal's
// byte stream: escape sequences split across reads decode identically
// to sequences arriving whole, and malformed input always degrades to
// Unrecognized events instead of failing.
//
// This package bypasses terminfo/termcap entirely. On Unix it speaks
// termios and xterm-compatible escape sequences; on Windows it enables
// virtual terminal input so the console delivers the same byte stream.
package terminal
