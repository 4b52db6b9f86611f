// Package window provides the main window the shell runs in.
//
// A window has exactly one externally observable lifecycle event, the close
// request. Everything the shell does on shutdown hangs off that callback.
package window

import "context"

// CloseFunc is invoked whenever the user asks the window to close. It runs
// before the window goes away and may be invoked more than once.
type CloseFunc func()

// Window is the main application window.
type Window interface {
	// SetTitle sets the window title.
	SetTitle(title string)
	// SetStatus replaces the status text shown in the window body.
	SetStatus(status string)
	// Run shows the window and blocks until it has closed. Cancelling ctx
	// counts as a close request.
	Run(ctx context.Context, onClose CloseFunc) error
}
