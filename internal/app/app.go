// Package app wires the backend supervisor into the main window lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/Paintersrp/deskshell/internal/backend"
	"github.com/Paintersrp/deskshell/internal/window"
)

// Supervisor is the part of the backend supervisor the application drives.
type Supervisor interface {
	OnStartup(ctx context.Context)
	OnCloseRequested()
	PID() (int, bool)
}

var _ Supervisor = (*backend.Supervisor)(nil)

// App is a single run of the shell: one setup phase, one window, one close.
type App struct {
	title      string
	window     window.Window
	supervisor Supervisor
}

// Option configures an App.
type Option func(*App)

// WithTitle sets the main window title.
func WithTitle(title string) Option {
	return func(a *App) {
		a.title = title
	}
}

// New constructs an application around win and sup.
func New(win window.Window, sup Supervisor, opts ...Option) *App {
	a := &App{window: win, supervisor: sup}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs setup, shows the window and blocks until it has closed. The
// backend never influences the returned error. The close hook runs on every
// exit path, including a window that fails to start.
func (a *App) Run(ctx context.Context) error {
	a.supervisor.OnStartup(ctx)
	defer a.supervisor.OnCloseRequested()

	if a.title != "" {
		a.window.SetTitle(a.title)
	}
	a.window.SetStatus(StatusLine(a.supervisor))

	if err := a.window.Run(ctx, a.supervisor.OnCloseRequested); err != nil {
		return err
	}
	return nil
}

// StatusLine describes the backend as it was after setup.
func StatusLine(sup Supervisor) string {
	if pid, ok := sup.PID(); ok {
		return fmt.Sprintf("Backend started (pid %d)", pid)
	}
	return "Demo mode: no backend available"
}
