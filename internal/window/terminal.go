package window

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const closeHint = "[gray]Press q or Esc to close[-]"

// TerminalOption configures a Terminal window.
type TerminalOption func(*Terminal)

// WithScreen makes the window draw on screen instead of the controlling
// terminal.
func WithScreen(screen tcell.Screen) TerminalOption {
	return func(t *Terminal) {
		t.screen = screen
	}
}

// Terminal is a full-screen window rendered with tview.
type Terminal struct {
	app    *tview.Application
	body   *tview.TextView
	screen tcell.Screen

	mu      sync.Mutex
	title   string
	status  string
	onClose CloseFunc
}

// NewTerminal constructs a terminal window.
func NewTerminal(opts ...TerminalOption) *Terminal {
	app := tview.NewApplication()
	body := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetWrap(true)
	body.SetBorder(true)

	t := &Terminal{app: app, body: body}
	for _, opt := range opts {
		opt(t)
	}
	if t.screen != nil {
		app.SetScreen(t.screen)
	}

	app.SetRoot(body, true)
	app.SetInputCapture(t.handleKey)
	t.render()
	return t
}

// SetTitle sets the border title.
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
	t.render()
}

// SetStatus replaces the body text.
func (t *Terminal) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
	t.render()
}

func (t *Terminal) render() {
	t.mu.Lock()
	title, status := t.title, t.status
	t.mu.Unlock()

	t.body.SetTitle(fmt.Sprintf(" %s ", tview.Escape(title)))
	t.body.SetText(fmt.Sprintf("\n%s\n\n%s", tview.Escape(status), closeHint))
}

// Run starts the tview event loop and blocks until the window closes.
func (t *Terminal) Run(ctx context.Context, onClose CloseFunc) error {
	t.mu.Lock()
	t.onClose = onClose
	t.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Routed through the event loop as Ctrl-C so the close hook
			// always runs on the loop goroutine. The event queue is
			// buffered and never blocks here.
			t.app.QueueEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))
		case <-done:
		}
	}()

	if err := t.app.Run(); err != nil {
		return fmt.Errorf("run terminal window: %w", err)
	}
	return nil
}

func (t *Terminal) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.requestClose()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' || event.Rune() == 'Q' {
			t.requestClose()
			return nil
		}
	}
	return event
}

func (t *Terminal) requestClose() {
	t.mu.Lock()
	onClose := t.onClose
	t.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	t.app.Stop()
}
