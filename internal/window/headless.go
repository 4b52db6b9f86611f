package window

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Headless is a window without a surface, used when no interactive terminal
// is attached. Its only close trigger is cancellation of the Run context.
type Headless struct {
	out io.Writer

	mu     sync.Mutex
	title  string
	status string
}

// NewHeadless constructs a headless window that reports its status to out.
// A nil out discards the status.
func NewHeadless(out io.Writer) *Headless {
	if out == nil {
		out = io.Discard
	}
	return &Headless{out: out}
}

// SetTitle sets the prefix of the status line.
func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

// SetStatus sets the status line printed when Run starts.
func (h *Headless) SetStatus(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = status
}

// Run prints the status line and blocks until ctx is done, then requests
// close exactly once.
func (h *Headless) Run(ctx context.Context, onClose CloseFunc) error {
	h.mu.Lock()
	title, status := h.title, h.status
	h.mu.Unlock()

	if title != "" {
		fmt.Fprintf(h.out, "%s: %s\n", title, status)
	} else if status != "" {
		fmt.Fprintln(h.out, status)
	}

	<-ctx.Done()
	if onClose != nil {
		onClose()
	}
	return nil
}
