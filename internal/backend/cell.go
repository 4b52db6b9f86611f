package backend

import (
	"errors"
	"sync"
)

// ErrAlreadyTracking is returned by Cell.Store when a process is already held.
var ErrAlreadyTracking = errors.New("backend process already tracked")

// Cell holds at most one backend process. The only way to get a process out
// is Take, which empties the cell, so a stored process is handed out once.
type Cell struct {
	mu   sync.Mutex
	proc Process
}

// Store places p in the cell. It fails if the cell is already occupied and
// leaves the existing process in place.
func (c *Cell) Store(p Process) error {
	if p == nil {
		return errors.New("backend process must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.proc != nil {
		return ErrAlreadyTracking
	}
	c.proc = p
	return nil
}

// Take removes and returns the stored process. The second return value is
// false when the cell was empty.
func (c *Cell) Take() (Process, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.proc
	c.proc = nil
	return p, p != nil
}
