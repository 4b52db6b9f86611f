package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrSpawnFailed wraps every reason the backend could not be started.
	ErrSpawnFailed = errors.New("backend spawn failed")
	// ErrTerminateFailed wraps a rejected kill request.
	ErrTerminateFailed = errors.New("backend termination failed")
)

// State is the supervisor's position in its per-run lifecycle.
type State string

const (
	StateInit           State = "init"
	StateSpawnAttempted State = "spawn_attempted"
	StateTracking       State = "tracking"
	StateNoBackend      State = "no_backend"
	StateTerminated     State = "terminated"
)

// EventType identifies a supervisor lifecycle notification.
type EventType string

const (
	EventTypeSpawned     EventType = "spawned"
	EventTypeSpawnFailed EventType = "spawn_failed"
	EventTypeKillIssued  EventType = "kill_issued"
	EventTypeKillFailed  EventType = "kill_failed"
	EventTypeCloseNoop   EventType = "close_noop"
)

// Event is a single supervisor notification. Events are informational only;
// nothing in the supervisor depends on them being consumed.
type Event struct {
	Timestamp time.Time
	Type      EventType
	PID       int
	Message   string
	Err       error
}

// SpawnFunc starts a backend process.
type SpawnFunc func(ctx context.Context) (Process, error)

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithEvents delivers lifecycle events to ch. Sends never block: events are
// dropped when ch is full.
func WithEvents(ch chan<- Event) Option {
	return func(s *Supervisor) {
		s.events = ch
	}
}

// WithSpawnFunc replaces the launcher used to start the backend.
func WithSpawnFunc(fn SpawnFunc) Option {
	return func(s *Supervisor) {
		if fn != nil {
			s.spawn = fn
		}
	}
}

// WithDisabled makes startup skip the spawn attempt entirely.
func WithDisabled(disabled bool) Option {
	return func(s *Supervisor) {
		s.disabled = disabled
	}
}

// Supervisor owns the spawn-and-terminate lifecycle of the backend.
type Supervisor struct {
	spawn    SpawnFunc
	events   chan<- Event
	disabled bool

	mu    sync.Mutex
	state State
	pid   int
	cell  Cell
}

// New constructs a supervisor that starts the backend with launcher.
func New(launcher Launcher, opts ...Option) *Supervisor {
	s := &Supervisor{
		spawn: func(ctx context.Context) (Process, error) {
			h, err := launcher.Spawn(ctx)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
		state: StateInit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PID returns the identifier of the backend started during setup, if any. It
// keeps reporting the identifier after termination.
func (s *Supervisor) PID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pid, s.pid != 0
}

// OnStartup attempts to spawn the backend once. Failure leaves the shell in
// the no-backend state and is never returned to the caller.
func (s *Supervisor) OnStartup(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateInit {
		s.mu.Unlock()
		return
	}
	s.state = StateSpawnAttempted
	disabled := s.disabled
	s.mu.Unlock()

	if disabled {
		s.finishStartup(nil, fmt.Errorf("%w: backend disabled", ErrSpawnFailed))
		return
	}

	proc, err := s.spawn(ctx)
	if err == nil && proc == nil {
		err = errors.New("spawn returned no process")
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	s.finishStartup(proc, err)
}

func (s *Supervisor) finishStartup(proc Process, spawnErr error) {
	s.mu.Lock()
	if spawnErr != nil {
		if s.state == StateSpawnAttempted {
			s.state = StateNoBackend
		}
		s.mu.Unlock()
		s.emit(EventTypeSpawnFailed, 0, "running without backend", spawnErr)
		return
	}

	pid := proc.PID()
	s.pid = pid
	if s.state == StateTerminated {
		// Close arrived while the spawn was in flight; this is the one
		// termination attempt for this process.
		s.mu.Unlock()
		s.emit(EventTypeSpawned, pid, "backend started", nil)
		s.kill(proc)
		return
	}
	if err := s.cell.Store(proc); err != nil {
		s.mu.Unlock()
		s.emit(EventTypeSpawnFailed, pid, "backend already tracked", err)
		s.kill(proc)
		return
	}
	s.state = StateTracking
	s.mu.Unlock()
	s.emit(EventTypeSpawned, pid, "backend started", nil)
}

// OnCloseRequested takes the tracked backend, if any, and issues a forceful
// kill without waiting for it to exit. Later calls find nothing to take and do
// nothing.
func (s *Supervisor) OnCloseRequested() {
	s.mu.Lock()
	proc, ok := s.cell.Take()
	prev := s.state
	s.state = StateTerminated
	s.mu.Unlock()

	if !ok {
		if prev != StateTerminated {
			s.emit(EventTypeCloseNoop, 0, "no backend tracked", nil)
		}
		return
	}
	s.kill(proc)
}

func (s *Supervisor) kill(proc Process) {
	pid := proc.PID()
	if err := proc.Kill(); err != nil {
		s.emit(EventTypeKillFailed, pid, "kill request rejected", fmt.Errorf("%w: %w", ErrTerminateFailed, err))
		return
	}
	s.emit(EventTypeKillIssued, pid, "kill requested", nil)
}

func (s *Supervisor) emit(t EventType, pid int, message string, err error) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- Event{
		Timestamp: time.Now(),
		Type:      t,
		PID:       pid,
		Message:   message,
		Err:       err,
	}:
	default:
	}
}
