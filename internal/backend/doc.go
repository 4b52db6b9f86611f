// Package backend supervises the optional companion process that ships next to
// the shell binary.
//
// The supervisor knows nothing about the backend beyond its process identifier.
// It spawns the executable once during application setup and issues a single
// forceful kill when the main window is closed. Spawn and kill failures are
// absorbed: the shell keeps running without a backend. There is no readiness
// signal, no health checking and no restart.
//
// Termination only targets the direct child. On every platform the kill is
// delivered to the backend process itself; grandchildren it may have started
// are not tracked.
package backend
