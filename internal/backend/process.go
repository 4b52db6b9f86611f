package backend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Process is a running backend as seen by the supervisor.
type Process interface {
	// PID returns the operating system process identifier.
	PID() int
	// Kill requests immediate termination. It does not wait for the
	// process to exit.
	Kill() error
}

// Handle is a backend started by a Launcher.
type Handle struct {
	path    string
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// PID returns the process identifier of the backend.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Path returns the executable the backend was started from.
func (h *Handle) Path() string {
	return h.path
}

// Kill sends a forceful termination request to the backend.
func (h *Handle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("kill backend %d: %w", h.PID(), err)
	}
	return nil
}

// Exited is closed once the backend has exited and been reaped.
func (h *Handle) Exited() <-chan struct{} {
	return h.done
}

// ExitErr reports how the backend exited. It is only meaningful after Exited
// is closed.
func (h *Handle) ExitErr() error {
	select {
	case <-h.done:
		return h.waitErr
	default:
		return nil
	}
}

// Launcher locates and starts the backend executable.
type Launcher struct {
	// Name is the executable base name. Empty means DefaultExecutable. On
	// Windows a missing extension is completed with ".exe".
	Name string
	// Path, when set, is used directly and no search is performed. A
	// relative path is taken relative to the working directory.
	Path string
	// Dirs are searched before PATH. Nil means the directory of the running
	// binary followed by the working directory.
	Dirs []string
}

// ErrNotFound reports that no backend executable could be located.
var ErrNotFound = errors.New("backend executable not found")

func (l Launcher) executableName() string {
	if l.Name == "" {
		return DefaultExecutable
	}
	return platformExecutable(l.Name)
}

// Resolve returns the path the backend would be started from.
func (l Launcher) Resolve() (string, error) {
	if l.Path != "" {
		// Absolute so exec.Command starts the file that was checked instead
		// of searching PATH for a bare name.
		path, err := filepath.Abs(l.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		if err := checkExecutable(path); err != nil {
			return "", err
		}
		return path, nil
	}

	name := l.executableName()
	dirs := l.Dirs
	if dirs == nil {
		dirs = defaultSearchDirs()
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if checkExecutable(candidate) == nil {
			return candidate, nil
		}
	}

	// Relative hits from PATH are rejected; the working directory has
	// already been searched explicitly above when it was requested.
	path, err := exec.LookPath(name)
	if err != nil || !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// Spawn starts the backend with no arguments, the inherited environment, no
// stdin and stdout/stderr attached to the null device.
func (l Launcher) Spawn(ctx context.Context) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	// Not bound to ctx: the backend outlives setup and only Kill stops it.
	cmd := exec.Command(path)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	configureCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start backend %s: %w", path, err)
	}

	h := &Handle{
		path: path,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if !isExecutable(info) {
		return fmt.Errorf("%w: %s is not an executable file", ErrNotFound, path)
	}
	return nil
}

func defaultSearchDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}
