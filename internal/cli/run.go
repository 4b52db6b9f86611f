package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/deskshell/internal/app"
	"github.com/Paintersrp/deskshell/internal/backend"
	"github.com/Paintersrp/deskshell/internal/cliutil"
	"github.com/Paintersrp/deskshell/internal/window"
)

const eventBuffer = 16

func newRunCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the shell window and start the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, ctx)
		},
	}
}

func runShell(cmd *cobra.Command, ctx *context) error {
	cfg, err := ctx.loadConfig(cmd)
	if err != nil {
		return err
	}

	events, closeLog, err := openEventLog(cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []backend.Option{backend.WithDisabled(cfg.Backend.Disabled)}
	if events != nil {
		opts = append(opts, backend.WithEvents(events))
	}
	sup := backend.New(cfg.Launcher(), opts...)

	win := newWindow(cmd, ctx.headless)
	return app.New(win, sup, app.WithTitle(cfg.Window.Title)).Run(cmd.Context())
}

func newWindow(cmd *cobra.Command, headless bool) window.Window {
	if headless || !supportsInteractiveOutput(cmd) {
		return window.NewHeadless(cmd.ErrOrStderr())
	}
	return window.NewTerminal()
}

func supportsInteractiveOutput(cmd *cobra.Command) bool {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}

// openEventLog starts a writer that encodes supervisor events to path. With an
// empty path no channel is returned and events are not recorded at all.
func openEventLog(path string, stderr io.Writer) (chan backend.Event, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	events := make(chan backend.Event, eventBuffer)
	enc := json.NewEncoder(f)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for evt := range events {
			cliutil.EncodeLogEvent(enc, stderr, evt)
		}
	}()

	var once sync.Once
	closeLog := func() {
		once.Do(func() {
			close(events)
			wg.Wait()
			if err := f.Close(); err != nil {
				fmt.Fprintf(stderr, "error: close log: %v\n", err)
			}
		})
	}
	return events, closeLog, nil
}
