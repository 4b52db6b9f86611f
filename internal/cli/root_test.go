package cli

import (
	"bufio"
	"bytes"
	stdcontext "context"
	"encoding/json"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/deskshell/internal/cliutil"
)

func executeRoot(t *testing.T, ctx stdcontext.Context, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func cancelledContext() stdcontext.Context {
	ctx, cancel := stdcontext.WithCancel(stdcontext.Background())
	cancel()
	return ctx
}

// closingContext stays open long enough for setup to spawn the backend and
// then acts as the close request for a headless window.
func closingContext(t *testing.T) stdcontext.Context {
	t.Helper()
	ctx, cancel := stdcontext.WithTimeout(stdcontext.Background(), 200*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func readLogRecords(t *testing.T, path string) []cliutil.LogRecord {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var records []cliutil.LogRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record cliutil.LogRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log: %v", err)
	}
	return records
}

func recordEvents(records []cliutil.LogRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Event)
	}
	return out
}

func TestRootFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskshell.yaml")
	if err := os.WriteFile(path, []byte("backend:\n  name: companion\nlog:\n  file: from-file.jsonl\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd, ctx := newRootCommand()
	if err := cmd.PersistentFlags().Set("config", path); err != nil {
		t.Fatalf("set config flag: %v", err)
	}
	if err := cmd.PersistentFlags().Set("backend", "/opt/backend"); err != nil {
		t.Fatalf("set backend flag: %v", err)
	}
	if err := cmd.PersistentFlags().Set("log-file", "/tmp/override.jsonl"); err != nil {
		t.Fatalf("set log-file flag: %v", err)
	}
	if err := cmd.PersistentFlags().Set("no-backend", "true"); err != nil {
		t.Fatalf("set no-backend flag: %v", err)
	}

	cfg, err := ctx.loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend.Path != "/opt/backend" || cfg.Backend.Name != "" {
		t.Fatalf("expected flag backend path, got name=%q path=%q", cfg.Backend.Name, cfg.Backend.Path)
	}
	if cfg.Log.File != "/tmp/override.jsonl" {
		t.Fatalf("expected flag log file, got %q", cfg.Log.File)
	}
	if !cfg.Backend.Disabled {
		t.Fatalf("expected backend disabled by flag")
	}
}

func TestRootExplicitMissingConfigFails(t *testing.T) {
	_, _, err := executeRoot(t, cancelledContext(), "--headless", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "open config file") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

func TestRunWithoutBackendLogsNoop(t *testing.T) {
	testChdir(t, t.TempDir())
	logPath := filepath.Join(t.TempDir(), "logs", "events.jsonl")

	_, stderr, err := executeRoot(t, closingContext(t), "run", "--headless", "--no-backend", "--log-file", logPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "Demo mode") {
		t.Fatalf("expected demo mode status, got %q", stderr)
	}

	events := recordEvents(readLogRecords(t, logPath))
	if len(events) != 2 || events[0] != "spawn_failed" || events[1] != "close_noop" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestRunStartsAndKillsBackend(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("backend process tests skipped on windows")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "server")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755); err != nil {
		t.Fatalf("write backend script: %v", err)
	}
	logPath := filepath.Join(dir, "events.jsonl")

	_, stderr, err := executeRoot(t, closingContext(t), "--headless", "--backend", script, "--log-file", logPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "Backend started (pid ") {
		t.Fatalf("expected backend status, got %q", stderr)
	}

	records := readLogRecords(t, logPath)
	events := recordEvents(records)
	if len(events) != 2 || events[0] != "spawned" || events[1] != "kill_issued" {
		t.Fatalf("unexpected events %v", events)
	}
	if records[0].PID == 0 || records[0].PID != records[1].PID {
		t.Fatalf("expected kill for spawned pid, got %d and %d", records[0].PID, records[1].PID)
	}
}

func TestLocateReportsResolution(t *testing.T) {
	out, _, err := executeRoot(t, stdcontext.Background(), "locate", "--no-backend")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if strings.TrimSpace(out) != "disabled" {
		t.Fatalf("expected disabled, got %q", out)
	}

	out, _, err = executeRoot(t, stdcontext.Background(), "locate", "--backend", filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if !strings.HasPrefix(out, "not found:") {
		t.Fatalf("expected not found, got %q", out)
	}
}
