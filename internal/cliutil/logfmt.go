package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Paintersrp/deskshell/internal/backend"
)

// LogRecord represents a structured supervisor event ready for JSON encoding.
type LogRecord struct {
	Timestamp time.Time `json:"ts"`
	Component string    `json:"component"`
	Event     string    `json:"event"`
	Level     string    `json:"level"`
	PID       int       `json:"pid,omitempty"`
	Message   string    `json:"msg"`
	Error     string    `json:"error,omitempty"`
}

const supervisorComponent = "backend"

// NewLogRecord converts a supervisor event into a structured log record.
func NewLogRecord(event backend.Event) LogRecord {
	record := LogRecord{
		Timestamp: event.Timestamp,
		Component: supervisorComponent,
		Event:     string(event.Type),
		Level:     levelFor(event.Type),
		PID:       event.PID,
		Message:   RedactSecrets(event.Message),
	}
	if event.Err != nil {
		record.Error = RedactSecrets(event.Err.Error())
	}
	return record
}

func levelFor(t backend.EventType) string {
	switch t {
	case backend.EventTypeSpawnFailed, backend.EventTypeKillFailed:
		return "warn"
	default:
		return "info"
	}
}

// EncodeLogEvent encodes a supervisor event to JSON, reporting errors to stderr if needed.
func EncodeLogEvent(enc *json.Encoder, stderr io.Writer, event backend.Event) {
	if enc == nil {
		return
	}
	record := NewLogRecord(event)
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := enc.Encode(&record); err != nil {
		fmt.Fprintf(stderr, "error: encode log: %v\n", err)
	}
}
