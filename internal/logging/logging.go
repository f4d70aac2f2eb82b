package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "pullmenu.log"

// Component tags every log entry with the subsystem that wrote it.
type Component string

const (
	App     Component = "app"
	UI      Component = "ui"
	Pull    Component = "pull"
	Region  Component = "region"
	Menu    Component = "menu"
	Store   Component = "store"
	Command Component = "command"
)

// Entry is one JSON line of the log file.
type Entry struct {
	Time      time.Time   `json:"time"`
	Level     string      `json:"level"`
	Component Component   `json:"component"`
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload,omitempty"`
}

const (
	levelError = "error"
	levelTrace = "trace"
)

type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
}

var out = &sink{path: defaultLogFile}

// Error records err for component c. Errors are written whether or not tracing
// is enabled.
func (c Component) Error(err error) {
	if err == nil {
		return
	}
	out.write(Entry{
		Level:     levelError,
		Component: c,
		Event:     "error",
		Payload:   map[string]string{"error": err.Error()},
	})
}

// Trace records a structured event for component c when tracing is enabled.
func (c Component) Trace(event string, payload interface{}) {
	out.write(Entry{Level: levelTrace, Component: c, Event: event, Payload: payload})
}

func (s *sink) write(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Level == levelTrace && !s.trace {
		return
	}
	e.Time = time.Now().UTC()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pullmenu: %s log unavailable: %v\n", e.Component, err)
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "pullmenu: encode %s.%s: %v\n", e.Component, e.Event, err)
	}
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	out.mu.Lock()
	out.trace = enabled
	out.mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.trace
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if strings.TrimSpace(path) == "" {
		out.path = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "pullmenu: unable to create log directory: %v\n", err)
		out.path = defaultLogFile
		return
	}
	out.path = path
}

// Path returns the current log destination.
func Path() string {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.path
}
