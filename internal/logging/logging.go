package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tmux-popup-menu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile

	// openLog is replaced in tests to capture output.
	openLog = func(path string) (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}
)

type entry struct {
	Time    time.Time   `json:"time"`
	Level   string      `json:"level"`
	Event   string      `json:"event,omitempty"`
	Error   string      `json:"error,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Error records err regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	write(entry{Time: time.Now().UTC(), Level: "error", Error: err.Error()})
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(entry{Time: time.Now().UTC(), Level: "trace", Event: event, Payload: payload})
}

func write(e entry) {
	mu.Lock()
	defer mu.Unlock()
	f, err := openLog(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "log encoding failed: %v\n", err)
	}
}
