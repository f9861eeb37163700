package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "popup-menu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	dispatchID   string
)

type entry struct {
	Time     time.Time   `json:"time"`
	Event    string      `json:"event"`
	Dispatch string      `json:"dispatch,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

// SetDispatch tags every following entry with the id of the key dispatch
// being handled. An empty id ends the dispatch.
func SetDispatch(id string) {
	mu.Lock()
	dispatchID = id
	mu.Unlock()
}

// Error writes errors to the shared log file, prefixed with the current
// dispatch id when there is one.
func Error(err error) {
	if err == nil {
		return
	}
	path, _, dispatch := current()
	line := err.Error()
	if dispatch != "" {
		line = fmt.Sprintf("[dispatch %s] %s", dispatch, line)
	}
	appendTo(path, "logging failed", func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Println(line)
		return nil
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	path, enabled, dispatch := current()
	if !enabled {
		return
	}
	e := entry{
		Time:     time.Now().UTC(),
		Event:    event,
		Dispatch: dispatch,
		Payload:  payload,
	}
	appendTo(path, "trace logging failed", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(e)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
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

func current() (path string, trace bool, dispatch string) {
	mu.Lock()
	defer mu.Unlock()
	return logPath, traceEnabled, dispatchID
}

func appendTo(path, failure string, write func(io.Writer) error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure, err)
	}
}
