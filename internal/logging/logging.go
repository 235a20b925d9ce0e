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
	"sync/atomic"
	"time"
)

const defaultLogFile = "tealoop.log"

var (
	mu      sync.Mutex
	logPath = defaultLogFile
	logFile *os.File
	logger  = log.New(io.Discard, "", log.LstdFlags|log.Lmicroseconds)

	traceEnabled atomic.Bool
)

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing. Any file opened
// for a previous destination is closed.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
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

// Close releases the log file. Later writes reopen it.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceEnabled.Store(enabled)
}

// TraceEnabled lets hot paths skip building payloads nobody will read.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if !openLocked() {
		return
	}
	logger.Println(err)
}

// Errorf formats and logs an error line.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !traceEnabled.Load() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	mu.Lock()
	defer mu.Unlock()
	if !openLocked() {
		return
	}
	if err := json.NewEncoder(logFile).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

func openLocked() bool {
	if logFile != nil {
		return true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	logFile = f
	logger.SetOutput(f)
	return true
}

func closeLocked() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
	logger.SetOutput(io.Discard)
}
