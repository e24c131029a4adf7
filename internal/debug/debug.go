// Package debug provides opt-in diagnostic logging for the build
// pipeline's phases, off by default and enabled either at build time
// (EnableDebug) or at runtime (the DEBUG environment variable).
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug can be set at build time:
// go build -ldflags "-X github.com/cppdep/cppdep/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var debugOutput io.Writer = os.Stderr
var debugFile *os.File
var debugMutex sync.Mutex

// SetDebugOutput sets a custom writer for debug output. Pass nil to
// disable debug output entirely.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// InitDebugLogFile initializes debug logging to a timestamped file
// under the OS temp directory and returns its path. Call CloseDebugLog
// when done.
func InitDebugLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "cppdep-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create debug log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02T150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugFile = file
	debugOutput = file
	return logPath, nil
}

// CloseDebugLog closes the debug log file if one is open.
func CloseDebugLog() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	if debugFile != nil {
		err := debugFile.Close()
		debugFile = nil
		debugOutput = nil
		return err
	}
	return nil
}

// IsDebugEnabled reports whether debug output is currently active.
func IsDebugEnabled() bool {
	if EnableDebug == "true" {
		return true
	}
	if v := os.Getenv("DEBUG"); v == "1" || v == "true" {
		return true
	}
	return false
}

func getDebugWriter() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOutput
}

// Printf prints debug information only when debug mode is enabled and
// output is configured.
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getDebugWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG] "+format, args...)
}

// Log provides structured debug logging tagged with a phase name.
func Log(phase, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := getDebugWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{phase}, args...)...)
}

// Warn prints a user-requested diagnostic (--warn-missing,
// --warn-malformed) unconditionally to stderr. Unlike Log/Printf, this
// is never gated by IsDebugEnabled: a warn flag is its own opt-in and
// must not also require --debug to produce output.
func Warn(phase, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[WARN:%s] "+format+"\n", append([]interface{}{phase}, args...)...)
}

// LogScan logs scanner-phase diagnostics.
func LogScan(format string, args ...interface{}) { Log("SCAN", format, args...) }

// LogAssign logs component-assignment diagnostics.
func LogAssign(format string, args ...interface{}) { Log("ASSIGN", format, args...) }

// LogResolve logs include-resolution diagnostics.
func LogResolve(format string, args ...interface{}) { Log("RESOLVE", format, args...) }

// LogPublicness logs publicness-propagation diagnostics.
func LogPublicness(format string, args ...interface{}) { Log("PUBLICNESS", format, args...) }

// LogClassify logs header-classification diagnostics.
func LogClassify(format string, args ...interface{}) { Log("CLASSIFY", format, args...) }

// Fatal formats a catastrophic error message, writes it to the debug
// log if one is configured, and returns it as an error for the caller
// to handle.
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if w := getDebugWriter(); w != nil {
		fmt.Fprintf(w, "[FATAL] %s\n", msg)
	}
	return fmt.Errorf("fatal error: %s", msg)
}
