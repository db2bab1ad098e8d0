// Package colors prints colored console messages and mirrors them to the
// structured logger when one is set.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("VIEWSTACK_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success output. Warnings and errors still print.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutputWriters redirects console output. Used by tests and by the demo,
// which owns the terminal while it runs.
func SetOutputWriters(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout, stderr = out, errOut
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func emit(lvl level, toStderr bool, format string, msgs []string, logArgs ...any) {
	msg := strings.Join(msgs, " ")

	mu.RLock()
	l, w, isQuiet := logger, stdout, quiet
	if toStderr {
		w = stderr
	}
	mu.RUnlock()

	if l != nil {
		switch lvl {
		case levelDebug:
			l.Debug(msg, logArgs...)
		case levelInfo:
			l.Info(msg, logArgs...)
		case levelWarn:
			l.Warn(msg, logArgs...)
		case levelError:
			l.Error(msg, logArgs...)
		}
	}
	if isQuiet && lvl == levelInfo && !toStderr {
		return
	}
	if _, err := fmt.Fprintf(w, format, msg); err != nil && lvl != levelError {
		// Last resort; the configured writer is broken.
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(levelError, true, Red+"Error:"+Reset+" %s"+Reset+"\n", msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(levelWarn, true, Yellow+"Warning:"+Reset+" %s"+Reset+"\n", msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(levelInfo, false, Green+checkmark+Reset+" %s"+Reset+"\n", msgs, "type", "success")
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(levelInfo, false, Blue+"%s"+Reset+"\n", msgs)
}

// LogInfo outputs an informational message to stderr.
func LogInfo(msgs ...string) {
	emit(levelInfo, true, Blue+"%s"+Reset+"\n", msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	emit(levelDebug, true, Cyan+"Debug:"+Reset+" %s"+Reset+"\n", msgs)
}
