// Package colors provides color output utilities.
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
	debugEnabled = false
	quiet        = false
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("CATBOT_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses Info and Success output.
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

// SetOutput redirects console output. A nil writer restores the default.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout, stderr = os.Stdout, os.Stderr
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// emit writes one formatted line and mirrors it to the logger.
func emit(toErr bool, mirror func(Logger, string), format string, msgs []string) {
	msg := strings.Join(msgs, " ")
	mu.RLock()
	l, w := logger, stdout
	if toErr {
		w = stderr
	}
	mu.RUnlock()
	if l != nil {
		mirror(l, msg)
	}
	if _, err := fmt.Fprintf(w, format, msg); err != nil {
		// last resort, nothing else to report to
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(true, func(l Logger, m string) { l.Error(m) }, Red+"Error:"+Reset+" %s"+Reset+"\n", msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(true, func(l Logger, m string) { l.Warn(m) }, Yellow+"Warning:"+Reset+" %s"+Reset+"\n", msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	if isQuiet() {
		return
	}
	emit(false, func(l Logger, m string) { l.Info(m, "type", "success") }, Green+checkmark+Reset+" %s"+Reset+"\n", msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	if isQuiet() {
		return
	}
	emit(false, func(l Logger, m string) { l.Info(m) }, Blue+"%s"+Reset+"\n", msgs)
}

// Plain outputs a message to stdout without decoration.
func Plain(msgs ...string) {
	emit(false, func(l Logger, m string) { l.Debug(m) }, "%s\n", msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	emit(true, func(l Logger, m string) { l.Debug(m) }, Cyan+"Debug:"+Reset+" %s"+Reset+"\n", msgs)
}

func isQuiet() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}
