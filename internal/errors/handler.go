// Package errors routes user-facing messages to the active front end.
package errors

import (
	"sync"
)

// ErrorHandler is the sink for everything the assistant tells the user.
// The console prints it; the TUI keeps it for rendering.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
	// Plain emits undecorated text such as task listings.
	Plain(msg string)
}

// ColorOutput is the terminal writer a CLIHandler prints through.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
	Plain(msgs ...string)
}

// CLIHandler prints messages to stdout/stderr, one at a time.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a CLIHandler. Panics if colors is nil.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	if colors == nil {
		panic("NewCLIHandler: colors output dependency cannot be nil")
	}
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

func (h *CLIHandler) Plain(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Plain(msg)
}
