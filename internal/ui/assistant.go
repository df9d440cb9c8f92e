// Package ui implements the bot's user-facing side over an output handler.
package ui

import (
	"sync/atomic"

	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/errors"
	"github.com/cristianoliveira/catbot/internal/format"
	"github.com/cristianoliveira/catbot/internal/task"
)

// Assistant renders bot events as messages on an ErrorHandler. The console
// and the TUI share it and differ only in the handler.
type Assistant struct {
	out    errors.ErrorHandler
	format *format.Formatter
	closed atomic.Bool
}

var _ bot.UserIO = (*Assistant)(nil)

// NewAssistant creates an Assistant. Panics if out is nil; a nil formatter
// uses the default date layout.
func NewAssistant(out errors.ErrorHandler, f *format.Formatter) *Assistant {
	if out == nil {
		panic("NewAssistant: output handler dependency cannot be nil")
	}
	if f == nil {
		f = format.New("")
	}
	return &Assistant{out: out, format: f}
}

// Greet introduces the assistant.
func (a *Assistant) Greet() {
	a.out.Info(format.Greeting)
	a.out.Plain(format.Banner)
}

func (a *Assistant) DisplayTaskList(list *task.List) {
	lines := a.format.List(list)
	if len(lines) == 0 {
		a.out.Info(format.EmptyList)
		return
	}
	for _, line := range lines {
		a.out.Plain(line)
	}
}

func (a *Assistant) DisplayTaskAdded(list *task.List) {
	index := list.Size()
	a.out.Success(a.format.Added(index, list.Task(index-1)))
}

func (a *Assistant) DisplayTaskModified(list *task.List, index int) {
	a.out.Success(a.format.Modified(index, list.Task(index-1)))
}

func (a *Assistant) DisplayTaskDeleted(deleted task.Task) {
	a.out.Success(a.format.Deleted(deleted))
}

func (a *Assistant) DisplayHelp(commands []string) {
	a.out.Info(format.Help(commands))
}

func (a *Assistant) IndicateInvalidCommand(attempted string) {
	a.out.Warning(format.InvalidCommand(attempted))
}

func (a *Assistant) IndicateInvalidInteger(attempted string) {
	a.out.Warning(format.InvalidInteger(attempted))
}

func (a *Assistant) IndicateInvalidIndex(attempted int, bounds task.Bounds) {
	a.out.Warning(format.InvalidIndex(attempted, bounds))
}

func (a *Assistant) IndicateArgumentInvalid(state task.InvalidArgumentState, params *command.NamedParameterMap) {
	warnings, hint := format.ArgumentFailure(state, params)
	for _, w := range warnings {
		a.out.Warning(w)
	}
	if hint != "" {
		a.out.Info(hint)
	}
}

func (a *Assistant) IndicateStorageFailure(err error) {
	a.out.Error(format.StorageFailure(err))
}

// Cleanup says goodbye and closes the session.
func (a *Assistant) Cleanup() {
	if a.closed.Swap(true) {
		return
	}
	a.out.Info(format.Farewell)
}

func (a *Assistant) IsStillOpen() bool {
	return !a.closed.Load()
}
