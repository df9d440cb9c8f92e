package bot

import (
	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/task"
)

// TaskAssistantIO renders the results of successful commands.
type TaskAssistantIO interface {
	DisplayTaskList(list *task.List)
	DisplayTaskAdded(list *task.List)
	// DisplayTaskModified renders the task at the 1-based index.
	DisplayTaskModified(list *task.List, index int)
	DisplayTaskDeleted(deleted task.Task)
	DisplayHelp(commands []string)
}

// ErrorIndicatorIO reports user errors. None of them change the task list.
type ErrorIndicatorIO interface {
	IndicateInvalidCommand(attempted string)
	IndicateInvalidInteger(attempted string)
	IndicateInvalidIndex(attempted int, bounds task.Bounds)
	IndicateArgumentInvalid(state task.InvalidArgumentState, params *command.NamedParameterMap)
	IndicateStorageFailure(err error)
}

// UserIO is everything a front end provides to the bot.
type UserIO interface {
	TaskAssistantIO
	ErrorIndicatorIO
	// Cleanup ends the session.
	Cleanup()
	IsStillOpen() bool
}
