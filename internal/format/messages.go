package format

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/task"
)

// Banner is shown when a session starts.
const Banner = "" +
	"  ___   __  ____    ____   __  ____ \n" +
	" / __) / _\\(_  _)  (  _ \\ /  \\(_  _)\n" +
	"( (__ /    \\ )(     ) _ ((  O ) )(  \n" +
	" \\___)\\_/\\_/(__)   (____/ \\__/ (__) \n"

const (
	Greeting       = "Hiya! I'm"
	Farewell       = "Bye!"
	EmptyList      = "nothing here yet"
	invalidCommand = "idgi ;-;"
	invalidInteger = "that doesn't look like a number... number pls"
	emptyHint      = "please make sure these arguments are filled!"
	missingHint    = "please make sure to include them next time!"
)

// Added is the reply after a task is appended at a 1-based index.
func (f *Formatter) Added(index int, t task.Task) string {
	return fmt.Sprintf("Added: %d. %s", index, f.Task(t))
}

// Modified is the reply after a task at a 1-based index is marked or unmarked.
func (f *Formatter) Modified(index int, t task.Task) string {
	return fmt.Sprintf("%d. %s", index, f.Task(t))
}

// Deleted is the reply after a task is removed.
func (f *Formatter) Deleted(t task.Task) string {
	return "Deleted: " + f.Task(t)
}

// InvalidCommand is the reply for an unrecognised command line.
func InvalidCommand(string) string {
	return invalidCommand
}

// InvalidInteger is the reply for an argument that is not an integer.
func InvalidInteger(string) string {
	return invalidInteger
}

// InvalidIndex is the reply for an index outside bounds.
func InvalidIndex(_ int, bounds task.Bounds) string {
	if bounds.Upper < bounds.Lower {
		return "there are no tasks yet..."
	}
	return fmt.Sprintf("i expected a number from %d to %d...", bounds.Lower, bounds.Upper)
}

// ArgumentFailure returns one warning per parameter and an optional
// closing hint for the failure category.
func ArgumentFailure(state task.InvalidArgumentState, params *command.NamedParameterMap) (warnings []string, hint string) {
	for _, name := range params.Keys() {
		switch state {
		case task.ParameterEmpty:
			warnings = append(warnings, name+" is empty")
		case task.ParameterMissing:
			warnings = append(warnings, name+" is missing")
		case task.NotADate:
			value, _ := params.Get(name)
			warnings = append(warnings, fmt.Sprintf("%s is set to %q, which is not a date!", name, value))
		}
	}
	switch state {
	case task.ParameterEmpty:
		hint = emptyHint
	case task.ParameterMissing:
		hint = missingHint
	}
	return warnings, hint
}

// StorageFailure is the reply when the list could not be saved.
func StorageFailure(err error) string {
	return fmt.Sprintf("couldn't save your tasks (%v), they're still here until you quit", err)
}

// Help lists the command names.
func Help(names []string) string {
	return "i know: " + strings.Join(names, ", ")
}
