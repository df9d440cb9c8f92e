// Package task provides the task model, its factories and the task list.
package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a task.
type Kind string

const (
	KindTodo     Kind = "todo"
	KindDeadline Kind = "deadline"
	KindEvent    Kind = "event"
)

// IsValid checks if the kind is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindTodo, KindDeadline, KindEvent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Tag returns the one-letter tag used when rendering the kind.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid task kind: %q", s)
	}
	return k, nil
}

// Task is a single entry of the task list. Time fields are only meaningful
// for the kinds that use them: By for deadlines, From and To for events.
type Task struct {
	ID          string
	Kind        Kind
	Description string
	Done        bool
	By          time.Time
	From        time.Time
	To          time.Time
}

func newTask(kind Kind, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Kind:        kind,
		Description: description,
	}
}

// Validate checks the invariants a stored task must hold.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("invalid task kind: %q", t.Kind)
	}
	if t.Description == "" {
		return fmt.Errorf("task description cannot be empty")
	}
	switch t.Kind {
	case KindDeadline:
		if t.By.IsZero() {
			return fmt.Errorf("deadline %s has no due date", t.ID)
		}
	case KindEvent:
		if t.From.IsZero() || t.To.IsZero() {
			return fmt.Errorf("event %s needs both start and end", t.ID)
		}
	}
	return nil
}

// StatusMark returns "X" for a completed task and a space otherwise.
func (t Task) StatusMark() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task with the default date layout.
func (t Task) String() string {
	return t.Format(DisplayLayout)
}

// Format renders the task as "[K][X] description (details)" using layout for
// dates. A time of day is appended when one was given.
func (t Task) Format(layout string) string {
	s := fmt.Sprintf("[%s][%s] %s", t.Kind.Tag(), t.StatusMark(), t.Description)
	switch t.Kind {
	case KindDeadline:
		s += fmt.Sprintf(" (by: %s)", FormatDate(t.By, layout))
	case KindEvent:
		s += fmt.Sprintf(" (from: %s to: %s)", FormatDate(t.From, layout), FormatDate(t.To, layout))
	}
	return s
}
