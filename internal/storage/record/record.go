// Package record is the flat, serialisable form of a task shared by every
// storage backend and the export command.
package record

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/catbot/internal/task"
)

// Record is a task with its dates rendered in task.StorageLayout. Unused
// dates are empty.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Kind        string `json:"kind" yaml:"kind"`
	Done        bool   `json:"done" yaml:"done"`
	Description string `json:"description" yaml:"description"`
	By          string `json:"by,omitempty" yaml:"by,omitempty"`
	From        string `json:"from,omitempty" yaml:"from,omitempty"`
	To          string `json:"to,omitempty" yaml:"to,omitempty"`
}

// FromTask flattens t.
func FromTask(t task.Task) Record {
	return Record{
		ID:          t.ID,
		Kind:        t.Kind.String(),
		Done:        t.Done,
		Description: t.Description,
		By:          formatTime(t.By),
		From:        formatTime(t.From),
		To:          formatTime(t.To),
	}
}

// FromTasks flattens tasks, keeping their order.
func FromTasks(tasks []task.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, FromTask(t))
	}
	return records
}

// Task rebuilds and validates the task.
func (r Record) Task() (task.Task, error) {
	kind, err := task.ParseKind(r.Kind)
	if err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		ID:          r.ID,
		Kind:        kind,
		Done:        r.Done,
		Description: r.Description,
	}
	if t.By, err = parseTime("by", r.By); err != nil {
		return task.Task{}, err
	}
	if t.From, err = parseTime("from", r.From); err != nil {
		return task.Task{}, err
	}
	if t.To, err = parseTime("to", r.To); err != nil {
		return task.Task{}, err
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// ToTasks rebuilds every record. The first invalid record aborts with its
// position in the error.
func ToTasks(records []Record) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(records))
	for i, r := range records {
		t, err := r.Task()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(task.StorageLayout)
}

func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(task.StorageLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: %w", field, value, err)
	}
	return t.In(time.Local), nil
}
