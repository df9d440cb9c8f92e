// Package format renders tasks and assistant replies as text.
package format

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/catbot/internal/task"
)

// Formatter renders tasks with a fixed date layout.
type Formatter struct {
	layout string
}

// New creates a Formatter. An empty layout falls back to task.DisplayLayout.
func New(layout string) *Formatter {
	if layout == "" {
		layout = task.DisplayLayout
	}
	return &Formatter{layout: layout}
}

// Layout returns the date layout in use.
func (f *Formatter) Layout() string {
	return f.layout
}

// IndexWidth is the number of digits in n, so that indices up to n line up.
func IndexWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return len(strconv.Itoa(n))
}

// Task renders a single task without an index.
func (f *Formatter) Task(t task.Task) string {
	return t.Format(f.layout)
}

// Line renders "<index>. <task>" with the index right-aligned to width.
func (f *Formatter) Line(index, width int, t task.Task) string {
	return fmt.Sprintf("%*d. %s", width, index, f.Task(t))
}

// List renders every task on its own line, numbered from 1.
func (f *Formatter) List(list *task.List) []string {
	return f.Numbered(list.Tasks())
}

// Numbered renders tasks numbered from 1 in the given order.
func (f *Formatter) Numbered(tasks []task.Task) []string {
	width := IndexWidth(len(tasks))
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, f.Line(i+1, width, t))
	}
	return lines
}
