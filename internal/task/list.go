package task

import "strings"

// Bounds is the inclusive range of valid 1-based indices of a List.
// An empty list has Upper < Lower.
type Bounds struct {
	Lower int
	Upper int
}

// Contains reports whether index lies within the bounds.
func (b Bounds) Contains(index int) bool {
	return b.Lower <= index && index <= b.Upper
}

// List is an ordered, index-addressable collection of tasks.
//
// Indices passed to Mark, Unmark, Remove and Task are 0-based and must
// already have been validated with IfValidIndexElse (which speaks 1-based).
// These methods do no bounds checking of their own.
type List struct {
	tasks []Task
}

// NewList creates a list holding a copy of tasks.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Size returns the number of tasks.
func (l *List) Size() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Task returns the task at the 0-based index.
func (l *List) Task(index int) Task {
	return l.tasks[index]
}

// IndexBounds returns the valid 1-based index range.
func (l *List) IndexBounds() Bounds {
	return Bounds{Lower: 1, Upper: len(l.tasks)}
}

// IfValidIndexElse calls onValid with index when 1 <= index <= Size(), and
// onInvalid with index otherwise.
func (l *List) IfValidIndexElse(index int, onValid, onInvalid func(int)) {
	if l.IndexBounds().Contains(index) {
		onValid(index)
		return
	}
	onInvalid(index)
}

// Add appends t.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Mark sets the task at the 0-based index as done.
func (l *List) Mark(index int) {
	l.tasks[index].Done = true
}

// Unmark clears the done flag of the task at the 0-based index.
func (l *List) Unmark(index int) {
	l.tasks[index].Done = false
}

// Remove deletes and returns the task at the 0-based index.
func (l *List) Remove(index int) Task {
	removed := l.tasks[index]
	l.tasks = append(l.tasks[:index:index], l.tasks[index+1:]...)
	return removed
}

// Find returns a new list of the tasks whose description contains query.
// Matching is case-sensitive and an empty query matches every task.
func (l *List) Find(query string) *List {
	found := &List{}
	for _, t := range l.tasks {
		if strings.Contains(t.Description, query) {
			found.tasks = append(found.tasks, t)
		}
	}
	return found
}
