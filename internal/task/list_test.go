package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todos(descriptions ...string) []Task {
	out := make([]Task, len(descriptions))
	for i, d := range descriptions {
		out[i] = newTask(KindTodo, d)
	}
	return out
}

func TestIfValidIndexElse(t *testing.T) {
	for size := 0; size <= 4; size++ {
		l := NewList(todos(make([]string, size)...)...)
		bounds := l.IndexBounds()
		require.Equal(t, Bounds{Lower: 1, Upper: size}, bounds)

		for n := -2; n <= size+2; n++ {
			var valid, invalid []int
			l.IfValidIndexElse(n,
				func(i int) { valid = append(valid, i) },
				func(i int) { invalid = append(invalid, i) },
			)
			if n >= 1 && n <= size {
				assert.Equal(t, []int{n}, valid, "size %d index %d", size, n)
				assert.Empty(t, invalid)
			} else {
				assert.Empty(t, valid, "size %d index %d", size, n)
				assert.Equal(t, []int{n}, invalid)
			}
		}
	}
}

func TestMarkAndUnmark(t *testing.T) {
	l := NewList(todos("a", "b")...)

	l.Mark(1)
	assert.False(t, l.Task(0).Done)
	assert.True(t, l.Task(1).Done)

	l.Unmark(1)
	assert.False(t, l.Task(1).Done)
}

func TestAddThenRemoveRestoresList(t *testing.T) {
	l := NewList(todos("a", "b", "c")...)
	before := l.Tasks()

	extra := newTask(KindTodo, "d")
	l.Add(extra)
	require.Equal(t, 4, l.Size())

	removed := l.Remove(3)
	assert.Equal(t, extra, removed)
	assert.Equal(t, before, l.Tasks())
}

func TestRemoveMiddle(t *testing.T) {
	l := NewList(todos("a", "b", "c")...)
	snapshot := l.Tasks()

	removed := l.Remove(1)

	assert.Equal(t, "b", removed.Description)
	assert.Equal(t, []string{"a", "c"}, descriptions(l))
	assert.Equal(t, "c", snapshot[2].Description, "earlier copies are unaffected")
}

func TestFind(t *testing.T) {
	l := NewList(todos("buy milk", "walk dog", "milk the cow", "Milkshake")...)
	before := l.Tasks()

	found := l.Find("milk")

	assert.Equal(t, []string{"buy milk", "milk the cow"}, descriptions(found))
	assert.Equal(t, before, l.Tasks())
}

func TestFindIsCaseSensitive(t *testing.T) {
	l := NewList(todos("Milk", "milk")...)

	assert.Equal(t, []string{"Milk"}, descriptions(l.Find("Milk")))
	assert.Empty(t, descriptions(l.Find("MILK")))
}

func TestFindEmptyQueryMatchesAll(t *testing.T) {
	l := NewList(todos("buy milk", "walk dog")...)

	assert.Equal(t, []string{"buy milk", "walk dog"}, descriptions(l.Find("")))
}

func TestTasksReturnsCopy(t *testing.T) {
	l := NewList(todos("a")...)
	tasks := l.Tasks()
	tasks[0].Description = "changed"

	assert.Equal(t, "a", l.Task(0).Description)
}

func descriptions(l *List) []string {
	var out []string
	for _, t := range l.Tasks() {
		out = append(out, t.Description)
	}
	return out
}
