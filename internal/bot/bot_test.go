package bot

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingIO records every call as a short string.
type recordingIO struct {
	calls  []string
	closed bool
}

func (r *recordingIO) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingIO) DisplayTaskList(list *task.List) {
	var descs []string
	for _, t := range list.Tasks() {
		descs = append(descs, t.Description)
	}
	r.record("list %v", descs)
}

func (r *recordingIO) DisplayTaskAdded(list *task.List) {
	r.record("added %d %s", list.Size(), list.Task(list.Size()-1).Description)
}

func (r *recordingIO) DisplayTaskModified(list *task.List, index int) {
	r.record("modified %d %s", index, list.Task(index-1))
}

func (r *recordingIO) DisplayTaskDeleted(deleted task.Task) {
	r.record("deleted %s", deleted.Description)
}

func (r *recordingIO) DisplayHelp(commands []string) {
	r.record("help %v", commands)
}

func (r *recordingIO) IndicateInvalidCommand(attempted string) {
	r.record("invalid command %q", attempted)
}

func (r *recordingIO) IndicateInvalidInteger(attempted string) {
	r.record("invalid integer %q", attempted)
}

func (r *recordingIO) IndicateInvalidIndex(attempted int, bounds task.Bounds) {
	r.record("invalid index %d [%d,%d]", attempted, bounds.Lower, bounds.Upper)
}

func (r *recordingIO) IndicateArgumentInvalid(state task.InvalidArgumentState, params *command.NamedParameterMap) {
	r.record("invalid argument %s %v", state, params.Keys())
}

func (r *recordingIO) IndicateStorageFailure(err error) {
	r.record("storage failure")
}

func (r *recordingIO) Cleanup()          { r.closed = true }
func (r *recordingIO) IsStillOpen() bool { return !r.closed }

type memorySaver struct {
	saved [][]task.Task
	err   error
}

func (m *memorySaver) Save(tasks []task.Task) error {
	m.saved = append(m.saved, tasks)
	return m.err
}

func newTestBot(t *testing.T, saver Saver) (*Bot, *recordingIO) {
	t.Helper()
	io := &recordingIO{}
	b := New(task.NewList(), saver, nil)
	b.Initialize(io)
	return b, io
}

func TestTodoIsAddedAndListed(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("todo buy milk")
	b.RunLine("list")

	require.Equal(t, 1, b.TaskList().Size())
	added := b.TaskList().Task(0)
	assert.Equal(t, task.KindTodo, added.Kind)
	assert.Equal(t, "buy milk", added.Description)
	assert.False(t, added.Done)
	assert.Equal(t, []string{"added 1 buy milk", "list [buy milk]"}, io.calls)
}

func TestDeadlineValidation(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("deadline submit report /by 2024-01-01")
	require.Equal(t, 1, b.TaskList().Size())
	assert.Equal(t, "2024-01-01", b.TaskList().Task(0).By.Format("2006-01-02"))

	b.RunLine("deadline submit report")
	b.RunLine("deadline x /by ")
	b.RunLine("deadline x /by someday")

	assert.Equal(t, 1, b.TaskList().Size())
	assert.Equal(t, []string{
		"added 1 submit report",
		"invalid argument PARAMETER_MISSING [by]",
		"invalid argument PARAMETER_EMPTY [by]",
		"invalid argument NOT_A_DATE [by]",
	}, io.calls)
}

func TestEventReportsEachFailureCategory(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("event /from later")

	assert.Zero(t, b.TaskList().Size())
	assert.Equal(t, []string{
		"invalid argument PARAMETER_MISSING [to]",
		"invalid argument PARAMETER_EMPTY [description]",
		"invalid argument NOT_A_DATE [from]",
	}, io.calls)
}

func TestMarkIndexBounds(t *testing.T) {
	b, io := newTestBot(t, nil)
	b.RunLine("todo a")
	b.RunLine("todo b")
	io.calls = nil

	b.RunLine("mark 0")
	b.RunLine("mark 3")
	b.RunLine("mark x")
	b.RunLine("mark 1")

	assert.True(t, b.TaskList().Task(0).Done)
	assert.False(t, b.TaskList().Task(1).Done)
	assert.Equal(t, []string{
		"invalid index 0 [1,2]",
		"invalid index 3 [1,2]",
		`invalid integer "x"`,
		"modified 1 [T][X] a",
	}, io.calls)

	io.calls = nil
	b.RunLine("unmark 1")
	assert.False(t, b.TaskList().Task(0).Done)
	assert.Equal(t, []string{"modified 1 [T][ ] a"}, io.calls)
}

func TestMarkOnEmptyList(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("mark 1")

	assert.Equal(t, []string{"invalid index 1 [1,0]"}, io.calls)
}

func TestDelete(t *testing.T) {
	b, io := newTestBot(t, nil)
	b.RunLine("todo a")
	b.RunLine("todo b")
	io.calls = nil

	b.RunLine("delete 1")

	assert.Equal(t, []string{"deleted a"}, io.calls)
	require.Equal(t, 1, b.TaskList().Size())
	assert.Equal(t, "b", b.TaskList().Task(0).Description)
}

func TestFind(t *testing.T) {
	b, io := newTestBot(t, nil)
	b.RunLine("todo buy milk")
	b.RunLine("todo walk dog")
	io.calls = nil

	b.RunLine("find milk")
	b.RunLine("find")

	assert.Equal(t, []string{"list [buy milk]", "list [buy milk walk dog]"}, io.calls)
	assert.Equal(t, 2, b.TaskList().Size())
}

func TestUnknownCommand(t *testing.T) {
	b, io := newTestBot(t, nil)
	b.RunLine("todo a")
	names := b.Commands()
	io.calls = nil

	b.RunLine("dance wildly")

	assert.Equal(t, []string{`invalid command "dance wildly"`}, io.calls)
	assert.Equal(t, 1, b.TaskList().Size())
	assert.Equal(t, names, b.Commands())
}

func TestByeClosesSession(t *testing.T) {
	b, io := newTestBot(t, nil)
	require.True(t, io.IsStillOpen())

	b.RunLine("bye")

	assert.False(t, io.IsStillOpen())
}

func TestHelpListsCommands(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("help")

	require.Len(t, io.calls, 1)
	assert.Equal(t, "help [bye deadline delete event find help list mark todo unmark]", io.calls[0])
}

func TestBlankLineIsIgnored(t *testing.T) {
	b, io := newTestBot(t, nil)

	b.RunLine("   ")

	assert.Empty(t, io.calls)
}

func TestMutationsArePersisted(t *testing.T) {
	saver := &memorySaver{}
	b, _ := newTestBot(t, saver)

	b.RunLine("todo a")
	b.RunLine("mark 1")
	b.RunLine("mark 9")
	b.RunLine("list")
	b.RunLine("delete 1")

	require.Len(t, saver.saved, 3)
	assert.Len(t, saver.saved[0], 1)
	assert.True(t, saver.saved[1][0].Done)
	assert.Empty(t, saver.saved[2])
}

func TestPersistFailureIsReported(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	b, io := newTestBot(t, saver)

	b.RunLine("todo a")

	assert.Equal(t, 1, b.TaskList().Size())
	assert.Equal(t, []string{"storage failure", "added 1 a"}, io.calls)
}

func TestRunBeforeInitializePanics(t *testing.T) {
	b := New(task.NewList(), nil, nil)
	assert.Panics(t, func() { b.Run("list", "") })
}

type recordingObserver struct {
	changes []string
}

func (r *recordingObserver) TaskChanged(change string, index int, t task.Task) {
	r.changes = append(r.changes, fmt.Sprintf("%s %d %s %t", change, index, t.Description, t.Done))
}

func TestObserversSeeSavedMutations(t *testing.T) {
	b, _ := newTestBot(t, &memorySaver{})
	obs := &recordingObserver{}
	b.Observe(obs)

	b.RunLine("todo a")
	b.RunLine("todo b")
	b.RunLine("mark 2")
	b.RunLine("unmark 2")
	b.RunLine("mark 7")
	b.RunLine("list")
	b.RunLine("delete 1")

	assert.Equal(t, []string{
		"add 1 a false",
		"add 2 b false",
		"mark 2 b true",
		"unmark 2 b false",
		"delete 1 a false",
	}, obs.changes)
}

func TestObserversSkipFailedSaves(t *testing.T) {
	b, _ := newTestBot(t, &memorySaver{err: errors.New("disk full")})
	obs := &recordingObserver{}
	b.Observe(obs)

	b.RunLine("todo a")

	assert.Empty(t, obs.changes)
}

func TestObserveNilPanics(t *testing.T) {
	b, _ := newTestBot(t, nil)
	assert.Panics(t, func() { b.Observe(nil) })
}

func TestLogsRedactSensitiveParameters(t *testing.T) {
	var buf bytes.Buffer
	b := New(task.NewList(), nil, logging.New(&buf, logging.Config{Level: "debug"}))
	b.Initialize(&recordingIO{})

	b.RunLine("todo call bank /password hunter2 /when monday")

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "param_when")
	assert.Contains(t, out, "monday")
	assert.Contains(t, out, "call bank")
}
