// Package bot wires the supported commands to the task list and a front end.
package bot

import (
	"fmt"

	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/task"
)

// Command names understood by the bot.
const (
	CmdBye      = "bye"
	CmdList     = "list"
	CmdMark     = "mark"
	CmdUnmark   = "unmark"
	CmdDelete   = "delete"
	CmdTodo     = "todo"
	CmdDeadline = "deadline"
	CmdEvent    = "event"
	CmdFind     = "find"
	CmdHelp     = "help"
)

// Kinds of change reported to observers.
const (
	ChangeAdded    = "add"
	ChangeMarked   = "mark"
	ChangeUnmarked = "unmark"
	ChangeDeleted  = "delete"
)

// Saver persists the full task list after a mutation.
type Saver interface {
	Save(tasks []task.Task) error
}

// Observer is told about every mutation that was saved. index is 1-based and
// refers to the list before the change for deletions.
type Observer interface {
	TaskChanged(change string, index int, t task.Task)
}

// Bot owns the command map, the task list and the front end for one session.
// It is driven from a single goroutine; front ends must not call Run
// re-entrantly.
type Bot struct {
	io        UserIO
	commands  *command.CommandMap
	taskList  *task.List
	saver     Saver
	observers []Observer
	logger    logging.Logger
}

// New creates a bot over taskList. saver may be nil for an in-memory session.
func New(taskList *task.List, saver Saver, logger logging.Logger) *Bot {
	if taskList == nil {
		panic("bot.New: task list cannot be nil")
	}
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Bot{taskList: taskList, saver: saver, logger: logger}
}

// Initialize binds the front end and registers every command.
func (b *Bot) Initialize(userIO UserIO) {
	if userIO == nil {
		panic("bot.Initialize: user io cannot be nil")
	}
	b.io = userIO
	b.commands = command.NewCommandMap()
	b.addSupportedCommands()
}

// Observe registers o for saved mutations. Observers run in registration
// order on the dispatching goroutine.
func (b *Bot) Observe(o Observer) {
	if o == nil {
		panic("bot.Observe: observer cannot be nil")
	}
	b.observers = append(b.observers, o)
}

// Run dispatches one command.
func (b *Bot) Run(name, argument string) {
	if b.commands == nil {
		panic("bot.Run: Initialize was not called")
	}
	// arguments are logged by the handlers, slash parameters field by field
	b.logger.Debug("dispatch", "command", name)
	b.commands.Run(name, argument)
}

// RunLine splits a raw input line and dispatches it. Blank lines are ignored.
func (b *Bot) RunLine(line string) {
	name, argument := command.Split(line)
	if name == "" {
		return
	}
	b.Run(name, argument)
}

// TaskList returns the list the bot mutates.
func (b *Bot) TaskList() *task.List {
	return b.taskList
}

// Commands returns the registered command names.
func (b *Bot) Commands() []string {
	return b.commands.Names()
}

func (b *Bot) addSupportedCommands() {
	integerPattern := command.IntegerPattern().UsingDefault(b.io.IndicateInvalidInteger)
	slashPattern := command.SlashPattern().UsingDefault(command.NoDefault)
	stringPattern := command.StringPattern().UsingDefault(command.NoDefault)

	b.commands.SetDefaultCommand(b.io.IndicateInvalidCommand).
		AddCommand(CmdBye, func(string) { b.io.Cleanup() }).
		AddCommand(CmdList, func(string) { b.io.DisplayTaskList(b.taskList) }).
		AddCommand(CmdHelp, func(string) { b.io.DisplayHelp(b.commands.Names()) })

	// existing tasks, addressed by 1-based index
	withValidIndex := func(argument string, onValid func(index int)) {
		integerPattern.IfParsableElseDefault(argument, func(n int) {
			b.taskList.IfValidIndexElse(n, onValid, func(invalid int) {
				b.io.IndicateInvalidIndex(invalid, b.taskList.IndexBounds())
			})
		})
	}

	b.commands.
		AddCommand(CmdMark, func(argument string) {
			withValidIndex(argument, func(index int) {
				b.taskList.Mark(index - 1)
				b.logger.Info("task marked", "index", index)
				saved := b.persist()
				b.io.DisplayTaskModified(b.taskList, index)
				if saved {
					b.notify(ChangeMarked, index, b.taskList.Task(index-1))
				}
			})
		}).
		AddCommand(CmdUnmark, func(argument string) {
			withValidIndex(argument, func(index int) {
				b.taskList.Unmark(index - 1)
				b.logger.Info("task unmarked", "index", index)
				saved := b.persist()
				b.io.DisplayTaskModified(b.taskList, index)
				if saved {
					b.notify(ChangeUnmarked, index, b.taskList.Task(index-1))
				}
			})
		}).
		AddCommand(CmdDelete, func(argument string) {
			withValidIndex(argument, func(index int) {
				removed := b.taskList.Remove(index - 1)
				b.logger.Info("task deleted", "index", index, "id", removed.ID)
				saved := b.persist()
				b.io.DisplayTaskDeleted(removed)
				if saved {
					b.notify(ChangeDeleted, index, removed)
				}
			})
		})

	// new tasks from slash arguments
	createTask := func(argument string, factory task.Factory) {
		slashPattern.IfParsableElseDefault(argument, func(params *command.NamedParameterMap) {
			b.logger.Debug("task parameters", paramFields(params)...)
			t, ok := task.CreateIfValidElse(factory, params, b.io.IndicateArgumentInvalid)
			if !ok {
				b.logger.Debug("task rejected")
				return
			}
			b.taskList.Add(t)
			b.logger.Info("task added", "id", t.ID, "kind", t.Kind.String())
			saved := b.persist()
			b.io.DisplayTaskAdded(b.taskList)
			if saved {
				b.notify(ChangeAdded, b.taskList.Size(), t)
			}
		})
	}

	b.commands.
		AddCommand(CmdTodo, func(argument string) { createTask(argument, task.NewTodo) }).
		AddCommand(CmdDeadline, func(argument string) { createTask(argument, task.NewDeadline) }).
		AddCommand(CmdEvent, func(argument string) { createTask(argument, task.NewEvent) })

	b.commands.AddCommand(CmdFind, func(argument string) {
		stringPattern.IfParsableElseDefault(argument, func(query string) {
			b.logger.Debug("find", "query", query)
			b.io.DisplayTaskList(b.taskList.Find(query))
		})
	})
}

// persist saves the list and reports whether it succeeded. A failure is
// reported but the in-memory list stays as mutated.
func (b *Bot) persist() bool {
	if b.saver == nil {
		return true
	}
	if err := b.saver.Save(b.taskList.Tasks()); err != nil {
		err = fmt.Errorf("save task list: %w", err)
		b.logger.Error("persist failed", "error", err.Error())
		b.io.IndicateStorageFailure(err)
		return false
	}
	return true
}

// paramFields flattens params into param_<name> log fields so the logger can
// redact names such as /password or /token.
func paramFields(params *command.NamedParameterMap) []any {
	fields := make([]any, 0, 2*params.Len())
	for _, key := range params.Keys() {
		value, _ := params.Get(key)
		fields = append(fields, "param_"+key, value)
	}
	return fields
}

func (b *Bot) notify(change string, index int, t task.Task) {
	for _, o := range b.observers {
		o.TaskChanged(change, index, t)
	}
}
