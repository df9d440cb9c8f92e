package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/config"
	"github.com/cristianoliveira/catbot/internal/console"
	"github.com/cristianoliveira/catbot/internal/format"
	"github.com/cristianoliveira/catbot/internal/hooks"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/storage"
	"github.com/cristianoliveira/catbot/internal/task"
	"github.com/cristianoliveira/catbot/internal/tui"
	"github.com/cristianoliveira/catbot/internal/version"
)

// storeClient opens the configured task store.
type storeClient interface {
	OpenStore() (storage.Storage, error)
	Formatter() *format.Formatter
}

// sessionClient also supplies the observer told about saved changes.
type sessionClient interface {
	storeClient
	Hooks(logger logging.Logger, onFailure func(error)) bot.Observer
}

// defaultClient reads everything from the loaded configuration.
type defaultClient struct {
	runner tui.ProgramRunner
}

var appClient = &defaultClient{runner: tui.NewDefaultProgramRunner()}

func (c *defaultClient) OpenStore() (storage.Storage, error) {
	return storage.NewFromConfig()
}

func (c *defaultClient) Formatter() *format.Formatter {
	return format.New(config.Get("date_format", task.DisplayLayout))
}

func (c *defaultClient) Hooks(logger logging.Logger, onFailure func(error)) bot.Observer {
	runner := hooks.NewFromConfig(logger)
	runner.OnFailure(onFailure)
	return runner
}

func (c *defaultClient) NewLineReader() console.LineReader {
	history := ""
	if config.GetBool("history_enabled", true) {
		history = filepath.Join(config.Get("state_dir", ""), "history")
	}
	return console.NewLiner(history)
}

func (c *defaultClient) RunProgram(model tea.Model) error {
	return c.runner.Run(model)
}

func (c *defaultClient) Version() string {
	return version.String()
}

// loadList opens the store and reads the saved list. The caller closes the
// store.
func loadList(client storeClient) (*task.List, storage.Storage, error) {
	store, err := client.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open task store: %w", err)
	}
	tasks, err := store.Load()
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	return task.NewList(tasks...), store, nil
}
