package main

import (
	"github.com/cristianoliveira/catbot/cmd"
	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/cristianoliveira/catbot/internal/console"
	"github.com/cristianoliveira/catbot/internal/errors"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/ui"
	"github.com/spf13/cobra"
)

type consoleClient interface {
	sessionClient
	NewLineReader() console.LineReader
}

// newConsoleRunE returns the action of the bare catbot command: a
// conversation on the terminal.
func newConsoleRunE(client consoleClient) func(*cobra.Command, []string) error {
	if client == nil {
		panic("newConsoleRunE: client dependency cannot be nil")
	}
	return func(c *cobra.Command, args []string) error {
		list, store, err := loadList(client)
		if err != nil {
			return err
		}
		defer store.Close()

		logger := logging.GetGlobal().With("component", "console")
		assistant := ui.NewAssistant(errors.NewDefaultCLIHandler(), client.Formatter())
		b := bot.New(list, store, logger)
		b.Initialize(assistant)
		b.Observe(client.Hooks(logger, func(err error) { colors.Warning(err.Error()) }))
		return console.New(b, assistant, client.NewLineReader(), logger).Run(c.Context())
	}
}

func init() {
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = newConsoleRunE(appClient)
}
