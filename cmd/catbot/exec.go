package main

import (
	"strings"

	"github.com/cristianoliveira/catbot/cmd"
	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/cristianoliveira/catbot/internal/errors"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/ui"
	"github.com/spf13/cobra"
)

// NewExecCmd creates the exec command with explicit dependencies.
func NewExecCmd(client sessionClient) *cobra.Command {
	if client == nil {
		panic("NewExecCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run a single command and exit",
		Long: `Run one catbot command without starting a conversation.

EXAMPLES:
    catbot exec todo buy milk
    catbot exec deadline "submit report /by 2024-05-01"
    catbot exec list`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			list, store, err := loadList(client)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := logging.GetGlobal().With("component", "exec")
			assistant := ui.NewAssistant(errors.NewDefaultCLIHandler(), client.Formatter())
			b := bot.New(list, store, logger)
			b.Initialize(assistant)
			b.Observe(client.Hooks(logger, func(err error) { colors.Warning(err.Error()) }))
			b.RunLine(strings.Join(args, " "))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewExecCmd(appClient))
}
