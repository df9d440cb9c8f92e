package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/catbot/cmd"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/tui"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	sessionClient
	RunProgram(model tea.Model) error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Talk to catbot in a full screen view",
		Long: `Open a full screen conversation with catbot.

Type commands at the prompt and press enter. PgUp/PgDn scroll the
conversation; Esc or Ctrl+C leaves.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			list, store, err := loadList(client)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := logging.GetGlobal().With("component", "tui")
			model := tui.NewModel(list, store, logger, client.Formatter())
			// failures are logged; writing to the terminal would tear the view
			model.Bot().Observe(client.Hooks(logger, nil))
			return client.RunProgram(model)
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(appClient))
}
