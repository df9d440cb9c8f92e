/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/cristianoliveira/catbot/internal/config"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/version"
	"github.com/spf13/cobra"
)

var (
	dataFile  string
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
// The binary in cmd/catbot attaches the console session as its action.
var RootCmd = &cobra.Command{
	Use:   "catbot",
	Short: "A chatty cat that keeps your todos, deadlines and events.",
	Long: `A chatty cat that keeps your todos, deadlines and events.

Run without a command to start a conversation on the terminal:

    todo buy milk
    deadline submit report /by 2024-05-01
    event team party /from 2024-05-03 18:00 /to 2024-05-03 22:00
    list, mark 1, unmark 1, delete 1, find milk, help, bye`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "task data file (overrides data_file)")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "print debug output and log at debug level")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress informational output")
}

// setup loads configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if dataFile != "" {
		config.Set("data_file", dataFile)
	}
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}

	colors.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(cmd.Name()); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.GetGlobal().Debug("command started", "command", cmd.Name(), "data_file", config.Get("data_file", ""))
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	return logging.ShutdownGlobal()
}
