package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/catbot/cmd"
	"github.com/cristianoliveira/catbot/internal/storage"
	"github.com/cristianoliveira/catbot/internal/storage/record"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	exportTSV  = "tsv"
	exportJSON = "json"
	exportYAML = "yaml"
)

// NewExportCmd creates the export command with explicit dependencies.
func NewExportCmd(client storeClient) *cobra.Command {
	if client == nil {
		panic("NewExportCmd: client dependency cannot be nil")
	}

	var outputFormat string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved tasks",
		Long: `Print every saved task in list order.

FORMATS:
    tsv     one tab-separated line per task (the file backend's format)
    json    an array of task objects
    yaml    a list of task mappings`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			list, store, err := loadList(client)
			if err != nil {
				return err
			}
			defer store.Close()
			return writeExport(c.OutOrStdout(), outputFormat, record.FromTasks(list.Tasks()))
		},
	}
	exportCmd.Flags().StringVar(&outputFormat, "format", exportTSV, "output format: tsv, json or yaml")
	return exportCmd
}

func writeExport(w io.Writer, outputFormat string, records []record.Record) error {
	switch outputFormat {
	case exportTSV:
		return storage.WriteTSV(w, records)
	case exportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case exportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q: must be one of tsv, json, yaml", outputFormat)
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewExportCmd(appClient))
}
