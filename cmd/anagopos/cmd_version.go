package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/anagopos/pkg/engine"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration or telemetry is needed to print the version.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := engine.GetVersionInfo()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "anagopos %s (%s)\n", info.Version, info.GoVersion)
			if info.GitCommit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit %s built %s\n", info.GitCommit, info.BuildDate)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
