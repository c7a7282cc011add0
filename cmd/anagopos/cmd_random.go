package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRandomCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random terms",
		Long: `random prints terms drawn from the generator of the current mode. In trs
mode the terms are built over the signature of the loaded rule set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return errors.New("--count must be positive")
			}
			e, err := a.newEngine(0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for range count {
				s, err := e.RandomTerm()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of terms")
	return cmd
}
