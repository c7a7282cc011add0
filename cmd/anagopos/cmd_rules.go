package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/anagopos/pkg/trs"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <file>",
		Short: "Check a rule set and print its signature and rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := trs.LoadRuleSet(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("rule set checked", "path", args[0], "rules", len(rs.Rules))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "signature: %s\n", rs.Signature)
			for i, r := range rs.Rules {
				fmt.Fprintf(out, "%d: %s\n", i, r)
			}
			return nil
		},
	}
}
