package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
)

func newReadinessCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "readiness <id>",
		Short: "Show how ready a work item is for its next phase",
		Long:  "Computes the weighted completion of the next phase's required and optional fields and lists what is still missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			report, err := lifecycle.Readiness(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.NextPhase == "" {
				fmt.Fprintf(out, "%s is in terminal phase %q; nothing to prepare.\n", args[0], report.CurrentPhase)
				return nil
			}

			fmt.Fprintf(out, "%s: %q → %q\n", args[0], report.CurrentPhase, report.NextPhase)
			fmt.Fprintf(out, "Readiness: %d%% (required %d%%, optional %d%%)\n",
				report.Percent, report.RequiredPercent, report.OptionalPercent)
			if report.ReviewBlocked {
				fmt.Fprintln(out, "Blocked: review not approved")
			}
			if report.CanUpgrade {
				fmt.Fprintln(out, "Ready to upgrade.")
				return nil
			}
			for _, m := range report.Missing {
				fmt.Fprintf(out, "  missing %s: %s\n", m.Label, m.Hint)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}
