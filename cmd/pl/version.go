package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
)

func newEnhanceCmd() *cobra.Command {
	var (
		configPath string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "enhance <id>",
		Short: "Spawn a new version of a shipped feature",
		Long:  "Creates a new work item enhancing the given feature. The new version starts in design at the parent's version + 1; the parent is left unchanged.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			child, err := lifecycle.Enhance(gormDB, args[0], notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (v%d) enhancing %s\n", child.ID, child.Version, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&notes, "notes", "", "version notes for the new item")
	return cmd
}

func newChainCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chain <id>",
		Short: "Show a feature's version chain",
		Long:  "Prints the full version chain containing the given work item, root to latest. Any member of the chain yields the same list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			chain, err := lifecycle.Chain(gormDB, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VER\tID\tPHASE\tNOTES")
			for _, item := range chain {
				marker := ""
				if item.ID == args[0] {
					marker = " *"
				}
				fmt.Fprintf(w, "v%d%s\t%s\t%s\t%s\n", item.Version, marker, item.ID, item.Phase, truncate(item.VersionNotes, 40))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}
