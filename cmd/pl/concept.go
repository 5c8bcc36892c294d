package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
)

func newConceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concept",
		Short: "Concept promotion and rejection commands",
	}

	cmd.AddCommand(newConceptPromoteCmd())
	cmd.AddCommand(newConceptRejectCmd())
	return cmd
}

func newConceptPromoteCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Promote a validated concept into a feature",
		Long:  "Creates a new feature work item originating from a validated concept. The concept is left unchanged.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			feature, err := lifecycle.PromoteConcept(gormDB, args[0], name, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s into feature %s\n", args[0], feature.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&name, "name", "", "new feature name (defaults to the concept's)")
	cmd.Flags().StringVar(&description, "description", "", "new feature description (defaults to the concept's)")
	return cmd
}

func newConceptRejectCmd() *cobra.Command {
	var (
		configPath string
		reason     string
		archive    bool
	)

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a concept",
		Long:  "Moves a concept in ideation or research to the rejected phase. The reason must be at least 10 characters.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.RejectConcept(gormDB, args[0], reason, archive)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s", item.ID)
			if item.Archived {
				fmt.Fprint(cmd.OutOrStdout(), " (archived)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&reason, "reason", "", "rejection reason (required, >= 10 chars)")
	cmd.Flags().BoolVar(&archive, "archive", false, "also archive the concept")
	cmd.MarkFlagRequired("reason")
	return cmd
}
