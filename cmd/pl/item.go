package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
	"github.com/zulandar/prodline/internal/models"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Work item management commands",
	}

	cmd.AddCommand(newItemCreateCmd())
	cmd.AddCommand(newItemListCmd())
	cmd.AddCommand(newItemShowCmd())
	cmd.AddCommand(newItemMoveCmd())
	cmd.AddCommand(newItemUpgradeCmd())
	cmd.AddCommand(newItemSetCmd())
	return cmd
}

func newItemCreateCmd() *cobra.Command {
	var (
		configPath    string
		name          string
		itemType      string
		description   string
		owner         string
		reviewEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new work item",
		Long:  "Creates a new work item in its type's initial phase with an auto-generated ID.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.Create(gormDB, lifecycle.CreateOpts{
				Name:          name,
				Type:          itemType,
				Description:   description,
				Owner:         owner,
				ReviewEnabled: reviewEnabled,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s in phase %q\n", item.Type, item.ID, item.Phase)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&name, "name", "", "work item name (required)")
	cmd.Flags().StringVar(&itemType, "type", "feature", "work item type (concept, feature, bug)")
	cmd.Flags().StringVar(&description, "description", "", "detailed description")
	cmd.Flags().StringVar(&owner, "owner", "", "owning team or workspace")
	cmd.Flags().BoolVar(&reviewEnabled, "review", false, "enable the review gate for this item")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newItemListCmd() *cobra.Command {
	var (
		configPath string
		owner      string
		itemType   string
		phaseName  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		Long:  "Lists work items with optional filters. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			items, err := lifecycle.List(gormDB, lifecycle.ListFilters{
				Owner: owner,
				Type:  itemType,
				Phase: phaseName,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No work items found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tPHASE\tVER\tREVIEW\tNAME")
			for _, item := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\tv%d\t%s\t%s\n",
					item.ID, item.Type, item.Phase, item.Version,
					reviewColumn(&item), truncate(item.Name, 48))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owner")
	cmd.Flags().StringVar(&itemType, "type", "", "filter by type")
	cmd.Flags().StringVar(&phaseName, "phase", "", "filter by phase")
	return cmd
}

func newItemShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a work item's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.Get(gormDB, args[0])
			if err != nil {
				return err
			}
			printItem(cmd, item)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}

func newItemMoveCmd() *cobra.Command {
	var (
		configPath string
		from       string
	)

	cmd := &cobra.Command{
		Use:   "move <id> <phase>",
		Short: "Move a work item to another phase",
		Long:  "Transitions a work item, validating the move against its type's phase graph. The --from flag is the phase you last observed; the move fails with a conflict if the item has changed since.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			expected := from
			if expected == "" {
				item, err := lifecycle.Get(gormDB, args[0])
				if err != nil {
					return err
				}
				expected = item.Phase
			}
			item, err := lifecycle.TransitionPhase(gormDB, args[0], args[1], expected)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now in phase %q\n", item.ID, item.Phase)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&from, "from", "", "expected current phase (optimistic check)")
	return cmd
}

func newItemUpgradeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "upgrade <id>",
		Short: "Advance a work item to its next phase if ready",
		Long:  "Re-runs the readiness calculation server-side and advances the item only when all required fields are complete.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.AutoUpgrade(gormDB, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s upgraded to phase %q\n", item.ID, item.Phase)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}

func newItemSetCmd() *cobra.Command {
	var (
		configPath string
		fields     []string
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Edit a work item's structured fields",
		Long:  "Sets data fields (column=value pairs). Lifecycle state is edited through move, review, and enhance instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseFieldArgs(fields)
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.UpdateFields(gormDB, args[0], updates)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%d field(s))\n", item.ID, len(updates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field to set, as column=value (repeatable)")
	cmd.MarkFlagRequired("field")
	return cmd
}

func printItem(cmd *cobra.Command, item *models.WorkItem) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", item.ID, item.Name)
	fmt.Fprintf(out, "Type: %s  Phase: %s  Version: %d\n", item.Type, item.Phase, item.Version)
	if item.Owner != "" {
		fmt.Fprintf(out, "Owner: %s\n", item.Owner)
	}
	if item.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", item.Description)
	}
	if item.ReviewEnabled {
		fmt.Fprintf(out, "Review: %s\n", reviewColumn(item))
	}
	if item.IsEnhancement && item.EnhancesID != nil {
		fmt.Fprintf(out, "Enhances: %s\n", *item.EnhancesID)
	}
	if item.PromotedFromID != nil {
		fmt.Fprintf(out, "Promoted from: %s\n", *item.PromotedFromID)
	}
	if item.RejectionReason != "" {
		fmt.Fprintf(out, "Rejection reason: %s\n", item.RejectionReason)
	}
}
