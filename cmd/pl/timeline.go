package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
)

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Timeline item commands",
	}

	cmd.AddCommand(newTimelineAddCmd())
	cmd.AddCommand(newTimelineListCmd())
	return cmd
}

func newTimelineAddCmd() *cobra.Command {
	var (
		configPath string
		horizon    string
		title      string
		status     string
		difficulty int
	)

	cmd := &cobra.Command{
		Use:   "add <work-item-id>",
		Short: "Add a timeline item to a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := lifecycle.AddTimelineItem(gormDB, args[0], lifecycle.TimelineOpts{
				Horizon:    horizon,
				Title:      title,
				Status:     status,
				Difficulty: difficulty,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added timeline item %d (%s) to %s\n", item.ID, item.Horizon, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&horizon, "horizon", "near", "horizon (near, mid, long)")
	cmd.Flags().StringVar(&title, "title", "", "timeline item title (required)")
	cmd.Flags().StringVar(&status, "status", "planned", "status (planned, in_progress, done)")
	cmd.Flags().IntVar(&difficulty, "difficulty", 2, "difficulty (1=easy → 4=hard)")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newTimelineListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <work-item-id>",
		Short: "List a work item's timeline items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			items, err := lifecycle.ListTimelineItems(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No timeline items.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tHORIZON\tSTATUS\tDIFF\tTITLE")
			for _, item := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
					item.ID, item.Horizon, item.Status, item.Difficulty, truncate(item.Title, 48))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}
