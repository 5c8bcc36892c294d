package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/prodline/internal/lifecycle"
	"github.com/zulandar/prodline/internal/models"
	"gorm.io/gorm"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review gate commands",
	}

	cmd.AddCommand(newReviewActionCmd("request", "Request review of a work item",
		func(db *gorm.DB, id string, actor lifecycle.Actor, _ string) (*models.WorkItem, error) {
			return lifecycle.RequestReview(db, id, actor)
		}, false))
	cmd.AddCommand(newReviewActionCmd("approve", "Approve a pending review",
		func(db *gorm.DB, id string, actor lifecycle.Actor, _ string) (*models.WorkItem, error) {
			return lifecycle.ApproveReview(db, id, actor)
		}, false))
	cmd.AddCommand(newReviewActionCmd("reject", "Reject a pending review",
		func(db *gorm.DB, id string, actor lifecycle.Actor, reason string) (*models.WorkItem, error) {
			return lifecycle.RejectReview(db, id, actor, reason)
		}, true))
	cmd.AddCommand(newReviewActionCmd("cancel", "Cancel a pending review request",
		func(db *gorm.DB, id string, actor lifecycle.Actor, _ string) (*models.WorkItem, error) {
			return lifecycle.CancelReview(db, id, actor)
		}, false))
	cmd.AddCommand(newReviewLogCmd())
	return cmd
}

func newReviewActionCmd(action, short string, run func(*gorm.DB, string, lifecycle.Actor, string) (*models.WorkItem, error), wantReason bool) *cobra.Command {
	var (
		configPath string
		actorID    string
		role       string
		reason     string
	)

	cmd := &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := run(gormDB, args[0], lifecycle.Actor{ID: actorID, Role: role}, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review of %s is now %s\n", item.ID, reviewColumn(item))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	cmd.Flags().StringVar(&actorID, "actor", "", "acting user identifier")
	cmd.Flags().StringVar(&role, "role", "contributor", "acting user's role")
	if wantReason {
		cmd.Flags().StringVar(&reason, "reason", "", "rejection reason (required)")
		cmd.MarkFlagRequired("reason")
	}
	return cmd
}

func newReviewLogCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "log <id>",
		Short: "Show a work item's review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			events, err := lifecycle.ReviewLog(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No review activity.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tACTION\tACTOR\tROLE\tREASON")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.Actor, e.Role, truncate(e.Reason, 40))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Prodline config file")
	return cmd
}
