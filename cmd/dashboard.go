/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/lostfound/moderation/config"
	"github.com/lostfound/moderation/internal/dashboard"
	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/server"
	"github.com/lostfound/moderation/types"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var (
	dashboardAPIURL    string
	dashboardTimeout   time.Duration
	dashboardLogFormat string
	dashboardStatus    string
	dashboardQuery     string
)

// dashboardCmd groups the operator commands that talk to a running server.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Review listings and accounts on a running moderation server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyDashboardConfig(cmd, config.LoadConfig())
		return nil
	},
}

var dashboardItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List submitted items",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := moderation.ParseItemFilter(dashboardStatus)
		if err != nil {
			return err
		}
		view, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		return printItems(cmd.OutOrStdout(), view.Items(filter, dashboardQuery))
	},
}

var dashboardUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := moderation.ParseUserFilter(dashboardStatus)
		if err != nil {
			return err
		}
		view, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		return printUsers(cmd.OutOrStdout(), view.Users(filter, dashboardQuery))
	},
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the moderation summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := loadView(cmd.Context())
		if err != nil {
			return err
		}
		stats := view.Stats()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Pending Items\t%d\n", stats.PendingItems)
		fmt.Fprintf(tw, "Reported Items\t%d\n", stats.ReportedItems)
		fmt.Fprintf(tw, "Active Users\t%d\n", stats.ActiveUsers)
		fmt.Fprintf(tw, "Total Items\t%d\n", stats.TotalItems)
		return tw.Flush()
	},
}

func itemActionCmd(action moderation.ItemAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd.Context())
			if err != nil {
				return err
			}
			outcome := view.ItemAction(cmd.Context(), args[0], action)
			printNotification(cmd.OutOrStdout(), outcome.Notification)
			return outcome.Err
		},
	}
}

func userActionCmd(action moderation.UserAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd.Context())
			if err != nil {
				return err
			}
			outcome := view.UserAction(cmd.Context(), args[0], action)
			printNotification(cmd.OutOrStdout(), outcome.Notification)
			return outcome.Err
		},
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.PersistentFlags().StringVar(&dashboardAPIURL, "api-url", "", "base URL of the moderation API (default $ADMIN_API_URL)")
	dashboardCmd.PersistentFlags().DurationVar(&dashboardTimeout, "timeout", 0, "HTTP timeout per request (default $ADMIN_API_TIMEOUT)")

	for _, c := range []*cobra.Command{dashboardItemsCmd, dashboardUsersCmd} {
		c.Flags().StringVar(&dashboardStatus, "status", "all", "status filter")
		c.Flags().StringVarP(&dashboardQuery, "query", "q", "", "case-insensitive search")
	}

	dashboardCmd.AddCommand(
		dashboardItemsCmd,
		dashboardUsersCmd,
		dashboardStatsCmd,
		itemActionCmd(moderation.ActionApprove, "Approve a pending item"),
		itemActionCmd(moderation.ActionReject, "Reject a pending item"),
		userActionCmd(moderation.ActionSuspend, "Suspend an active user"),
		userActionCmd(moderation.ActionActivate, "Reactivate a suspended user"),
	)
}

// applyDashboardConfig fills the connection flags the operator left unset.
func applyDashboardConfig(cmd *cobra.Command, cfg config.Config) {
	if !cmd.Flags().Changed("api-url") {
		dashboardAPIURL = cfg.Dashboard.APIURL
	}
	if !cmd.Flags().Changed("timeout") {
		dashboardTimeout = cfg.Dashboard.Timeout
	}
	dashboardLogFormat = cfg.LogFormat
}

func loadView(ctx context.Context) (*dashboard.View, error) {
	client, err := dashboard.NewClient(dashboardAPIURL, &http.Client{Timeout: dashboardTimeout})
	if err != nil {
		return nil, err
	}

	logger := server.NewLogger(dashboardLogFormat)
	view := dashboard.NewView(client, logger.With(slog.String("component", "dashboard")))
	if err := view.Load(ctx); err != nil {
		var fetchErr *dashboard.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fmt.Errorf("moderation data unavailable: %w", fetchErr.Err)
		}
		return nil, err
	}
	return view, nil
}

func printItems(w io.Writer, items []types.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tCATEGORY\tSUBMITTED BY\tDATE\tSTATUS\tACTIONS")
	for _, item := range items {
		actions := "-"
		if item.Status == types.ItemStatusPending {
			actions = "approve, reject"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Type, item.Category, item.SubmittedBy,
			item.SubmittedAt.Format(dateLayout), moderation.ItemBadge(item).Label, actions)
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []types.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tITEMS\tLAST ACTIVE\tSTATUS\tACTION")
	for _, user := range users {
		action := moderation.ActionSuspend
		if user.Status == types.UserStatusSuspended {
			action = moderation.ActionActivate
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			user.ID, user.Name, user.Email, user.ItemsPosted,
			user.LastActive.Format(dateLayout), moderation.UserBadge(user).Label, action)
	}
	return tw.Flush()
}

func printNotification(w io.Writer, n moderation.Notification) {
	if n.Variant == moderation.VariantDestructive {
		fmt.Fprintf(w, "error: %s\n%s\n", n.Title, n.Description)
		return
	}
	fmt.Fprintf(w, "%s\n%s\n", n.Title, n.Description)
}
