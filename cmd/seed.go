/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/lostfound/moderation/config"
	"github.com/lostfound/moderation/internal/db"
	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/store"
	"github.com/spf13/cobra"
)

// seedCmd loads the demo listings and accounts into Postgres.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo listings and accounts into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer conn.Close()

		items := services.NewItemService(store.NewItemRepository(conn))
		if err := items.Import(ctx, store.DemoItems()); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
		users := services.NewUserService(store.NewUserRepository(conn))
		if err := users.Import(ctx, store.DemoUsers()); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items and %d users\n", len(store.DemoItems()), len(store.DemoUsers()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
