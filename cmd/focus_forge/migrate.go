package main

import (
	"context"
	"fmt"

	"focus_forge/internal/config"
	"focus_forge/internal/storage"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.New()
			if err != nil {
				return err
			}

			pool, err := storage.Connect(ctx, cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := storage.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
