package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mleczna-droga/printbridge/internal/bootstrap"
	"github.com/mleczna-droga/printbridge/internal/migrate"
)

const defaultMigrationTimeout = 5 * time.Minute

func migrateCmd(a *app) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply job history database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultMigrationTimeout)
			defer cancel()

			db, err := bootstrap.ConnectDB(ctx, a.cfg.Postgres)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer func() { _ = db.Close() }()

			if statusOnly {
				pending, err := migrate.Pending(ctx, db)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					return writef(cmd.OutOrStdout(), "database is up to date\n")
				}
				for _, v := range pending {
					if err := writef(cmd.OutOrStdout(), "pending: %s\n", v); err != nil {
						return err
					}
				}
				return nil
			}

			return bootstrap.RunMigrations(ctx, db, a.logger)
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "list pending migrations without applying them")
	return cmd
}
