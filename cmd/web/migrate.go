// cmd/web/migrate.go
// This file contains the migrate command, which prepares the configured backend
// (tables for PostgreSQL, indexes for MongoDB) before the server runs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aoideee/locallibrary/internal/data/mongostore"
	"github.com/aoideee/locallibrary/internal/data/pgstore"
)

func newMigrateCommand(v *viper.Viper, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables or indexes the catalog store needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			return migrate(ctx, loadConfig(v), logger)
		},
	}
}

func migrate(ctx context.Context, settings serverConfig, logger *slog.Logger) error {
	switch settings.db.driver {
	case driverPostgres:
		db, err := openDB(settings)
		if err != nil {
			return err
		}
		defer db.Close()

		// schema.sql is idempotent, so re-running migrate is safe.
		if err := pgstore.Migrate(ctx, db); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}

	case driverMongo:
		client, err := mongostore.Open(ctx, settings.mongo.uri)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		if err := mongostore.EnsureIndexes(ctx, client.Database(settings.mongo.database)); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}

	case driverMemory:
		logger.Info("memory store needs no migration")
		return nil

	default:
		return fmt.Errorf("unknown db driver %q", settings.db.driver)
	}

	logger.Info("migration complete", "driver", settings.db.driver)
	return nil
}
