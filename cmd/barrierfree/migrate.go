package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"barrierfree/internal/config"
	"barrierfree/internal/database"
	"barrierfree/internal/store"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL catalog schema and data",
		Long:  "Applies migrations, reports their status and seeds the catalog tables. Connection settings come from POSTGRES_*.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadCLIConfig()
				if err != nil {
					return err
				}
				db, err := openDatabase(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the state of every migration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg, err := loadCLIConfig()
				if err != nil {
					return err
				}
				db, err := database.Connect(cfg.DSN())
				if err != nil {
					return err
				}
				defer db.Close()
				return database.Status(db)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Fill empty catalog tables from the catalog definition",
			Long:  "Seeds videos and documents from CATALOG_FILE or the embedded catalog. Tables that already hold rows are left untouched.",
			Args:  cobra.NoArgs,
			RunE:  runSeed,
		},
	)
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	src, err := seedSource(cfg)
	if err != nil {
		return err
	}
	if err := database.Seed(ctx, db, src); err != nil {
		return err
	}

	// Cached pages may show the old catalog.
	pageCache, closeCache, err := openPageCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	pageCache.InvalidateAll(ctx)

	videos, documents, err := store.NewResourceStore(db).Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "catalog holds %d videos and %d documents\n", videos, documents)
	return nil
}

// loadCLIConfig loads configuration for maintenance commands, which log to
// stderr so their own output stays clean.
func loadCLIConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	setupLogger(os.Stderr, cfg.IsDev())
	return cfg, nil
}
