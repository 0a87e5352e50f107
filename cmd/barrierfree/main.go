// Package main is the entry point for the Breaking Barriers site. It serves
// the public website and provides maintenance commands for the catalog and
// the optional PostgreSQL database.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "barrierfree",
		Short: "Breaking Barriers inclusive education resource site",
		Long: "Breaking Barriers serves a searchable catalog of videos, documents and " +
			"presentations about inclusive education.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newCatalogCmd())
	return root
}

// setupLogger installs the default slog logger: text at debug level in
// development, JSON at info level everywhere else.
func setupLogger(w io.Writer, dev bool) {
	var handler slog.Handler
	if dev {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
