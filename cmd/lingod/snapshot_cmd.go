package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/simfra/lingod/internal/config"
	"github.com/simfra/lingod/internal/snapshot"
	"github.com/simfra/lingod/internal/store/postgres"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Regenerate the per-locale JSON snapshot files",
	GroupID: "system",
	// Talks to the database directly, not to a running server.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		// Forced regeneration ignores LINGOD_GENERATE_JSON_FILES.
		generator := snapshot.New(store, cfg.SnapshotDir, true, logger)
		return generator.Regenerate(context.Background())
	},
}
