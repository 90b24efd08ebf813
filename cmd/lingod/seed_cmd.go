package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/simfra/lingod/internal/config"
	"github.com/simfra/lingod/internal/seed"
	"github.com/simfra/lingod/internal/snapshot"
	"github.com/simfra/lingod/internal/store/postgres"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Load bundled locale dictionaries into the database",
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

		ctx := context.Background()
		if err := seed.Apply(ctx, store, logger); err != nil {
			return err
		}

		if cfg.GenerateFiles {
			generator := snapshot.New(store, cfg.SnapshotDir, true, logger)
			if err := generator.Regenerate(ctx); err != nil {
				logger.Error("snapshot generation failed", "err", err)
			}
		}
		return nil
	},
}
