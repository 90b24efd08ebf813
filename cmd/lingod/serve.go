package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simfra/lingod/internal/cache"
	"github.com/simfra/lingod/internal/config"
	"github.com/simfra/lingod/internal/events"
	"github.com/simfra/lingod/internal/loader"
	"github.com/simfra/lingod/internal/seed"
	"github.com/simfra/lingod/internal/server"
	"github.com/simfra/lingod/internal/snapshot"
	"github.com/simfra/lingod/internal/store/postgres"
	"github.com/simfra/lingod/internal/translations"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the Lingo translation server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		seedOnStart, _ := cmd.Flags().GetBool("seed")

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		if seedOnStart {
			if err := seed.Apply(context.Background(), store, logger); err != nil {
				store.Close()
				return err
			}
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (LINGOD_NATS_URL not set)")
		}

		// Snapshot generator, with an optional S3 mirror.
		generator := snapshot.New(store, cfg.SnapshotDir, cfg.GenerateFiles, logger)
		if cfg.GenerateFiles && cfg.SnapshotS3Bucket != "" {
			dest, err := snapshot.NewS3Destination(
				context.Background(),
				cfg.SnapshotS3Bucket,
				cfg.SnapshotS3Prefix,
				cfg.SnapshotS3Region,
				cfg.SnapshotS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 snapshot mirror", "err", err)
			} else {
				generator.AddDestination(dest)
				logger.Info("snapshot S3 mirror enabled", "bucket", cfg.SnapshotS3Bucket, "prefix", cfg.SnapshotS3Prefix)
			}
		}

		// Wire the service and the runtime read path over a shared cache.
		translationCache := cache.NewMemory(cfg.CacheTTL)
		svc := translations.New(store, translationCache, generator, publisher, logger)

		var runtimeLoader loader.Source
		if cfg.UseDatabaseLoader {
			runtimeLoader = loader.New(store, translationCache)
		} else {
			runtimeLoader = loader.NewFiles(cfg.SnapshotDir)
			logger.Info("runtime loader reading snapshot files", "dir", cfg.SnapshotDir)
		}

		if cfg.GenerateFiles {
			if err := generator.Regenerate(context.Background()); err != nil {
				logger.Error("initial snapshot generation failed", "err", err)
			}
		}

		// Start HTTP server.
		translationServer := server.NewTranslationServer(svc, runtimeLoader, logger)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: translationServer.NewHTTPHandler(cfg.AuthToken, cfg.RoutePrefix),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr, "prefix", cfg.RoutePrefix)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		logger.Info("lingod server started",
			"http_addr", cfg.HTTPAddr,
			"cache_ttl", cfg.CacheTTL,
			"snapshots", cfg.GenerateFiles,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().Bool("seed", false, "seed bundled locales before serving")
}
