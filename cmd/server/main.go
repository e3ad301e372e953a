package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"grimoire/internal/alerts"
	"grimoire/internal/config"
	"grimoire/internal/db"
	"grimoire/internal/grimoire"
	"grimoire/internal/jobs"
	"grimoire/internal/logging"
	"grimoire/internal/metrics"
	"grimoire/internal/server"
	"grimoire/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	base := logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(base)

	if ok, msg := validation.ValidateURL(cfg.BaseURL); !ok {
		slog.Warn("BASE_URL is invalid; entry links in API responses will be broken", "base_url", cfg.BaseURL, "reason", msg)
	}

	// Alert pipeline; error records from the app's own logs are forwarded too
	deduper := logging.NewDeduper(cfg.LogDedupeWindow, nil)
	discord := alerts.NewService(cfg)
	pipeline := alerts.NewPipeline(discord, deduper, cfg.LogInfoSampleRate, nil)
	slog.SetDefault(slog.New(alerts.NewHandler(base.Handler(), pipeline, slog.LevelError, "grimoire-server")))

	// Content catalog; a configured path must exist
	catalog, err := config.LoadCatalogOrDefault(cfg.CatalogFile)
	if err != nil {
		slog.Error("failed to load catalog", "file", cfg.CatalogFile, "error", err)
		os.Exit(1)
	}
	if cfg.CatalogFile == "" {
		slog.Info("CATALOG_FILE not set; using built-in catalog")
	}
	index, err := grimoire.NewIndex(catalog.Entries)
	if err != nil {
		slog.Error("failed to build grimoire index", "error", err)
		os.Exit(1)
	}
	slog.Info("grimoire index built", "entries", index.Len())

	deps := server.Deps{
		Index:    index,
		Catalog:  catalog,
		Pipeline: pipeline,
	}

	// Database is optional; without it lookups are only counted in-process
	if cfg.IsDatabaseEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations completed successfully")

		metrics.Init(database)
		deps.Misses = database
		deps.Health = database
	} else {
		slog.Info("DATABASE_URL not set; slug lookup recording disabled")
		metrics.Init(nil)
	}

	if cfg.DedupeSweepInterval > 0 {
		go jobs.NewDedupeSweeper(deduper, cfg.DedupeSweepInterval).Start(ctx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(deps)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.ServerAddr, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	metrics.Flush()
	slog.Info("server exited")
}
