package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/newsreview/internal/config"
	"github.com/JonMunkholm/newsreview/internal/core"
	"github.com/JonMunkholm/newsreview/internal/logging"
	"github.com/JonMunkholm/newsreview/internal/store"
	"github.com/JonMunkholm/newsreview/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logCloser := logging.Setup(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer logCloser.Close()

	slog.Info("configuration loaded",
		"data_file", cfg.Data.File,
		"exclusion_file", cfg.Data.ExclusionFile,
		"database", cfg.Database.Enabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schema, err := core.LoadSchemaFile(cfg.Data.SchemaFile)
	if err != nil {
		slog.Error("failed to load schema file", "path", cfg.Data.SchemaFile, "error", err)
		os.Exit(1)
	}

	cache, err := core.NewDatasetCache(core.NewLoader(schema), cfg.Data.CacheSize)
	if err != nil {
		slog.Error("failed to create dataset cache", "error", err)
		os.Exit(1)
	}

	exclusions, closeStore, err := openExclusionStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open exclusion store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	service, err := core.NewService(cfg.Data.File, cache, exclusions)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	// Warm the cache so the first page load is fast. Failures are reported
	// again on every request, so they do not stop startup.
	if ds, err := service.Dataset(ctx); err != nil {
		slog.Warn("dataset not loaded", "path", cfg.Data.File, "error", err, "hint", core.FormatUserError(err))
	} else {
		slog.Info("dataset ready", "path", cfg.Data.File, "records", ds.Len())
	}

	server := web.NewServer(ctx, service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return
	}
	slog.Info("server stopped")
}

// openExclusionStore returns the Postgres store when a database is
// configured and the CSV file store otherwise. The returned func releases
// the store's resources.
func openExclusionStore(ctx context.Context, cfg *config.Config) (core.ExclusionStore, func(), error) {
	if !cfg.Database.Enabled() {
		return store.NewCSVStore(cfg.Data.ExclusionFile), func() {}, nil
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	label := "postgres: not_relevant_urls"
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		if dbName := strings.TrimPrefix(u.Path, "/"); dbName != "" {
			label = "postgres " + dbName + ": not_relevant_urls"
		}
	}

	pg := store.NewPGStore(pool, label)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	slog.Info("connected to database", "store", label)
	return pg, pool.Close, nil
}
