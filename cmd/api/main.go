// Command api is the Cricket Feed API server.
//
// Usage:
//
//	cricketfeed-api
//	API_PORT=8080 FLAGS_STORE=memory cricketfeed-api

// @title Cricket Feed API
// @version 1.0.0
// @description Cricket schedules and scorecards scraped from hamariweb.com, with locally cached team flags.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Cricket Feed
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/cricketfeed/internal/api"
	"github.com/albapepper/cricketfeed/internal/api/handler"
	"github.com/albapepper/cricketfeed/internal/cache"
	"github.com/albapepper/cricketfeed/internal/config"
	"github.com/albapepper/cricketfeed/internal/flags"
	"github.com/albapepper/cricketfeed/internal/hamariweb"
	"github.com/albapepper/cricketfeed/internal/maintenance"

	_ "github.com/albapepper/cricketfeed/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	level := slog.LevelInfo
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Flag mapping store
	store, pool, err := flags.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open flag store", "store", cfg.FlagsStore, "error", err)
		os.Exit(1)
	}
	deps := handler.Deps{Logger: logger}
	if pool != nil {
		defer pool.Close()
		deps.DB = pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	client := hamariweb.NewClient(hamariweb.OptionsFromConfig(cfg), logger)
	resolver, err := flags.NewResolver(ctx, store, client, cfg.StaticDir, logger)
	if err != nil {
		logger.Error("Failed to initialise flag resolver", "error", err)
		os.Exit(1)
	}
	snap := resolver.Snapshot()
	logger.Info("Flag mapping loaded",
		"store", cfg.FlagsStore,
		"names", len(snap.IDToName),
		"images", len(snap.IDToPath))

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "schedule_ttl", cfg.ScheduleCacheTTL)

	// Start maintenance tickers (flag mapping reconcile)
	go maintenance.Start(ctx, resolver, maintenance.Config{ReconcileInterval: cfg.FlagsReconcileInterval}, logger)

	deps.Source = client
	deps.Cache = appCache
	deps.Flags = resolver
	router := api.NewRouter(deps, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ScorecardTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Cricket Feed API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
