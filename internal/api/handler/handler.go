// Package handler provides HTTP handlers for all API endpoints.
// Handlers fetch markup through the Source, cache the schedules page and run
// the scrape extractors on every request.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/albapepper/cricketfeed/internal/api/respond"
	"github.com/albapepper/cricketfeed/internal/cache"
	"github.com/albapepper/cricketfeed/internal/config"
	"github.com/albapepper/cricketfeed/internal/flags"
	"github.com/albapepper/cricketfeed/internal/scrape"
)

// Source fetches pages from the upstream site.
type Source interface {
	FetchSchedules(ctx context.Context) (string, error)
	FetchScorecard(ctx context.Context, pageURL string) (string, error)
}

// Pinger reports database reachability.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators shared by all handlers. DB is nil unless the
// Postgres flag store is in use.
type Deps struct {
	Source Source
	Cache  *cache.Cache
	Flags  *flags.Resolver
	DB     Pinger
	Logger *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	source   Source
	cache    *cache.Cache
	flags    *flags.Resolver
	schedule *scrape.ScheduleExtractor
	db       Pinger
	cfg      *config.Config
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(deps Deps, cfg *config.Config) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		source:   deps.Source,
		cache:    deps.Cache,
		flags:    deps.Flags,
		schedule: scrape.NewScheduleExtractor(cfg.SourceOrigin, deps.Flags, logger),
		db:       deps.DB,
		cfg:      cfg,
		logger:   logger,
	}
}

// Root serves static/index.html when present, API info otherwise.
// @Summary API root info
// @Description Serves the bundled index page, or API name and endpoints when no page is installed.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.cfg.StaticDir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		http.ServeFile(w, r, index)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Cricket Feed API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"endpoints": []string{
			"/api/schedules",
			"/api/schedules/raw",
			"/api/scorecard?url=",
			"/api/scorecard/raw?url=",
			"/api/flags",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckFlags reports the mapping size and, for the Postgres store,
// database connectivity.
// @Summary Flag store health check
// @Description Returns the number of mapped flags and the mapping store backend.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/flags [get]
func (h *Handler) HealthCheckFlags(w http.ResponseWriter, r *http.Request) {
	snap := h.flags.Snapshot()
	body := map[string]interface{}{
		"status":    "healthy",
		"store":     h.cfg.FlagsStore,
		"names":     len(snap.IDToName),
		"images":    len(snap.IDToPath),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.db != nil {
		if err := h.db.HealthCheck(r.Context()); err != nil {
			h.logger.Warn("Flag store database check failed", "error", err)
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
			respond.WriteJSONObject(w, http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "connected"
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}
