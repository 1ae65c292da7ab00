// Package maintenance runs periodic background tasks as Go tickers.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Reconciler drops mapping entries whose image files have disappeared.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	ReconcileInterval time.Duration // Flag mapping vs files on disk
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, flags Reconciler, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started", "reconcile", cfg.ReconcileInterval)

	tickers := make([]*time.Ticker, 0, 1)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.ReconcileInterval > 0 {
		t := time.NewTicker(cfg.ReconcileInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { reconcile(ctx, flags, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

func reconcile(ctx context.Context, flags Reconciler, logger *slog.Logger) {
	dropped, err := flags.Reconcile(ctx)
	if err != nil {
		logger.Warn("Reconcile: failed to save flag mapping", "error", err)
		return
	}
	if dropped > 0 {
		logger.Info("Reconcile: dropped stale flag paths", "count", dropped)
	}
}
