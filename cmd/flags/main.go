// Command flags is the Cricket Feed flag maintenance CLI.
//
// Usage:
//
//	cricketfeed-flags download --from 1 --to 300
//	cricketfeed-flags sync --from 1 --to 300
//	cricketfeed-flags reconcile
//	cricketfeed-flags schedule
//	cricketfeed-flags scorecard --url https://hamariweb.com/cricket/...
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/cricketfeed/internal/config"
	"github.com/albapepper/cricketfeed/internal/flags"
	"github.com/albapepper/cricketfeed/internal/hamariweb"
	"github.com/albapepper/cricketfeed/internal/scrape"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "cricketfeed-flags",
		Short: "Cricket Feed flag cache and scraper CLI",
	}

	root.AddCommand(downloadCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(reconcileCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(scorecardCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// flag commands
// --------------------------------------------------------------------------

func downloadCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download raw flag images for an identifier range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return fmt.Errorf("--from (%d) must not exceed --to (%d)", from, to)
			}
			return runFlags(func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error {
				start := time.Now()
				result := r.DownloadRange(ctx, from, to)
				logger.Info("Flag download finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				logErrors(result)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "First flag identifier")
	cmd.Flags().IntVar(&to, "to", 300, "Last flag identifier")
	return cmd
}

func syncCmd() *cobra.Command {
	var from, to int
	var skipDownload bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download flags, harvest team names from the schedules page and build by-name copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return fmt.Errorf("--from (%d) must not exceed --to (%d)", from, to)
			}
			return runFlags(func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error {
				start := time.Now()
				var result flags.SyncResult
				if !skipDownload {
					result.Add(r.DownloadRange(ctx, from, to))
				}

				markup, err := client.FetchSchedules(ctx)
				if err != nil {
					return fmt.Errorf("fetch schedules: %w", err)
				}
				names := scrape.HarvestFlagNames(markup)
				logger.Info("Harvested team names", "count", len(names))

				result.Add(r.ResolveAll(ctx, names))
				logger.Info("Flag sync finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				logErrors(result)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "First flag identifier")
	cmd.Flags().IntVar(&to, "to", 300, "Last flag identifier")
	cmd.Flags().BoolVar(&skipDownload, "skip-download", false, "Only resolve names found on the schedules page")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Drop mapping entries whose image files no longer exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlags(func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error {
				// NewResolver already reconciled once; this pass reports the result.
				dropped, err := r.Reconcile(ctx)
				if err != nil {
					return err
				}
				snap := r.Snapshot()
				logger.Info("Reconcile finished", "dropped", dropped, "names", len(snap.IDToName), "images", len(snap.IDToPath))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// scrape commands (debug aids)
// --------------------------------------------------------------------------

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Fetch and print the parsed schedules as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlags(func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error {
				markup, err := client.FetchSchedules(ctx)
				if err != nil {
					return fmt.Errorf("fetch schedules: %w", err)
				}
				res := scrape.NewScheduleExtractor(cfg.SourceOrigin, r, logger).Extract(ctx, markup)
				return printJSON(cmd, res)
			})
		},
	}
}

func scorecardCmd() *cobra.Command {
	var pageURL string
	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Fetch and print a parsed scorecard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlags(func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error {
				markup, err := client.FetchScorecard(ctx, pageURL)
				if err != nil {
					return fmt.Errorf("fetch scorecard: %w", err)
				}
				return printJSON(cmd, scrape.ExtractScorecard(markup))
			})
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Scorecard page URL")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// runFlags loads config, opens the mapping store and builds the resolver,
// then calls fn with a signal-aware context.
func runFlags(fn func(ctx context.Context, cfg *config.Config, r *flags.Resolver, client *hamariweb.Client) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store, pool, err := flags.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	client := hamariweb.NewClient(hamariweb.OptionsFromConfig(cfg), logger)
	resolver, err := flags.NewResolver(ctx, store, client, cfg.StaticDir, logger)
	if err != nil {
		return err
	}
	return fn(ctx, cfg, resolver, client)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func logErrors(result flags.SyncResult) {
	for _, e := range result.Errors {
		logger.Error("flag sync error", "error", e)
	}
}
