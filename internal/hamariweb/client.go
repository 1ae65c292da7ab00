// Package hamariweb provides the HTTP client used to pull schedule pages,
// scorecard pages and flag images from hamariweb.com.
//
// Every request carries a browser-like header set and its own timeout.
// Nothing is retried: a failed fetch surfaces immediately to the caller.
// Flag downloads go through a token bucket limiter so batch runs stay polite.
package hamariweb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/cricketfeed/internal/config"
)

// StatusError reports a non-2xx response from the source site.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// Options configures a Client. Zero values fall back to the config defaults.
type Options struct {
	SchedulesURL     string
	FlagsBaseURL     string
	UserAgent        string
	ScheduleTimeout  time.Duration
	ScorecardTimeout time.Duration
	FlagTimeout      time.Duration
	FlagsPerMinute   int
}

// OptionsFromConfig maps the service configuration onto client options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SchedulesURL:     cfg.SchedulesURL,
		FlagsBaseURL:     cfg.FlagsBaseURL,
		UserAgent:        cfg.UserAgent,
		ScheduleTimeout:  cfg.ScheduleTimeout,
		ScorecardTimeout: cfg.ScorecardTimeout,
		FlagTimeout:      cfg.FlagTimeout,
		FlagsPerMinute:   cfg.FlagDownloadRPM,
	}
}

// Client is the shared HTTP client for all hamariweb fetches.
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a hamariweb client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SchedulesURL == "" {
		opts.SchedulesURL = config.DefaultSchedulesURL
	}
	if opts.FlagsBaseURL == "" {
		opts.FlagsBaseURL = config.DefaultFlagsBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.ScheduleTimeout <= 0 {
		opts.ScheduleTimeout = 20 * time.Second
	}
	if opts.ScorecardTimeout <= 0 {
		opts.ScorecardTimeout = 25 * time.Second
	}
	if opts.FlagTimeout <= 0 {
		opts.FlagTimeout = 20 * time.Second
	}

	limit := rate.Inf
	if opts.FlagsPerMinute > 0 {
		limit = rate.Limit(float64(opts.FlagsPerMinute) / 60.0)
	}

	return &Client{
		httpClient: &http.Client{},
		opts:       opts,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// FetchSchedules downloads the schedules page markup.
func (c *Client) FetchSchedules(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.opts.SchedulesURL, c.opts.ScheduleTimeout, pageHeaders)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchScorecard downloads the markup of a single match page.
func (c *Client) FetchScorecard(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("scorecard url is required")
	}
	body, err := c.get(ctx, pageURL, c.opts.ScorecardTimeout, pageHeaders)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchFlag downloads the raw GIF for a flag identifier.
func (c *Client) FetchFlag(ctx context.Context, flagID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.get(ctx, c.FlagURL(flagID), c.opts.FlagTimeout, imageHeaders)
}

// FlagURL returns the templated per-identifier flag URL.
func (c *Client) FlagURL(flagID string) string {
	return c.opts.FlagsBaseURL + flagID + ".gif"
}

type headerSet func(req *http.Request, userAgent string)

func pageHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Connection", "keep-alive")
}

func imageHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
}

// get performs a GET bounded by timeout and returns the full body.
func (c *Client) get(ctx context.Context, u string, timeout time.Duration, headers headerSet) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	headers(req, c.opts.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("Fetched upstream",
		"url", u,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode, Body: truncate(body, 200)}
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
