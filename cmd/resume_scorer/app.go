package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/resume-scorer/internal/adaptive"
	"github.com/jonathan/resume-scorer/internal/cache"
	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/grammar"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/tables"
)

// app holds the wired collaborators of one command invocation
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	scorer  *adaptive.Scorer
	closers []func()
}

// loadConfig reads the config file and environment, then applies flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if _, err := observability.ParseLogLevel(o.logLevel); err != nil {
			return nil, err
		}
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// newApp wires config, logging, cache, grammar checker, fetcher and scorer.
// Metrics are only collected when withMetrics is set (the server exposes them).
func newApp(ctx context.Context, opts *rootOptions, logOut io.Writer, withMetrics bool) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	if withMetrics {
		a.metrics = observability.NewMetrics()
	}

	c, err := a.buildCache(ctx)
	if err != nil {
		return nil, err
	}

	scorerOpts := []adaptive.Option{
		adaptive.WithCache(c),
		adaptive.WithFetcher(fetch.NewCachedFetcher(c, fetchOptions(cfg.Fetch), logger)),
		adaptive.WithMetrics(a.metrics),
		adaptive.WithLogger(logger),
	}
	if checker := buildGrammarChecker(cfg.Grammar, logger); checker != nil {
		scorerOpts = append(scorerOpts, adaptive.WithGrammarChecker(checker))
	}

	a.scorer = adaptive.New(scoring.New(tables.Default()), scorerOpts...)
	return a, nil
}

// buildCache selects the configured cache backend
func (a *app) buildCache(ctx context.Context) (cache.Cache, error) {
	switch a.cfg.Cache.Backend {
	case config.CacheNone:
		return cache.Noop{}, nil
	case config.CachePostgres:
		pg, err := cache.ConnectPostgres(ctx, a.cfg.Cache.DatabaseURL, a.cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect cache database: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		if n, err := pg.Prune(ctx); err != nil {
			a.logger.Warn("cache prune failed", "error", err)
		} else if n > 0 {
			a.logger.Info("pruned expired cache entries", "count", n)
		}
		return pg, nil
	default:
		return cache.NewMemoryCache(a.cfg.Cache.TTL), nil
	}
}

// buildGrammarChecker returns nil when no LanguageTool URL is configured
func buildGrammarChecker(cfg config.GrammarConfig, logger *slog.Logger) grammar.Checker {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil
	}

	lt := grammar.NewLanguageToolChecker(cfg.URL, cfg.Timeout)
	if cfg.Language != "" {
		lt.Language = cfg.Language
	}
	if !cfg.Breaker.Enabled {
		return lt
	}
	return grammar.NewBreakerChecker(lt, grammar.BreakerSettings{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		MinRequests:      cfg.Breaker.MinRequests,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}, logger)
}

func fetchOptions(cfg config.FetchConfig) *fetch.Options {
	opts := fetch.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	return opts
}

// Close releases external connections
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// readInput reads a file, or stdin when path is "-"
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
