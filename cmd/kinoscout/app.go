package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	v1 "github.com/vmunix/kinoscout/internal/api/v1"
	"github.com/vmunix/kinoscout/internal/config"
	"github.com/vmunix/kinoscout/internal/kinopoisk"
	"github.com/vmunix/kinoscout/internal/library"
	"github.com/vmunix/kinoscout/internal/sources"
	"github.com/vmunix/kinoscout/internal/sources/builtin"
	sourcelib "github.com/vmunix/kinoscout/internal/sources/library"
)

// app holds the components every command builds from the config.
type app struct {
	cfg         *config.Config
	log         *slog.Logger
	resolver    *kinopoisk.Client
	registry    *sources.Registry
	coordinator *sources.Coordinator
	presenter   *sources.Presenter
	store       *library.Store // nil when the library provider is disabled
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// cliLogLevel keeps interactive output quiet unless --verbose is set.
func cliLogLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// loadConfig loads the --config file, or the discovered one.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newApp wires the resolver, the provider registry, the coordinator and
// the presenter.
func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	a.resolver = kinopoisk.NewClient(cfg.Kinopoisk.APIKey,
		kinopoisk.WithBaseURL(cfg.Kinopoisk.BaseURL),
		kinopoisk.WithCacheTTL(cfg.Kinopoisk.CacheTTL),
		kinopoisk.WithHTTPClient(&http.Client{Timeout: cfg.Kinopoisk.Timeout}),
		kinopoisk.WithLogger(log),
	)

	var catalog sourcelib.Catalog
	if cfg.Providers.Library.IsEnabled() {
		store, err := library.Open(cfg.Providers.Library.Path)
		if err != nil {
			return nil, fmt.Errorf("open library: %w", err)
		}
		a.store = store
		catalog = store
	}

	a.registry = sources.NewRegistry()
	if err := builtin.Register(a.registry, cfg.Providers, catalog, log); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.coordinator = sources.NewCoordinator(a.registry, log.With("component", "coordinator"),
		sources.WithTimeout(cfg.Aggregation.Timeout),
	)
	a.presenter = sources.NewPresenter(
		sources.WithLimit(sources.KindTranslations, cfg.Presentation.Limit),
		sources.WithLimit(sources.KindStreams, cfg.Presentation.Limit),
		sources.WithLimit(sources.KindTorrents, cfg.Presentation.TorrentLimit),
	)
	return a, nil
}

// loadApp loads the config and builds the app with a CLI logger.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, newLogger(cmd.ErrOrStderr(), cliLogLevel()))
}

// healthChecks lists the reachability probes reported by the status endpoint:
// the library database and every provider that can ping its upstream.
func (a *app) healthChecks() []v1.HealthCheck {
	var checks []v1.HealthCheck
	if a.store != nil {
		checks = append(checks, v1.HealthCheck{Name: sourcelib.Name, Check: a.store.Ping})
	}
	for _, p := range a.registry.All() {
		if pinger, ok := p.(interface{ Ping(context.Context) error }); ok {
			checks = append(checks, v1.HealthCheck{Name: p.Name(), Check: pinger.Ping})
		}
	}
	return checks
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
