package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gorm.io/gorm"

	"luminadecor/internal/ai"
	"luminadecor/internal/config"
	"luminadecor/internal/db"
	"luminadecor/internal/db/mock"
	"luminadecor/internal/history"
	"luminadecor/internal/intake"
	applog "luminadecor/internal/log"
	"luminadecor/internal/server"
	"luminadecor/internal/wizard"
)

const defaultSessionLifetime = 12 * time.Hour

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	deps, err := wizardDeps(ctx, cfg, database)
	if err != nil {
		applog.Error(ctx, "failed to prepare wizard dependencies", "error", err)
		return 1
	}

	registry := wizard.NewRegistry(deps)

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Registry: registry,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, stop := subscribeShutdownSig()
	defer stop()

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	maxIdle := sessionIdleLimit(cfg.Auth.Session.Lifetime)
	go sweepSessions(sweepCtx, registry, maxIdle, sweepInterval(maxIdle))

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	return 0
}

// sessionIdleLimit matches the cookie lifetime: a wizard session untouched
// for that long can no longer be reached by its browser.
func sessionIdleLimit(lifetime time.Duration) time.Duration {
	if lifetime <= 0 {
		return defaultSessionLifetime
	}
	return lifetime
}

func sweepInterval(maxIdle time.Duration) time.Duration {
	interval := maxIdle / 4
	if interval < time.Minute {
		return time.Minute
	}
	return interval
}

// sweepSessions evicts idle wizard sessions until ctx is done.
func sweepSessions(ctx context.Context, registry *wizard.Registry, maxIdle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := registry.Sweep(maxIdle); removed > 0 {
				applog.Info(ctx, "idle wizard sessions evicted", "removed", removed, "remaining", registry.Len())
			}
		}
	}
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.UseMock || strings.TrimSpace(cfg.URL) == "" {
		if !cfg.UseMock {
			applog.Warn(ctx, "no database URL configured, using in-memory database")
		}
		return newMockDatabaseFunc(ctx)
	}
	return configureDatabase(cfg)
}

func wizardDeps(ctx context.Context, cfg config.Config, database *gorm.DB) (wizard.Deps, error) {
	store, err := history.New(database, history.Options{
		Limit:    cfg.History.Limit,
		MaxBytes: cfg.History.MaxBytes,
	})
	if err != nil {
		return wizard.Deps{}, err
	}

	deps := wizard.Deps{
		History:          store,
		Collector:        intake.NewCollector(cfg.Wizard.MaxImageBytes),
		AnalysisTimeout:  cfg.Wizard.AnalysisTimeout,
		VariationTimeout: cfg.Wizard.VariationTimeout,
	}

	client, err := ai.NewClient(ai.Config{
		APIKey:     cfg.AI.APIKey,
		Model:      cfg.AI.Model,
		ImageModel: cfg.AI.ImageModel,
		BaseURL:    cfg.AI.BaseURL,
	})
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		applog.Warn(ctx, "no AI API key configured, analysis is disabled")
	case err != nil:
		return wizard.Deps{}, err
	default:
		deps.Analyzer = client
		deps.Visualizer = client
		applog.Info(ctx, "AI client configured", "model", client.Model())
	}
	return deps, nil
}
