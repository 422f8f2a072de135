package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/chessclub/internal/dependencies/clock"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/storage"
	"github.com/mcoot/chessclub/internal/storage/memory"
	"github.com/mcoot/chessclub/internal/storage/postgres"
	redisstorage "github.com/mcoot/chessclub/internal/storage/redis"
	"github.com/mcoot/chessclub/internal/storage/supabase"
	"github.com/mcoot/chessclub/internal/web/sse"
)

// Store type constants
const (
	StoreTypeSupabase = "supabase"
	StoreTypePostgres = "postgres"
	StoreTypeRedis    = "redis"
	StoreTypeMemory   = "memory"
)

// postgresConnectTimeout bounds the startup ping only; queries carry no timeout
const postgresConnectTimeout = 5 * time.Second

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock clock.Clock

	// Services
	View        *leaderboard.View
	Coordinator *leaderboard.Coordinator
	Hub         *sse.Hub

	detach  func()
	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StoreType selects the store backend
	// If empty, defaults to "supabase"
	StoreType string
	// Supabase holds the PostgREST endpoint (required if StoreType is "supabase")
	Supabase *supabase.Config
	// DatabaseURL is the Postgres DSN (required if StoreType is "postgres")
	DatabaseURL string
	// Redis holds Redis connection settings (required if StoreType is "redis")
	Redis *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeSupabase
	}

	var (
		store   storage.Store
		closers []io.Closer
	)
	switch storeType {
	case StoreTypeSupabase:
		if cfg.Supabase == nil {
			return nil, errors.New("supabase config required when StoreType is supabase")
		}
		s, err := supabase.New(*cfg.Supabase)
		if err != nil {
			return nil, err
		}
		store = s
	case StoreTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StoreType is postgres")
		}
		s, err := postgres.Connect(cfg.DatabaseURL, postgresConnectTimeout)
		if err != nil {
			return nil, err
		}
		store = s
		closers = append(closers, s)
	case StoreTypeRedis:
		if cfg.Redis == nil {
			return nil, errors.New("redis config required when StoreType is redis")
		}
		s, err := redisstorage.New(*cfg.Redis, clk)
		if err != nil {
			return nil, err
		}
		store = s
		closers = append(closers, s)
	case StoreTypeMemory:
		store = memory.New(clk)
	default:
		return nil, fmt.Errorf("invalid StoreType %q: must be one of supabase, postgres, redis, memory", storeType)
	}

	logger.Info("store selected", slog.String("store_type", storeType))

	app := newWithDependencies(store, clk, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, logger *slog.Logger) *App {
	view := leaderboard.NewView(store, clk, logger)
	coordinator := leaderboard.NewCoordinator(store, view, logger)

	hub := sse.NewHub(logger)
	go hub.Run()
	detach := sse.NewBroadcaster(hub, logger).Attach(view)

	return &App{
		Store:       store,
		Clock:       clk,
		View:        view,
		Coordinator: coordinator,
		Hub:         hub,
		detach:      detach,
	}
}

// Close tears the view down, disconnects SSE clients and releases the store
func (a *App) Close() error {
	a.View.Deactivate()
	a.detach()
	a.Hub.Close()

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
