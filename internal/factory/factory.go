package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hurlingham/leaguesync/internal/api/sse"
	"github.com/hurlingham/leaguesync/internal/dependencies/clock"
	"github.com/hurlingham/leaguesync/internal/dependencies/random"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	"github.com/hurlingham/leaguesync/internal/services/availability"
	"github.com/hurlingham/leaguesync/internal/services/roster"
	"github.com/hurlingham/leaguesync/internal/services/schedule"
	"github.com/hurlingham/leaguesync/internal/storage"
	"github.com/hurlingham/leaguesync/internal/storage/memory"
	redisstorage "github.com/hurlingham/leaguesync/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage and change feed
	Storage  storage.Storage
	Notifier notify.Notifier

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core
	Reconciler *reconcile.Reconciler

	// Services
	Gateway         *availability.Gateway
	RosterService   *roster.Service
	ScheduleService *schedule.Service

	// Presentation
	Hub *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ReconcileConfig holds reconciler settings (optional)
	// If nil, defaults to reconcile.DefaultConfig(); an explicit zero
	// Debounce disables the quiet window rather than restoring the default
	ReconcileConfig *reconcile.Config
}

// New creates a new application with all dependencies wired.
// The redis backend pairs redis storage with a redis pub/sub notifier
// so change signals cross process boundaries; the memory backend uses
// an in-process broker.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	var notifier notify.Notifier

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
		notifier = notify.NewBroker(logger)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		notifier = notify.NewRedis(redisStore.Client(), logger)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, notifier, clk, rnd, resolveReconcileConfig(cfg.ReconcileConfig), logger), nil
}

// resolveReconcileConfig applies the default settings only when no
// config was given at all; a config with a zero Debounce is an explicit
// request to reconcile without a quiet window
func resolveReconcileConfig(cfg *reconcile.Config) reconcile.Config {
	if cfg == nil {
		return reconcile.DefaultConfig()
	}
	return *cfg
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	notifier notify.Notifier,
	clk clock.Clock,
	rnd random.Random,
	reconcileCfg reconcile.Config,
	logger *slog.Logger,
) *App {
	reconciler := reconcile.New(store, notifier, clk, reconcileCfg, logger)
	gateway := availability.NewGateway(store, reconciler, notifier, logger)
	rosterService := roster.New(store, clk, rnd, notifier, logger)
	scheduleService := schedule.New(store, clk, notifier, logger)
	hub := sse.NewHub(logger)

	return &App{
		Storage:         store,
		Notifier:        notifier,
		Clock:           clk,
		Random:          rnd,
		Reconciler:      reconciler,
		Gateway:         gateway,
		RosterService:   rosterService,
		ScheduleService: scheduleService,
		Hub:             hub,
	}
}
