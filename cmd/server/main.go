package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hurlingham/leaguesync/internal/api"
	"github.com/hurlingham/leaguesync/internal/factory"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	redisstorage "github.com/hurlingham/leaguesync/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	if debounce := os.Getenv("RECONCILE_DEBOUNCE"); debounce != "" {
		d, err := time.ParseDuration(debounce)
		if err != nil {
			logger.Error("invalid RECONCILE_DEBOUNCE", slog.String("value", debounce))
			os.Exit(1)
		}
		cfg.ReconcileConfig = &reconcile.Config{Debounce: d}
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the reconciliation loop. A failed initial reconcile is not
	// fatal: the server comes up on an empty snapshot and the next
	// change signal or toggle retries the fetch.
	if err := app.Reconciler.Start(ctx); err != nil {
		logger.Warn("starting with empty snapshot", slog.String("error", err.Error()))
	}
	defer func() {
		_ = app.Reconciler.Close()
	}()

	// Forward change signals to connected browsers
	go app.Hub.Run()
	defer app.Hub.Close()

	hubSub, err := app.Notifier.Subscribe(ctx, notify.AllTables, app.Hub.BroadcastChange)
	if err != nil {
		logger.Error("failed to subscribe hub to change feed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		_ = hubSub.Unsubscribe()
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Reconciler: app.Reconciler,
		Gateway:    app.Gateway,
		Hub:        app.Hub,
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
