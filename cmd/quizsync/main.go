package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"quizsync/internal/cache"
	"quizsync/internal/config"
	"quizsync/internal/oracle"
	"quizsync/internal/publisher"
	"quizsync/internal/scheduler"
	"quizsync/internal/service"
	"quizsync/internal/storage/sqlite"
	"quizsync/internal/transport"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("opened local database", "path", cfg.Database.Path)

	// Initialize remote client
	remote := transport.New(transport.Config{
		BaseURL:        cfg.Server.BaseURL,
		Timeout:        cfg.Server.Timeout,
		SyncTimeout:    cfg.Server.SyncTimeout,
		MaxAttempts:    cfg.Server.Retry.MaxAttempts,
		InitialBackoff: cfg.Server.Retry.InitialBackoff,
		MaxBackoff:     cfg.Server.Retry.MaxBackoff,
	}, logger)

	// Initialize stores
	kvStore := sqlite.NewKVStore(db)
	contentCache := cache.New(db, remote, logger)

	// Initialize RabbitMQ publisher, optional
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	// Create the sync engine
	engine := service.New(
		kvStore,
		contentCache,
		remote,
		oracle.New(time.Now().UnixNano()),
		pub,
		logger,
		cfg.Sync,
	)

	sched := scheduler.NewScheduler(engine, cfg.Sync.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting quiz syncer",
		"server", cfg.Server.BaseURL,
		"interval", cfg.Sync.Interval,
		"batch_size", cfg.Sync.BatchSize,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
