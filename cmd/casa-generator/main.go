package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/opensource-realty/casa/internal/bus"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/generator"
)

// Version information (set via ldflags)
var Version = "dev"

func main() {
	_ = godotenv.Load()

	cfg := domain.FromEnv()
	setupLogger(cfg.Logging)

	slog.Info("starting casa-generator",
		"version", Version,
		"eventbus", cfg.EventBus.Type,
		"batch_size", cfg.Generator.BatchSize,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	busImpl, err := bus.New(cfg.EventBus)
	if err != nil {
		slog.Error("failed to initialize event bus", "error", err)
		os.Exit(1)
	}
	defer busImpl.Close()

	worker := generator.NewWorker(busImpl, generator.NewContract(), cfg.Generator)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("generator failed", "error", err)
		os.Exit(1)
	}

	slog.Info("casa-generator shutdown complete")
}

func setupLogger(cfg domain.LoggingConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
