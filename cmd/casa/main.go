// Casa - Real-estate agency back office.
// Copyright (c) 2025 opensource.realty
// Licensed under the Apache License 2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/opensource-realty/casa/internal/api"
	"github.com/opensource-realty/casa/internal/bus"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/ingest"
	"github.com/opensource-realty/casa/internal/repository"
	"github.com/opensource-realty/casa/internal/seed"
	"github.com/opensource-realty/casa/internal/service"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Local development overrides; absence of a .env file is fine
	_ = godotenv.Load()

	cfg := domain.FromEnv()
	setupLogger(cfg.Logging)

	slog.Info("starting casa",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)
	slog.Info("configuration loaded",
		"repository", cfg.Repository.Driver,
		"eventbus", cfg.EventBus.Type,
		"seed", cfg.Seed,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize Repository
	repo, err := repository.New(ctx, cfg.Repository)
	if err != nil {
		slog.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close(context.Background())
	slog.Info("repository initialized", "driver", cfg.Repository.Driver)

	// Initialize EventBus
	busImpl, err := bus.New(cfg.EventBus)
	if err != nil {
		slog.Error("failed to initialize event bus", "error", err)
		os.Exit(1)
	}
	defer busImpl.Close()
	slog.Info("event bus initialized", "type", cfg.EventBus.Type)

	// Seed demo data into empty collections
	if cfg.Seed {
		if err := seed.Apply(ctx, repo); err != nil {
			slog.Error("failed to seed data", "error", err)
			os.Exit(1)
		}
	}

	// Initialize domain services
	services := service.New(repo, busImpl)

	// Start ingest worker for generated entities
	ingestWorker := ingest.NewWorker(busImpl, services)
	if err := ingestWorker.Start(ctx); err != nil {
		slog.Error("failed to start ingest worker", "error", err)
		os.Exit(1)
	}

	// Initialize Server
	srv := api.NewServer(cfg.Server, services, repo, busImpl, Version)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("casa is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	// Stop ingest worker first so no writes land mid-shutdown
	ingestWorker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("casa shutdown complete")
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

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════╗")
	fmt.Println("  ║               🏠 CASA                     ║")
	fmt.Println("  ║    Real-Estate Agency Back Office         ║")
	fmt.Println("  ╚═══════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    GET/POST       /counterparties                      - Counterparty CRUD")
	fmt.Println("    GET/PUT/DELETE /counterparties/{id}")
	fmt.Println("    GET/POST       /properties                          - Property CRUD")
	fmt.Println("    GET/PUT/DELETE /properties/{id}")
	fmt.Println("    GET/POST       /requests                            - Request CRUD")
	fmt.Println("    GET/PUT/DELETE /requests/{id}")
	fmt.Println("    GET /analytics/sellers                              - Sellers in a period")
	fmt.Println("    GET /analytics/top-clients                          - Top-5 purchase/sale clients")
	fmt.Println("    GET /analytics/property-type-statistics             - Requests per property type")
	fmt.Println("    GET /analytics/min-amount-clients                   - Clients at the minimum amount")
	fmt.Println("    GET /analytics/clients-by-property-type             - Purchasers of a property type")
	fmt.Println("    GET /health                                         - Health check")
	fmt.Println()
}
