// Package main implements the MedFluent server, which serves one learner's
// lesson progression and in-app economy over a local HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/medfluent/internal/config"
	"github.com/phrazzld/medfluent/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"cache_enabled", cfg.Cache.Enabled)
	if cfg.Catalog.Path != "" {
		log.Debug("Course definition configured", "path", cfg.Catalog.Path)
	}

	return cfg, log, nil
}

// loadConfig honours MEDFLUENT_CONFIG as an explicit config file.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv(config.EnvPrefix + "_CONFIG"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
