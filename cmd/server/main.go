// Package main is the entry point for the employee directory server.
//
// The main package stays minimal — its job is to:
// 1. Load configuration
// 2. Create dependencies (logger, store, seeder)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/service, etc.). This separation keeps components testable.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/employee-directory/internal/config"
	"github.com/sakif/employee-directory/internal/repository/memory"
	"github.com/sakif/employee-directory/internal/seed"
	"github.com/sakif/employee-directory/internal/server"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	}))

	// The store is created here (not inside the server) because two things
	// write to it: request handlers via the service, and the one-time seed
	// goroutine below.
	store := memory.New()

	// Seed in the background so startup never blocks on the network.
	// Seeding is best-effort: if randomuser.me is unreachable, Run logs a
	// warning and the directory simply starts empty.
	if cfg.Seed.Disabled {
		logger.Info("seeding disabled, starting with an empty directory")
	} else {
		seeder := seed.New(store, logger, cfg.Seed.URL, cfg.Seed.Count)
		go seeder.Run(context.Background())
	}

	srv := server.New(server.Config{Port: cfg.Port}, logger, store)

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
