package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wichtelrunde/wichtel-api/internal/config"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
	"github.com/wichtelrunde/wichtel-api/internal/server"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.Get()

	log.Info("Starting Wichtel API",
		"port", cfg.Server.Port,
		"gin_mode", cfg.Server.GinMode,
		"draw_max_attempts", cfg.Draw.MaxAttempts,
	)

	container, err := postgres.NewContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error("Failed to close database connection", "error", err)
		}
	}()

	srv := server.New(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
