package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/app"
	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/observability"
	"github.com/spec-kit/village-portal/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slots, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open slots", zap.Error(err))
	}
	defer slots.Close() //nolint:errcheck

	portal := app.New(ctx, cfg, logger, slots, app.Options{})
	server := portal.HTTP()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("slot_backend", cfg.Slots.Backend))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
