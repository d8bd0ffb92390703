package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/app"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/observability"
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

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire console", zap.Error(err))
	}
	defer container.Close()

	console, err := container.Console()
	if err != nil {
		logger.Fatal("failed to build console", zap.Error(err))
	}

	go func() {
		logger.Info("console listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("backend", cfg.API.BaseURL),
			zap.String("token_store", cfg.Store.Backend))
		if err := console.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = console.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
