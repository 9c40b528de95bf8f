package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rapidreads/internal/config"
	"rapidreads/internal/database"
	applog "rapidreads/internal/logger"
	"rapidreads/internal/server"
	"rapidreads/internal/services"
	"rapidreads/pkg/rabbitmq"

	"go.uber.org/zap"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := applog.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

// run opens the store, serves HTTP until ctx is cancelled and then shuts
// down in order: listener, background work, publisher, store.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	openCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	store, err := database.Open(openCtx, cfg.Store, logger.Named("store"))
	cancel()
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	var publisher services.CartEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger.Named("rabbitmq"))
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Error("Failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		publisher = mqClient
	}

	if cfg.SeedSampleData {
		seedCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		_, err := database.SeedSampleProducts(seedCtx, store.Products, logger.Named("seed"))
		cancel()
		if err != nil {
			return err
		}
	}

	svc := server.NewServices(cfg, store, publisher, logger)
	app := server.New(cfg, logger, svc)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	svc.Auth.Wait()
	return nil
}
