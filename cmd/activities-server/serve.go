// cmd/activities-server/serve.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/database"
	"mergington-activities/internal/common/events"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the activities HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s aborted: %w", operationName, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*database.RedisClient, error) {
	rdb, err := database.NewRedis(cfg)
	if err != nil {
		return nil, err
	}

	err = retryWithBackoff(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx)
	}, 5, 500*time.Millisecond, log, "Redis connection")
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connected successfully", map[string]interface{}{
		"address": cfg.Address,
		"channel": cfg.Channel,
	})
	return rdb, nil
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer func() { _ = zapLog.Sync() }()

	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service":     cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	dir, err := directory.New(catalog)
	if err != nil {
		return fmt.Errorf("catalog rejected: %w", err)
	}
	log.Info("activity catalog loaded", map[string]interface{}{
		"activities": len(catalog),
		"source":     catalogSource(cfg.Catalog),
	})

	obs := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	defer obs.Shutdown()

	opts := []directory.Option{
		directory.WithTracer(obs.Tracer("mergington-activities/directory")),
	}
	var checks []server.HealthCheck

	if cfg.Redis.Enabled {
		rdb, err := connectRedis(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer rdb.Close()

		opts = append(opts, directory.WithPublisher(events.NewRedisPublisher(rdb.Client, cfg.Redis.Channel)))
		checks = append(checks, server.HealthCheck{Name: "redis", Check: rdb.Ping})
	}

	svc := directory.NewService(dir, log, opts...)
	srv := server.NewServer(cfg.Server, svc, log, obs, checks...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, stopping server...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}

	log.Info("Server stopped gracefully", nil)
	return nil
}

func catalogSource(cfg config.CatalogConfig) string {
	if cfg.Path == "" {
		return "embedded"
	}
	return cfg.Path
}
