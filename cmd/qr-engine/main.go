// cmd/qr-engine/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"qr-engine/internal/api"
	"qr-engine/internal/codec"
	"qr-engine/internal/common/camunda"
	"qr-engine/internal/common/config"
	"qr-engine/internal/common/database"
	"qr-engine/internal/common/logger"
	"qr-engine/internal/common/observability"
	"qr-engine/internal/reference"
	"qr-engine/internal/render"
	generateqr "qr-engine/internal/workers/qr/generate-qr"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting QR engine...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Reference tables ---
	var db *sql.DB
	var pg *database.PostgresClient
	if cfg.Reference.Source == config.ReferenceSourcePostgres {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		db = pg.DB
	}

	loader, err := reference.NewLoader(cfg.Reference, db)
	if err != nil {
		zapLog.Fatal("invalid reference configuration", zap.Error(err))
	}
	tables, err := loader.Load(ctx)
	if err != nil {
		zapLog.Fatal("reference tables failed to load", zap.Error(err))
	}
	// tables are loaded once at startup
	if pg != nil {
		if err := pg.Close(); err != nil {
			zapLog.Warn("Error closing PostgreSQL pool", zap.Error(err))
		}
	}
	zapLog.Info("Reference tables loaded",
		zap.String("source", loader.Source()),
		zap.Any("stats", tables.Stats()),
	)

	engine := codec.NewEngine(tables, codec.Options{
		AppLandingURL: cfg.Codec.AppLandingURL,
		DisplayLocale: cfg.Codec.DisplayLocale,
	})

	// --- Renderer ---
	var renderer render.Renderer
	if cfg.Render.Enabled {
		renderer = render.NewHTTPRenderer(cfg.Render.ServiceURL, config.GetDuration(cfg.Render.Timeout), log)

		if cfg.Render.CacheEnabled {
			rdb := database.NewRedis(cfg.Database.Redis)
			if err := rdb.Ping(ctx); err != nil {
				// the cache degrades to a bypass; rendering still works
				zapLog.Warn("redis unreachable at startup, render cache will bypass", zap.Error(err))
			}
			defer rdb.Close()
			renderer = render.NewCachingRenderer(renderer, rdb.Client, time.Duration(cfg.Render.CacheTTL)*time.Second, log)
		}
		zapLog.Info("Renderer configured",
			zap.String("serviceURL", cfg.Render.ServiceURL),
			zap.Bool("cache", cfg.Render.CacheEnabled),
		)
	}

	// --- Camunda ---
	var camundaClient *camunda.Client
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
	}

	handler, err := generateqr.NewHandler(generateqr.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       camundaClient,
		Logger:        log,
		Engine:        engine,
		Renderer:      renderer,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("failed to create generate-qr handler", zap.Error(err))
	}

	if camundaClient != nil {
		if err := handler.Register(); err != nil {
			zapLog.Fatal("failed to register generate-qr worker", zap.Error(err))
		}
	}

	// --- HTTP API, health & metrics ---
	server, err := api.NewServer(api.Options{
		Config:    cfg.Server,
		Generator: handler.Service(),
		Logger:    log,
		Health:    handler.HealthCheck,
	})
	if err != nil {
		zapLog.Fatal("failed to create HTTP server", zap.Error(err))
	}

	if cfg.Server.Enabled {
		go func() {
			if err := server.Start(); err != nil {
				zapLog.Error("HTTP server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Server.Enabled {
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error shutting down HTTP server", zap.Error(err))
		}
	}

	handler.Close()

	if camundaClient != nil {
		if err := camundaClient.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("QR engine stopped gracefully")
}
