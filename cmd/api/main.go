// Command api runs the case-intelligence HTTP service.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/casefusion/casefusion-backend/internal/api/rest"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/cache"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/config"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/database"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/repository"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/telemetry"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := telemetry.SetupLogger(cfg.LogLevel)
	if err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx := context.Background()
	otelProvider, err := telemetry.InitializeOpenTelemetry(ctx, &telemetry.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SamplingRate:   cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	// zap for the infrastructure layers that log with it
	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Error("failed to create zap logger", "error", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	pool, err := database.NewConnectionPool(&cfg.Database, zapLogger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runCache, err := cache.NewRunCache(&cfg.Redis, zapLogger)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	thresholds := intel.DefaultThresholds()
	if cfg.Analysis.HighRiskScore > 0 {
		thresholds.HighRiskScore = cfg.Analysis.HighRiskScore
	}
	if cfg.Analysis.TopN > 0 {
		thresholds.TopN = cfg.Analysis.TopN
	}
	if cfg.Analysis.LargeTransaction > 0 {
		thresholds.LargeTransaction = cfg.Analysis.LargeTransaction
	}

	engine := intel.NewEngine(thresholds, logger)
	metrics := intel.NewMetrics(prometheus.DefaultRegisterer)
	fetchers := intel.Fetchers{
		Entities:  repository.NewEntityRepository(pool.Pool()),
		Transfers: repository.NewTransferRepository(pool.Pool()),
		Calls:     repository.NewCallRepository(pool.Pool()),
		Crypto:    repository.NewCryptoRepository(pool.Pool()),
		Locations: repository.NewLocationRepository(pool.Pool()),
	}
	service := intel.NewService(fetchers, engine, runCache, logger, metrics)

	handler := rest.NewHandler(
		service,
		repository.NewCaseRepository(pool.Pool()),
		pool.Healthy,
		logger,
	)

	server := rest.NewServer(cfg, handler, logger,
		runCache.Close,
		func() error { pool.Close(); return nil },
		func() error { return otelProvider.Shutdown(context.Background()) },
	)

	if err := server.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
