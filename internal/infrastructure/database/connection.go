package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/casefusion/casefusion-backend/internal/infrastructure/config"
)

// ConnectionPool wraps a pgx pool with health checking and connection
// statistics. All case-data repositories read through it.
type ConnectionPool struct {
	pool   *pgxpool.Pool
	config *config.DatabaseConfig
	logger *zap.Logger

	mu              sync.RWMutex
	lastHealthCheck time.Time
	healthy         bool
	healthCheckStop chan struct{}
}

// NewConnectionPool connects to the case database and starts the periodic
// health check.
func NewConnectionPool(cfg *config.DatabaseConfig, logger *zap.Logger) (*ConnectionPool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cp := &ConnectionPool{
		pool:            pool,
		config:          cfg,
		logger:          logger,
		healthy:         true,
		lastHealthCheck: time.Now(),
		healthCheckStop: make(chan struct{}),
	}
	go cp.healthCheckRoutine()

	logger.Info("database connection pool initialized",
		zap.Int32("max_connections", poolConfig.MaxConns))
	return cp, nil
}

// Pool exposes the underlying pgx pool to the repositories.
func (cp *ConnectionPool) Pool() *pgxpool.Pool {
	return cp.pool
}

// Healthy reports the result of the most recent health check.
func (cp *ConnectionPool) Healthy() bool {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return cp.healthy
}

// Stats returns a snapshot of the pool counters.
func (cp *ConnectionPool) Stats() *pgxpool.Stat {
	return cp.pool.Stat()
}

// Close stops the health check and closes the pool.
func (cp *ConnectionPool) Close() {
	close(cp.healthCheckStop)
	cp.pool.Close()
}

func (cp *ConnectionPool) healthCheckRoutine() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cp.healthCheckStop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := cp.pool.Ping(ctx)
			cancel()

			cp.mu.Lock()
			cp.lastHealthCheck = time.Now()
			wasHealthy := cp.healthy
			cp.healthy = err == nil
			cp.mu.Unlock()

			if err != nil && wasHealthy {
				cp.logger.Warn("database health check failed", zap.Error(err))
			} else if err == nil && !wasHealthy {
				cp.logger.Info("database connection recovered")
			}
		}
	}
}
