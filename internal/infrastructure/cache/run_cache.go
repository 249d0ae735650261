package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/casefusion/casefusion-backend/internal/infrastructure/config"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

// runKeyPrefix namespaces all analysis-run keys. One key per
// (case, language) pair; a refresh deletes every language for the case.
const runKeyPrefix = "intel:run:"

// RunCache stores finished analysis runs in Redis as JSON with a TTL.
// It implements intel.RunCache.
type RunCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRunCache connects to Redis and returns the run cache.
func NewRunCache(cfg *config.RedisConfig, logger *zap.Logger) (*RunCache, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("run cache initialized",
		zap.String("addr", cfg.URL),
		zap.Int("db", cfg.DB),
		zap.Duration("ttl", cfg.RunTTL))

	return &RunCache{client: client, ttl: cfg.RunTTL, logger: logger}, nil
}

// NewRunCacheWithClient wraps an existing client, used by tests.
func NewRunCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RunCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunCache{client: client, ttl: ttl, logger: logger}
}

func runKey(caseID, language string) string {
	return fmt.Sprintf("%s%s:%s", runKeyPrefix, caseID, language)
}

// Get returns the cached run for a case and language, or (nil, nil) on a
// miss. Corrupt payloads are dropped and treated as a miss.
func (c *RunCache) Get(ctx context.Context, caseID, language string) (*intel.AnalysisRun, error) {
	key := runKey(caseID, language)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var run intel.AnalysisRun
	if err := json.Unmarshal(data, &run); err != nil {
		c.logger.Warn("dropping corrupt cached run",
			zap.String("key", key),
			zap.Error(err))
		c.client.Del(ctx, key)
		return nil, nil
	}
	return &run, nil
}

// Set stores a finished run under its (case, language) key.
func (c *RunCache) Set(ctx context.Context, run *intel.AnalysisRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}

	key := runKey(run.CaseID, run.Language)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate removes every cached run for a case, all languages.
func (c *RunCache) Invalidate(ctx context.Context, caseID string) error {
	pattern := runKeyPrefix + caseID + ":*"

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *RunCache) Close() error {
	return c.client.Close()
}
