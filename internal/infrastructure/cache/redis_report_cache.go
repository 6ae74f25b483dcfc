package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetcare/backend/internal/application/report"
)

// RedisReportCache implements report.ResultCache using Redis. Payloads are
// stored as JSON under a common prefix with a TTL, so repeated report
// requests inside the freshness window skip the snapshot fetch entirely.
// Suitable for distributed deployments where multiple instances share one
// cache.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "vetcare:report:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "vetcare:report:"
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get loads a cached payload into dest. Returns false on a miss.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cached report: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores a payload with the given TTL.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cached report: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Ensure RedisReportCache implements report.ResultCache
var _ report.ResultCache = (*RedisReportCache)(nil)
