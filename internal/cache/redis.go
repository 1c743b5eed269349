package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
)

// Cache errors
var (
	ErrCacheUnavailable = errors.New("cache unavailable")
	ErrKeyNotFound      = errors.New("key not found")
)

// RedisCache is a thin wrapper around the Redis client used for identity-keyed
// vote throttling and other short-lived bookkeeping. It is never the source of
// truth for vote state; the database constraints are.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache instance and verifies connectivity.
func NewRedisCache(cfg *platformconfig.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from the cache.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get error: %w", err)
	}
	return result, nil
}

// SetNX stores a value only if the key does not exist yet. Returns true when
// the key was set by this call. Vote marks are write-once, so this is the
// only write the cache needs.
func (r *RedisCache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx error: %w", err)
	}
	return ok, nil
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
