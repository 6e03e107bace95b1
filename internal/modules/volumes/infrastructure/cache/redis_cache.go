package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "limbgen:volume-ref:"

// RedisCache stores minted volume references in Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a reference cache backed by client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached reference for key, if present
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read reference cache: %w", err)
	}
	return val, true, nil
}

// Set caches ref for key until ttl elapses
func (c *RedisCache) Set(ctx context.Context, key, ref string, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, ref, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write reference cache: %w", err)
	}
	return nil
}
