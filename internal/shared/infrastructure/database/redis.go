package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
// An empty Host means the reference cache is disabled.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host has been configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns the host:port pair the client dials
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// NewRedis creates a new Redis client and verifies the connection
func NewRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("redis host is not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
