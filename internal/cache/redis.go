// Package cache provides the Redis-backed request rate limiter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key this package writes.
const DefaultKeyPrefix = "catalogapi:"

// Cache wraps a Redis client.
type Cache struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithKeyPrefix overrides DefaultKeyPrefix, for sharing one Redis between
// deployments.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.keyPrefix = prefix
	}
}

// New connects to redisURL and verifies the connection.
func New(ctx context.Context, redisURL string, opts ...Option) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Rate limit checks are one round trip each; a small pool suffices.
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 2 * time.Second
	opt.ReadTimeout = 500 * time.Millisecond
	opt.WriteTimeout = 500 * time.Millisecond
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	c := &Cache{client: client, keyPrefix: DefaultKeyPrefix, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
