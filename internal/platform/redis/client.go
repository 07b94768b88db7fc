// Package redis provides the shared connection used by the LLM response
// cache and the readiness probe. Redis is optional: without a REDIS_URL the
// constructor returns nil and the cache falls back to in-memory storage.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"swiftflow/internal/platform/config"
)

// defaultPingBudget bounds the startup ping when no dial timeout is set.
const defaultPingBudget = 5 * time.Second

// Client is a connected go-redis client. It satisfies ops.HealthChecker so
// the readiness endpoint reports cache availability.
type Client struct {
	*redis.Client
}

// New connects using the configured URL and pool tuning and verifies the
// connection with a ping bounded by the dial timeout. A blank URL yields a
// nil client and no error.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	tune(opts, cfg)

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingBudget(cfg))
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	return &Client{Client: client}, nil
}

// tune overlays the pipeline's pool and timeout knobs onto the parsed URL
// options. Unset knobs keep whatever the URL or go-redis chose.
func tune(opts *redis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

func pingBudget(cfg config.RedisConfig) time.Duration {
	if cfg.DialTimeout > 0 {
		return cfg.DialTimeout
	}
	return defaultPingBudget
}

// Health reports whether Redis still answers; used by the readiness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
