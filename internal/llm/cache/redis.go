package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for cached LLM responses.
const responseKeyPrefix = "llm:response:"

// Redis is the shared cache for deployments running multiple pipeline
// instances against the same model.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed response cache. The client lifecycle is
// managed externally.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, responseKeyPrefix+key, value, ttl).Err()
}
