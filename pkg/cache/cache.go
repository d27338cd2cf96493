// Package cache is a thin JSON cache over Redis for hot account reads.
// Misses and failures degrade to store reads; nothing here is load-bearing.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
}

func New(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 3

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

// Get retrieves a JSON-encoded value; false on miss or decode failure.
func (r *Redis) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores a JSON-encoded value. Errors are swallowed; the cache is
// best-effort.
func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.client.Set(ctx, key, data, ttl)
}

func (r *Redis) Del(ctx context.Context, keys ...string) {
	r.client.Del(ctx, keys...)
}

func (r *Redis) Close() {
	r.client.Close()
}
