package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cache entries in Redis with native TTL expiry. Values are
// wrapped in an envelope carrying created_at, since Redis itself only tracks
// the remaining TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type redisEnvelope struct {
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewRedisStore wraps a connected Redis client. prefix namespaces the keys
// ("cache" by default).
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cache"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + ":" + key
}

// Get returns the value if the key is still live.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, false, fmt.Errorf("cache envelope decode: %w", err)
	}
	return env.Value, true, nil
}

// Set stores the value with the given TTL.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	env := redisEnvelope{Value: value, CreatedAt: time.Now()}
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("cache envelope encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), b, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the key; absent keys are a no-op.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// SweepExpired is a no-op: Redis expires keys on its own clock.
func (r *RedisStore) SweepExpired(_ context.Context) (int, error) {
	return 0, nil
}

// Age reports time since the envelope was written.
func (r *RedisStore) Age(ctx context.Context, key string) (time.Duration, bool, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache age: %w", err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return 0, false, fmt.Errorf("cache envelope decode: %w", err)
	}
	return time.Since(env.CreatedAt), true, nil
}
