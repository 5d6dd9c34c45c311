// Package cache implements TTL-bounded caching with a durable backing store
// and a bounded in-process fallback. Durable-store failures are always
// absorbed: callers see a miss or stale-free data, never a storage error.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/betpilot/tipster/internal/metrics"
)

// Cache fronts an optional durable Store with an in-process fallback. If no
// durable store is configured at construction, the process runs memory-only
// for its lifetime; there are no retries to upgrade back.
type Cache struct {
	durable Store
	memory  *MemoryStore
	logger  *zap.Logger
}

// New creates a Cache. durable may be nil (memory-only operation).
func New(durable Store, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		durable: durable,
		memory:  NewMemoryStore(DefaultMemoryCapacity),
		logger:  logger,
	}
}

// Durable reports whether a durable backend is configured.
func (c *Cache) Durable() bool { return c.durable != nil }

// Get returns the cached value for key, or ok=false on a miss. A durable
// read failure degrades to the fallback store instead of propagating.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.durable != nil {
		value, ok, err := c.durable.Get(ctx, key)
		if err != nil {
			c.logger.Warn("durable cache read failed, using fallback", zap.String("key", key), zap.Error(err))
			metrics.CacheFallbacks.Inc()
			return c.memoryGet(ctx, key)
		}
		if ok {
			metrics.CacheHits.WithLabelValues("durable").Inc()
			return value, true
		}
		metrics.CacheMisses.Inc()
		return nil, false
	}
	return c.memoryGet(ctx, key)
}

func (c *Cache) memoryGet(ctx context.Context, key string) ([]byte, bool) {
	value, ok, _ := c.memory.Get(ctx, key)
	if ok {
		metrics.CacheHits.WithLabelValues("memory").Inc()
		return value, true
	}
	metrics.CacheMisses.Inc()
	return nil, false
}

// Set upserts the value with the given TTL. A durable write failure falls
// back to the in-process store, best effort.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c.durable != nil {
		if err := c.durable.Set(ctx, key, value, ttl); err != nil {
			c.logger.Warn("durable cache write failed, using fallback", zap.String("key", key), zap.Error(err))
			metrics.CacheFallbacks.Inc()
			_ = c.memory.Set(ctx, key, value, ttl)
		}
		return
	}
	_ = c.memory.Set(ctx, key, value, ttl)
}

// Delete removes key from both stores. Idempotent.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c.durable != nil {
		if err := c.durable.Delete(ctx, key); err != nil {
			c.logger.Warn("durable cache delete failed", zap.String("key", key), zap.Error(err))
		}
	}
	_ = c.memory.Delete(ctx, key)
}

// SweepExpired removes expired entries from both stores and returns the
// total removed.
func (c *Cache) SweepExpired(ctx context.Context) int {
	removed := 0
	if c.durable != nil {
		n, err := c.durable.SweepExpired(ctx)
		if err != nil {
			c.logger.Warn("durable cache sweep failed", zap.Error(err))
		}
		removed += n
	}
	n, _ := c.memory.SweepExpired(ctx)
	return removed + n
}

// Age reports how long ago key was written, or known=false when the backing
// store cannot say (the fallback never can).
func (c *Cache) Age(ctx context.Context, key string) (time.Duration, bool) {
	if c.durable != nil {
		age, known, err := c.durable.Age(ctx, key)
		if err != nil {
			c.logger.Warn("durable cache age lookup failed", zap.String("key", key), zap.Error(err))
			return 0, false
		}
		return age, known
	}
	age, known, _ := c.memory.Age(ctx, key)
	return age, known
}

// WithCache implements compute-cache-reuse: return the cached value when
// present, otherwise invoke producer and store its result under key for ttl.
// A producer failure propagates and caches nothing. There is no single-flight
// de-duplication: concurrent misses on the same key each invoke producer.
func WithCache[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T

	if raw, ok := c.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, true, nil
		}
		// A corrupt entry is treated as a miss and overwritten below.
		c.logger.Warn("cached value failed to decode, refetching", zap.String("key", key))
	}

	value, err := producer(ctx)
	if err != nil {
		return zero, false, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		// The fetch succeeded; an unencodable value is a caller bug but the
		// fresh result is still usable.
		c.logger.Warn("produced value failed to encode, not cached", zap.String("key", key), zap.Error(err))
		return value, false, nil
	}
	c.Set(ctx, key, raw, ttl)

	return value, false, nil
}

// GenerateKey canonicalizes params into a deterministic cache key:
// lexicographically sorted key=value pairs joined by & under prefix.
// Identical requests collide to the same key regardless of insertion order.
func GenerateKey(prefix string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return prefix + ":" + strings.Join(pairs, "&")
}

// FormatAge renders a cache age for display. Unknown ages read "just now".
func FormatAge(age time.Duration, known bool) string {
	if !known {
		return "just now"
	}

	seconds := int(age.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d seconds ago", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d %s ago", minutes, pluralize("minute", minutes))
	}

	hours := minutes / 60
	return fmt.Sprintf("%d %s ago", hours, pluralize("hour", hours))
}

func pluralize(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
