package cache

import (
	"context"
	"time"
)

// Store is TTL-bounded key/value storage. Implementations: Postgres, Redis,
// and the bounded in-process fallback.
type Store interface {
	// Get returns the value for key if present and unexpired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set upserts value under key with expiry now+ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// SweepExpired removes every entry whose expiry has passed, comparing
	// expiry at delete time so entries written mid-sweep survive.
	SweepExpired(ctx context.Context) (removed int, err error)

	// Age reports how long ago the entry was created. known is false when
	// the store cannot report creation time.
	Age(ctx context.Context, key string) (age time.Duration, known bool, err error)
}

// TTLs per data class. Odds move fast; historical data barely moves.
const (
	TTLOdds       = 15 * time.Minute
	TTLFixtures   = 30 * time.Minute
	TTLTeamStats  = time.Hour
	TTLPlayerInfo = 6 * time.Hour
	TTLSchedules  = 12 * time.Hour
	TTLHistorical = 24 * time.Hour
)
