package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore persists cache entries in a single table. Upserts go through
// ON CONFLICT so concurrent writers degrade to last-writer-wins, matching the
// cache contract.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the cache table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS api_cache (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create api_cache table: %w", err)
	}
	return nil
}

// Get returns the value if present and unexpired. Expired rows are deleted
// on read.
func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt time.Time
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM api_cache WHERE key = $1`, key).
		Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache select: %w", err)
	}

	if time.Now().After(expiresAt) {
		_, _ = p.db.ExecContext(ctx, `DELETE FROM api_cache WHERE key = $1`, key)
		return nil, false, nil
	}

	return value, true, nil
}

// Set upserts the value with expiry now+ttl, resetting created_at.
func (p *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO api_cache (key, value, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    created_at = EXCLUDED.created_at,
		    expires_at = EXCLUDED.expires_at`,
		key, value, now, now.Add(ttl))
	if err != nil {
		return fmt.Errorf("cache upsert: %w", err)
	}
	return nil
}

// Delete removes the row; absent keys are a no-op.
func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM api_cache WHERE key = $1`, key); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// SweepExpired removes every expired row. The expiry comparison runs inside
// the DELETE itself, so rows refreshed mid-sweep are untouched.
func (p *PostgresStore) SweepExpired(ctx context.Context) (int, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM api_cache WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

// Age reports time since the row was written.
func (p *PostgresStore) Age(ctx context.Context, key string) (time.Duration, bool, error) {
	var createdAt time.Time
	err := p.db.QueryRowContext(ctx,
		`SELECT created_at FROM api_cache WHERE key = $1`, key).
		Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache age: %w", err)
	}
	return time.Since(createdAt), true, nil
}
