package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the cache table. Value is jsonb: callers store JSON documents.
const Schema = `CREATE TABLE IF NOT EXISTS score_cache (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresCache persists entries in PostgreSQL
type PostgresCache struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// ConnectPostgres opens a pool, verifies it, and ensures the cache table exists
func ConnectPostgres(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresCache, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &Error{Message: "failed to connect to database", Cause: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &Error{Message: "failed to ping database", Cause: err}
	}

	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, &Error{Message: "failed to create score_cache table", Cause: err}
	}

	return &PostgresCache{pool: pool, ttl: ttl}, nil
}

// Close closes the connection pool
func (c *PostgresCache) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Get returns the stored value when present and within TTL
func (c *PostgresCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM score_cache WHERE key = $1`
	args := []any{key}
	if c.ttl > 0 {
		query += ` AND created_at > NOW() - make_interval(secs => $2)`
		args = append(args, c.ttl.Seconds())
	}

	var value []byte
	err := c.pool.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, true, nil
}

// Set upserts the value, resetting its age
func (c *PostgresCache) Set(ctx context.Context, key string, value []byte) error {
	_, err := c.pool.Exec(ctx,
		`INSERT INTO score_cache (key, value, created_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, created_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Clear deletes every entry
func (c *PostgresCache) Clear(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, `DELETE FROM score_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Prune deletes entries older than the TTL and returns how many were removed
func (c *PostgresCache) Prune(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	tag, err := c.pool.Exec(ctx,
		`DELETE FROM score_cache WHERE created_at <= NOW() - make_interval(secs => $1)`,
		c.ttl.Seconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return tag.RowsAffected(), nil
}
