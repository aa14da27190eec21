// Package metadata identifies media files against online databases and caches
// their responses.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Cache stores raw provider responses in the metadata_cache table with a
// per-entry expiry. It satisfies tmdb.Store.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// NewCache returns a cache over db.
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the value for key. Missing, expired and unreadable rows all
// report a miss; expired rows are removed on the way out.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var (
		value   []byte
		expires time.Time
	)
	row := c.db.QueryRowContext(ctx, `SELECT value, expires_at FROM metadata_cache WHERE key = ?`, key)
	if err := row.Scan(&value, &expires); err != nil {
		return nil, false
	}
	if !c.now().Before(expires) {
		_ = c.Delete(ctx, key)
		return nil, false
	}
	return value, true
}

// Set stores value under key until ttl elapses.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO metadata_cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), c.now().Add(ttl))
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM metadata_cache WHERE key = ?`, key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Prune drops every expired row and reports how many went.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM metadata_cache WHERE expires_at <= ?`, c.now())
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return res.RowsAffected()
}
