// Package sqlite persists geocode responses so repeated pipeline runs do
// not re-query the rate-limited backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
)

// Cache implements geocode.Cache on a SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite cache with WAL mode enabled.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS geocode_results (
	query TEXT PRIMARY KEY,
	candidates TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Get implements geocode.Cache.
func (c *Cache) Get(ctx context.Context, query string) ([]geocode.Candidate, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		"SELECT candidates FROM geocode_results WHERE query = ?", query,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var candidates []geocode.Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil, false, fmt.Errorf("decode cached candidates for %q: %w", query, err)
	}
	return candidates, true, nil
}

// Put implements geocode.Cache. An existing entry for the query is
// replaced.
func (c *Cache) Put(ctx context.Context, query string, candidates []geocode.Candidate) error {
	payload, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode candidates for %q: %w", query, err)
	}

	_, err = c.db.ExecContext(ctx, `
INSERT INTO geocode_results (query, candidates, fetched_at) VALUES (?, ?, ?)
ON CONFLICT(query) DO UPDATE SET candidates = excluded.candidates, fetched_at = excluded.fetched_at`,
		query, string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}
