package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache memoizes successful lookups in SQLite, keyed by normalized zip.
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path}
	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

func (c *Cache) initSchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS lookups (
	zip TEXT PRIMARY KEY,
	lat REAL NOT NULL,
	lng REAL NOT NULL,
	updated_at TEXT NOT NULL
)`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached point for zip. The bool is false on a miss.
func (c *Cache) Get(ctx context.Context, zip string) (Point, bool, error) {
	var p Point
	err := c.db.QueryRowContext(ctx,
		`SELECT lat, lng FROM lookups WHERE zip = ?`, NormalizeZip(zip),
	).Scan(&p.Lat, &p.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return Point{}, false, nil
	}
	if err != nil {
		return Point{}, false, fmt.Errorf("read cache: %w", err)
	}
	return p, true, nil
}

// Put stores or replaces the point for zip.
func (c *Cache) Put(ctx context.Context, zip string, p Point) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO lookups (zip, lat, lng, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(zip) DO UPDATE SET lat = excluded.lat, lng = excluded.lng, updated_at = excluded.updated_at`,
		NormalizeZip(zip), p.Lat, p.Lng, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Count returns the number of cached lookups.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
