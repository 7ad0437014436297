// Package cache provides local caching of object describe metadata.
// The cache is stored in .forcesql/cache.db (SQLite) and is gitignored.
// It is optional and can always be rebuilt by re-fetching from the API.
package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/forcekit/forcesql/internal/sferr"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// CacheDir is the directory name for the cache (gitignored).
	CacheDir = ".forcesql"
	// CacheFile is the SQLite database file name.
	CacheFile = "cache.db"
)

// Cache stores raw describe JSON documents keyed by instance URL and object
// name, with a fetch timestamp for TTL checks.
type Cache struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens or creates the cache database under the given project root.
// The cache directory is created if it does not exist.
func Open(projectRoot string) (*Cache, error) {
	cacheDir := filepath.Join(projectRoot, CacheDir)
	cachePath := filepath.Join(cacheDir, CacheFile)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, sferr.Wrap(sferr.ErrCacheInit, err, "failed to create cache directory").
			With("path", cacheDir)
	}

	db, err := sql.Open("sqlite", cachePath)
	if err != nil {
		return nil, sferr.Wrap(sferr.ErrCacheInit, err, "failed to open cache database").
			With("path", cachePath)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, sferr.Wrap(sferr.ErrCacheInit, err, "failed to connect to cache database").
			With("path", cachePath)
	}

	c := &Cache{
		db:   db,
		path: cachePath,
	}

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// Close closes the cache database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the path to the cache database file.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// initSchema creates the cache tables if they don't exist.
func (c *Cache) initSchema() error {
	schema := `
		-- Raw describe documents per instance and object
		CREATE TABLE IF NOT EXISTS describes (
			instance      TEXT NOT NULL,
			object        TEXT NOT NULL,
			describe_json TEXT NOT NULL,
			fetched_at    TEXT NOT NULL,
			PRIMARY KEY (instance, object)
		);

		-- Cache metadata (version, etc.)
		CREATE TABLE IF NOT EXISTS cache_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO cache_meta (key, value) VALUES ('version', '1');
	`

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(schema); err != nil {
		return sferr.Wrap(sferr.ErrCacheInit, err, "failed to initialize cache schema")
	}

	return nil
}

// Get retrieves a cached describe document no older than ttl.
// Returns nil and false if the entry is missing or stale. A ttl of zero
// disables the age check.
func (c *Cache) Get(instance, object string, ttl time.Duration) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var describeJSON, fetchedAt string
	err := c.db.QueryRow(
		"SELECT describe_json, fetched_at FROM describes WHERE instance = ? AND object = ?",
		instance, object,
	).Scan(&describeJSON, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, sferr.Wrap(sferr.ErrCacheRead, err, "failed to read cached describe").
			WithObject(object)
	}

	if ttl > 0 {
		at, err := time.Parse(time.RFC3339, fetchedAt)
		if err != nil || time.Since(at) > ttl {
			return nil, false, nil
		}
	}

	return []byte(describeJSON), true, nil
}

// Set stores a describe document, replacing any existing entry.
func (c *Cache) Set(instance, object string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO describes (instance, object, describe_json, fetched_at) VALUES (?, ?, ?, ?)",
		instance, object, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return sferr.Wrap(sferr.ErrCacheWrite, err, "failed to write cached describe").
			WithObject(object)
	}

	return nil
}

// Delete removes the cached describe for a single object.
func (c *Cache) Delete(instance, object string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM describes WHERE instance = ? AND object = ?", instance, object)
	if err != nil {
		return sferr.Wrap(sferr.ErrCacheWrite, err, "failed to delete cached describe").
			WithObject(object)
	}

	return nil
}

// Clear removes all cached describe documents.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM describes"); err != nil {
		return sferr.Wrap(sferr.ErrCacheWrite, err, "failed to clear cache")
	}

	return nil
}

// Objects returns the cached object names for an instance, oldest first.
func (c *Cache) Objects(instance string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(
		"SELECT object FROM describes WHERE instance = ? ORDER BY fetched_at",
		instance,
	)
	if err != nil {
		return nil, sferr.Wrap(sferr.ErrCacheRead, err, "failed to list cached objects")
	}
	defer rows.Close()

	var objects []string
	for rows.Next() {
		var object string
		if err := rows.Scan(&object); err != nil {
			return nil, sferr.Wrap(sferr.ErrCacheRead, err, "failed to scan cached object")
		}
		objects = append(objects, object)
	}
	if err := rows.Err(); err != nil {
		return nil, sferr.Wrap(sferr.ErrCacheRead, err, "failed to list cached objects")
	}

	return objects, nil
}
