// Package kvcache provides a durable string-keyed JSON cache over SQLite.
//
// The cache is best-effort: a read of a missing or corrupted entry is a
// miss, and a failed write is logged but never surfaced to the caller.
// In-process state stays authoritative for the current session.
package kvcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Well-known key namespaces.
const (
	KeyGeocodeMap   = "geocode/v1"
	KeyUserLocation = "user_location"
	KeyAuthToken    = "auth_token"
)

// StationKey returns the cache key for a station detail by operation code.
func StationKey(operationCode string) string {
	return "station/" + operationCode
}

// Cache is a persistent key/value store. Values are JSON-serialized.
type Cache struct {
	db *sql.DB
}

// New creates a cache backed by db, ensuring its table exists.
func New(db *sql.DB) (*Cache, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_cache (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating kv_cache table: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get reads the entry for key into out. It returns false on an absent key
// or an entry that no longer parses; parse failures are logged, not
// propagated.
func (c *Cache) Get(key string, out any) bool {
	var raw string
	err := c.db.QueryRow("SELECT value FROM kv_cache WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Warn("kvcache read failed", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Treat corrupted entries as a miss; the next Set overwrites them.
		slog.Warn("kvcache entry corrupted", "key", key, "error", err)
		return false
	}
	return true
}

// Set serializes value and stores it under key, overwriting any previous
// entry. Failures are logged; persistence is best-effort.
func (c *Cache) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("kvcache serialize failed", "key", key, "error", err)
		return
	}

	_, err = c.db.Exec(`
		INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	if err != nil {
		slog.Warn("kvcache write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key, if present.
func (c *Cache) Delete(key string) {
	if _, err := c.db.Exec("DELETE FROM kv_cache WHERE key = ?", key); err != nil {
		slog.Warn("kvcache delete failed", "key", key, "error", err)
	}
}
