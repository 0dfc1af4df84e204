package imdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	hitTTL  = 30 * 24 * time.Hour // resolved ids are stable
	missTTL = 24 * time.Hour      // zero-result queries may start matching
)

const (
	keyPrefixAdvanced = "imdb:adv:"
	keyPrefixFind     = "imdb:find:"
)

// Cache is a sqlite-backed store for lookup results.
type Cache struct {
	db *sql.DB
}

// NewCache creates a lookup cache on an open database, creating the
// schema if needed.
func NewCache(db *sql.DB) (*Cache, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lookup_cache (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_lookup_cache_expires_at ON lookup_cache(expires_at);
	`)
	if err != nil {
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get retrieves a cached value by key.
// Returns nil, false if not found or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM lookup_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil || time.Now().After(expiresAt) {
		return nil, false
	}

	return []byte(value), true
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO lookup_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM lookup_cache WHERE expires_at < ?", time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// cacheEntry is the stored form of a lookup outcome. Zero-result
// queries are cached too, with a shorter TTL, so reruns don't repeat
// searches that are known to miss.
type cacheEntry struct {
	Miss      bool       `json:"miss,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
}

// CachedSearcher decorates a Searcher with the lookup cache. Cache
// failures degrade to direct lookups with a warning; they never fail
// the lookup itself.
type CachedSearcher struct {
	inner Searcher
	cache *Cache
	log   *slog.Logger
}

// NewCachedSearcher wraps a searcher with the cache.
func NewCachedSearcher(inner Searcher, cache *Cache, log *slog.Logger) *CachedSearcher {
	return &CachedSearcher{inner: inner, cache: cache, log: log}
}

// Advanced implements Searcher.
func (s *CachedSearcher) Advanced(ctx context.Context, title string, yearStart, yearEnd int) (*Candidate, error) {
	key := fmt.Sprintf("%s%s:%d:%d", keyPrefixAdvanced, NormalizeQuery(title), yearStart, yearEnd)
	return s.lookup(ctx, key, func() (*Candidate, error) {
		return s.inner.Advanced(ctx, title, yearStart, yearEnd)
	})
}

// Find implements Searcher.
func (s *CachedSearcher) Find(ctx context.Context, title string, year int) (*Candidate, error) {
	key := fmt.Sprintf("%s%s:%d", keyPrefixFind, NormalizeQuery(title), year)
	return s.lookup(ctx, key, func() (*Candidate, error) {
		return s.inner.Find(ctx, title, year)
	})
}

func (s *CachedSearcher) lookup(ctx context.Context, key string, fetch func() (*Candidate, error)) (*Candidate, error) {
	if data, ok := s.cache.Get(ctx, key); ok {
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			if s.log != nil {
				s.log.Debug("lookup cache hit", "key", key, "miss", entry.Miss)
			}
			if entry.Miss {
				return nil, ErrZeroResults
			}
			return entry.Candidate, nil
		}
		// Unparseable entry: treat as a cache miss and refetch.
		if s.log != nil {
			s.log.Warn("discarding unreadable cache entry", "key", key)
		}
	}

	candidate, err := fetch()
	switch {
	case err == nil:
		s.store(ctx, key, cacheEntry{Candidate: candidate}, hitTTL)
		return candidate, nil
	case errors.Is(err, ErrZeroResults):
		s.store(ctx, key, cacheEntry{Miss: true}, missTTL)
		return nil, err
	default:
		// Transport failures and uncorroborated listings are not
		// cached; the next run should retry them.
		return nil, err
	}
}

func (s *CachedSearcher) store(ctx context.Context, key string, entry cacheEntry, ttl time.Duration) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil && s.log != nil {
		s.log.Warn("failed to cache lookup result", "key", key, "error", err)
	}
}
