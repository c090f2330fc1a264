package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but has exceeded
// its TTL. The stale data stays on disk; callers should refetch and [Cache.Set]
// the fresh value.
var ErrExpired = errors.New("cache entry expired")

// Cache stores JSON-marshalable values as files. Filenames are SHA-256 hashes
// of the cache key, so arbitrary keys (full URLs included) are safe.
//
// Entries expire based on file modification time; a TTL of 0 means entries
// never expire. A Cache is not goroutine-safe, but separate instances may
// share a directory.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// DefaultCacheDir returns the directory used when [NewCache] is called with
// an empty dir: ~/.cache/pomviz.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "pomviz"), nil
}

// NewCache creates a Cache rooted at dir with the given TTL.
// An empty dir selects [DefaultCacheDir]. The directory is created if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry time-to-live. Zero means no expiration.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Namespace returns a view of the cache that prefixes every key, keeping
// different data sources from colliding (e.g. "pom:").
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

// Get retrieves the value stored under key into v.
// It reports (true, nil) on a fresh hit, (false, nil) on a miss, and
// (false, [ErrExpired]) when the entry has outlived the TTL.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores v under key, overwriting any existing entry and resetting its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

func (c *Cache) keyPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
