package appengine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrCacheMiss            = errors.New("key not found")
	ErrCacheEntryExpired    = errors.New("entry expired")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// CacheEntry is one cached response body.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry time.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache stores decoded-ready response bodies keyed by request.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache is a size-bounded in-process cache.
type MemoryCache struct {
	mutex   sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the entry for key.
func (c *MemoryCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	if entry.Expired() {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores entry, evicting the entry closest to expiry when full.
func (c *MemoryCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// evictLocked drops the entry closest to expiry. Entries without an expiry
// never expire, so they go only when nothing else is left.
func (c *MemoryCache) evictLocked() {
	var (
		victim string
		found  bool
		oldest time.Time
	)

	for key, entry := range c.entries {
		if !found || expiresBefore(entry.ExpiresAt, oldest) {
			victim = key
			found = true
			oldest = entry.ExpiresAt
		}
	}

	if found {
		delete(c.entries, victim)
	}
}

// expiresBefore orders expiry times with the zero time last.
func expiresBefore(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}

// NoOpCache never stores anything.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns ErrCacheDisabled.
func (c *NoOpCache) Get(context.Context, string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(context.Context, string, *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(context.Context, string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(context.Context, string) bool {
	return false
}

// CacheType selects a cache backend.
type CacheType string

const (
	// CacheTypeMemory is the in-process cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS is a NATS JetStream key-value bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// CacheConfig configures a cache backend.
type CacheConfig struct {
	Type    CacheType
	MaxSize int
	NATS    *NATSKVConfig
}

// NewCacheFromConfig creates the backend named by config. A nil config
// yields a memory cache.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = &CacheConfig{Type: CacheTypeMemory}
	}

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryCache(config.MaxSize), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		return cache, nil
	case CacheTypeNone:
		return NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// CachingPolicy decides which calls are served from the cache. Only
// successful GET calls are ever cached.
type CachingPolicy struct {
	// TTL is the lifetime of a cached response.
	TTL time.Duration

	// ExcludeOperations lists dotted operation names that are never cached.
	ExcludeOperations []string

	// IncludeOperations, when non-empty, restricts caching to these names.
	IncludeOperations []string
}

// DefaultCachingPolicy caches every read except operation status, which
// Wait must observe live.
func DefaultCachingPolicy() *CachingPolicy {
	return &CachingPolicy{
		TTL: constants.DefaultCacheTTL,
		ExcludeOperations: []string{
			"apps.operations.get",
			"apps.operations.list",
		},
	}
}

// ShouldCache reports whether a call may be looked up in or stored to the
// cache.
func (p *CachingPolicy) ShouldCache(method, operation string) bool {
	if method != http.MethodGet {
		return false
	}

	if slices.Contains(p.ExcludeOperations, operation) {
		return false
	}

	if len(p.IncludeOperations) > 0 {
		return slices.Contains(p.IncludeOperations, operation)
	}

	return true
}

// CacheStats counts cache lookups.
type CacheStats struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Invalidations int64
}

// GetHitRate returns hits over lookups, or 0 before the first lookup.
func (s CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
