package appengine_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	ctx := context.Background()

	entry := &appengine.CacheEntry{
		Data:      []byte(`{"id":"myapp"}`),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, cache.Set(ctx, "key1", entry))

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)

	_, err = cache.Get(ctx, "missing")
	require.ErrorIs(t, err, appengine.ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	ctx := context.Background()

	_ = cache.Set(ctx, "expired", &appengine.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)})
	_ = cache.Set(ctx, "forever", &appengine.CacheEntry{})
	_ = cache.Set(ctx, "valid", &appengine.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)})

	_, err := cache.Get(ctx, "expired")
	require.ErrorIs(t, err, appengine.ErrCacheEntryExpired)
	assert.Equal(t, 2, cache.Len(), "expired entry is dropped on read")

	_ = cache.Set(ctx, "expired", &appengine.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)})
	cache.Cleanup()

	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Has(ctx, "forever"))
	assert.True(t, cache.Has(ctx, "valid"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_ = cache.Set(ctx, key, &appengine.CacheEntry{Data: []byte(key)})
	}

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_MaxSize(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(2)
	ctx := context.Background()

	for i, key := range []string{"a", "b", "c"} {
		_ = cache.Set(ctx, key, &appengine.CacheEntry{
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		})
	}

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "a"), "entry closest to expiry is evicted")
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_MaxSizeKeepsEntriesWithoutExpiry(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "forever", &appengine.CacheEntry{}))
	require.NoError(t, cache.Set(ctx, "soon", &appengine.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "later", &appengine.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))

	assert.Equal(t, 2, cache.Len())
	assert.True(t, cache.Has(ctx, "forever"), "entry without expiry outlives expiring ones")
	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "later"))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *appengine.CacheConfig
		want    interface{}
		wantErr error
	}{
		{name: "nil config", config: nil, want: &appengine.MemoryCache{}},
		{name: "memory", config: &appengine.CacheConfig{Type: appengine.CacheTypeMemory, MaxSize: 5}, want: &appengine.MemoryCache{}},
		{name: "none", config: &appengine.CacheConfig{Type: appengine.CacheTypeNone}, want: &appengine.NoOpCache{}},
		{name: "nats without config", config: &appengine.CacheConfig{Type: appengine.CacheTypeNATS}, wantErr: appengine.ErrNATSConfigRequired},
		{name: "unknown", config: &appengine.CacheConfig{Type: "redis"}, wantErr: appengine.ErrUnsupportedCacheType},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cache, err := appengine.NewCacheFromConfig(testCase.config)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, cache)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, testCase.want, cache)
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := appengine.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &appengine.CacheEntry{Data: []byte("x")}))
	assert.False(t, cache.Has(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, appengine.ErrCacheDisabled)
}

func TestCachingPolicy_ShouldCache(t *testing.T) {
	t.Parallel()

	policy := appengine.DefaultCachingPolicy()

	assert.True(t, policy.ShouldCache("GET", "apps.get"))
	assert.True(t, policy.ShouldCache("GET", "apps.services.versions.list"))
	assert.False(t, policy.ShouldCache("PATCH", "apps.services.patch"))
	assert.False(t, policy.ShouldCache("GET", "apps.operations.get"), "operation status must stay live")

	custom := &appengine.CachingPolicy{IncludeOperations: []string{"apps.locations.list"}}
	assert.True(t, custom.ShouldCache("GET", "apps.locations.list"))
	assert.False(t, custom.ShouldCache("GET", "apps.get"))
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.75, appengine.CacheStats{Hits: 75, Misses: 25}.GetHitRate(), 0.0001)
	assert.InDelta(t, 0.0, appengine.CacheStats{}.GetHitRate(), 0.0001)
}

// TestNATSKVCache needs a JetStream-enabled server, e.g.
// `nats-server -js`, and NATS_URL pointing at it.
func TestNATSKVCache(t *testing.T) {
	t.Parallel()

	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}

	cache, err := appengine.NewNATSKVCache(&appengine.NATSKVConfig{
		URL:    url,
		Bucket: "gae-cache-test",
		TTL:    time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	ctx := context.Background()
	key := "GET v1/apps/myapp?fields=id%2Cname"

	require.NoError(t, cache.Clear(ctx))

	_, err = cache.Get(ctx, key)
	require.ErrorIs(t, err, appengine.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, &appengine.CacheEntry{
		Data:      []byte(`{"id":"myapp"}`),
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	entry, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"myapp"}`, string(entry.Data))

	require.NoError(t, cache.Delete(ctx, key))
	assert.False(t, cache.Has(ctx, key))
}
