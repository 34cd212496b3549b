package client

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/appengine-client/internal/auth"
	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

var errCacheUnavailable = errors.New("cache unavailable")

type failingCache struct {
	*appengine.NoOpCache
}

func (failingCache) Set(context.Context, string, *appengine.CacheEntry) error {
	return errCacheUnavailable
}

// appExecutor answers every call with an application carrying its own ID.
type appExecutor struct {
	id    string
	calls atomic.Int32
}

func (e *appExecutor) Execute(_ context.Context, cmd *endpoint.Command) error {
	e.calls.Add(1)

	if app, ok := cmd.Response.(*appengine.Application); ok {
		app.ID = e.id
	}

	return nil
}

// keyRecordingCache remembers the keys it was asked to store.
type keyRecordingCache struct {
	*appengine.MemoryCache

	keys []string
}

func (c *keyRecordingCache) Set(ctx context.Context, key string, entry *appengine.CacheEntry) error {
	c.keys = append(c.keys, key)

	return c.MemoryCache.Set(ctx, key, entry)
}

func newCachingTestClient(t *testing.T, cache appengine.Cache) (*Client, *recordingServer, *CachingExecutor) {
	t.Helper()

	server := newRecordingServer(t, http.StatusOK, map[string]interface{}{"id": "myapp", "name": "apps/myapp"})
	base := newTestClient(server.Server, endpoint.Defaults{})
	executor := NewCachingExecutor(base.executor, cache, nil, nil, nil)

	return NewWithExecutor(executor, endpoint.Defaults{}), server, executor
}

func TestCachingExecutor_ServesRepeatedReads(t *testing.T) {
	t.Parallel()

	client, server, executor := newCachingTestClient(t, appengine.NewMemoryCache(10))
	ctx := context.Background()

	for range 3 {
		app, err := client.Apps().Get(ctx, "myapp", nil)
		require.NoError(t, err)
		assert.Equal(t, "myapp", app.ID)
	}

	assert.Equal(t, 1, server.count())

	_, err := client.Apps().Get(ctx, "myapp", appengine.NewCallOptions().WithFields("id"))
	require.NoError(t, err)
	assert.Equal(t, 2, server.count(), "different query is a different entry")

	stats := executor.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(2), stats.Sets)
}

func TestCachingExecutor_MutationClearsCache(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	client, server, executor := newCachingTestClient(t, cache)
	ctx := context.Background()

	_, err := client.Apps().Get(ctx, "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = client.Apps().Repair(ctx, "myapp", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
	assert.Equal(t, int64(1), executor.Stats().Invalidations)

	_, err = client.Apps().Get(ctx, "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, server.count())
}

func TestCachingExecutor_OperationsBypassCache(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	client, server, _ := newCachingTestClient(t, cache)

	for range 2 {
		_, err := client.Operations().Get(context.Background(), "myapp", "op-1", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, server.count())
	assert.Zero(t, cache.Len())
}

func TestCachingExecutor_CacheFailureDoesNotFailCall(t *testing.T) {
	t.Parallel()

	client, _, executor := newCachingTestClient(t, failingCache{NoOpCache: appengine.NewNoOpCache()})

	app, err := client.Apps().Get(context.Background(), "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, "myapp", app.ID)
	assert.Zero(t, executor.Stats().Sets)
}

func TestCachingExecutor_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	inner := &recordingExecutor{err: errCacheUnavailable}
	client := NewWithExecutor(NewCachingExecutor(inner, cache, nil, nil, nil), endpoint.Defaults{})

	_, err := client.Services().Get(context.Background(), "myapp", "default", nil)
	require.ErrorIs(t, err, errCacheUnavailable)
	assert.Zero(t, cache.Len())
}

func TestCachingExecutor_CredentialsDoNotShareEntries(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	ctx := context.Background()

	alice := &appExecutor{id: "alice-app"}
	bob := &appExecutor{id: "bob-app"}

	aliceClient := NewWithExecutor(
		NewCachingExecutor(alice, cache, nil, auth.NewStaticTokenManager("alice-token"), nil),
		endpoint.Defaults{},
	)
	bobClient := NewWithExecutor(
		NewCachingExecutor(bob, cache, nil, auth.NewStaticTokenManager("bob-token"), nil),
		endpoint.Defaults{},
	)

	app, err := aliceClient.Apps().Get(ctx, "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice-app", app.ID)

	app, err = bobClient.Apps().Get(ctx, "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, "bob-app", app.ID, "second caller must not see the first caller's entry")
	assert.Equal(t, int32(1), bob.calls.Load())

	app, err = aliceClient.Apps().Get(ctx, "myapp", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice-app", app.ID)
	assert.Equal(t, int32(1), alice.calls.Load(), "same caller still hits the cache")
	assert.Equal(t, 2, cache.Len())
}

func TestCachingExecutor_APIKeysDoNotShareEntries(t *testing.T) {
	t.Parallel()

	cache := &keyRecordingCache{MemoryCache: appengine.NewMemoryCache(10)}
	inner := &appExecutor{id: "myapp"}
	client := NewWithExecutor(NewCachingExecutor(inner, cache, nil, nil, nil), endpoint.Defaults{})
	ctx := context.Background()

	_, err := client.Apps().Get(ctx, "myapp", appengine.NewCallOptions().WithKey("secret-key-one"))
	require.NoError(t, err)

	_, err = client.Apps().Get(ctx, "myapp", appengine.NewCallOptions().WithKey("secret-key-two"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	require.Len(t, cache.keys, 2)
	assert.NotEqual(t, cache.keys[0], cache.keys[1])

	for _, key := range cache.keys {
		assert.NotContains(t, key, "secret-key", "cache key must not carry the API key")
	}
}

func TestCachingExecutor_TokenFailureBypassesCache(t *testing.T) {
	t.Parallel()

	cache := appengine.NewMemoryCache(10)
	inner := &appExecutor{id: "myapp"}
	tokens := auth.NewTokenSourceManager(nil)
	client := NewWithExecutor(NewCachingExecutor(inner, cache, nil, tokens, nil), endpoint.Defaults{})

	for range 2 {
		app, err := client.Apps().Get(context.Background(), "myapp", nil)
		require.NoError(t, err)
		assert.Equal(t, "myapp", app.ID)
	}

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Zero(t, cache.Len())
}
