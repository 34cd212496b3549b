package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/appengine-client/internal/auth"
	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// CachingExecutor serves repeated reads from a cache. Entries are scoped to
// the caller's credentials. Any successful mutating call clears the cache,
// since a single change can alter many cached reads.
type CachingExecutor struct {
	next         Executor
	cache        appengine.Cache
	policy       *appengine.CachingPolicy
	tokenManager auth.TokenManager
	logger       appengine.Logger

	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	invalidations atomic.Int64
}

// NewCachingExecutor wraps next. A nil policy uses the default policy;
// tokenManager may be nil for unauthenticated clients.
func NewCachingExecutor(
	next Executor,
	cache appengine.Cache,
	policy *appengine.CachingPolicy,
	tokenManager auth.TokenManager,
	logger appengine.Logger,
) *CachingExecutor {
	if policy == nil {
		policy = appengine.DefaultCachingPolicy()
	}

	return &CachingExecutor{
		next:         next,
		cache:        cache,
		policy:       policy,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Execute implements Executor.
func (e *CachingExecutor) Execute(ctx context.Context, cmd *endpoint.Command) error {
	if !e.policy.ShouldCache(cmd.Method, cmd.Name()) || cmd.Response == nil {
		err := e.next.Execute(ctx, cmd)
		if err == nil && cmd.Method != http.MethodGet {
			e.invalidate(ctx, cmd)
		}

		return err
	}

	fingerprint, err := e.fingerprint(ctx, cmd)
	if err != nil {
		return e.next.Execute(ctx, cmd)
	}

	key := cacheKey(cmd, fingerprint)

	entry, err := e.cache.Get(ctx, key)
	if err == nil && json.Unmarshal(entry.Data, cmd.Response) == nil {
		e.hits.Add(1)

		return nil
	}

	e.misses.Add(1)

	err = e.next.Execute(ctx, cmd)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cmd.Response)
	if err != nil {
		return nil //nolint:nilerr // the call itself succeeded
	}

	entry = &appengine.CacheEntry{Data: data}
	if e.policy.TTL > 0 {
		entry.ExpiresAt = time.Now().Add(e.policy.TTL)
	}

	err = e.cache.Set(ctx, key, entry)
	if err != nil {
		e.warn("caching response failed", cmd, err)

		return nil
	}

	e.sets.Add(1)

	return nil
}

// Stats returns the lookup counters.
func (e *CachingExecutor) Stats() appengine.CacheStats {
	return appengine.CacheStats{
		Hits:          e.hits.Load(),
		Misses:        e.misses.Load(),
		Sets:          e.sets.Load(),
		Invalidations: e.invalidations.Load(),
	}
}

func (e *CachingExecutor) invalidate(ctx context.Context, cmd *endpoint.Command) {
	err := e.cache.Clear(ctx)
	if err != nil {
		e.warn("clearing response cache failed", cmd, err)

		return
	}

	e.invalidations.Add(1)
}

func (e *CachingExecutor) warn(msg string, cmd *endpoint.Command, err error) {
	if e.logger == nil {
		return
	}

	e.logger.Warn(msg, map[string]interface{}{
		"operation": cmd.Name(),
		"error":     err.Error(),
	})
}

// fingerprint hashes the bearer token and API key the call will carry, so
// callers with different credentials never share an entry.
func (e *CachingExecutor) fingerprint(ctx context.Context, cmd *endpoint.Command) (string, error) {
	token := ""

	if e.tokenManager != nil {
		var err error

		token, err = e.tokenManager.GetToken(ctx)
		if err != nil {
			return "", err
		}
	}

	sum := sha256.Sum256([]byte(token + "\x00" + cmd.Query.Get(endpoint.ParamKey)))

	return hex.EncodeToString(sum[:]), nil
}

// cacheKey identifies a read by credentials, path and query, so different
// callers, field selections or pages never share an entry. The API key is
// only represented through the fingerprint.
func cacheKey(cmd *endpoint.Command, fingerprint string) string {
	key := fingerprint + " " + cmd.Method + " " + cmd.Path()

	query := make(url.Values, len(cmd.Query))
	for name, values := range cmd.Query {
		if name != endpoint.ParamKey {
			query[name] = values
		}
	}

	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	return key
}
