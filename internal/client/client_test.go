package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/appengine-client/internal/client"
	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *appengine.Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: appengine.ErrConfigRequired,
		},
		{
			name:    "requires API endpoint",
			config:  &appengine.Config{},
			wantErr: appengine.ErrAPIEndpointRequired,
		},
		{
			name:    "invalid endpoint",
			config:  &appengine.Config{APIEndpoint: "not a url"},
			wantErr: appengine.ErrInvalidConfig,
		},
		{
			name:   "access token",
			config: &appengine.Config{APIEndpoint: "https://appengine.example.com", AccessToken: "token"},
		},
		{
			name: "token source",
			config: &appengine.Config{
				APIEndpoint: "https://appengine.example.com",
				TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"}),
			},
		},
		{
			name:   "API key only",
			config: &appengine.Config{APIEndpoint: "https://appengine.example.com", APIKey: "key"},
		},
		{
			name: "metrics and retries",
			config: &appengine.Config{
				APIEndpoint:       "https://appengine.example.com",
				RetryMax:          2,
				MetricsRegisterer: prometheus.NewRegistry(),
			},
		},
		{
			name: "timeout and cache",
			config: &appengine.Config{
				APIEndpoint: "https://appengine.example.com",
				Timeout:     5 * time.Second,
				Cache:       appengine.NewMemoryCache(10),
			},
		},
		{
			name:    "negative timeout",
			config:  &appengine.Config{APIEndpoint: "https://appengine.example.com", Timeout: -time.Second},
			wantErr: appengine.ErrInvalidConfig,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			gae, err := client.New(context.Background(), testCase.config)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, gae)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, gae.Apps())
			assert.NotNil(t, gae.Operations())
		})
	}
}

func TestClient_GetToken(t *testing.T) {
	t.Parallel()

	gae, err := client.New(context.Background(), &appengine.Config{
		APIEndpoint: "https://appengine.example.com",
		AccessToken: "static-token",
	})
	require.NoError(t, err)

	token, err := gae.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	anonymous, err := client.New(context.Background(), &appengine.Config{APIEndpoint: "https://appengine.example.com"})
	require.NoError(t, err)

	_, err = anonymous.GetToken(context.Background())
	require.Error(t, err)
}

func TestClient_DeleteInstance(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		assert.Equal(t, "/v1/apps/myapp/services/default/versions/v1/instances/i-1", request.URL.Path)
		assert.Empty(t, request.URL.RawQuery)
		assert.Equal(t, "Bearer token", request.Header.Get("Authorization"))
		assert.Empty(t, request.Header.Get("Content-Type"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(appengine.Operation{Name: "apps/myapp/operations/op-7"})
	}))
	defer server.Close()

	gae, err := client.New(context.Background(), &appengine.Config{APIEndpoint: server.URL, AccessToken: "token"})
	require.NoError(t, err)

	operation, err := gae.Instances().Delete(context.Background(), "myapp", "default", "v1", "i-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "apps/myapp/operations/op-7", operation.Name)
}

func TestClient_Defaults(t *testing.T) {
	t.Parallel()

	var (
		mutex   sync.Mutex
		queries []map[string][]string
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mutex.Lock()
		queries = append(queries, request.URL.Query())
		mutex.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"myapp"}`))
	}))
	defer server.Close()

	gae, err := client.New(context.Background(), &appengine.Config{
		APIEndpoint: server.URL,
		APIKey:      "config-key",
	})
	require.NoError(t, err)

	_, err = gae.Apps().Get(context.Background(), "myapp", nil)
	require.NoError(t, err)

	gae.SetKey("process-key")
	gae.SetQuotaUser("process-user")

	_, err = gae.Apps().Get(context.Background(), "myapp", nil)
	require.NoError(t, err)

	_, err = gae.Apps().Get(context.Background(), "myapp", appengine.NewCallOptions().WithQuotaUser("call-user"))
	require.NoError(t, err)

	require.Len(t, queries, 3)
	assert.Equal(t, map[string][]string{"key": {"config-key"}}, queries[0])
	assert.Equal(t, map[string][]string{"key": {"process-key"}, "quotaUser": {"process-user"}}, queries[1])
	assert.Equal(t, map[string][]string{"key": {"process-key"}, "quotaUser": {"call-user"}}, queries[2])
	assert.Equal(t, endpoint.Defaults{Key: "process-key", QuotaUser: "process-user"}, gae.Defaults())
}

func TestClient_Go(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"services":[{"id":"default"},{"id":"worker"}]}`))
	}))
	defer server.Close()

	gae, err := client.New(context.Background(), &appengine.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	cmd, err := gae.Build(endpoint.ServicesList, []string{"myapp"}, nil, nil)
	require.NoError(t, err)

	err = <-gae.Go(context.Background(), cmd)
	require.NoError(t, err)

	list, ok := cmd.Response.(*appengine.ListServicesResponse)
	require.True(t, ok)
	assert.Len(t, list.Services, 2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "client-test", request.Header.Get("X-Goog-Request-Reason"))

		if request.Method == http.MethodDelete {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`))

			return
		}

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"default"}`))
	}))
	defer server.Close()

	var seen []string

	chain := appengine.NewInterceptorChain()
	chain.AddRequestInterceptor(appengine.HeaderInterceptor(map[string]string{"X-Goog-Request-Reason": "client-test"}))
	chain.AddResponseInterceptor(func(_ context.Context, req *appengine.Request, resp *appengine.Response) error {
		seen = append(seen, req.Operation)

		return nil
	})

	registry := prometheus.NewRegistry()

	gae, err := client.New(context.Background(), &appengine.Config{
		APIEndpoint:       server.URL,
		Interceptors:      chain,
		MetricsRegisterer: registry,
	})
	require.NoError(t, err)

	_, err = gae.Services().Get(context.Background(), "myapp", "default", nil)
	require.NoError(t, err)

	_, err = gae.Services().Delete(context.Background(), "myapp", "default", nil)
	require.Error(t, err)
	assert.True(t, appengine.IsForbidden(err))

	assert.Equal(t, []string{"apps.services.get", "apps.services.delete"}, seen)

	metrics, err := appengine.NewMetrics(registry)
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests().WithLabelValues("apps.services.get", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests().WithLabelValues("apps.services.delete", "403")), 0)
}
