package gaeclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
	"github.com/fivetwenty-io/appengine-client/pkg/gaeclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		client, err := gaeclient.New(context.Background(), nil)
		require.ErrorIs(t, err, appengine.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("normalizes endpoint", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			endpoint string
			expected string
		}{
			{"", "https://appengine.googleapis.com/"},
			{"appengine.example.com/", "https://appengine.example.com"},
			{"http://localhost:8080/", "http://localhost:8080"},
			{" https://appengine.example.com ", "https://appengine.example.com"},
		}

		for _, testCase := range tests {
			config := &appengine.Config{APIEndpoint: testCase.endpoint}

			client, err := gaeclient.New(context.Background(), config)
			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, testCase.expected, config.APIEndpoint)
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := gaeclient.New(context.Background(), &appengine.Config{RetryMax: -1})
		require.ErrorIs(t, err, appengine.ErrInvalidConfig)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := gaeclient.NewWithToken(context.Background(), "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	client, err := gaeclient.NewWithAPIKey(context.Background(), "api-key")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithTokenSource(t *testing.T) {
	t.Parallel()

	client, err := gaeclient.NewWithTokenSource(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}))
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithDefaultCredentials(t *testing.T) {
	t.Parallel()
	t.Skip("Skipping test that requires Google application default credentials")

	client, err := gaeclient.NewWithDefaultCredentials(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithRefreshToken(t *testing.T) {
	t.Parallel()

	client, err := gaeclient.NewWithRefreshToken(context.Background(), nil, "client-id", "client-secret", "refresh-token")
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = gaeclient.NewWithRefreshToken(context.Background(), &appengine.Config{RetryMax: -1},
		"client-id", "client-secret", "refresh-token")
	require.ErrorIs(t, err, appengine.ErrInvalidConfig)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/apps/myapp":
			assert.Equal(t, "tenant-1", request.URL.Query().Get("quotaUser"))
			assert.Equal(t, "id,locationId", request.URL.Query().Get("fields"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(appengine.Application{ID: "myapp", LocationID: "europe-west"})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := gaeclient.New(context.Background(), &appengine.Config{
		APIEndpoint: server.URL,
		AccessToken: "test-token",
	})
	require.NoError(t, err)

	client.SetQuotaUser("tenant-1")

	app, err := client.Apps().Get(context.Background(), "myapp", appengine.NewCallOptions().WithFields("id,locationId"))
	require.NoError(t, err)
	assert.Equal(t, "europe-west", app.LocationID)

	_, err = client.Apps().Get(context.Background(), "other", nil)
	require.Error(t, err)
	assert.True(t, appengine.IsNotFound(err))
}
