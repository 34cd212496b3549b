// Package gaeclient provides the main entry point for creating App Engine Admin API clients
package gaeclient

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/appengine-client/internal/auth"
	"github.com/fivetwenty-io/appengine-client/internal/client"
	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// New creates a new App Engine Admin API client.
func New(ctx context.Context, config *appengine.Config) (appengine.Client, error) {
	if config == nil {
		return nil, appengine.ErrConfigRequired
	}

	config.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	gae, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return gae, nil
}

// normalizeEndpoint applies the default endpoint and scheme.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultAPIEndpoint
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return strings.TrimSuffix(endpoint, "/")
}

// NewWithToken creates a new client that sends token as a bearer token.
func NewWithToken(ctx context.Context, token string) (appengine.Client, error) {
	return New(ctx, &appengine.Config{
		AccessToken: token,
	})
}

// NewWithAPIKey creates a client that authenticates with an API key only.
// Most Admin API methods reject such calls; locations and public reads work.
func NewWithAPIKey(ctx context.Context, key string) (appengine.Client, error) {
	return New(ctx, &appengine.Config{
		APIKey: key,
	})
}

// NewWithTokenSource creates a client backed by any oauth2.TokenSource.
func NewWithTokenSource(ctx context.Context, source oauth2.TokenSource) (appengine.Client, error) {
	return New(ctx, &appengine.Config{
		TokenSource: source,
	})
}

// NewWithDefaultCredentials creates a client using Google application
// default credentials.
func NewWithDefaultCredentials(ctx context.Context) (appengine.Client, error) {
	return New(ctx, &appengine.Config{
		UseDefaultCredentials: true,
	})
}

// NewWithRefreshToken creates a client that exchanges an OAuth2 refresh
// token at the Google token endpoint. config may be nil; its auth fields are
// ignored.
func NewWithRefreshToken(
	ctx context.Context,
	config *appengine.Config,
	clientID, clientSecret, refreshToken string,
) (appengine.Client, error) {
	if config == nil {
		config = &appengine.Config{}
	}

	config.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	manager := auth.NewRefreshTokenManager(ctx, &auth.RefreshTokenConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
		Scopes:       []string{constants.CloudPlatformScope},
	})

	gae, err := client.NewWithTokenManager(config, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return gae, nil
}
