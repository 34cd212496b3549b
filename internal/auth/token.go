package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenSource = errors.New("no token source configured")
	ErrEmptyToken    = errors.New("token source returned an empty access token")
)

// TokenManager supplies bearer tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager always returns the same token.
type StaticTokenManager struct {
	mutex sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager for a fixed access token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the configured token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.token, nil
}

// SetToken replaces the token.
func (m *StaticTokenManager) SetToken(token string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.token = token
}

// TokenSourceManager adapts an oauth2.TokenSource. Refreshing is left to
// the token source; tokens are cached until they expire.
type TokenSourceManager struct {
	source oauth2.TokenSource
}

// NewTokenSourceManager wraps source in an oauth2.ReuseTokenSource.
func NewTokenSourceManager(source oauth2.TokenSource) *TokenSourceManager {
	if source == nil {
		return &TokenSourceManager{}
	}

	return &TokenSourceManager{source: oauth2.ReuseTokenSource(nil, source)}
}

// GetToken returns a valid access token from the token source.
func (m *TokenSourceManager) GetToken(ctx context.Context) (string, error) {
	if m.source == nil {
		return "", ErrNoTokenSource
	}

	token, err := m.source.Token()
	if err != nil {
		return "", fmt.Errorf("fetching token: %w", err)
	}

	if token.AccessToken == "" {
		return "", ErrEmptyToken
	}

	return token.AccessToken, nil
}

// NewDefaultCredentialsManager resolves Google application default
// credentials for the given scopes.
func NewDefaultCredentialsManager(ctx context.Context, scopes ...string) (*TokenSourceManager, error) {
	credentials, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("finding default credentials: %w", err)
	}

	return NewTokenSourceManager(credentials.TokenSource), nil
}

// RefreshTokenConfig describes an OAuth2 refresh-token grant against
// Google's token endpoint.
type RefreshTokenConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// TokenURL defaults to Google's token endpoint.
	TokenURL string
	Scopes   []string
}

// NewRefreshTokenManager builds a token manager that exchanges a refresh
// token for access tokens.
func NewRefreshTokenManager(ctx context.Context, config *RefreshTokenConfig) *TokenSourceManager {
	endpoint := google.Endpoint
	if config.TokenURL != "" {
		endpoint.TokenURL = config.TokenURL
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       config.Scopes,
	}

	return NewTokenSourceManager(oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken}))
}
