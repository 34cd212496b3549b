package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fivetwenty-io/appengine-client/internal/auth"
	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/internal/http"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// Static errors for err113 compliance.
var (
	ErrUnexpectedResponse = errors.New("unexpected response type")
)

// Client implements the appengine.Client interface.
type Client struct {
	executor     Executor
	tokenManager auth.TokenManager
	baseURL      string
	logger       appengine.Logger

	mutex    sync.RWMutex
	defaults endpoint.Defaults

	// Resource clients
	apps       *AppsClient
	services   *ServicesClient
	versions   *VersionsClient
	instances  *InstancesClient
	operations *OperationsClient
	locations  *LocationsClient
}

// createTokenManager picks the token manager for config, in the precedence
// documented on appengine.Config.
func createTokenManager(ctx context.Context, config *appengine.Config) (auth.TokenManager, error) {
	switch {
	case config.AccessToken != "":
		return auth.NewStaticTokenManager(config.AccessToken), nil
	case config.TokenSource != nil:
		return auth.NewTokenSourceManager(config.TokenSource), nil
	case config.UseDefaultCredentials:
		manager, err := auth.NewDefaultCredentialsManager(ctx, constants.CloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("creating default credentials token manager: %w", err)
		}

		return manager, nil
	default:
		return nil, nil //nolint:nilnil // no authentication
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *appengine.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createInterceptors assembles the built-in interceptors followed by the
// caller's chain.
func createInterceptors(config *appengine.Config) (*appengine.InterceptorChain, error) {
	chain := appengine.NewInterceptorChain()

	if config.Logger != nil {
		chain.AddRequestInterceptor(appengine.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(appengine.LoggingResponseInterceptor(config.Logger))
	}

	if config.MetricsRegisterer != nil {
		metrics, err := appengine.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}

		chain.AddRequestInterceptor(appengine.MetricsRequestInterceptor(metrics))
		chain.AddResponseInterceptor(appengine.MetricsResponseInterceptor(metrics))
	}

	if config.Interceptors != nil {
		chain.AddRequestInterceptor(config.Interceptors.ExecuteRequestInterceptors)
		chain.AddResponseInterceptor(config.Interceptors.ExecuteResponseInterceptors)
	}

	return chain, nil
}

// New creates a new App Engine Admin API client.
func New(ctx context.Context, config *appengine.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	tokenManager, err := createTokenManager(ctx, config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, tokenManager)
}

// NewWithTokenManager creates a new client with a custom token manager.
func NewWithTokenManager(config *appengine.Config, tokenManager auth.TokenManager) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	if config.APIEndpoint == "" {
		return nil, appengine.ErrAPIEndpointRequired
	}

	interceptors, err := createInterceptors(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	var executor Executor = NewHTTPExecutor(httpClient, interceptors)
	if config.Cache != nil {
		executor = NewCachingExecutor(executor, config.Cache, config.CachePolicy, tokenManager, config.Logger)
	}

	client := NewWithExecutor(executor, endpoint.Defaults{
		Key:       config.APIKey,
		QuotaUser: config.QuotaUser,
	})
	client.tokenManager = tokenManager
	client.baseURL = config.APIEndpoint
	client.logger = config.Logger

	return client, nil
}

// NewWithExecutor creates a client that hands every built command to
// executor.
func NewWithExecutor(executor Executor, defaults endpoint.Defaults) *Client {
	client := &Client{
		executor: executor,
		defaults: defaults,
	}

	client.initializeResourceClients()

	return client
}

// SetKey implements appengine.Defaults.SetKey.
func (c *Client) SetKey(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.defaults.Key = key
}

// SetQuotaUser implements appengine.Defaults.SetQuotaUser.
func (c *Client) SetQuotaUser(quotaUser string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.defaults.QuotaUser = quotaUser
}

// Defaults returns a snapshot of the client-wide defaults.
func (c *Client) Defaults() endpoint.Defaults {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.defaults
}

// Build builds the command for id with the current defaults.
func (c *Client) Build(id endpoint.ID, ids []string, request any, opts *appengine.CallOptions) (*endpoint.Command, error) {
	return endpoint.Build(id, ids, request, opts, c.Defaults())
}

// Execute runs cmd synchronously.
func (c *Client) Execute(ctx context.Context, cmd *endpoint.Command) error {
	return c.executor.Execute(ctx, cmd)
}

// Go runs cmd asynchronously. The channel receives the outcome and is then
// closed; on success cmd.Response holds the decoded body.
func (c *Client) Go(ctx context.Context, cmd *endpoint.Command) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		done <- c.executor.Execute(ctx, cmd)
	}()

	return done
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", auth.ErrNoTokenSource
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Apps implements appengine.Client.Apps.
func (c *Client) Apps() appengine.AppsClient {
	return c.apps
}

// Services implements appengine.Client.Services.
func (c *Client) Services() appengine.ServicesClient {
	return c.services
}

// Versions implements appengine.Client.Versions.
func (c *Client) Versions() appengine.VersionsClient {
	return c.versions
}

// Instances implements appengine.Client.Instances.
func (c *Client) Instances() appengine.InstancesClient {
	return c.instances
}

// Operations implements appengine.Client.Operations.
func (c *Client) Operations() appengine.OperationsClient {
	return c.operations
}

// Locations implements appengine.Client.Locations.
func (c *Client) Locations() appengine.LocationsClient {
	return c.locations
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.apps = NewAppsClient(c)
	c.services = NewServicesClient(c)
	c.versions = NewVersionsClient(c)
	c.instances = NewInstancesClient(c)
	c.operations = NewOperationsClient(c)
	c.locations = NewLocationsClient(c)
}

// invoke builds and executes one call and returns its decoded response.
func invoke[T any](ctx context.Context, c *Client, id endpoint.ID, ids []string, request any, opts *appengine.CallOptions) (*T, error) {
	cmd, err := c.Build(id, ids, request, opts)
	if err != nil {
		return nil, err
	}

	err = c.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	result, ok := cmd.Response.(*T)
	if !ok {
		return nil, fmt.Errorf("%w for %s: %T", ErrUnexpectedResponse, id, cmd.Response)
	}

	return result, nil
}

// loggerAdapter adapts appengine.Logger to http.Logger.
type loggerAdapter struct {
	logger appengine.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ appengine.Client = (*Client)(nil)
