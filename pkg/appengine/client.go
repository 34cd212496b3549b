package appengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2"
)

// AppsClient manages applications.
type AppsClient interface {
	Get(ctx context.Context, appsID string, opts *CallOptions) (*Application, error)
	Create(ctx context.Context, app *Application, opts *CallOptions) (*Operation, error)
	Patch(ctx context.Context, appsID string, app *Application, opts *CallOptions) (*Operation, error)
	Repair(ctx context.Context, appsID string, request *RepairApplicationRequest, opts *CallOptions) (*Operation, error)
}

// ServicesClient manages the services of an application.
type ServicesClient interface {
	List(ctx context.Context, appsID string, opts *CallOptions) (*ListServicesResponse, error)
	Get(ctx context.Context, appsID, servicesID string, opts *CallOptions) (*Service, error)
	Patch(ctx context.Context, appsID, servicesID string, service *Service, opts *CallOptions) (*Operation, error)
	Delete(ctx context.Context, appsID, servicesID string, opts *CallOptions) (*Operation, error)
}

// VersionsClient manages the versions of a service.
type VersionsClient interface {
	List(ctx context.Context, appsID, servicesID string, opts *CallOptions) (*ListVersionsResponse, error)
	Get(ctx context.Context, appsID, servicesID, versionsID string, opts *CallOptions) (*Version, error)
	Create(ctx context.Context, appsID, servicesID string, version *Version, opts *CallOptions) (*Operation, error)
	Patch(ctx context.Context, appsID, servicesID, versionsID string, version *Version, opts *CallOptions) (*Operation, error)
	Delete(ctx context.Context, appsID, servicesID, versionsID string, opts *CallOptions) (*Operation, error)
}

// InstancesClient manages the instances of a version.
type InstancesClient interface {
	List(ctx context.Context, appsID, servicesID, versionsID string, opts *CallOptions) (*ListInstancesResponse, error)
	Get(ctx context.Context, appsID, servicesID, versionsID, instancesID string, opts *CallOptions) (*Instance, error)
	Delete(ctx context.Context, appsID, servicesID, versionsID, instancesID string, opts *CallOptions) (*Operation, error)
	Debug(ctx context.Context, appsID, servicesID, versionsID, instancesID string, request *DebugInstanceRequest, opts *CallOptions) (*Operation, error)
}

// OperationsClient reads long-running operations.
type OperationsClient interface {
	List(ctx context.Context, appsID string, opts *CallOptions) (*ListOperationsResponse, error)
	Get(ctx context.Context, appsID, operationsID string, opts *CallOptions) (*Operation, error)
	// Wait polls the operation until it is done.
	Wait(ctx context.Context, appsID, operationsID string) (*Operation, error)
}

// LocationsClient reads the locations available to an application.
type LocationsClient interface {
	List(ctx context.Context, appsID string, opts *CallOptions) (*ListLocationsResponse, error)
	Get(ctx context.Context, appsID, locationsID string, opts *CallOptions) (*Location, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Apps() AppsClient
	Services() ServicesClient
	Versions() VersionsClient
	Instances() InstancesClient
	Operations() OperationsClient
	Locations() LocationsClient
}

// Defaults holds the values applied to every outgoing call.
type Defaults interface {
	// SetKey sets the API key sent with every call unless overridden.
	SetKey(key string)
	// SetQuotaUser sets the quota user sent with every call unless overridden.
	SetQuotaUser(quotaUser string)
}

// Client is the App Engine Admin API client. It hands out one client per
// resource collection and holds the defaults applied to every call.
type Client interface {
	ResourceClients
	Defaults
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication precedence
//
//  1. AccessToken: used directly as a static Bearer token.
//  2. TokenSource: any oauth2.TokenSource, refreshed by the oauth2 package.
//  3. UseDefaultCredentials: Google application default credentials with
//     the cloud-platform scope.
//  4. None of the above: requests carry only the API key, if any.
//
// Retry behavior can be tuned via RetryMax/RetryWaitMin/RetryWaitMax.
type Config struct {
	// APIEndpoint is the root URL of the API. Defaults to
	// https://appengine.googleapis.com/ when empty.
	APIEndpoint string `validate:"omitempty,url"`

	AccessToken           string
	TokenSource           oauth2.TokenSource `validate:"-"`
	UseDefaultCredentials bool

	// APIKey and QuotaUser become the client-wide defaults.
	APIKey    string
	QuotaUser string

	UserAgent string
	Debug     bool
	Logger    Logger `validate:"-"`

	// Timeout bounds a single HTTP attempt. Defaults to 30s.
	Timeout time.Duration `validate:"gte=0"`

	RetryMax     int           `validate:"gte=0"`
	RetryWaitMin time.Duration `validate:"gte=0"`
	RetryWaitMax time.Duration `validate:"gte=0"`

	// MetricsRegisterer enables Prometheus request metrics when set.
	MetricsRegisterer prometheus.Registerer `validate:"-"`

	// Interceptors run after the built-in logging and metrics interceptors.
	Interceptors *InterceptorChain `validate:"-"`

	// Cache, when set, serves repeated reads. CachePolicy defaults to
	// DefaultCachingPolicy.
	Cache       Cache          `validate:"-"`
	CachePolicy *CachingPolicy `validate:"-"`
}

var configValidator = validator.New()

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	err := configValidator.Struct(c)
	if err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, valErrs[0].Field(), valErrs[0].Tag())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
