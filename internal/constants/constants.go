package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Endpoints.
const (
	// DefaultAPIEndpoint is the root URL of the App Engine Admin API.
	DefaultAPIEndpoint = "https://appengine.googleapis.com/"

	// CloudPlatformScope is the OAuth2 scope used for application default credentials.
	CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// DefaultUserAgent is sent when the caller does not configure one.
	DefaultUserAgent = "appengine-client-go"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry and concurrency limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second

	// DefaultBatchConcurrency limits concurrent batch operations.
	DefaultBatchConcurrency = 5
)

// HTTP status codes commonly used.
const (
	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400
)

// Long-running operation polling.
const (
	// DefaultPollInterval is used between operation status checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultOperationPollTimeout bounds a single Wait call.
	DefaultOperationPollTimeout = 10 * time.Minute
)

// Response caching.
const (
	// DefaultCacheSize is the entry limit of the in-memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheBucket is the NATS key-value bucket for shared caches.
	DefaultCacheBucket = "gae-cache"

	// DefaultNATSConnectTimeout bounds the initial NATS connection.
	DefaultNATSConnectTimeout = 5 * time.Second
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Display helpers.
const (
	// NotAvailable is shown for empty table cells.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in config output.
	MaskedSecret = "***"

	// JSONIndentSize is the indent used for JSON output.
	JSONIndentSize = 2
)
