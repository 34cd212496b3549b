package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
	"github.com/fivetwenty-io/appengine-client/pkg/gaeclient"
	"github.com/fivetwenty-io/appengine-client/pkg/logging"
)

// ErrAppRequired is returned when no application ID was given.
var ErrAppRequired = errors.New("application ID is required (use --app or 'gae config set app ID')")

// clientFactory builds the API client. Tests replace it.
var clientFactory = createClient

// openResources holds cleanups for connections a command opened. They run
// once the command finishes, whether it succeeded or not.
var (
	openResourcesMutex sync.Mutex
	openResources      []func()
)

func init() {
	cobra.OnFinalize(closeOpenResources)
}

func trackResource(closeFn func()) {
	openResourcesMutex.Lock()
	defer openResourcesMutex.Unlock()

	openResources = append(openResources, closeFn)
}

func closeOpenResources() {
	openResourcesMutex.Lock()
	closers := openResources
	openResources = nil
	openResourcesMutex.Unlock()

	for _, closeFn := range closers {
		closeFn()
	}
}

// createClient builds a client from the merged flag, environment and file
// configuration.
func createClient(ctx context.Context) (appengine.Client, error) {
	config := loadConfig()

	clientConfig := &appengine.Config{
		APIEndpoint:           config.API,
		AccessToken:           config.Token,
		UseDefaultCredentials: config.UseDefaultCredentials,
		APIKey:                config.Key,
		QuotaUser:             config.QuotaUser,
		UserAgent:             constants.DefaultUserAgent,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = logging.NewAdapter(logging.NewLogger(&logging.Config{
			Level:  "debug",
			Format: "console",
			Output: os.Stderr,
		}))
	}

	if config.CacheURL != "" {
		cache, err := appengine.NewNATSKVCache(&appengine.NATSKVConfig{
			URL: config.CacheURL,
			TTL: constants.DefaultCacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("opening response cache: %w", err)
		}

		trackResource(cache.Close)

		clientConfig.Cache = cache
	}

	switch {
	case config.Token != "" || config.UseDefaultCredentials:
		return gaeclient.New(ctx, clientConfig)
	case config.RefreshToken != "" && config.ClientID != "":
		return gaeclient.NewWithRefreshToken(ctx, clientConfig, config.ClientID, config.ClientSecret, config.RefreshToken)
	case config.Key != "":
		return gaeclient.New(ctx, clientConfig)
	default:
		return nil, constants.ErrNotAuthenticated
	}
}

// addCallFlags registers the optional per-call parameters common to every
// operation on the root command.
func addCallFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("fields", "", "partial response selector")
	flags.String("quota-user", "", "quota user for this call, overrides the configured default")
	flags.String("key", "", "API key for this call, overrides the configured default")
}

// addListFlags registers pagination and filter flags.
func addListFlags(cmd *cobra.Command, withFilter bool) {
	cmd.Flags().Int64("page-size", 0, "maximum results per page")
	cmd.Flags().String("page-token", "", "continuation token from a previous list call")

	if withFilter {
		cmd.Flags().String("filter", "", "filter expression")
	}
}

// callOptions converts the flags the user actually set into call options.
// Unset flags stay nil and never reach the request.
func callOptions(cmd *cobra.Command) (*appengine.CallOptions, error) {
	opts := appengine.NewCallOptions()
	flags := cmd.Flags()

	stringOptions := map[string]func(string) *appengine.CallOptions{
		"fields":      opts.WithFields,
		"quota-user":  opts.WithQuotaUser,
		"key":         opts.WithKey,
		"page-token":  opts.WithPageToken,
		"filter":      opts.WithFilter,
		"update-mask": opts.WithUpdateMask,
	}

	for name, set := range stringOptions {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}

		value, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", name, err)
		}

		set(value)
	}

	if flags.Lookup("page-size") != nil && flags.Changed("page-size") {
		size, err := flags.GetInt64("page-size")
		if err != nil {
			return nil, fmt.Errorf("reading --page-size: %w", err)
		}

		opts.WithPageSize(size)
	}

	if flags.Lookup("view") != nil && flags.Changed("view") {
		view, err := flags.GetString("view")
		if err != nil {
			return nil, fmt.Errorf("reading --view: %w", err)
		}

		opts.WithView(appengine.VersionView(strings.ToUpper(view)))
	}

	if flags.Lookup("migrate-traffic") != nil && flags.Changed("migrate-traffic") {
		migrate, err := flags.GetBool("migrate-traffic")
		if err != nil {
			return nil, fmt.Errorf("reading --migrate-traffic: %w", err)
		}

		opts.WithMigrateTraffic(migrate)
	}

	return opts, nil
}

// appID returns the application from --app or the configuration.
func appID() (string, error) {
	app := viper.GetString("app")
	if app == "" {
		return "", ErrAppRequired
	}

	return app, nil
}

// addWaitFlag registers --wait on commands that start an operation.
func addWaitFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("wait", false, "wait for the operation to finish")
}

// finishOperation optionally waits for operation and prints it.
func finishOperation(cmd *cobra.Command, client appengine.Client, app string, operation *appengine.Operation) error {
	wait, _ := cmd.Flags().GetBool("wait")
	if wait && !operation.Done {
		finished, err := client.Operations().Wait(cmd.Context(), app, operation.Name)
		if finished != nil {
			operation = finished
		}

		if err != nil {
			_ = renderOperation(cmd, operation)

			return fmt.Errorf("waiting for operation: %w", err)
		}
	}

	return renderOperation(cmd, operation)
}

// readBody decodes a JSON or YAML request body from path, or from stdin when
// path is "-".
func readBody(cmd *cobra.Command, path string, target interface{}) error {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}

	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	// JSON input uses the API field names, YAML input the snake_case ones.
	if strings.HasSuffix(path, ".json") || strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		err = json.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}

	if err != nil {
		return fmt.Errorf("parsing request body: %w", err)
	}

	return nil
}
