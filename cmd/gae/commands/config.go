package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	API                   string `json:"api,omitempty"                     yaml:"api,omitempty"`
	Token                 string `json:"token,omitempty"                   yaml:"token,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"           yaml:"refresh_token,omitempty"`
	ClientID              string `json:"client_id,omitempty"               yaml:"client_id,omitempty"`
	ClientSecret          string `json:"client_secret,omitempty"           yaml:"client_secret,omitempty"`
	UseDefaultCredentials bool   `json:"use_default_credentials,omitempty" yaml:"use_default_credentials,omitempty"`
	Key                   string `json:"key,omitempty"                     yaml:"key,omitempty"`
	QuotaUser             string `json:"quota_user,omitempty"              yaml:"quota_user,omitempty"`
	App                   string `json:"app,omitempty"                     yaml:"app,omitempty"`
	Output                string `json:"output,omitempty"                  yaml:"output,omitempty"`
	CacheURL              string `json:"cache_url,omitempty"               yaml:"cache_url,omitempty"`
}

// configKeys maps configuration keys to their setters.
var configKeys = map[string]func(*Config, string) error{
	"api":           func(c *Config, v string) error { c.API = v; return nil },
	"token":         func(c *Config, v string) error { c.Token = v; return nil },
	"refresh_token": func(c *Config, v string) error { c.RefreshToken = v; return nil },
	"client_id":     func(c *Config, v string) error { c.ClientID = v; return nil },
	"client_secret": func(c *Config, v string) error { c.ClientSecret = v; return nil },
	"use_default_credentials": func(c *Config, v string) error {
		if v == "" {
			c.UseDefaultCredentials = false

			return nil
		}

		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %q", constants.ErrInvalidBoolean, v)
		}

		c.UseDefaultCredentials = enabled

		return nil
	},
	"key":        func(c *Config, v string) error { c.Key = v; return nil },
	"quota_user": func(c *Config, v string) error { c.QuotaUser = v; return nil },
	"app":        func(c *Config, v string) error { c.App = v; return nil },
	"cache_url":  func(c *Config, v string) error { c.CacheURL = v; return nil },
	"output": func(c *Config, v string) error {
		switch v {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, v)
		}
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in ~/.gae/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())

			return render(cmd, config, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")

				rows := [][]string{
					{"API", config.API},
					{"App", config.App},
					{"Token", config.Token},
					{"Refresh Token", config.RefreshToken},
					{"Client ID", config.ClientID},
					{"Client Secret", config.ClientSecret},
					{"Default Credentials", strconv.FormatBool(config.UseDefaultCredentials)},
					{"API Key", config.Key},
					{"Quota User", config.QuotaUser},
					{"Output", config.Output},
				}

				for _, row := range rows {
					err := table.Append([]string{row[0], valueOrNA(row[1])})
					if err != nil {
						return fmt.Errorf("failed to append row to table: %w", err)
					}
				}

				return nil
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + joinedConfigKeys(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], args[1], "set")
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + joinedConfigKeys(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], "", "unset")
		},
	}
}

func updateConfig(cmd *cobra.Command, key, value, action string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config := loadConfig()

	err := setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfig(config)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", action, key)

	return nil
}

// loadConfig reads the configuration file merged with environment variables.
func loadConfig() *Config {
	return &Config{
		API:                   viper.GetString("api"),
		Token:                 viper.GetString("token"),
		RefreshToken:          viper.GetString("refresh_token"),
		ClientID:              viper.GetString("client_id"),
		ClientSecret:          viper.GetString("client_secret"),
		UseDefaultCredentials: viper.GetBool("use_default_credentials"),
		Key:                   viper.GetString("key"),
		QuotaUser:             viper.GetString("quota_user"),
		App:                   viper.GetString("app"),
		Output:                viper.GetString("output"),
		CacheURL:              viper.GetString("cache_url"),
	}
}

// saveConfig writes config to the file in use, or ~/.gae/config.yml.
func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configFile = filepath.Join(home, ".gae", "config.yml")
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if config.Output == constants.FormatTable {
		config.Output = ""
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.SetConfigFile(configFile)

	return viper.ReadInConfig()
}

func maskSecrets(config *Config) *Config {
	masked := *config

	for _, secret := range []*string{&masked.Token, &masked.RefreshToken, &masked.ClientSecret, &masked.Key} {
		if *secret != "" {
			*secret = constants.MaskedSecret
		}
	}

	return &masked
}

func joinedConfigKeys() string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}
