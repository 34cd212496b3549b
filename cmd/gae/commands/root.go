package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the gae command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gae",
		Short: "App Engine Admin API v1 CLI",
		Long: `A command-line interface for the Google App Engine Admin API v1.

It manages applications, services, versions and instances, and follows
the long-running operations their changes start.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")

			return initConfig(configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.gae/config.yml)")
	flags.String("api", "", "API endpoint URL")
	flags.StringP("token", "t", "", "OAuth2 access token")
	flags.StringP("app", "a", "", "application ID")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	addCallFlags(rootCmd)

	for _, name := range []string{"api", "token", "app", "output", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewAppsCommand())
	rootCmd.AddCommand(NewServicesCommand())
	rootCmd.AddCommand(NewVersionsCommand())
	rootCmd.AddCommand(NewInstancesCommand())
	rootCmd.AddCommand(NewOperationsCommand())
	rootCmd.AddCommand(NewLocationsCommand())

	return rootCmd
}

// initConfig loads .env, then the config file, then GAE_* variables.
func initConfig(configFile string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		viper.AddConfigPath(filepath.Join(home, ".gae"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GAE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	if viper.GetBool("verbose") {
		_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
