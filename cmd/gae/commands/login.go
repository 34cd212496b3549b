package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		token                 string
		refreshToken          string
		clientID              string
		clientSecret          string
		useDefaultCredentials bool
		skipVerify            bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for the App Engine Admin API",
		Long: `Store credentials in the configuration file.

Without flags the command prompts for an OAuth2 access token, for example
the output of 'gcloud auth print-access-token'. With --app set, the
credentials are checked by reading the application.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch {
			case useDefaultCredentials:
				config.UseDefaultCredentials = true
				config.Token = ""
			case refreshToken != "":
				config.RefreshToken = refreshToken
				config.ClientID = clientID
				config.ClientSecret = clientSecret
				config.Token = ""
				config.UseDefaultCredentials = false
			default:
				if token == "" {
					var err error

					token, err = promptToken(cmd)
					if err != nil {
						return err
					}
				}

				if token == "" {
					return constants.ErrNotAuthenticated
				}

				config.Token = token
				config.UseDefaultCredentials = false
			}

			// Check the new credentials before persisting them.
			viper.Set("token", config.Token)
			viper.Set("refresh_token", config.RefreshToken)
			viper.Set("client_id", config.ClientID)
			viper.Set("client_secret", config.ClientSecret)
			viper.Set("use_default_credentials", config.UseDefaultCredentials)

			if !skipVerify && config.App != "" {
				client, err := clientFactory(cmd.Context())
				if err != nil {
					return err
				}

				_, err = client.Apps().Get(cmd.Context(), config.App, nil)
				if err != nil {
					return fmt.Errorf("failed to verify credentials: %w", err)
				}
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Login successful")

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "access-token", "", "OAuth2 access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "OAuth2 refresh token")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID for --refresh-token")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret for --refresh-token")
	cmd.Flags().BoolVar(&useDefaultCredentials, "use-default-credentials", false, "use Google application default credentials")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store credentials without checking them")
	cmd.MarkFlagsRequiredTogether("refresh-token", "client-id")
	cmd.MarkFlagsMutuallyExclusive("access-token", "refresh-token", "use-default-credentials")

	return cmd
}

// promptToken reads a token without echo on a terminal, or a line otherwise.
func promptToken(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(line), nil
}
