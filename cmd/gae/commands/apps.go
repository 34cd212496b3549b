package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// NewAppsCommand creates the apps command group
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app"},
		Short:   "Manage applications",
		Long:    "Get, create, update and repair App Engine applications",
	}

	cmd.AddCommand(newAppsGetCommand())
	cmd.AddCommand(newAppsCreateCommand())
	cmd.AddCommand(newAppsPatchCommand())
	cmd.AddCommand(newAppsRepairCommand())

	return cmd
}

func newAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Get application details",
		Long:  "Display information about the application selected with --app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			application, err := client.Apps().Get(cmd.Context(), app, opts)
			if err != nil {
				return fmt.Errorf("failed to get application: %w", err)
			}

			return render(cmd, application, propertyTable([][2]string{
				{"ID", application.ID},
				{"Location", application.LocationID},
				{"Serving Status", application.ServingStatus},
				{"Hostname", application.DefaultHostname},
				{"Auth Domain", application.AuthDomain},
				{"Code Bucket", application.CodeBucket},
				{"Default Bucket", application.DefaultBucket},
				{"Service Account", application.ServiceAccount},
				{"Database Type", application.DatabaseType},
				{"Dispatch Rules", formatDispatchRules(application.DispatchRules)},
			}))
		},
	}
}

func newAppsCreateCommand() *cobra.Command {
	var (
		location string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an application",
		Long:  "Create the App Engine application for the project given with --app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			application := &appengine.Application{}
			if fromFile != "" {
				err = readBody(cmd, fromFile, application)
				if err != nil {
					return err
				}
			}

			application.ID = app
			if location != "" {
				application.LocationID = location
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			operation, err := client.Apps().Create(cmd.Context(), application, opts)
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "region the application serves from")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML application definition")
	addWaitFlag(cmd)

	return cmd
}

func newAppsPatchCommand() *cobra.Command {
	var (
		authDomain    string
		servingStatus string
		fromFile      string
	)

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Update an application",
		Long:  "Update application fields. The update mask is derived from the flags unless --update-mask is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			application := &appengine.Application{}
			if fromFile != "" {
				err = readBody(cmd, fromFile, application)
				if err != nil {
					return err
				}
			}

			var mask []string

			if cmd.Flags().Changed("auth-domain") {
				application.AuthDomain = authDomain
				mask = append(mask, "authDomain")
			}

			if cmd.Flags().Changed("serving-status") {
				application.ServingStatus = servingStatus
				mask = append(mask, "servingStatus")
			}

			err = deriveUpdateMask(cmd, mask)
			if err != nil {
				return err
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			operation, err := client.Apps().Patch(cmd.Context(), app, application, opts)
			if err != nil {
				return fmt.Errorf("failed to update application: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVar(&authDomain, "auth-domain", "", "Google Apps authentication domain")
	cmd.Flags().StringVar(&servingStatus, "serving-status", "", "SERVING or USER_DISABLED")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML application fields")
	cmd.Flags().String("update-mask", "", "comma-separated fields to update")
	addWaitFlag(cmd)

	return cmd
}

func newAppsRepairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair an application",
		Long:  "Recreate the application's service account and its permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			opts, err := callOptions(cmd)
			if err != nil {
				return err
			}

			operation, err := client.Apps().Repair(cmd.Context(), app, &appengine.RepairApplicationRequest{}, opts)
			if err != nil {
				return fmt.Errorf("failed to repair application: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	addWaitFlag(cmd)

	return cmd
}

// deriveUpdateMask sets --update-mask from mask unless the user set it.
func deriveUpdateMask(cmd *cobra.Command, mask []string) error {
	if cmd.Flags().Changed("update-mask") || len(mask) == 0 {
		return nil
	}

	sort.Strings(mask)

	return cmd.Flags().Set("update-mask", strings.Join(mask, ","))
}

func formatDispatchRules(rules []appengine.URLDispatchRule) string {
	formatted := make([]string, 0, len(rules))
	for _, rule := range rules {
		formatted = append(formatted, rule.Domain+rule.Path+" -> "+rule.Service)
	}

	return strings.Join(formatted, "\n")
}
