package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// NewVersionsCommand creates the versions command group
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage versions",
		Long:  "List, inspect, deploy, update and delete the versions of a service",
	}

	cmd.AddCommand(newVersionsListCommand())
	cmd.AddCommand(newVersionsGetCommand())
	cmd.AddCommand(newVersionsCreateCommand())
	cmd.AddCommand(newVersionsPatchCommand())
	cmd.AddCommand(newVersionsDeleteCommand())

	return cmd
}

func addViewFlag(cmd *cobra.Command) {
	cmd.Flags().String("view", "", "BASIC or FULL")
}

func newVersionsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list SERVICE",
		Short: "List versions",
		Long:  "List the versions of a service",
		Args:  cobra.ExactArgs(1),
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

			list, err := client.Versions().List(cmd.Context(), app, args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to list versions: %w", err)
			}

			rows := make([][]string, 0, len(list.Versions))
			for _, version := range list.Versions {
				rows = append(rows, []string{
					version.ID,
					version.Runtime,
					version.Env,
					version.ServingStatus,
					formatTime(version.CreateTime),
				})
			}

			return renderList(cmd, list, []string{"ID", "Runtime", "Env", "Status", "Created"}, rows, list.NextPageToken)
		},
	}

	addListFlags(cmd, false)
	addViewFlag(cmd)

	return cmd
}

func newVersionsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get SERVICE VERSION",
		Short: "Get version details",
		Long:  "Display a version. Use --view FULL for the complete resource",
		Args:  cobra.ExactArgs(2),
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

			version, err := client.Versions().Get(cmd.Context(), app, args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}

			return render(cmd, version, propertyTable([][2]string{
				{"Name", version.Name},
				{"ID", version.ID},
				{"Runtime", version.Runtime},
				{"Env", version.Env},
				{"Serving Status", version.ServingStatus},
				{"Instance Class", version.InstanceClass},
				{"URL", version.VersionURL},
				{"Created By", version.CreatedBy},
				{"Created", formatTime(version.CreateTime)},
				{"Disk Usage (bytes)", formatInt(version.DiskUsageBytes)},
			}))
		},
	}

	addViewFlag(cmd)

	return cmd
}

func newVersionsCreateCommand() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "create SERVICE",
		Short: "Deploy a version",
		Long:  "Deploy a new version of a service from a JSON or YAML version definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			version := &appengine.Version{}

			err = readBody(cmd, fromFile, version)
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

			operation, err := client.Versions().Create(cmd.Context(), app, args[0], version, opts)
			if err != nil {
				return fmt.Errorf("failed to create version: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML version definition (- for stdin)")
	_ = cmd.MarkFlagRequired("from-file")
	addWaitFlag(cmd)

	return cmd
}

func newVersionsPatchCommand() *cobra.Command {
	var (
		servingStatus string
		instances     int64
		fromFile      string
	)

	cmd := &cobra.Command{
		Use:   "patch SERVICE VERSION",
		Short: "Update a version",
		Long: `Update a version. Common uses are stopping or starting it and changing
the number of manual scaling instances.

Example:
  gae versions patch default v1 --serving-status STOPPED`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			version := &appengine.Version{}
			if fromFile != "" {
				err = readBody(cmd, fromFile, version)
				if err != nil {
					return err
				}
			}

			var mask []string

			if cmd.Flags().Changed("serving-status") {
				version.ServingStatus = strings.ToUpper(servingStatus)
				mask = append(mask, "servingStatus")
			}

			if cmd.Flags().Changed("instances") {
				version.ManualScaling = &appengine.ManualScaling{Instances: instances}
				mask = append(mask, "manualScaling.instances")
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

			operation, err := client.Versions().Patch(cmd.Context(), app, args[0], args[1], version, opts)
			if err != nil {
				return fmt.Errorf("failed to update version: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVar(&servingStatus, "serving-status", "", "SERVING or STOPPED")
	cmd.Flags().Int64Var(&instances, "instances", 0, "manual scaling instance count")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML version fields")
	cmd.Flags().String("update-mask", "", "comma-separated fields to update")
	addWaitFlag(cmd)

	return cmd
}

func newVersionsDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SERVICE VERSION",
		Short: "Delete a version",
		Long:  "Delete a version that receives no traffic",
		Args:  cobra.ExactArgs(2),
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

			operation, err := client.Versions().Delete(cmd.Context(), app, args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("failed to delete version: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	addWaitFlag(cmd)

	return cmd
}
