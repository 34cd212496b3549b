package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// NewInstancesCommand creates the instances command group
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance"},
		Short:   "Manage instances",
		Long:    "List, inspect, stop and debug the instances of a version",
	}

	cmd.AddCommand(newInstancesListCommand())
	cmd.AddCommand(newInstancesGetCommand())
	cmd.AddCommand(newInstancesDeleteCommand())
	cmd.AddCommand(newInstancesDebugCommand())

	return cmd
}

func newInstancesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list SERVICE VERSION",
		Short: "List instances",
		Long:  "List the instances of a version",
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

			list, err := client.Instances().List(cmd.Context(), app, args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("failed to list instances: %w", err)
			}

			rows := make([][]string, 0, len(list.Instances))
			for _, instance := range list.Instances {
				rows = append(rows, []string{
					instance.ID,
					instance.Availability,
					instance.VMStatus,
					formatInt(instance.Requests),
					formatTime(instance.StartTime),
				})
			}

			return renderList(cmd, list, []string{"ID", "Availability", "VM Status", "Requests", "Started"}, rows, list.NextPageToken)
		},
	}

	addListFlags(cmd, false)

	return cmd
}

func newInstancesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE VERSION INSTANCE",
		Short: "Get instance details",
		Long:  "Display an instance and its load statistics",
		Args:  cobra.ExactArgs(3),
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

			instance, err := client.Instances().Get(cmd.Context(), app, args[0], args[1], args[2], opts)
			if err != nil {
				return fmt.Errorf("failed to get instance: %w", err)
			}

			return render(cmd, instance, propertyTable([][2]string{
				{"Name", instance.Name},
				{"ID", instance.ID},
				{"Availability", instance.Availability},
				{"Release", instance.AppEngineRelease},
				{"VM", instance.VMName},
				{"VM Status", instance.VMStatus},
				{"VM Debug", strconv.FormatBool(instance.VMDebugEnabled)},
				{"Requests", formatInt(instance.Requests)},
				{"Errors", formatInt(instance.Errors)},
				{"QPS", strconv.FormatFloat(instance.Qps, 'f', 2, 64)},
				{"Memory (bytes)", formatInt(instance.MemoryUsage)},
				{"Started", formatTime(instance.StartTime)},
			}))
		},
	}
}

func newInstancesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SERVICE VERSION INSTANCE",
		Short: "Stop an instance",
		Long:  "Stop a running instance",
		Args:  cobra.ExactArgs(3),
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

			operation, err := client.Instances().Delete(cmd.Context(), app, args[0], args[1], args[2], opts)
			if err != nil {
				return fmt.Errorf("failed to delete instance: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	addWaitFlag(cmd)

	return cmd
}

func newInstancesDebugCommand() *cobra.Command {
	var sshKey string

	cmd := &cobra.Command{
		Use:   "debug SERVICE VERSION INSTANCE",
		Short: "Enable debug mode on an instance",
		Long:  "Enable debug mode on a flexible environment instance, optionally adding an SSH key",
		Args:  cobra.ExactArgs(3),
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

			request := &appengine.DebugInstanceRequest{SSHKey: sshKey}

			operation, err := client.Instances().Debug(cmd.Context(), app, args[0], args[1], args[2], request, opts)
			if err != nil {
				return fmt.Errorf("failed to debug instance: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "public key in the form [USERNAME]:ssh-rsa [KEY_VALUE] [USERNAME]")
	addWaitFlag(cmd)

	return cmd
}
