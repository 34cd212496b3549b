package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOperationsCommand creates the operations command group
func NewOperationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"operation", "ops"},
		Short:   "Follow long-running operations",
		Long:    "List, inspect and wait for the operations started by application changes",
	}

	cmd.AddCommand(newOperationsListCommand())
	cmd.AddCommand(newOperationsGetCommand())
	cmd.AddCommand(newOperationsWaitCommand())

	return cmd
}

func newOperationsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations",
		Long:  "List the operations of the application",
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

			list, err := client.Operations().List(cmd.Context(), app, opts)
			if err != nil {
				return fmt.Errorf("failed to list operations: %w", err)
			}

			rows := make([][]string, 0, len(list.Operations))
			for _, operation := range list.Operations {
				status := "running"
				if operation.Done {
					status = "done"
				}

				if operation.Error != nil {
					status = "failed"
				}

				rows = append(rows, []string{operation.Name, status})
			}

			return renderList(cmd, list, []string{"Name", "Status"}, rows, list.NextPageToken)
		},
	}

	addListFlags(cmd, true)

	return cmd
}

func newOperationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get OPERATION",
		Short: "Get operation status",
		Long:  "Display the status of an operation",
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

			operation, err := client.Operations().Get(cmd.Context(), app, args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to get operation: %w", err)
			}

			return renderOperation(cmd, operation)
		},
	}
}

func newOperationsWaitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wait OPERATION",
		Short: "Wait for an operation",
		Long:  "Poll an operation until it finishes. OPERATION may be the ID or the full name",
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

			operation, err := client.Operations().Wait(cmd.Context(), app, args[0])
			if operation != nil {
				renderErr := renderOperation(cmd, operation)
				if renderErr != nil {
					return renderErr
				}
			}

			if err != nil {
				return fmt.Errorf("failed to wait for operation: %w", err)
			}

			return nil
		},
	}
}
