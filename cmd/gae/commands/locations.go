package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLocationsCommand creates the locations command group
func NewLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location", "regions"},
		Short:   "Show locations",
		Long:    "List the locations an application can be created in",
	}

	cmd.AddCommand(newLocationsListCommand())
	cmd.AddCommand(newLocationsGetCommand())

	return cmd
}

func newLocationsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		Long:  "List the locations available to the application",
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

			list, err := client.Locations().List(cmd.Context(), app, opts)
			if err != nil {
				return fmt.Errorf("failed to list locations: %w", err)
			}

			rows := make([][]string, 0, len(list.Locations))
			for _, location := range list.Locations {
				rows = append(rows, []string{location.LocationID, location.DisplayName})
			}

			return renderList(cmd, list, []string{"ID", "Display Name"}, rows, list.NextPageToken)
		},
	}

	addListFlags(cmd, true)

	return cmd
}

func newLocationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOCATION",
		Short: "Get location details",
		Long:  "Display a location",
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

			location, err := client.Locations().Get(cmd.Context(), app, args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to get location: %w", err)
			}

			return render(cmd, location, propertyTable([][2]string{
				{"Name", location.Name},
				{"ID", location.LocationID},
				{"Display Name", location.DisplayName},
			}))
		},
	}
}
