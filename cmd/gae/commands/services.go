package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// NewServicesCommand creates the services command group
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Manage services",
		Long:    "List, inspect, split traffic for and delete the services of an application",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesPatchCommand())
	cmd.AddCommand(newServicesDeleteCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long:  "List the services of the application",
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

			list, err := client.Services().List(cmd.Context(), app, opts)
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			rows := make([][]string, 0, len(list.Services))
			for _, service := range list.Services {
				rows = append(rows, []string{service.ID, formatSplit(service.Split)})
			}

			return renderList(cmd, list, []string{"ID", "Traffic Split"}, rows, list.NextPageToken)
		},
	}

	addListFlags(cmd, false)

	return cmd
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE",
		Short: "Get service details",
		Long:  "Display a service and its traffic split",
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

			service, err := client.Services().Get(cmd.Context(), app, args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to get service: %w", err)
			}

			shardBy := ""
			if service.Split != nil {
				shardBy = service.Split.ShardBy
			}

			ingress := ""
			if service.NetworkSettings != nil {
				ingress = service.NetworkSettings.IngressTrafficAllowed
			}

			return render(cmd, service, propertyTable([][2]string{
				{"Name", service.Name},
				{"ID", service.ID},
				{"Shard By", shardBy},
				{"Traffic Split", formatSplit(service.Split)},
				{"Ingress", ingress},
			}))
		},
	}
}

func newServicesPatchCommand() *cobra.Command {
	var (
		split    string
		shardBy  string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "patch SERVICE",
		Short: "Update a service",
		Long: `Update a service, most commonly its traffic split.

Example:
  gae services patch default --split v1=0.9,v2=0.1 --shard-by IP --migrate-traffic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appID()
			if err != nil {
				return err
			}

			service := &appengine.Service{}
			if fromFile != "" {
				err = readBody(cmd, fromFile, service)
				if err != nil {
					return err
				}
			}

			var mask []string

			if split != "" {
				allocations, err := parseSplit(split)
				if err != nil {
					return err
				}

				service.Split = &appengine.TrafficSplit{Allocations: allocations}
				mask = append(mask, "split")
			}

			if shardBy != "" {
				if service.Split == nil {
					service.Split = &appengine.TrafficSplit{}
				}

				service.Split.ShardBy = strings.ToUpper(shardBy)
				mask = append(mask, "split")
			}

			err = deriveUpdateMask(cmd, dedupe(mask))
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

			operation, err := client.Services().Patch(cmd.Context(), app, args[0], service, opts)
			if err != nil {
				return fmt.Errorf("failed to update service: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	cmd.Flags().StringVar(&split, "split", "", "traffic allocations as VERSION=FRACTION,...")
	cmd.Flags().StringVar(&shardBy, "shard-by", "", "COOKIE, IP or RANDOM")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "JSON or YAML service fields")
	cmd.Flags().String("update-mask", "", "comma-separated fields to update")
	cmd.Flags().Bool("migrate-traffic", false, "migrate traffic gradually to the new split")
	addWaitFlag(cmd)

	return cmd
}

func newServicesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SERVICE",
		Short: "Delete a service",
		Long:  "Delete a service and all of its versions",
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

			operation, err := client.Services().Delete(cmd.Context(), app, args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to delete service: %w", err)
			}

			return finishOperation(cmd, client, app, operation)
		},
	}

	addWaitFlag(cmd)

	return cmd
}

// parseSplit parses "v1=0.9,v2=0.1".
func parseSplit(value string) (map[string]float64, error) {
	allocations := make(map[string]float64)

	for _, part := range strings.Split(value, ",") {
		version, fraction, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || version == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidTrafficSplit, part)
		}

		share, err := strconv.ParseFloat(fraction, 64)
		if err != nil || share < 0 || share > 1 {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidTrafficSplit, part)
		}

		allocations[version] = share
	}

	return allocations, nil
}

func formatSplit(split *appengine.TrafficSplit) string {
	if split == nil || len(split.Allocations) == 0 {
		return ""
	}

	versions := make([]string, 0, len(split.Allocations))
	for version := range split.Allocations {
		versions = append(versions, version)
	}

	sort.Strings(versions)

	parts := make([]string, 0, len(versions))
	for _, version := range versions {
		parts = append(parts, version+"="+strconv.FormatFloat(split.Allocations[version], 'f', -1, 64))
	}

	return strings.Join(parts, ",")
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := values[:0]

	for _, value := range values {
		if !seen[value] {
			seen[value] = true
			result = append(result, value)
		}
	}

	return result
}
