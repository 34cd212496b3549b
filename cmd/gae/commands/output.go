package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// render writes value in the configured output format. fill populates the
// table for the table format.
func render(cmd *cobra.Command, value interface{}, fill func(*tablewriter.Table) error) error {
	out := cmd.OutOrStdout()

	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}

		return encoder.Close()
	case "", constants.FormatTable:
		table := tablewriter.NewWriter(out)

		err := fill(table)
		if err != nil {
			return err
		}

		err = table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// propertyTable fills a two-column property/value table.
func propertyTable(rows [][2]string) func(*tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		for _, row := range rows {
			err := table.Append([]string{row[0], valueOrNA(row[1])})
			if err != nil {
				return fmt.Errorf("failed to append row to table: %w", err)
			}
		}

		return nil
	}
}

// renderList writes a list response, one table row per item. In table
// format the next page token goes to stderr.
func renderList(cmd *cobra.Command, value interface{}, headers []string, rows [][]string, nextPageToken string) error {
	err := render(cmd, value, func(table *tablewriter.Table) error {
		header := make([]any, len(headers))
		for i, name := range headers {
			header[i] = name
		}

		table.Header(header...)

		for _, row := range rows {
			for i := range row {
				row[i] = valueOrNA(row[i])
			}

			err := table.Append(row)
			if err != nil {
				return fmt.Errorf("failed to append row to table: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if nextPageToken != "" && isTableOutput() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Next page: --page-token %s\n", nextPageToken)
	}

	return nil
}

func isTableOutput() bool {
	format := viper.GetString("output")

	return format == "" || format == constants.FormatTable
}

func renderOperation(cmd *cobra.Command, operation *appengine.Operation) error {
	status := "running"
	if operation.Done {
		status = "done"
	}

	errorMessage := ""
	if operation.Error != nil {
		errorMessage = operation.Error.Message
	}

	return render(cmd, operation, propertyTable([][2]string{
		{"Name", operation.Name},
		{"Status", status},
		{"Error", errorMessage},
	}))
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func formatTime(value *time.Time) string {
	if value == nil {
		return ""
	}

	return value.Format(time.RFC3339)
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
