package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// refused describes an envelope the CRM did not mark as successful.
func refused(client remp.Client) error {
	if payload := client.LastError(); payload != nil {
		return fmt.Errorf("%w: %v", constants.ErrRequestRefused, payload)
	}

	return constants.ErrRequestRefused
}

// outputEnvelope prints a successful envelope in the selected output format.
func outputEnvelope(cmd *cobra.Command, env remp.Envelope) error {
	switch viper.GetString(KeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(env)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())

		return encoder.Encode(map[string]interface{}(env))
	default:
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Property", "Value")

		keys := make([]string, 0, len(env))
		for key := range env {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append(key, formatValue(env[key]))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// outputOutcome prints the result of a boolean operation.
func outputOutcome(cmd *cobra.Command, action string, success bool) error {
	result := map[string]interface{}{
		"action":  action,
		"success": success,
	}

	switch viper.GetString(KeyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())

		return encoder.Encode(result)
	default:
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Action", "Success")
		_ = table.Append(action, fmt.Sprintf("%t", success))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// formatValue renders nested values as compact JSON for table cells.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
