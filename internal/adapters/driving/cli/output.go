package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// addOutputFlag registers -o/--output on cmd.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output format: table, json or yaml (default from config)")
}

// outputFormat returns the -o flag, falling back to the configured format.
func outputFormat(cmd *cobra.Command) (domain.OutputFormat, error) {
	raw, _ := cmd.Flags().GetString("output")
	if raw == "" && settingsService != nil {
		if st, err := settingsService.Get(); err == nil {
			return st.Output, nil
		}
	}
	if raw == "" {
		return domain.DefaultOutputFormat, nil
	}
	f := domain.OutputFormat(strings.ToLower(raw))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: output format %q", domain.ErrUnsupportedType, raw)
	}
	return f, nil
}

// printStructured writes v as JSON or YAML. It reports false for the
// table format so the caller renders its own table.
func printStructured(cmd *cobra.Command, format domain.OutputFormat, v any) (bool, error) {
	switch format {
	case domain.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
		return true, nil
	case domain.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Print(string(data))
		return true, nil
	default:
		return false, nil
	}
}

func orDash(s string) string {
	if s == "" {
		return domain.Placeholder
	}
	return s
}
