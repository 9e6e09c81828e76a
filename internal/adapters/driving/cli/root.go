// Package cli implements the fieldlens command line with cobra.
//
// Commands read their services from package state installed by
// SetServices, so main can wire adapters once and tests can swap in
// mocks.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

var version = "dev"

var verbose bool

// Services holds everything the commands call into.
type Services struct {
	Jobs     driving.JobService
	Preview  driving.PreviewService
	Export   driving.ExportService
	Auth     driving.AuthService
	Settings driving.SettingsService

	// PreviewWriter writes `preview --xlsx` workbooks.
	PreviewWriter driven.PreviewWriter

	// WatchConfig blocks until ctx ends, calling onReload whenever the
	// config file changed on disk. It may be nil.
	WatchConfig func(ctx context.Context, onReload func()) error
}

var (
	jobService      driving.JobService
	previewService  driving.PreviewService
	exportService   driving.ExportService
	authService     driving.AuthService
	settingsService driving.SettingsService
	previewWriter   driven.PreviewWriter
	watchConfig     func(ctx context.Context, onReload func()) error
)

var rootCmd = &cobra.Command{
	Use:   "fieldlens",
	Short: "Review field inspection jobs from the terminal",
	Long: `fieldlens is a terminal client for the field inspection backend.

It lists inspection jobs, previews their photo checklists per sector,
downloads exports and manages the dashboard session.

Run 'fieldlens tui' for the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	jobService = s.Jobs
	previewService = s.Preview
	exportService = s.Export
	authService = s.Auth
	settingsService = s.Settings
	previewWriter = s.PreviewWriter
	watchConfig = s.WatchConfig
}

// SetVersion sets the version printed by `fieldlens version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// sectorFlag returns the --sector value when the flag was given.
func sectorFlag(cmd *cobra.Command) (*int, error) {
	if !cmd.Flags().Changed("sector") {
		return nil, nil
	}
	n, err := cmd.Flags().GetInt("sector")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: sector must not be negative", domain.ErrInvalidInput)
	}
	return &n, nil
}
