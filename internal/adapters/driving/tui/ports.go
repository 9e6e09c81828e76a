// Package tui provides an interactive terminal dashboard for inspection jobs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Jobs lists inspection jobs.
	Jobs driving.JobService

	// Preview assembles job previews and hands out sessions.
	Preview driving.PreviewService

	// Export downloads spreadsheets. Optional.
	Export driving.ExportService

	// Settings reads application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(jobs driving.JobService, preview driving.PreviewService) *Ports {
	return &Ports{
		Jobs:    jobs,
		Preview: preview,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Jobs == nil {
		return ErrMissingJobService
	}
	if p.Preview == nil {
		return ErrMissingPreviewService
	}
	return nil
}
