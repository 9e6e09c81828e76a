package mcp

import (
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Jobs lists jobs and sector templates.
	Jobs driving.JobService

	// Preview assembles job previews.
	Preview driving.PreviewService
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
