package driving

import (
	"context"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// JobService lists and manages inspection jobs.
type JobService interface {
	// List returns a card per job, in backend order.
	List(ctx context.Context) ([]domain.JobCard, error)

	// Get returns the card of one job.
	Get(ctx context.Context, id string) (*domain.JobCard, error)

	// Create normalises the worker phone and creates a job.
	Create(ctx context.Context, req domain.CreateJobRequest) (*domain.JobCard, error)

	// Delete removes a job, and its stored files when purgeFiles is set.
	Delete(ctx context.Context, id string, purgeFiles bool) error

	// Template returns the suggested checklist for a sector.
	Template(ctx context.Context, sector int) (*domain.SectorTemplate, error)
}

// ExportOptions controls where and whether an export is written.
type ExportOptions struct {
	// Dir overrides the configured export directory.
	Dir string

	// Force skips the DONE check for archive exports.
	Force bool
}

// ExportService downloads server-side exports.
type ExportService interface {
	// Export downloads an export, writes it to disk and records it.
	Export(ctx context.Context, req domain.ExportRequest, opts ExportOptions) (*domain.ExportRecord, error)

	// History returns recorded exports, most recent first.
	History(ctx context.Context, limit int) ([]domain.ExportRecord, error)

	// ClearHistory removes every recorded export.
	ClearHistory(ctx context.Context) error
}

// AuthService manages the dashboard session.
type AuthService interface {
	// Login authenticates and persists the session.
	Login(ctx context.Context, username, password string) error

	// Logout ends the session and forgets it locally.
	Logout(ctx context.Context) error

	// WhoAmI returns the current user.
	WhoAmI(ctx context.Context) (*domain.User, error)
}
