package driven

import (
	"context"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// JobAPI is the inspection backend.
//
// Photo ordering contract: GetJobDetail returns photos oldest-first. The
// photo index relies on it for latest-wins resolution; implementations
// that can observe upload times must sort by them.
type JobAPI interface {
	// ListJobs returns every job as raw payloads.
	ListJobs(ctx context.Context) ([]domain.RawJob, error)

	// GetJobDetail returns the job and its photos. A non-nil sector asks
	// the backend to scope the response to that sector.
	GetJobDetail(ctx context.Context, id string, sector *int) (*domain.JobDetail, error)

	// CreateJob creates a job and returns it as the backend stored it.
	CreateJob(ctx context.Context, req domain.CreateJobRequest) (domain.RawJob, error)

	// DeleteJob deletes a job, and its stored files when purgeFiles is set.
	DeleteJob(ctx context.Context, id string, purgeFiles bool) error

	// Export downloads a server-side export.
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportPayload, error)

	// GetSectorTemplate returns the suggested checklist for a sector.
	GetSectorTemplate(ctx context.Context, sector int) (*domain.SectorTemplate, error)

	// Login starts a dashboard session and returns the session token so
	// it can be reused by later invocations.
	Login(ctx context.Context, username, password string) (string, error)

	// CurrentUser returns the user of the current session.
	CurrentUser(ctx context.Context) (*domain.User, error)

	// Logout ends the dashboard session.
	Logout(ctx context.Context) error
}
