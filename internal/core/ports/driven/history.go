package driven

import (
	"context"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// ExportHistoryStore records downloaded exports.
type ExportHistoryStore interface {
	// Record saves an export. An empty ID is assigned by the store.
	Record(ctx context.Context, rec *domain.ExportRecord) error

	// List returns the most recent records first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.ExportRecord, error)

	// ListByJob returns the records of one job, most recent first.
	ListByJob(ctx context.Context, jobID string) ([]domain.ExportRecord, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}

// PreviewWriter writes an assembled preview to a local file.
type PreviewWriter interface {
	// WritePreview writes the preview to path.
	WritePreview(preview *domain.Preview, path string) error
}
