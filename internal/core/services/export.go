package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService downloads server-side exports into a local directory.
type ExportService struct {
	api        driven.JobAPI
	normaliser driven.JobNormaliser
	history    driven.ExportHistoryStore
	dir        string
	now        func() time.Time
}

// NewExportService creates a new export service. history may be nil, in
// which case exports are not recorded.
func NewExportService(
	api driven.JobAPI,
	normaliser driven.JobNormaliser,
	history driven.ExportHistoryStore,
	dir string,
) *ExportService {
	if dir == "" {
		dir = domain.DefaultExportDir
	}
	return &ExportService{
		api:        api,
		normaliser: normaliser,
		history:    history,
		dir:        dir,
		now:        time.Now,
	}
}

// Export downloads an export, writes it and records it in the history.
// Archives are refused until the job, or the requested sector, is DONE
// unless opts.Force is set.
func (s *ExportService) Export(
	ctx context.Context, req domain.ExportRequest, opts driving.ExportOptions,
) (*domain.ExportRecord, error) {
	req.JobID = strings.TrimSpace(req.JobID)
	if req.JobID == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: export kind %q", domain.ErrUnsupportedType, req.Kind)
	}
	if req.Kind == domain.ExportSectorXLSX && req.Sector == nil {
		return nil, fmt.Errorf("%w: %s export needs a sector", domain.ErrInvalidInput, req.Kind)
	}

	logger.Section("Export")
	logger.Debug("Job: %s, kind: %s", req.JobID, req.Kind)

	if requiresDone(req.Kind) && !opts.Force {
		if err := s.checkReady(ctx, req); err != nil {
			return nil, err
		}
	}

	payload, err := s.api.Export(ctx, req)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = s.dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, exportFilename(payload.Filename, req))
	if err := os.WriteFile(path, payload.Data, 0o644); err != nil { //nolint:gosec // exports are user documents
		return nil, fmt.Errorf("write export: %w", err)
	}

	rec := &domain.ExportRecord{
		ID:        uuid.NewString(),
		JobID:     req.JobID,
		Sector:    req.Sector,
		Kind:      req.Kind,
		Path:      path,
		Size:      int64(len(payload.Data)),
		CreatedAt: s.now().UTC(),
	}
	if s.history != nil {
		if err := s.history.Record(ctx, rec); err != nil {
			logger.Warn("Failed to record export: %v", err)
		}
	}
	logger.Info("Exported %s (%d bytes)", path, rec.Size)
	return rec, nil
}

func requiresDone(k domain.ExportKind) bool {
	return k == domain.ExportZIP || k == domain.ExportSectorXLSX
}

func (s *ExportService) checkReady(ctx context.Context, req domain.ExportRequest) error {
	detail, err := s.api.GetJobDetail(ctx, req.JobID, nil)
	if err != nil {
		return fmt.Errorf("fetch job %s: %w", req.JobID, err)
	}
	card := BuildJobCard(s.normaliser.Normalise(detail.Job))
	if req.Sector != nil {
		if !card.CanExportSector(*req.Sector) {
			return fmt.Errorf("%w: sector %d of job %s is not DONE", domain.ErrExportNotReady, *req.Sector, req.JobID)
		}
		return nil
	}
	if !card.CanExportJob() {
		return fmt.Errorf("%w: job %s is not DONE in every sector", domain.ErrExportNotReady, req.JobID)
	}
	return nil
}

// exportFilename keeps only the base name the server suggested.
func exportFilename(suggested string, req domain.ExportRequest) string {
	name := filepath.Base(strings.TrimSpace(suggested))
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return req.FallbackFilename()
	}
	return name
}

// History returns recorded exports, most recent first.
func (s *ExportService) History(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if s.history == nil {
		return []domain.ExportRecord{}, nil
	}
	return s.history.List(ctx, limit)
}

// ClearHistory removes every recorded export.
func (s *ExportService) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx)
}
