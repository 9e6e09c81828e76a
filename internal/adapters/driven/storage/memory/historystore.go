package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure ExportHistoryStore implements the interface.
var _ driven.ExportHistoryStore = (*ExportHistoryStore)(nil)

// ExportHistoryStore is an in-memory implementation of
// driven.ExportHistoryStore, used in tests and when history is disabled
// on disk.
type ExportHistoryStore struct {
	mu      sync.RWMutex
	records []domain.ExportRecord
}

// NewExportHistoryStore creates a new in-memory export history store.
func NewExportHistoryStore() *ExportHistoryStore {
	return &ExportHistoryStore{}
}

// Record saves an export, assigning an ID when it has none.
func (s *ExportHistoryStore) Record(_ context.Context, rec *domain.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

// List returns the most recent records first. limit <= 0 returns all.
func (s *ExportHistoryStore) List(_ context.Context, limit int) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sorted(func(domain.ExportRecord) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByJob returns the records of one job, most recent first.
func (s *ExportHistoryStore) ListByJob(_ context.Context, jobID string) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(r domain.ExportRecord) bool { return r.JobID == jobID }), nil
}

// Clear removes every record.
func (s *ExportHistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// sorted returns matching records newest first; records with equal
// timestamps keep reverse insertion order.
func (s *ExportHistoryStore) sorted(keep func(domain.ExportRecord) bool) []domain.ExportRecord {
	out := make([]domain.ExportRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		if keep(s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.ExportRecord) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out
}
