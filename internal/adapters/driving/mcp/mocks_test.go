package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

var errNotMocked = errors.New("not mocked")

// mockJobService is a mock implementation of driving.JobService.
type mockJobService struct {
	jobs     []domain.JobCard
	template *domain.SectorTemplate
	err      error
}

func (m *mockJobService) List(context.Context) ([]domain.JobCard, error) {
	return m.jobs, m.err
}

func (m *mockJobService) Get(context.Context, string) (*domain.JobCard, error) {
	return nil, domain.ErrNotFound
}

func (m *mockJobService) Create(context.Context, domain.CreateJobRequest) (*domain.JobCard, error) {
	return nil, errNotMocked
}

func (m *mockJobService) Delete(context.Context, string, bool) error {
	return errNotMocked
}

func (m *mockJobService) Template(_ context.Context, sector int) (*domain.SectorTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.template != nil {
		return m.template, nil
	}
	return &domain.SectorTemplate{Sector: sector, Labels: map[string]string{}}, nil
}

// mockPreviewService is a mock implementation of driving.PreviewService.
type mockPreviewService struct {
	preview   *domain.Preview
	err       error
	gotJobID  string
	gotSector *int
}

func (m *mockPreviewService) Fetch(context.Context, string, *int) (*domain.JobSnapshot, error) {
	return nil, errNotMocked
}

func (m *mockPreviewService) Preview(_ context.Context, jobID string, sector *int) (*domain.Preview, error) {
	m.gotJobID = jobID
	m.gotSector = sector
	return m.preview, m.err
}

func (m *mockPreviewService) NewSession() driving.PreviewSession {
	return nil
}

func newTestServer(jobs *mockJobService, preview *mockPreviewService) *Server {
	s, err := NewServer(&Ports{Jobs: jobs, Preview: preview})
	if err != nil {
		panic(err)
	}
	return s
}
