package jobs

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// MockJobService implements driving.JobService for testing.
type MockJobService struct {
	ListFunc func(ctx context.Context) ([]domain.JobCard, error)
	calls    int
}

func (m *MockJobService) List(ctx context.Context) ([]domain.JobCard, error) {
	m.calls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.JobCard{}, nil
}

func (m *MockJobService) Get(context.Context, string) (*domain.JobCard, error) {
	return nil, domain.ErrNotFound
}

func (m *MockJobService) Create(context.Context, domain.CreateJobRequest) (*domain.JobCard, error) {
	return nil, nil
}

func (m *MockJobService) Delete(context.Context, string, bool) error {
	return nil
}

func (m *MockJobService) Template(context.Context, int) (*domain.SectorTemplate, error) {
	return nil, nil
}

func sampleJobs() []domain.JobCard {
	return []domain.JobCard{
		{
			ID: "job-1", SiteID: "SITE-9", WorkerPhone: "+15551234", Status: "DONE",
			Sectors:     []domain.SectorStatus{{Sector: 1, Status: "DONE"}, {Sector: 2, Status: "DONE"}},
			AllDone:     true,
			DoneSectors: []int{1, 2},
		},
		{
			ID:      "job-2",
			Sectors: []domain.SectorStatus{{Sector: 1, Status: "PENDING"}},
		},
	}
}

func TestView_InitLoadsJobs(t *testing.T) {
	svc := &MockJobService{ListFunc: func(context.Context) ([]domain.JobCard, error) {
		return sampleJobs(), nil
	}}
	v := NewView(nil, svc)

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading jobs")

	v.Update(cmd())
	assert.False(t, v.Loading())
	assert.Len(t, v.Jobs(), 2)

	view := v.View()
	assert.Contains(t, view, "job-1")
	assert.Contains(t, view, "SITE-9")
	assert.Contains(t, view, "1✓ 2✓")
	assert.Contains(t, view, domain.Placeholder)
}

func TestView_LoadError(t *testing.T) {
	svc := &MockJobService{ListFunc: func(context.Context) ([]domain.JobCard, error) {
		return nil, errors.New("List jobs failed: 502 Bad Gateway")
	}}
	v := NewView(nil, svc)

	v.Update(v.Init()())

	assert.EqualError(t, v.Err(), "List jobs failed: 502 Bad Gateway")
	assert.Contains(t, v.View(), "502 Bad Gateway")
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), errNoJobService)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, &MockJobService{})

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "No jobs yet.")
}

func TestView_NavigateAndSelect(t *testing.T) {
	v := NewView(nil, &MockJobService{})
	v.Update(messages.JobsLoaded{Jobs: sampleJobs()})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	job, ok := v.SelectedJob()
	require.True(t, ok)
	assert.Equal(t, "job-2", job.ID)

	// Moving past the end stays on the last job.
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	job, _ = v.SelectedJob()
	assert.Equal(t, "job-2", job.ID)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.JobSelected{Job: sampleJobs()[1]}, cmd())
}

func TestView_Refresh(t *testing.T) {
	svc := &MockJobService{}
	v := NewView(nil, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, svc.calls)
}

func TestView_ReloadClampsSelection(t *testing.T) {
	v := NewView(nil, &MockJobService{})
	v.Update(messages.JobsLoaded{Jobs: sampleJobs()})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.Update(messages.JobsLoaded{Jobs: sampleJobs()[:1]})

	job, ok := v.SelectedJob()
	require.True(t, ok)
	assert.Equal(t, "job-1", job.ID)
}
