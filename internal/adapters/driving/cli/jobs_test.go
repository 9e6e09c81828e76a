package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func sampleCards() []domain.JobCard {
	return []domain.JobCard{
		{
			ID: "job-1", SiteID: "S-104", WorkerPhone: "+15550100", Status: "IN_PROGRESS",
			Sectors:     []domain.SectorStatus{{Sector: 1, Status: "DONE"}, {Sector: 2, Status: "PENDING"}},
			DoneSectors: []int{1},
		},
		{ID: "job-2"},
	}
}

func TestJobsList_Table(t *testing.T) {
	jobs := &MockJobService{ListFunc: func(context.Context) ([]domain.JobCard, error) {
		return sampleCards(), nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "", "jobs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "job-1")
	assert.Contains(t, out, "1✓ 2")
	assert.Contains(t, out, "job-2")
	assert.Contains(t, out, domain.Placeholder)
}

func TestJobsList_JSON(t *testing.T) {
	jobs := &MockJobService{ListFunc: func(context.Context) ([]domain.JobCard, error) {
		return sampleCards(), nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "", "jobs", "list", "-o", "json")

	require.NoError(t, err)
	var got []domain.JobCard
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, sampleCards()[0].ID, got[0].ID)
	assert.Equal(t, []int{1}, got[0].DoneSectors)
}

func TestJobsList_OutputFromSettings(t *testing.T) {
	jobs := &MockJobService{ListFunc: func(context.Context) ([]domain.JobCard, error) {
		return sampleCards()[:1], nil
	}}
	settings := newMockSettings()
	settings.Settings.Output = domain.OutputYAML

	out, err := executeCommand(t, Services{Jobs: jobs, Settings: settings}, "", "jobs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "- id: job-1")
}

func TestJobsList_Empty(t *testing.T) {
	out, err := executeCommand(t, Services{Jobs: &MockJobService{}}, "", "jobs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No jobs found.")
}

func TestJobsList_BadFormat(t *testing.T) {
	_, err := executeCommand(t, Services{Jobs: &MockJobService{}}, "", "jobs", "list", "-o", "csv")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestJobsList_NotConfigured(t *testing.T) {
	_, err := executeCommand(t, Services{}, "", "jobs", "list")

	assert.EqualError(t, err, "job service not configured")
}

func TestJobsShow(t *testing.T) {
	jobs := &MockJobService{GetFunc: func(_ context.Context, id string) (*domain.JobCard, error) {
		c := sampleCards()[0]
		c.ID = id
		return &c, nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "", "jobs", "show", "job-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Job:     job-1")
	assert.Contains(t, out, "Site:    S-104")
	assert.Contains(t, out, "Export:  sectors 1 only")
}

func TestJobsCreate(t *testing.T) {
	var got domain.CreateJobRequest
	jobs := &MockJobService{CreateFunc: func(_ context.Context, req domain.CreateJobRequest) (*domain.JobCard, error) {
		got = req
		return &domain.JobCard{ID: "job-9"}, nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "",
		"jobs", "create", "--phone", "+1 555 0100", "--site", "S-1", "--sector", "3")

	require.NoError(t, err)
	assert.Equal(t, domain.CreateJobRequest{WorkerPhone: "+1 555 0100", SiteID: "S-1", Sector: 3}, got)
	assert.Contains(t, out, "Created job job-9")
}

func TestJobsCreate_PhoneRequired(t *testing.T) {
	_, err := executeCommand(t, Services{Jobs: &MockJobService{}}, "", "jobs", "create")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
}

func TestJobsDelete_Confirmed(t *testing.T) {
	var purged bool
	var deleted string
	jobs := &MockJobService{DeleteFunc: func(_ context.Context, id string, purge bool) error {
		deleted, purged = id, purge
		return nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "y\n", "jobs", "delete", "job-1", "--purge")

	require.NoError(t, err)
	assert.Contains(t, out, "Delete job job-1 and its files? [y/N]")
	assert.Contains(t, out, "Deleted job job-1")
	assert.Equal(t, "job-1", deleted)
	assert.True(t, purged)
}

func TestJobsDelete_Cancelled(t *testing.T) {
	called := false
	jobs := &MockJobService{DeleteFunc: func(context.Context, string, bool) error {
		called = true
		return nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "n\n", "jobs", "delete", "job-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.False(t, called)
}

func TestJobsDelete_Yes(t *testing.T) {
	out, err := executeCommand(t, Services{Jobs: &MockJobService{}}, "", "jobs", "delete", "job-1", "-y")

	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Deleted job job-1")
}

func TestTemplate(t *testing.T) {
	jobs := &MockJobService{TemplateFunc: func(_ context.Context, sector int) (*domain.SectorTemplate, error) {
		return &domain.SectorTemplate{
			Sector:        sector,
			RequiredTypes: []string{"LABEL", "PANEL_FRONT"},
			Labels:        map[string]string{"PANEL_FRONT": "Panel (front)"},
		}, nil
	}}

	out, err := executeCommand(t, Services{Jobs: jobs}, "", "template", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Sector 2")
	assert.Contains(t, out, domain.TypeLabel("LABEL"))
	assert.Contains(t, out, "Panel (front)")
}

func TestTemplate_InvalidSector(t *testing.T) {
	_, err := executeCommand(t, Services{Jobs: &MockJobService{}}, "", "template", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
