package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func TestServer_handleListJobs(t *testing.T) {
	ctx := context.Background()
	jobs := &mockJobService{jobs: []domain.JobCard{
		{ID: "j1", AllDone: true, DoneSectors: []int{1}},
		{ID: "j2"},
	}}
	server := newTestServer(jobs, &mockPreviewService{})

	t.Run("all jobs", func(t *testing.T) {
		_, out, err := server.handleListJobs(ctx, nil, ListJobsInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
	})

	t.Run("done only", func(t *testing.T) {
		_, out, err := server.handleListJobs(ctx, nil, ListJobsInput{DoneOnly: true})
		require.NoError(t, err)
		require.Len(t, out.Jobs, 1)
		assert.Equal(t, "j1", out.Jobs[0].ID)
	})

	t.Run("service error", func(t *testing.T) {
		failing := newTestServer(&mockJobService{err: errors.New("List jobs failed: 502 Bad Gateway")}, &mockPreviewService{})
		_, _, err := failing.handleListJobs(ctx, nil, ListJobsInput{})
		assert.EqualError(t, err, "List jobs failed: 502 Bad Gateway")
	})
}

func TestServer_handleJobPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("reports missing types", func(t *testing.T) {
		preview := &mockPreviewService{preview: &domain.Preview{
			JobID: "j1",
			Tiles: []domain.Tile{
				{Type: "LABEL", State: domain.TilePresent, PhotoID: "p1"},
				{Type: "AZIMUTH", State: domain.TileMissing},
			},
		}}
		server := newTestServer(&mockJobService{}, preview)
		sector := 2

		_, out, err := server.handleJobPreview(ctx, nil, JobPreviewInput{JobID: "j1", Sector: &sector})

		require.NoError(t, err)
		assert.Equal(t, []string{"AZIMUTH"}, out.Missing)
		assert.Equal(t, "j1", preview.gotJobID)
		require.NotNil(t, preview.gotSector)
		assert.Equal(t, 2, *preview.gotSector)
	})

	t.Run("raw photo grid has no missing types", func(t *testing.T) {
		preview := &mockPreviewService{preview: &domain.Preview{
			JobID:     "j1",
			RawPhotos: true,
			Tiles:     []domain.Tile{{Type: "PANEL", State: domain.TileMissing, PhotoID: "p1"}},
		}}
		server := newTestServer(&mockJobService{}, preview)

		_, out, err := server.handleJobPreview(ctx, nil, JobPreviewInput{JobID: "j1"})

		require.NoError(t, err)
		assert.Empty(t, out.Missing)
	})

	t.Run("job id is required", func(t *testing.T) {
		server := newTestServer(&mockJobService{}, &mockPreviewService{})

		_, _, err := server.handleJobPreview(ctx, nil, JobPreviewInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleSectorTemplate(t *testing.T) {
	jobs := &mockJobService{template: &domain.SectorTemplate{
		Sector:        3,
		RequiredTypes: []string{"LABEL", "PANEL_FRONT"},
		Labels:        map[string]string{"PANEL_FRONT": "Panel (front)"},
	}}
	server := newTestServer(jobs, &mockPreviewService{})

	_, out, err := server.handleSectorTemplate(context.Background(), nil, SectorTemplateInput{Sector: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Sector)
	assert.Equal(t, []TemplateType{
		{Type: "LABEL", Label: domain.TypeLabel("LABEL")},
		{Type: "PANEL_FRONT", Label: "Panel (front)"},
	}, out.Types)
}
