package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// ListJobs returns every job as raw payloads, in backend order.
func (c *Client) ListJobs(ctx context.Context) ([]domain.RawJob, error) {
	var items []map[string]any
	if err := c.getJSON(ctx, OpListJobs, c.endpoint(nil, "jobs"), &items); err != nil {
		return nil, err
	}
	jobs := make([]domain.RawJob, 0, len(items))
	for _, item := range items {
		if item != nil {
			jobs = append(jobs, domain.RawJob(item))
		}
	}
	return jobs, nil
}

// GetJobDetail returns a job and its photos. Photos are returned
// oldest-first: when every photo carries a parseable createdAt they are
// sorted by it, otherwise the backend order is kept.
func (c *Client) GetJobDetail(ctx context.Context, id string, sector *int) (*domain.JobDetail, error) {
	var query url.Values
	if sector != nil {
		query = url.Values{"sector": {strconv.Itoa(*sector)}}
	}

	var payload struct {
		Job    map[string]any    `json:"job"`
		Photos []json.RawMessage `json:"photos"`
	}
	if err := c.getJSON(ctx, OpFetchJob, c.endpoint(query, "jobs", id), &payload); err != nil {
		return nil, err
	}
	if payload.Job == nil {
		payload.Job = map[string]any{}
	}

	return &domain.JobDetail{
		Job:    domain.RawJob(payload.Job),
		Photos: orderPhotos(decodePhotos(payload.Photos)),
	}, nil
}

// CreateJob creates a job.
func (c *Client) CreateJob(ctx context.Context, req domain.CreateJobRequest) (domain.RawJob, error) {
	var out map[string]any
	if err := c.sendJSON(ctx, OpCreate, http.MethodPost, c.endpoint(nil, "jobs"), req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return domain.RawJob(out), nil
}

// DeleteJob deletes a job, and its stored files when purgeFiles is set.
func (c *Client) DeleteJob(ctx context.Context, id string, purgeFiles bool) error {
	var query url.Values
	if purgeFiles {
		query = url.Values{"purge_files": {"true"}}
	}
	return c.sendJSON(ctx, OpDelete, http.MethodDelete, c.endpoint(query, "jobs", id), nil, nil)
}

// GetSectorTemplate returns the suggested checklist for a sector.
func (c *Client) GetSectorTemplate(ctx context.Context, sector int) (*domain.SectorTemplate, error) {
	var tmpl domain.SectorTemplate
	endpoint := c.endpoint(nil, "jobs", "templates", "sector", strconv.Itoa(sector))
	if err := c.getJSON(ctx, OpTemplate, endpoint, &tmpl); err != nil {
		return nil, err
	}
	if tmpl.Sector == 0 {
		tmpl.Sector = sector
	}
	if tmpl.Labels == nil {
		tmpl.Labels = map[string]string{}
	}
	return &tmpl, nil
}
