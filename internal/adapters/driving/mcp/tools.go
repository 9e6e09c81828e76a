package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// ListJobsInput is the input schema for the list_jobs tool.
type ListJobsInput struct {
	DoneOnly bool `json:"doneOnly,omitempty" jsonschema:"only return jobs whose every sector is DONE"`
}

// ListJobsOutput is the output schema for the list_jobs tool.
type ListJobsOutput struct {
	Jobs  []domain.JobCard `json:"jobs"`
	Count int              `json:"count"`
}

// JobPreviewInput is the input schema for the job_preview tool.
type JobPreviewInput struct {
	JobID  string `json:"jobId" jsonschema:"the job id"`
	Sector *int   `json:"sector,omitempty" jsonschema:"sector to preview; defaults to the lowest sector"`
}

// JobPreviewOutput is the output schema for the job_preview tool.
type JobPreviewOutput struct {
	Preview *domain.Preview `json:"preview"`
	Missing []string        `json:"missing"`
}

// SectorTemplateInput is the input schema for the sector_template tool.
type SectorTemplateInput struct {
	Sector int `json:"sector" jsonschema:"the sector number"`
}

// SectorTemplateOutput is the output schema for the sector_template tool.
type SectorTemplateOutput struct {
	Sector int            `json:"sector"`
	Types  []TemplateType `json:"types"`
}

// TemplateType is one required type of a template with its label.
type TemplateType struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jobs",
		Description: "List inspection jobs with their per-sector status",
	}, s.handleListJobs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "job_preview",
		Description: "Show the summary and photo checklist of a job for one sector",
	}, s.handleJobPreview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sector_template",
		Description: "Show the suggested photo checklist for a sector",
	}, s.handleSectorTemplate)
}

func (s *Server) handleListJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListJobsInput,
) (*mcp.CallToolResult, ListJobsOutput, error) {
	jobs, err := s.ports.Jobs.List(ctx)
	if err != nil {
		return nil, ListJobsOutput{}, err
	}

	out := ListJobsOutput{Jobs: make([]domain.JobCard, 0, len(jobs))}
	for _, job := range jobs {
		if input.DoneOnly && !job.CanExportJob() {
			continue
		}
		out.Jobs = append(out.Jobs, job)
	}
	out.Count = len(out.Jobs)
	return nil, out, nil
}

func (s *Server) handleJobPreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobPreviewInput,
) (*mcp.CallToolResult, JobPreviewOutput, error) {
	if input.JobID == "" {
		return nil, JobPreviewOutput{}, fmt.Errorf("%w: jobId is required", domain.ErrInvalidInput)
	}

	p, err := s.ports.Preview.Preview(ctx, input.JobID, input.Sector)
	if err != nil {
		return nil, JobPreviewOutput{}, err
	}

	out := JobPreviewOutput{Preview: p, Missing: []string{}}
	if !p.RawPhotos {
		for _, tile := range p.Tiles {
			if tile.State == domain.TileMissing {
				out.Missing = append(out.Missing, tile.Type)
			}
		}
	}
	return nil, out, nil
}

func (s *Server) handleSectorTemplate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectorTemplateInput,
) (*mcp.CallToolResult, SectorTemplateOutput, error) {
	tmpl, err := s.ports.Jobs.Template(ctx, input.Sector)
	if err != nil {
		return nil, SectorTemplateOutput{}, err
	}

	out := SectorTemplateOutput{Sector: tmpl.Sector, Types: make([]TemplateType, len(tmpl.RequiredTypes))}
	for i, t := range tmpl.RequiredTypes {
		label, ok := tmpl.Label(t)
		if !ok {
			label = domain.TypeLabel(t)
		}
		out.Types[i] = TemplateType{Type: t, Label: label}
	}
	return nil, out, nil
}
