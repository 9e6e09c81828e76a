package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// Ensure JobService implements the interface.
var _ driving.JobService = (*JobService)(nil)

// JobService lists and manages jobs.
type JobService struct {
	api        driven.JobAPI
	normaliser driven.JobNormaliser
}

// NewJobService creates a new job service.
func NewJobService(api driven.JobAPI, normaliser driven.JobNormaliser) *JobService {
	return &JobService{api: api, normaliser: normaliser}
}

// List returns a card per job, in backend order.
func (s *JobService) List(ctx context.Context) ([]domain.JobCard, error) {
	raws, err := s.api.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	cards := make([]domain.JobCard, 0, len(raws))
	for _, raw := range raws {
		cards = append(cards, BuildJobCard(s.normaliser.Normalise(raw)))
	}
	logger.Debug("Listed %d jobs", len(cards))
	return cards, nil
}

// Get returns the card of one job.
func (s *JobService) Get(ctx context.Context, id string) (*domain.JobCard, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}
	detail, err := s.api.GetJobDetail(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch job %s: %w", id, err)
	}
	card := BuildJobCard(s.normaliser.Normalise(detail.Job))
	if card.ID == "" {
		card.ID = id
	}
	return &card, nil
}

// Create normalises the worker phone and creates a job.
func (s *JobService) Create(ctx context.Context, req domain.CreateJobRequest) (*domain.JobCard, error) {
	req.WorkerPhone = NormalisePhone(req.WorkerPhone)
	req.SiteID = strings.TrimSpace(req.SiteID)
	if req.WorkerPhone == "" || req.WorkerPhone == "+" {
		return nil, fmt.Errorf("%w: worker phone is required", domain.ErrInvalidInput)
	}
	if req.Sector < 0 {
		return nil, fmt.Errorf("%w: sector must not be negative", domain.ErrInvalidInput)
	}

	raw, err := s.api.CreateJob(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	card := BuildJobCard(s.normaliser.Normalise(raw))
	logger.Info("Created job %s for %s", card.ID, req.WorkerPhone)
	return &card, nil
}

// Delete removes a job, and its stored files when purgeFiles is set.
func (s *JobService) Delete(ctx context.Context, id string, purgeFiles bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}
	if err := s.api.DeleteJob(ctx, id, purgeFiles); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	logger.Info("Deleted job %s (purge files: %t)", id, purgeFiles)
	return nil
}

// Template returns the suggested checklist for a sector.
func (s *JobService) Template(ctx context.Context, sector int) (*domain.SectorTemplate, error) {
	if sector < 0 {
		return nil, fmt.Errorf("%w: sector must not be negative", domain.ErrInvalidInput)
	}
	tmpl, err := s.api.GetSectorTemplate(ctx, sector)
	if err != nil {
		return nil, fmt.Errorf("sector %d template: %w", sector, err)
	}
	return tmpl, nil
}

// BuildJobCard summarises a normalised job. Multi-sector jobs are done when
// every sector is DONE; a sector without its own status uses the job's.
// Single-sector jobs follow the job status.
func BuildJobCard(job domain.NormalizedJob) domain.JobCard {
	info := job.Info
	card := domain.JobCard{
		ID:          info.ID,
		SiteID:      deref(info.SiteID),
		WorkerPhone: deref(info.WorkerPhone),
		Status:      deref(info.Status),
		CreatedAt:   deref(info.CreatedAt),
		Sectors:     make([]domain.SectorStatus, 0, len(job.SectorNumbers)),
		DoneSectors: []int{},
	}

	switch job.Shape {
	case domain.ShapeSectorArray, domain.ShapeSectorMap:
		card.AllDone = len(job.SectorNumbers) > 0
		for _, n := range job.SectorNumbers {
			status := card.Status
			if b, ok := job.Block(n); ok && b.Status != nil {
				status = *b.Status
			}
			card.Sectors = append(card.Sectors, domain.SectorStatus{Sector: n, Status: status})
			if status == domain.StatusDone {
				card.DoneSectors = append(card.DoneSectors, n)
			} else {
				card.AllDone = false
			}
		}
	default:
		card.AllDone = card.Status == domain.StatusDone
		for _, n := range job.SectorNumbers {
			card.Sectors = append(card.Sectors, domain.SectorStatus{Sector: n, Status: card.Status})
			if card.AllDone {
				card.DoneSectors = append(card.DoneSectors, n)
			}
		}
	}
	return card
}

// NormalisePhone keeps a leading plus and strips every other non-digit.
func NormalisePhone(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	var b strings.Builder
	if strings.HasPrefix(p, "+") {
		b.WriteByte('+')
	}
	for _, r := range p {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
