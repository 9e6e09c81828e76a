package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
	"github.com/custodia-labs/fieldlens-cli/internal/normalisers/jobshape"
)

// Ensure PreviewService implements the interface.
var _ driving.PreviewService = (*PreviewService)(nil)

// templateFetchLimit bounds concurrent template requests per job.
const templateFetchLimit = 4

// PreviewService fetches job details and assembles them into previews.
type PreviewService struct {
	api        driven.JobAPI
	normaliser driven.JobNormaliser
	indexer    driven.PhotoIndexer

	mu       sync.RWMutex
	resolver driven.PhotoURLResolver
}

// NewPreviewService creates a new preview service.
func NewPreviewService(
	api driven.JobAPI,
	normaliser driven.JobNormaliser,
	indexer driven.PhotoIndexer,
	resolver driven.PhotoURLResolver,
) *PreviewService {
	return &PreviewService{
		api:        api,
		normaliser: normaliser,
		indexer:    indexer,
		resolver:   resolver,
	}
}

// SetResolver replaces the photo URL resolver, for example after the API
// base changed. Previews assembled afterwards use the new resolver.
func (s *PreviewService) SetResolver(r driven.PhotoURLResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
}

func (s *PreviewService) currentResolver() driven.PhotoURLResolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolver
}

// Fetch retrieves a job detail and normalises it. Sectors listing no
// required types get their template fetched; template failures are logged
// and otherwise ignored.
func (s *PreviewService) Fetch(ctx context.Context, jobID string, sector *int) (*domain.JobSnapshot, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrInvalidInput)
	}

	logger.Section("Job Fetch")
	logger.Debug("Job: %s", jobID)

	detail, err := s.api.GetJobDetail(ctx, jobID, sector)
	if err != nil {
		return nil, fmt.Errorf("fetch job %s: %w", jobID, err)
	}

	job := s.normaliser.Normalise(detail.Job)
	logger.Debug("Shape: %s, sectors: %v, photos: %d", job.Shape, job.SectorNumbers, len(detail.Photos))

	return &domain.JobSnapshot{
		JobID:     jobID,
		Job:       job,
		Photos:    detail.Photos,
		Templates: s.fetchTemplates(ctx, job),
	}, nil
}

func (s *PreviewService) fetchTemplates(ctx context.Context, job domain.NormalizedJob) map[int]domain.SectorTemplate {
	var missing []int
	for _, n := range job.SectorNumbers {
		if len(jobshape.GridTypes(job, jobshape.SelectBlock(job, &n))) == 0 {
			missing = append(missing, n)
		}
	}
	templates := make(map[int]domain.SectorTemplate, len(missing))
	if len(missing) == 0 {
		return templates
	}

	logger.Debug("Fetching templates for sectors %v", missing)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(templateFetchLimit)
	for _, n := range missing {
		g.Go(func() error {
			tmpl, err := s.api.GetSectorTemplate(ctx, n)
			if err != nil {
				logger.Warn("Template for sector %d unavailable: %v", n, err)
				return nil
			}
			if tmpl == nil {
				return nil
			}
			mu.Lock()
			templates[n] = *tmpl
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return templates
}

// Preview fetches a job and assembles it for sector. A nil sector, or one
// the job does not have, selects the lowest sector.
func (s *PreviewService) Preview(ctx context.Context, jobID string, sector *int) (*domain.Preview, error) {
	snap, err := s.Fetch(ctx, jobID, sector)
	if err != nil {
		return nil, err
	}
	index := s.indexer.Build(snap.Photos)
	selected := jobshape.ReconcileSelection(sector, snap.Job.SectorNumbers)
	return AssemblePreview(snap, index, selected, s.currentResolver(), nil), nil
}

// NewSession starts an independent preview session.
func (s *PreviewService) NewSession() driving.PreviewSession {
	return newPreviewSession(s)
}

// AssemblePreview derives the full view of a snapshot at the selected
// sector. The grid lists the required types of the selected block, then
// the job, then the sector template; with none known it lists every photo.
func AssemblePreview(
	snap *domain.JobSnapshot,
	index driven.PhotoIndex,
	selected *int,
	resolver driven.PhotoURLResolver,
	captions map[string]string,
) *domain.Preview {
	block := jobshape.SelectBlock(snap.Job, selected)
	types := jobshape.GridTypes(snap.Job, block)

	var tmpl *domain.SectorTemplate
	if selected != nil {
		tmpl, _ = snap.Template(*selected)
	}
	if len(types) == 0 && tmpl != nil {
		types = tmpl.RequiredTypes
	}

	tc := TileContext{Template: tmpl, Captions: captions}
	p := &domain.Preview{
		JobID:   snap.JobID,
		Shape:   snap.Job.Shape.String(),
		Sectors: slices.Clone(snap.Job.SectorNumbers),
		Rows:    BuildSummaryRows(snap.Job, block, len(snap.Photos), snap.JobID),
	}
	if selected != nil {
		n := *selected
		p.Selected = &n
	}
	if p.Sectors == nil {
		p.Sectors = []int{}
	}

	if len(types) > 0 {
		p.Tiles = BuildGridTiles(types, index, selected, resolver, tc)
	} else {
		p.Tiles = BuildPhotoTiles(snap.Photos, resolver, tc)
		p.RawPhotos = true
	}
	return p
}
