package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
	"github.com/custodia-labs/fieldlens-cli/internal/normalisers/jobshape"
)

// Ensure PreviewSession implements the interface.
var _ driving.PreviewSession = (*PreviewSession)(nil)

// PreviewSession holds the state of one open preview. Every Open or Close
// bumps the generation, so results of fetches issued earlier are refused.
type PreviewSession struct {
	svc *PreviewService

	mu         sync.Mutex
	generation uint64
	jobID      string
	snap       *domain.JobSnapshot
	index      driven.PhotoIndex
	selected   *int
	captions   *CaptionEditor
}

func newPreviewSession(svc *PreviewService) *PreviewSession {
	return &PreviewSession{
		svc:      svc,
		captions: NewCaptionEditor(),
	}
}

// Open clears the session for jobID and returns the ticket for its fetch.
func (s *PreviewSession) Open(jobID string) domain.FetchTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.jobID = strings.TrimSpace(jobID)
	return domain.FetchTicket{Generation: s.generation, JobID: s.jobID}
}

// Close discards all state. Pending fetches become stale.
func (s *PreviewSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *PreviewSession) reset() {
	s.generation++
	s.jobID = ""
	s.snap = nil
	s.index = nil
	s.selected = nil
	s.captions.Reset()
}

// IsCurrent reports whether ticket still belongs to the open job.
func (s *PreviewSession) IsCurrent(ticket domain.FetchTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCurrent(ticket)
}

func (s *PreviewSession) isCurrent(ticket domain.FetchTicket) bool {
	return s.jobID != "" && ticket.Generation == s.generation && ticket.JobID == s.jobID
}

// Fetch runs the fetch for ticket. It holds no lock while the request is
// in flight, so Open and Close stay responsive.
func (s *PreviewSession) Fetch(ctx context.Context, ticket domain.FetchTicket) (*domain.JobSnapshot, error) {
	if !s.IsCurrent(ticket) {
		return nil, domain.ErrStaleResponse
	}
	return s.svc.Fetch(ctx, ticket.JobID, nil)
}

// Apply installs snap when ticket is still current. The previous
// selection is kept when the job still has that sector.
func (s *PreviewSession) Apply(ticket domain.FetchTicket, snap *domain.JobSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", domain.ErrInvalidInput)
	}
	index := s.svc.indexer.Build(snap.Photos)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrent(ticket) || snap.JobID != ticket.JobID {
		logger.Debug("Discarding stale result for job %s (generation %d, current %d)",
			ticket.JobID, ticket.Generation, s.generation)
		return domain.ErrStaleResponse
	}
	s.snap = snap
	s.index = index
	s.selected = jobshape.ReconcileSelection(s.selected, snap.Job.SectorNumbers)
	return nil
}

// Load opens jobID, fetches it and applies the result.
func (s *PreviewSession) Load(ctx context.Context, jobID string) error {
	ticket := s.Open(jobID)
	snap, err := s.Fetch(ctx, ticket)
	if err != nil {
		return err
	}
	return s.Apply(ticket, snap)
}

// JobID returns the open job, or "".
func (s *PreviewSession) JobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID
}

// Sectors returns the sectors of the loaded job.
func (s *PreviewSession) Sectors() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil
	}
	return slices.Clone(s.snap.Job.SectorNumbers)
}

// Selected returns the selected sector, or nil.
func (s *PreviewSession) Selected() *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	n := *s.selected
	return &n
}

// SelectSector switches the selected sector to n, which must be one of
// the job's sectors.
func (s *PreviewSession) SelectSector(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.ErrNoPreview
	}
	if !s.snap.Job.HasSector(n) {
		return fmt.Errorf("%w: job %s has no sector %d", domain.ErrInvalidInput, s.jobID, n)
	}
	s.selected = &n
	return nil
}

// Preview assembles the view for the current selection.
func (s *PreviewSession) Preview() (*domain.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil, domain.ErrNoPreview
	}
	return AssemblePreview(s.snap, s.index, s.selected, s.svc.currentResolver(), s.captions.Captions()), nil
}

// BeginCaption starts editing the caption of one of the job's photos.
func (s *PreviewSession) BeginCaption(photoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.ErrNoPreview
	}
	if !slices.ContainsFunc(s.snap.Photos, func(p domain.PhotoRecord) bool { return p.ID == photoID }) {
		return fmt.Errorf("%w: photo %q", domain.ErrNotFound, photoID)
	}
	return s.captions.Begin(photoID)
}

// CommitCaption stores the trimmed text for the photo being edited.
func (s *PreviewSession) CommitCaption(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Commit(text)
}

// EditingCaption returns the photo being edited, if any.
func (s *PreviewSession) EditingCaption() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Editing()
}

// CaptionDraft returns the text an edit of photoID starts from.
func (s *PreviewSession) CaptionDraft(photoID, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Initial(photoID, fallback)
}
