package driving

import (
	"context"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// PreviewService assembles job previews.
type PreviewService interface {
	// Fetch retrieves and normalises a job detail, filling in templates
	// for sectors without required types.
	Fetch(ctx context.Context, jobID string, sector *int) (*domain.JobSnapshot, error)

	// Preview fetches a job and assembles it for sector, or for the
	// lowest sector when sector is nil or not part of the job.
	Preview(ctx context.Context, jobID string, sector *int) (*domain.Preview, error)

	// NewSession starts an independent preview session.
	NewSession() PreviewSession
}

// PreviewSession is the state of one open preview: the job, its selected
// sector and local caption overrides. Sessions never share state.
type PreviewSession interface {
	// Open clears the session for jobID and returns the ticket a fetch
	// must present to be applied. Any earlier ticket becomes stale.
	Open(jobID string) domain.FetchTicket

	// Fetch runs the fetch for ticket without touching session state.
	Fetch(ctx context.Context, ticket domain.FetchTicket) (*domain.JobSnapshot, error)

	// Apply installs a fetched snapshot. It returns domain.ErrStaleResponse
	// when the ticket is no longer current.
	Apply(ticket domain.FetchTicket, snap *domain.JobSnapshot) error

	// IsCurrent reports whether ticket still belongs to the open job.
	IsCurrent(ticket domain.FetchTicket) bool

	// Load opens jobID, fetches it and applies the result.
	Load(ctx context.Context, jobID string) error

	// Close discards all state. Pending fetches become stale.
	Close()

	// JobID returns the open job, or "".
	JobID() string

	// Sectors returns the sectors of the loaded job.
	Sectors() []int

	// Selected returns the selected sector, or nil.
	Selected() *int

	// SelectSector switches the selected sector.
	SelectSector(n int) error

	// Preview assembles the view for the current selection.
	Preview() (*domain.Preview, error)

	// BeginCaption starts editing the caption of a photo.
	BeginCaption(photoID string) error

	// CommitCaption trims text, stores it for the photo being edited and
	// returns to viewing.
	CommitCaption(text string) error

	// EditingCaption returns the photo being edited, if any.
	EditingCaption() (string, bool)

	// CaptionDraft returns the text an edit of photoID starts from.
	CaptionDraft(photoID, fallback string) string
}
