// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewJobs is the job list.
	ViewJobs ViewType = iota
	// ViewPreview is the photo checklist of one job.
	ViewPreview
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewJobs:
		return "jobs"
	case ViewPreview:
		return "preview"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// JobsLoaded carries the job list from the service.
type JobsLoaded struct {
	Jobs []domain.JobCard
	Err  error
}

// JobSelected asks the app to open a job in the preview view.
type JobSelected struct {
	Job domain.JobCard
}

// PreviewFetched carries a fetch result back with the ticket it was
// started under. Results for a stale ticket are dropped.
type PreviewFetched struct {
	Ticket   domain.FetchTicket
	Snapshot *domain.JobSnapshot
	Err      error
}

// ExportFinished reports a finished export.
type ExportFinished struct {
	Record *domain.ExportRecord
	Err    error
}

// ConfigReloaded is sent after the config file changed on disk.
type ConfigReloaded struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
