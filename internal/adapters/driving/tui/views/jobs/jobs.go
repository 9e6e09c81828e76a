// Package jobs provides the job list view for the TUI.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

var errNoJobService = errors.New("job service not available")

// View lists inspection jobs.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	jobService driving.JobService
	ctx        context.Context

	jobs     []domain.JobCard
	selected int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new job list view.
func NewView(s *styles.Styles, jobService driving.JobService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		jobService: jobService,
		ctx:        context.Background(),
	}
}

// SetContext sets the context used by service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the job list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadJobs()
}

func (v *View) loadJobs() tea.Cmd {
	svc, ctx := v.jobService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.JobsLoaded{Err: errNoJobService}
		}
		jobs, err := svc.List(ctx)
		return messages.JobsLoaded{Jobs: jobs, Err: err}
	}
}

// Update handles messages for the job list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.JobsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.jobs = msg.Jobs
			v.selected = min(v.selected, max(len(v.jobs)-1, 0))
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < len(v.jobs)-1 {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Select):
		if job, ok := v.SelectedJob(); ok {
			return v, func() tea.Msg { return messages.JobSelected{Job: job} }
		}
	case keymap.Matches(key, v.keymap.Refresh):
		return v, v.Init()
	}
	return v, nil
}

// View renders the job list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Inspection jobs"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.jobs) == 0:
		b.WriteString(v.styles.Muted.Render("Loading jobs..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	}
	if len(v.jobs) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("No jobs yet."))
		return b.String()
	}

	for i, job := range v.jobs {
		line := v.renderJob(job)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderJob(job domain.JobCard) string {
	status := job.Status
	if job.AllDone {
		status = "DONE"
	}
	sectors := make([]string, 0, len(job.Sectors))
	for _, s := range job.Sectors {
		mark := ""
		if job.CanExportSector(s.Sector) {
			mark = "✓"
		}
		sectors = append(sectors, fmt.Sprintf("%d%s", s.Sector, mark))
	}
	return fmt.Sprintf("%-26s %-14s %-14s %-12s %s",
		job.ID, orDash(job.SiteID), orDash(job.WorkerPhone), orDash(status), strings.Join(sectors, " "))
}

func orDash(s string) string {
	if s == "" {
		return domain.Placeholder
	}
	return s
}

// SelectedJob returns the highlighted job.
func (v *View) SelectedJob() (domain.JobCard, bool) {
	if v.selected < 0 || v.selected >= len(v.jobs) {
		return domain.JobCard{}, false
	}
	return v.jobs[v.selected], true
}

// Jobs returns the loaded jobs.
func (v *View) Jobs() []domain.JobCard {
	return v.jobs
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
