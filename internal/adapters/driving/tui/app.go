package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/views/jobs"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/views/preview"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	jobsView    *jobs.View
	previewView *preview.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where help returns to.
	previousView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		status:      status.NewBar(s, km),
		jobsView:    jobs.NewView(s, ports.Jobs),
		previewView: preview.NewView(s, ports.Preview.NewSession(), ports.Export),
		currentView: messages.ViewJobs,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.jobsView.SetContext(ctx)
	a.previewView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("fieldlens"),
		a.jobsView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.status.SetWidth(msg.Width)
		a.jobsView.SetDimensions(msg.Width, msg.Height-1)
		a.previewView.SetDimensions(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewJobs {
			cmd = a.jobsView.Init()
		}
		a.syncStatus()
		return a, cmd

	case messages.JobsLoaded:
		a.jobsView, cmd = a.jobsView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.JobSelected:
		a.currentView = messages.ViewPreview
		cmd = a.previewView.Open(msg.Job)
		a.syncStatus()
		return a, cmd

	case messages.PreviewFetched, messages.ExportFinished, messages.ConfigReloaded:
		a.previewView, cmd = a.previewView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.ErrorOccurred:
		a.status.SetError(msg.Err)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Back) || keymap.Matches(key, a.keymap.Help) {
			a.currentView = a.previousView
		}
		a.syncStatus()
		return a, nil

	case messages.ViewPreview:
		if !a.previewView.Editing() {
			if keymap.Matches(key, a.keymap.Quit) {
				return a, tea.Quit
			}
			if keymap.Matches(key, a.keymap.Help) {
				a.showHelp()
				return a, nil
			}
		}
		a.previewView, cmd = a.previewView.Update(msg)

	case messages.ViewJobs:
		if keymap.Matches(key, a.keymap.Quit) {
			return a, tea.Quit
		}
		if keymap.Matches(key, a.keymap.Help) {
			a.showHelp()
			return a, nil
		}
		a.jobsView, cmd = a.jobsView.Update(msg)
	}

	a.syncStatus()
	return a, cmd
}

func (a *App) showHelp() {
	a.previousView = a.currentView
	a.currentView = messages.ViewHelp
	a.syncStatus()
}

// syncStatus mirrors the active view's state into the status bar.
func (a *App) syncStatus() {
	switch a.currentView {
	case messages.ViewJobs:
		a.status.SetHints(a.keymap.JobsHelp())
		switch {
		case a.jobsView.Loading():
			a.status.SetState(status.StateLoading, "Loading jobs")
		case a.jobsView.Err() != nil:
			a.status.SetError(a.jobsView.Err())
		default:
			a.status.SetState(status.StateReady, fmt.Sprintf("%d jobs", len(a.jobsView.Jobs())))
		}
	case messages.ViewPreview:
		a.status.SetHints(a.keymap.PreviewHelp())
		switch {
		case a.previewView.Editing():
			a.status.SetState(status.StateEditing, "")
		case a.previewView.Loading():
			a.status.SetState(status.StateLoading, "Loading job")
		case a.previewView.Err() != nil:
			a.status.SetError(a.previewView.Err())
		default:
			a.status.Clear()
		}
	case messages.ViewHelp:
		a.status.SetHints(a.keymap.ShortHelp())
		a.status.Clear()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.currentView {
	case messages.ViewPreview:
		body = a.previewView.View()
	case messages.ViewHelp:
		body = a.renderHelp()
	default:
		body = a.jobsView.View()
	}
	return body + "\n" + a.status.View()
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(a.styles.Label.Render(h.Key))
			b.WriteString(a.styles.Normal.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}
