// Package preview provides the photo checklist view of one job.
package preview

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

var errNoExportService = errors.New("export service not available")

// View shows the summary and photo grid of one job.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.PreviewSession
	exports driving.ExportService
	caption *input.CaptionInput
	ctx     context.Context

	job     domain.JobCard
	preview *domain.Preview
	cursor  int
	width   int
	height  int
	loading bool
	notice  string
	err     error
}

// NewView creates a preview view around its own session.
func NewView(s *styles.Styles, session driving.PreviewSession, exports driving.ExportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		session: session,
		exports: exports,
		caption: input.NewCaptionInput(s),
		ctx:     context.Background(),
	}
}

// SetContext sets the context used by fetches and exports.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Open starts loading job. Results of earlier loads are discarded.
func (v *View) Open(job domain.JobCard) tea.Cmd {
	v.caption.Stop()
	v.job = job
	v.preview = nil
	v.cursor = 0
	v.notice = ""
	v.err = nil
	v.loading = true
	return v.fetch(v.session.Open(job.ID))
}

func (v *View) fetch(ticket domain.FetchTicket) tea.Cmd {
	session, ctx := v.session, v.ctx
	return func() tea.Msg {
		snap, err := session.Fetch(ctx, ticket)
		return messages.PreviewFetched{Ticket: ticket, Snapshot: snap, Err: err}
	}
}

// Close discards the session and clears the view.
func (v *View) Close() {
	v.session.Close()
	v.caption.Stop()
	v.job = domain.JobCard{}
	v.preview = nil
	v.loading = false
	v.notice = ""
	v.err = nil
}

// Update handles messages for the preview.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PreviewFetched:
		return v, v.applyFetch(msg)

	case messages.ExportFinished:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
		} else if msg.Record != nil {
			v.err = nil
			v.notice = "Saved " + msg.Record.Path
		}
		return v, nil

	case messages.ConfigReloaded:
		if v.preview != nil {
			v.render()
		}
		return v, nil

	case tea.KeyMsg:
		if v.Editing() {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) applyFetch(msg messages.PreviewFetched) tea.Cmd {
	if !v.session.IsCurrent(msg.Ticket) {
		return nil
	}
	v.loading = false
	if msg.Err != nil {
		v.err = msg.Err
		return nil
	}
	if err := v.session.Apply(msg.Ticket, msg.Snapshot); err != nil {
		if !errors.Is(err, domain.ErrStaleResponse) {
			v.err = err
		}
		return nil
	}
	v.render()
	return nil
}

// render reassembles the preview from the session.
func (v *View) render() {
	p, err := v.session.Preview()
	if err != nil {
		v.err = err
		return
	}
	v.preview = p
	v.cursor = min(v.cursor, max(len(p.Tiles)-1, 0))
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.Close()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewJobs} }
	case keymap.Matches(key, v.keymap.Refresh):
		return v, v.Open(v.job)
	}

	if v.preview == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.cursor < len(v.preview.Tiles)-1 {
			v.cursor++
		}
	case keymap.Matches(key, v.keymap.NextSector):
		v.stepSector(1)
	case keymap.Matches(key, v.keymap.PrevSector):
		v.stepSector(-1)
	case keymap.Matches(key, v.keymap.EditCaption):
		return v, v.beginCaption()
	case keymap.Matches(key, v.keymap.Export):
		return v, v.export()
	}
	return v, nil
}

func (v *View) stepSector(delta int) {
	sectors := v.preview.Sectors
	if len(sectors) == 0 {
		return
	}
	i := 0
	if sel := v.preview.Selected; sel != nil {
		i = max(slices.Index(sectors, *sel), 0)
	}
	next := min(max(i+delta, 0), len(sectors)-1)
	if next == i && v.preview.Selected != nil {
		return
	}
	if err := v.session.SelectSector(sectors[next]); err != nil {
		v.err = err
		return
	}
	v.cursor = 0
	v.render()
}

func (v *View) beginCaption() tea.Cmd {
	tile, ok := v.SelectedTile()
	if !ok || !tile.HasPhoto() {
		v.notice = "No photo to caption"
		return nil
	}
	if err := v.session.BeginCaption(tile.PhotoID); err != nil {
		v.err = err
		return nil
	}
	v.notice = ""
	return v.caption.Start(tile.Label, v.session.CaptionDraft(tile.PhotoID, tile.Caption))
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Leaving the field by either key keeps what was typed.
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if err := v.session.CommitCaption(v.caption.Value()); err != nil {
			v.err = err
		}
		v.caption.Stop()
		v.render()
		return v, nil
	}
	var cmd tea.Cmd
	v.caption, cmd = v.caption.Update(msg)
	return v, cmd
}

func (v *View) export() tea.Cmd {
	svc, ctx := v.exports, v.ctx
	req := domain.ExportRequest{JobID: v.preview.JobID, Kind: domain.ExportXLSX}
	v.notice = "Exporting..."
	return func() tea.Msg {
		if svc == nil {
			return messages.ExportFinished{Err: errNoExportService}
		}
		rec, err := svc.Export(ctx, req, driving.ExportOptions{})
		return messages.ExportFinished{Record: rec, Err: err}
	}
}

// View renders the preview.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Job " + v.job.ID))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	}
	if v.preview == nil {
		if v.loading {
			b.WriteString(v.styles.Muted.Render("Loading job..."))
		}
		return b.String()
	}

	for _, row := range v.preview.Rows {
		b.WriteString(v.styles.Label.Render(row.Label))
		b.WriteString(v.styles.Normal.Render(row.Value))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if tabs := v.renderSectors(); tabs != "" {
		b.WriteString(tabs)
		b.WriteString("\n\n")
	}

	if v.preview.RawPhotos {
		b.WriteString(v.styles.Muted.Render("No checklist known, showing all photos"))
		b.WriteString("\n")
	}
	if len(v.preview.Tiles) == 0 {
		b.WriteString(v.styles.Muted.Render("No photos."))
		b.WriteString("\n")
	}
	b.WriteString(v.renderGrid())

	if v.Editing() {
		b.WriteString("\n")
		b.WriteString(v.caption.View())
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	return b.String()
}

func (v *View) renderSectors() string {
	if len(v.preview.Sectors) == 0 {
		return ""
	}
	tabs := make([]string, 0, len(v.preview.Sectors))
	for _, n := range v.preview.Sectors {
		label := fmt.Sprintf("Sector %d", n)
		if v.job.CanExportSector(n) {
			label += " ✓"
		}
		if v.preview.Selected != nil && *v.preview.Selected == n {
			tabs = append(tabs, v.styles.SectorActive.Render(label))
		} else {
			tabs = append(tabs, v.styles.SectorTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderGrid() string {
	tileWidth := v.styles.Tile.GetWidth() + 2
	perRow := 1
	if v.width > tileWidth {
		perRow = v.width / tileWidth
	}

	var rows []string
	var row []string
	for i, tile := range v.preview.Tiles {
		row = append(row, v.renderTile(tile, i == v.cursor))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *View) renderTile(tile domain.Tile, active bool) string {
	frame := v.styles.Tile
	if active {
		frame = v.styles.TileActive
	}
	mark := v.styles.Present.Render("✓")
	if tile.State == domain.TileMissing {
		mark = v.styles.Missing.Render("✗")
	}
	return frame.Render(mark + " " + v.styles.Subtitle.Render(tile.Label) + "\n" + v.styles.Normal.Render(tile.Caption))
}

// SelectedTile returns the highlighted tile.
func (v *View) SelectedTile() (domain.Tile, bool) {
	if v.preview == nil || v.cursor < 0 || v.cursor >= len(v.preview.Tiles) {
		return domain.Tile{}, false
	}
	return v.preview.Tiles[v.cursor], true
}

// Preview returns the assembled preview, or nil.
func (v *View) Preview() *domain.Preview {
	return v.preview
}

// Editing reports whether a caption edit is open.
func (v *View) Editing() bool {
	_, ok := v.session.EditingCaption()
	return ok
}

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.caption.SetWidth(width)
}
