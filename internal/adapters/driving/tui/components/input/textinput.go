// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/styles"
)

// CaptionLimit bounds the length of a caption.
const CaptionLimit = 200

// CaptionInput edits the caption of one photo tile.
type CaptionInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
}

// NewCaptionInput creates a caption input. It starts blurred.
func NewCaptionInput(s *styles.Styles) *CaptionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Caption"
	ti.CharLimit = CaptionLimit
	ti.Width = 40

	return &CaptionInput{
		textinput: ti,
		styles:    s,
	}
}

// Start focuses the input on draft for the tile labelled label.
func (c *CaptionInput) Start(label, draft string) tea.Cmd {
	c.label = label
	c.textinput.SetValue(draft)
	c.textinput.CursorEnd()
	return c.textinput.Focus()
}

// Stop blurs and clears the input.
func (c *CaptionInput) Stop() {
	c.textinput.Blur()
	c.textinput.Reset()
	c.label = ""
}

// Update handles input messages.
func (c *CaptionInput) Update(msg tea.Msg) (*CaptionInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the input with the tile label.
func (c *CaptionInput) View() string {
	label := c.styles.Subtitle.Render(c.label + ": ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (c *CaptionInput) Value() string {
	return c.textinput.Value()
}

// Focused returns whether the input is focused.
func (c *CaptionInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CaptionInput) SetWidth(width int) {
	c.textinput.Width = max(width-len(c.label)-8, 20)
}
