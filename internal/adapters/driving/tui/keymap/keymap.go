// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens the highlighted job or confirms an edit.
	Select key.Binding

	// Refresh reloads the current view.
	Refresh key.Binding

	// NextSector and PrevSector switch the previewed sector.
	NextSector key.Binding
	PrevSector key.Binding

	// EditCaption edits the caption of the highlighted tile.
	EditCaption key.Binding

	// Export downloads the job spreadsheet.
	Export key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextSector: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next sector"),
		),
		PrevSector: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev sector"),
		),
		EditCaption: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit caption"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export xlsx"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// JobsHelp returns keybindings for the job list.
func (k *KeyMap) JobsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Refresh, k.Quit}
}

// PreviewHelp returns keybindings for the preview view.
func (k *KeyMap) PreviewHelp() []key.Binding {
	return []key.Binding{k.PrevSector, k.NextSector, k.EditCaption, k.Export, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Refresh},
		{k.PrevSector, k.NextSector, k.EditCaption, k.Export},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
