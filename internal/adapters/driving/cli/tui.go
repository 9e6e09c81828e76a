package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard lists inspection jobs and shows the photo checklist of the
selected job per sector. Edits to the config file are picked up while it
runs.

Controls:
  ↑/k, ↓/j  - Move
  Enter     - Open job
  ←/h, →/l  - Switch sector
  e         - Edit caption
  x         - Export spreadsheet
  r         - Refresh
  Esc       - Back
  ?         - Help
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIPorts builds the TUI ports from the installed services.
func newTUIPorts() *tui.Ports {
	ports := tui.NewPorts(jobService, previewService)
	ports.Export = exportService
	ports.Settings = settingsService
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(newTUIPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if watchConfig != nil {
		go func() {
			err := watchConfig(ctx, func() { p.Send(messages.ConfigReloaded{}) })
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
