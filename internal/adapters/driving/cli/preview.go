package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

var previewCmd = &cobra.Command{
	Use:   "preview [job-id]",
	Short: "Preview a job's photo checklist",
	Long: `Fetch a job and show its summary and photo checklist for one sector.

Without --sector the lowest sector of the job is shown. A sector the job
does not have falls back to the lowest one.

Examples:
  fieldlens preview 6650c1e2a4
  fieldlens preview 6650c1e2a4 --sector 2 -o json
  fieldlens preview 6650c1e2a4 --xlsx preview.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	addOutputFlag(previewCmd)
	previewCmd.Flags().Int("sector", 0, "sector to preview")
	previewCmd.Flags().String("xlsx", "", "also write the preview to this workbook")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if previewService == nil {
		return errNotConfigured("preview")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	sector, err := sectorFlag(cmd)
	if err != nil {
		return err
	}

	preview, err := previewService.Preview(commandContext(cmd), args[0], sector)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		if previewWriter == nil {
			return errNotConfigured("workbook")
		}
		if err := previewWriter.WritePreview(preview, path); err != nil {
			return err
		}
		cmd.PrintErrf("Wrote %s\n", path)
	}

	if done, err := printStructured(cmd, format, preview); done {
		return err
	}
	printPreview(cmd, preview)
	return nil
}

func printPreview(cmd *cobra.Command, p *domain.Preview) {
	for _, r := range p.Rows {
		cmd.Printf("%-14s %s\n", r.Label+":", r.Value)
	}
	if len(p.Sectors) > 0 {
		cmd.Printf("%-14s %s\n", "Sectors:", joinInts(p.Sectors))
	}
	cmd.Println()

	if p.RawPhotos {
		cmd.Println("No checklist for this sector; showing every photo.")
	}
	if len(p.Tiles) == 0 {
		cmd.Println("No photos.")
		return
	}
	for _, t := range p.Tiles {
		mark := "✓"
		if t.State == domain.TileMissing {
			mark = "✗"
		}
		cmd.Printf("  %s %-28s %s\n", mark, t.Caption, orDash(t.URL))
	}
}
