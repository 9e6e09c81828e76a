package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

var exportCmd = &cobra.Command{
	Use:   "export [job-id]",
	Short: "Download a server-side export",
	Long: `Download an export of a job and save it to the export directory.

Kinds:
  xlsx         job spreadsheet
  xlsx-images  job spreadsheet with embedded photos
  zip          photo archive (whole job, or one sector with --sector)
  sector-xlsx  spreadsheet for one sector (requires --sector)

Archive and sector exports require the job (or the sector) to be DONE;
use --force to export anyway.

Examples:
  fieldlens export 6650c1e2a4
  fieldlens export 6650c1e2a4 --kind zip --sector 2
  fieldlens export 6650c1e2a4 --kind sector-xlsx --sector 1 --dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("kind", "k", string(domain.ExportXLSX), "export kind: xlsx, xlsx-images, zip, sector-xlsx")
	exportCmd.Flags().Int("sector", 0, "sector to export")
	exportCmd.Flags().String("dir", "", "output directory (default from config)")
	exportCmd.Flags().Bool("force", false, "export even when the job is not DONE")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	rawKind, _ := cmd.Flags().GetString("kind")
	kind, err := domain.ParseExportKind(rawKind)
	if err != nil {
		return err
	}
	sector, err := sectorFlag(cmd)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	force, _ := cmd.Flags().GetBool("force")

	rec, err := exportService.Export(commandContext(cmd), domain.ExportRequest{
		JobID:  args[0],
		Sector: sector,
		Kind:   kind,
	}, driving.ExportOptions{Dir: dir, Force: force})
	if err != nil {
		return err
	}

	cmd.Printf("Saved %s (%s)\n", rec.Path, humanize.Bytes(uint64(max(rec.Size, 0))))
	return nil
}
