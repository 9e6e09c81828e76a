package cli

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List downloaded exports",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recorded export",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	addOutputFlag(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of entries (0 for all)")
	historyCmd.Flags().String("job", "", "only show exports of this job")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	job, _ := cmd.Flags().GetString("job")

	fetch := limit
	if job != "" {
		fetch = 0
	}
	records, err := exportService.History(commandContext(cmd), fetch)
	if err != nil {
		return err
	}
	if job != "" {
		records = filterByJob(records, job, limit)
	}

	if done, err := printStructured(cmd, format, records); done {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No exports recorded.")
		return nil
	}
	for _, r := range records {
		sector := domain.Placeholder
		if r.Sector != nil {
			sector = strconv.Itoa(*r.Sector)
		}
		cmd.Printf("%-14s  %-12s  %-26s  sector %-3s  %8s  %s\n",
			humanize.Time(r.CreatedAt), r.Kind, r.JobID, sector,
			humanize.Bytes(uint64(max(r.Size, 0))), r.Path)
	}
	return nil
}

func filterByJob(records []domain.ExportRecord, jobID string, limit int) []domain.ExportRecord {
	out := make([]domain.ExportRecord, 0, len(records))
	for _, r := range records {
		if r.JobID != jobID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}
	if err := exportService.ClearHistory(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println("Export history cleared.")
	return nil
}
