// Package spreadsheet writes assembled previews to local XLSX workbooks.
package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.PreviewWriter = (*Writer)(nil)

// Sheet names.
const (
	SummarySheet = "Summary"
	PhotosSheet  = "Photos"
)

var photoHeaders = []string{"Type", "Label", "Caption", "State", "URL", "Photo ID"}

// Writer writes a preview as a two-sheet workbook: the summary rows and
// one line per tile.
type Writer struct{}

// NewWriter creates a preview writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WritePreview writes the preview to path, creating parent directories.
func (w *Writer) WritePreview(preview *domain.Preview, path string) error {
	if preview == nil {
		return fmt.Errorf("%w: nil preview", domain.ErrInvalidInput)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("xlsx summary sheet: %w", err)
	}
	if _, err := f.NewSheet(PhotosSheet); err != nil {
		return fmt.Errorf("xlsx photos sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	if err := writeSummary(f, preview, header); err != nil {
		return err
	}
	if err := writeTiles(f, preview.Tiles, header); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, preview *domain.Preview, header int) error {
	rows := [][]any{{"Field", "Value"}}
	for _, r := range preview.Rows {
		rows = append(rows, []any{r.Label, r.Value})
	}
	rows = append(rows, []any{"Sectors", sectorList(preview.Sectors)})
	if preview.Selected != nil {
		rows = append(rows, []any{"Selected sector", *preview.Selected})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetCellStyle(SummarySheet, "A1", "B1", header)
	_ = f.SetColWidth(SummarySheet, "A", "A", 20)
	_ = f.SetColWidth(SummarySheet, "B", "B", 40)
	return nil
}

func writeTiles(f *excelize.File, tiles []domain.Tile, header int) error {
	headerRow := make([]any, len(photoHeaders))
	for i, h := range photoHeaders {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(PhotosSheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("xlsx photos header: %w", err)
	}

	for i, t := range tiles {
		row := i + 2
		values := []any{t.Type, t.Label, t.Caption, string(t.State), t.URL, t.PhotoID}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(PhotosSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx photos row %d: %w", row, err)
		}
		if t.URL != "" {
			link, _ := excelize.CoordinatesToCellName(5, row)
			_ = f.SetCellHyperLink(PhotosSheet, link, t.URL, "External")
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(photoHeaders))
	_ = f.SetCellStyle(PhotosSheet, "A1", lastCol+"1", header)
	_ = f.SetColWidth(PhotosSheet, "A", "B", 22)
	_ = f.SetColWidth(PhotosSheet, "C", "C", 32)
	_ = f.SetColWidth(PhotosSheet, "E", "E", 60)
	return nil
}

func sectorList(sectors []int) string {
	if len(sectors) == 0 {
		return domain.Placeholder
	}
	s := ""
	for i, n := range sectors {
		if i > 0 {
			s += ", "
		}
		s += strconv.Itoa(n)
	}
	return s
}
