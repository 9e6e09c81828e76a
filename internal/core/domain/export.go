package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExportKind selects which server-side export to download.
type ExportKind string

// Available export kinds.
const (
	// ExportXLSX is the job spreadsheet.
	ExportXLSX ExportKind = "xlsx"

	// ExportXLSXImages is the job spreadsheet with embedded images.
	ExportXLSXImages ExportKind = "xlsx-images"

	// ExportZIP is the archive of the job's photos.
	ExportZIP ExportKind = "zip"

	// ExportSectorXLSX is the spreadsheet for one sector.
	ExportSectorXLSX ExportKind = "sector-xlsx"
)

// ExportKinds lists every kind in display order.
var ExportKinds = []ExportKind{ExportXLSX, ExportXLSXImages, ExportZIP, ExportSectorXLSX}

// IsValid returns true if the export kind is recognised.
func (k ExportKind) IsValid() bool {
	switch k {
	case ExportXLSX, ExportXLSXImages, ExportZIP, ExportSectorXLSX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ExportKind) String() string {
	return string(k)
}

// Extension returns the file extension of the downloaded file.
func (k ExportKind) Extension() string {
	if k == ExportZIP {
		return "zip"
	}
	return "xlsx"
}

// ParseExportKind parses a kind name case-insensitively.
func ParseExportKind(s string) (ExportKind, error) {
	k := ExportKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: export kind %q", ErrUnsupportedType, s)
	}
	return k, nil
}

// ExportRequest addresses an export by job and optional sector.
type ExportRequest struct {
	JobID  string
	Sector *int
	Kind   ExportKind
}

// FallbackFilename is used when the server sends no Content-Disposition.
func (r ExportRequest) FallbackFilename() string {
	name := "job_" + r.JobID
	if r.Kind == ExportXLSXImages {
		name += "_with_images"
	}
	if r.Sector != nil {
		name += fmt.Sprintf("_sec%d", *r.Sector)
	}
	return name + "." + r.Kind.Extension()
}

// ExportPayload is a downloaded export.
type ExportPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportRecord is one entry of the local export history.
type ExportRecord struct {
	ID        string     `json:"id" yaml:"id"`
	JobID     string     `json:"jobId" yaml:"jobId"`
	Sector    *int       `json:"sector,omitempty" yaml:"sector,omitempty"`
	Kind      ExportKind `json:"kind" yaml:"kind"`
	Path      string     `json:"path" yaml:"path"`
	Size      int64      `json:"size" yaml:"size"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
}
