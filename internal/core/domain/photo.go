package domain

import "strconv"

// PhotoRecord is a photo uploaded for a job. The list returned by the
// backend is read-only input.
type PhotoRecord struct {
	ID     string         `json:"id"`
	JobID  string         `json:"jobId,omitempty"`
	Type   string         `json:"type"`
	S3Key  string         `json:"s3Key,omitempty"`
	S3URL  string         `json:"s3Url,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
	Checks map[string]any `json:"checks,omitempty"`
	Status string         `json:"status,omitempty"`
	Reason []string       `json:"reason,omitempty"`

	// CreatedAt is optional; when every photo carries it the fetch layer
	// orders photos oldest-first by it.
	CreatedAt string `json:"createdAt,omitempty"`
}

// StorageRef returns the value sector inference reads: the storage key
// when present, else the URL.
func (p PhotoRecord) StorageRef() string {
	if p.S3Key != "" {
		return p.S3Key
	}
	return p.S3URL
}

// SectorTag is the sector a photo was inferred to belong to: a sector
// number or the unknown sentinel. The zero value is unknown.
type SectorTag struct {
	n     int
	known bool
}

// UnknownSector is the tag for photos with no embedded sector marker.
var UnknownSector = SectorTag{}

// KnownSector returns the tag for sector n.
func KnownSector(n int) SectorTag {
	return SectorTag{n: n, known: true}
}

// IsUnknown reports whether the tag is the unknown sentinel.
func (t SectorTag) IsUnknown() bool {
	return !t.known
}

// Number returns the sector number and whether the tag is known.
func (t SectorTag) Number() (int, bool) {
	return t.n, t.known
}

// String returns the sector number or "unknown".
func (t SectorTag) String() string {
	if !t.known {
		return "unknown"
	}
	return strconv.Itoa(t.n)
}
