package domain

import "slices"

// RawJob is a job object decoded from the backend's JSON without any
// assumptions about its shape.
type RawJob map[string]any

// JobShape identifies which historical payload shape a job was read from.
type JobShape int

// Known job shapes, in reverse order of precedence.
const (
	// ShapeEmpty means no sector information was recognised.
	ShapeEmpty JobShape = iota
	// ShapeLegacy is the flat single-sector shape.
	ShapeLegacy
	// ShapeSectorMap is the rare sectorJobs object shape.
	ShapeSectorMap
	// ShapeSectorArray is the current sectors array shape.
	ShapeSectorArray
)

// String returns the string representation.
func (s JobShape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeLegacy:
		return "legacy"
	case ShapeSectorMap:
		return "sector_map"
	case ShapeSectorArray:
		return "sector_array"
	default:
		return "unknown"
	}
}

// Job statuses reported by the backend.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// SectorBlock is the per-sector bundle of required types, progress index
// and status. Optional fields are nil when the payload omitted them or
// carried a value of the wrong type.
type SectorBlock struct {
	Sector        int      `json:"sector"`
	RequiredTypes []string `json:"requiredTypes,omitempty"`
	CurrentIndex  *int     `json:"currentIndex,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// Clone returns a deep copy of the block.
func (b SectorBlock) Clone() SectorBlock {
	out := SectorBlock{Sector: b.Sector}
	if b.RequiredTypes != nil {
		out.RequiredTypes = slices.Clone(b.RequiredTypes)
	}
	if b.CurrentIndex != nil {
		v := *b.CurrentIndex
		out.CurrentIndex = &v
	}
	if b.Status != nil {
		v := *b.Status
		out.Status = &v
	}
	return out
}

// IsDone reports whether the block status is DONE.
func (b SectorBlock) IsDone() bool {
	return b.Status != nil && *b.Status == StatusDone
}

// JobInfo holds the flat root fields of a job used by the summary rows.
// Nil means absent.
type JobInfo struct {
	ID            string
	WorkerPhone   *string
	SiteID        *string
	Status        *string
	Sector        *int
	RequiredTypes []string
	// HasRequiredTypes is true when the root carried a requiredTypes list,
	// even an empty one.
	HasRequiredTypes bool
	CurrentIndex     *int
	CreatedAt        *string
}

// NormalizedJob is the canonical form of a RawJob. It is built fresh on
// every normalisation and never mutated afterwards.
type NormalizedJob struct {
	Shape JobShape

	// SectorNumbers is ascending and free of duplicates.
	SectorNumbers []int

	// BlocksBySector holds the well-formed blocks keyed by sector.
	BlocksBySector map[int]SectorBlock

	// LegacyBlock is set only when the job has no sectors but carries
	// root requiredTypes or currentIndex.
	LegacyBlock *SectorBlock

	Info JobInfo
}

// HasSector reports whether n is one of the job's sectors.
func (j NormalizedJob) HasSector(n int) bool {
	_, found := slices.BinarySearch(j.SectorNumbers, n)
	return found
}

// Block returns a copy of the block for sector n.
func (j NormalizedJob) Block(n int) (SectorBlock, bool) {
	b, ok := j.BlocksBySector[n]
	if !ok {
		return SectorBlock{}, false
	}
	return b.Clone(), true
}

// JobDetail is the job detail response: the raw job and its photos.
type JobDetail struct {
	Job    RawJob
	Photos []PhotoRecord
}

// CreateJobRequest holds the fields needed to create a job.
type CreateJobRequest struct {
	WorkerPhone string `json:"workerPhone"`
	SiteID      string `json:"siteId"`
	Sector      int    `json:"sector"`
}
