package driven

import "github.com/custodia-labs/fieldlens-cli/internal/core/domain"

// JobNormaliser converts a raw job payload of any known shape into its
// canonical form. Implementations are total: they never fail and never
// perform I/O.
type JobNormaliser interface {
	// Normalise builds a fresh NormalizedJob from raw.
	Normalise(raw domain.RawJob) domain.NormalizedJob
}

// PhotoIndex is an immutable (sector, type) lookup over one photo list.
type PhotoIndex interface {
	// ResolveForType returns the photo a tile of the given type shows for
	// the selected sector, falling back to untagged and then any-sector
	// photos.
	ResolveForType(photoType string, selected *int) (domain.PhotoRecord, bool)

	// Len returns the number of distinct (sector, type) keys.
	Len() int
}

// PhotoIndexer builds a PhotoIndex from photos in arrival order. When two
// photos share a sector and type, the later one wins.
type PhotoIndexer interface {
	Build(photos []domain.PhotoRecord) PhotoIndex
}

// PhotoURLResolver derives the URL a photo is displayed from.
type PhotoURLResolver interface {
	// ResolveURL returns the display URL, or false when the photo cannot
	// be shown.
	ResolveURL(photo domain.PhotoRecord) (string, bool)
}
