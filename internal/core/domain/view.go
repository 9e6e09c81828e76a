package domain

// Placeholder is rendered for any absent summary value.
const Placeholder = "—"

// DisplayRow is one label/value line of the tabular preview.
type DisplayRow struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// TileState describes whether a tile has an image to show.
type TileState string

const (
	// TilePresent has a resolved image URL.
	TilePresent TileState = "present"

	// TileMissing has no photo, or a photo whose URL could not be resolved.
	TileMissing TileState = "missing"
)

// Tile is one grid cell of the photo preview.
type Tile struct {
	// Type is the required type as listed by the job, or the photo type
	// for raw-photo tiles.
	Type string `json:"type" yaml:"type"`

	// Label is the human label for the type.
	Label string `json:"label" yaml:"label"`

	// Caption is the text shown under the tile, including local caption
	// overrides and the missing marker.
	Caption string `json:"caption" yaml:"caption"`

	URL     string    `json:"url,omitempty" yaml:"url,omitempty"`
	State   TileState `json:"state" yaml:"state"`
	PhotoID string    `json:"photoId,omitempty" yaml:"photoId,omitempty"`
}

// HasPhoto reports whether a photo backs the tile, resolvable or not.
func (t Tile) HasPhoto() bool {
	return t.PhotoID != ""
}

// Preview is the assembled view of one job at one selected sector.
type Preview struct {
	JobID    string       `json:"jobId" yaml:"jobId"`
	Shape    string       `json:"shape" yaml:"shape"`
	Sectors  []int        `json:"sectors" yaml:"sectors"`
	Selected *int         `json:"selectedSector,omitempty" yaml:"selectedSector,omitempty"`
	Tiles    []Tile       `json:"tiles" yaml:"tiles"`
	Rows     []DisplayRow `json:"rows" yaml:"rows"`

	// RawPhotos is true when no required types were known and the tiles
	// list every photo instead.
	RawPhotos bool `json:"rawPhotos,omitempty" yaml:"rawPhotos,omitempty"`
}
