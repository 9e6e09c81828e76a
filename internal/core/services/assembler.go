package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// missingSuffix marks the caption of a tile with no photo.
const missingSuffix = " (missing)"

// TileContext carries the display overrides a tile grid is built with.
type TileContext struct {
	// Template supplies labels for the selected sector. May be nil.
	Template *domain.SectorTemplate

	// Captions are local caption overrides keyed by photo ID.
	Captions map[string]string
}

func (c TileContext) caption(photoID, fallback string) string {
	if photoID == "" {
		return fallback
	}
	if v, ok := c.Captions[photoID]; ok && v != "" {
		return v
	}
	return fallback
}

// BuildGridTiles returns one tile per required type, in order. Each tile
// shows the photo the index resolves for the selected sector. A type with
// no photo, or whose photo has no resolvable URL, gets the missing state.
func BuildGridTiles(
	requiredTypes []string,
	index driven.PhotoIndex,
	selected *int,
	resolver driven.PhotoURLResolver,
	tc TileContext,
) []domain.Tile {
	tiles := make([]domain.Tile, 0, len(requiredTypes))
	for _, t := range requiredTypes {
		key := strings.ToUpper(t)
		caption := domain.TypeCaption(key)
		label, ok := tc.Template.Label(t)
		if !ok {
			label = domain.TypeLabel(t)
		}

		tile := domain.Tile{Type: t, Label: label, State: domain.TileMissing}

		var photo domain.PhotoRecord
		found := false
		if index != nil {
			photo, found = index.ResolveForType(t, selected)
		}
		if !found {
			tile.Caption = caption + missingSuffix
			tiles = append(tiles, tile)
			continue
		}

		tile.PhotoID = photo.ID
		tile.Caption = tc.caption(photo.ID, caption)
		if resolver != nil {
			if u, ok := resolver.ResolveURL(photo); ok {
				tile.URL = u
				tile.State = domain.TilePresent
			}
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// BuildPhotoTiles returns one tile per photo in arrival order. It is the
// grid shown when a job lists no required types.
func BuildPhotoTiles(photos []domain.PhotoRecord, resolver driven.PhotoURLResolver, tc TileContext) []domain.Tile {
	tiles := make([]domain.Tile, 0, len(photos))
	for _, p := range photos {
		tile := domain.Tile{
			Type:    p.Type,
			Label:   domain.TypeLabel(p.Type),
			Caption: tc.caption(p.ID, p.Type),
			PhotoID: p.ID,
			State:   domain.TileMissing,
		}
		if resolver != nil {
			if u, ok := resolver.ResolveURL(p); ok {
				tile.URL = u
				tile.State = domain.TilePresent
			}
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// Summary row labels, in display order.
const (
	RowJobID         = "Job ID"
	RowWorkerPhone   = "Worker Phone"
	RowSiteID        = "Site ID"
	RowStatus        = "Status"
	RowSector        = "Sector"
	RowRequiredTypes = "Required Types"
	RowCurrentIndex  = "Current Index"
	RowTotalPhotos   = "Total Photos"
	RowCreatedAt     = "Created At"
)

// BuildSummaryRows returns the nine summary rows of a job. Values of the
// selected sector block take precedence over the job's flat fields, and
// any absent value is shown as the placeholder dash.
func BuildSummaryRows(job domain.NormalizedJob, block *domain.SectorBlock, photoCount int, jobID string) []domain.DisplayRow {
	info := job.Info
	if jobID == "" {
		jobID = info.ID
	}

	status := info.Status
	var sector *int
	requiredTypes := info.RequiredTypes
	currentIndex := info.CurrentIndex
	if block != nil {
		if block.Status != nil {
			status = block.Status
		}
		s := block.Sector
		sector = &s
		if len(block.RequiredTypes) > 0 {
			requiredTypes = block.RequiredTypes
		}
		if block.CurrentIndex != nil {
			currentIndex = block.CurrentIndex
		}
	} else {
		sector = info.Sector
	}

	return []domain.DisplayRow{
		{Label: RowJobID, Value: orDash(jobID)},
		{Label: RowWorkerPhone, Value: orDashPtr(info.WorkerPhone)},
		{Label: RowSiteID, Value: orDashPtr(info.SiteID)},
		{Label: RowStatus, Value: orDashPtr(status)},
		{Label: RowSector, Value: orDashInt(sector)},
		{Label: RowRequiredTypes, Value: orDash(strings.Join(requiredTypes, ", "))},
		{Label: RowCurrentIndex, Value: orDashInt(currentIndex)},
		{Label: RowTotalPhotos, Value: strconv.Itoa(photoCount)},
		{Label: RowCreatedAt, Value: orDashPtr(info.CreatedAt)},
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.Placeholder
	}
	return s
}

func orDashPtr(s *string) string {
	if s == nil {
		return domain.Placeholder
	}
	return orDash(*s)
}

func orDashInt(n *int) string {
	if n == nil {
		return domain.Placeholder
	}
	return strconv.Itoa(*n)
}
