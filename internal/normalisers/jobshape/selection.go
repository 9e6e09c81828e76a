package jobshape

import (
	"slices"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// ReconcileSelection keeps prev when it is still one of sectors, else
// falls back to the lowest sector, or nil when there are none.
func ReconcileSelection(prev *int, sectors []int) *int {
	if prev != nil && slices.Contains(sectors, *prev) {
		v := *prev
		return &v
	}
	if len(sectors) == 0 {
		return nil
	}
	v := slices.Min(sectors)
	return &v
}

// SelectBlock returns a copy of the block the view shows for selected:
// the sector's own block, else a block carrying only the root required
// types, or the legacy block when nothing is selected. It returns nil when
// no block applies.
func SelectBlock(job domain.NormalizedJob, selected *int) *domain.SectorBlock {
	if selected == nil {
		if job.LegacyBlock == nil {
			return nil
		}
		b := job.LegacyBlock.Clone()
		return &b
	}
	if b, ok := job.Block(*selected); ok {
		return &b
	}
	b := domain.SectorBlock{Sector: *selected}
	if job.Info.HasRequiredTypes {
		b.RequiredTypes = slices.Clone(job.Info.RequiredTypes)
	}
	return &b
}

// GridTypes returns the required types the tile grid renders: the block's
// list when non-empty, else the root list, else nil.
func GridTypes(job domain.NormalizedJob, block *domain.SectorBlock) []string {
	if block != nil && len(block.RequiredTypes) > 0 {
		return slices.Clone(block.RequiredTypes)
	}
	if len(job.Info.RequiredTypes) > 0 {
		return slices.Clone(job.Info.RequiredTypes)
	}
	return nil
}
