// Package photoindex infers photo sectors from storage keys and builds the
// latest-wins index the tile grid reads from.
package photoindex

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// sectorMarker matches tags like _s2_, -s10- and .s1. that the upload
// pipeline embeds in storage keys.
var sectorMarker = regexp.MustCompile(`[-_.]s(\d+)[-_.]`)

// InferSector returns the sector tagged in a storage key or URL, or
// domain.UnknownSector when no tag is present.
func InferSector(keyOrURL string) domain.SectorTag {
	m := sectorMarker.FindStringSubmatch(strings.ToLower(keyOrURL))
	if m == nil {
		return domain.UnknownSector
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.UnknownSector
	}
	return domain.KnownSector(n)
}
