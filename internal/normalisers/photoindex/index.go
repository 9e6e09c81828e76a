package photoindex

import (
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure the index types implement the interfaces.
var (
	_ driven.PhotoIndexer = (*Indexer)(nil)
	_ driven.PhotoIndex   = (*Index)(nil)
)

// Key identifies an index entry.
type Key struct {
	Sector domain.SectorTag
	Type   string
}

// Index maps (sector, upper-case type) to the last photo seen for it. It
// has no mutating methods; a new photo list builds a new Index.
type Index struct {
	entries map[Key]domain.PhotoRecord
	order   []Key
}

// Indexer is the driven.PhotoIndexer backed by Build.
type Indexer struct{}

// NewIndexer creates a new photo indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// Build implements driven.PhotoIndexer.
func (i *Indexer) Build(photos []domain.PhotoRecord) driven.PhotoIndex {
	return Build(photos)
}

// Build folds photos left to right. A later photo with the same sector
// and type replaces the earlier one; keys keep the position of their first
// insertion.
func Build(photos []domain.PhotoRecord) *Index {
	return fold(photos, &Index{entries: make(map[Key]domain.PhotoRecord, len(photos))})
}

func fold(photos []domain.PhotoRecord, acc *Index) *Index {
	for _, p := range photos {
		k := KeyOf(p)
		if _, seen := acc.entries[k]; !seen {
			acc.order = append(acc.order, k)
		}
		acc.entries[k] = p
	}
	return acc
}

// KeyOf returns the index key of a photo.
func KeyOf(p domain.PhotoRecord) Key {
	return Key{
		Sector: InferSector(p.StorageRef()),
		Type:   strings.ToUpper(p.Type),
	}
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	return len(x.order)
}

// Keys returns the keys in first-insertion order.
func (x *Index) Keys() []Key {
	return append([]Key(nil), x.order...)
}

// Lookup returns the entry stored at exactly (sector, photoType).
func (x *Index) Lookup(sector domain.SectorTag, photoType string) (domain.PhotoRecord, bool) {
	p, ok := x.entries[Key{Sector: sector, Type: strings.ToUpper(photoType)}]
	return p, ok
}

// ResolveForType finds the photo a tile of photoType shows for the
// selected sector: the exact sector entry, else the untagged entry, else
// the first entry of that type under any sector.
func (x *Index) ResolveForType(photoType string, selected *int) (domain.PhotoRecord, bool) {
	t := strings.ToUpper(photoType)
	if selected != nil {
		if p, ok := x.entries[Key{Sector: domain.KnownSector(*selected), Type: t}]; ok {
			return p, true
		}
	}
	if p, ok := x.entries[Key{Sector: domain.UnknownSector, Type: t}]; ok {
		return p, true
	}
	for _, k := range x.order {
		if k.Type == t {
			return x.entries[k], true
		}
	}
	return domain.PhotoRecord{}, false
}
