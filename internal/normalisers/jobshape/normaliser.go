// Package jobshape converts job payloads from any of the backend's
// historical shapes into a domain.NormalizedJob.
//
// Three shapes are recognised, in precedence order: a non-empty sectors
// array, a sectorJobs object keyed by sector, and the legacy flat sector
// field. Anything else normalises to an empty sector set. Normalisation is
// total: malformed nested fields are treated as absent, never as errors.
package jobshape

import (
	"maps"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.JobNormaliser = (*Normaliser)(nil)

// Normaliser is the driven.JobNormaliser backed by Normalise.
type Normaliser struct{}

// New creates a new job shape normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise implements driven.JobNormaliser.
func (n *Normaliser) Normalise(raw domain.RawJob) domain.NormalizedJob {
	return Normalise(raw)
}

// shapeParser is one arm of the shape union.
type shapeParser struct {
	shape  domain.JobShape
	schema *jsonschema.Schema
	parse  func(doc map[string]any, info domain.JobInfo) parsed
}

// parsed is the sector set and blocks one parser produced.
type parsed struct {
	sectors []int
	blocks  map[int]domain.SectorBlock
}

// parsers are tried in order; the first whose schema matches wins.
var parsers = []shapeParser{
	{shape: domain.ShapeSectorArray, schema: sectorArray, parse: parseSectorArray},
	{shape: domain.ShapeSectorMap, schema: sectorMap, parse: parseSectorMap},
	{shape: domain.ShapeLegacy, schema: legacySector, parse: parseLegacySector},
}

// Normalise builds a fresh NormalizedJob from raw. The same input always
// yields a structurally equal result.
func Normalise(raw domain.RawJob) domain.NormalizedJob {
	doc := jsonDocument(raw)
	info := parseInfo(doc)

	job := domain.NormalizedJob{
		Shape:          domain.ShapeEmpty,
		SectorNumbers:  []int{},
		BlocksBySector: map[int]domain.SectorBlock{},
		Info:           info,
	}

	for _, p := range parsers {
		if !matches(p.schema, doc) {
			continue
		}
		res := p.parse(doc, info)
		job.Shape = p.shape
		job.SectorNumbers = res.sectors
		job.BlocksBySector = res.blocks
		break
	}

	if len(job.SectorNumbers) == 0 {
		job.LegacyBlock = parseLegacyFlat(doc, info)
	}
	return job
}

// parseSectorArray reads sectors: [SectorBlock | number, ...]. The first
// well-formed block for a sector wins.
func parseSectorArray(doc map[string]any, _ domain.JobInfo) parsed {
	items, _ := doc["sectors"].([]any)
	res := parsed{blocks: map[int]domain.SectorBlock{}}

	for _, item := range items {
		n, ok := sectorOf(item)
		if !ok {
			continue
		}
		res.sectors = append(res.sectors, n)

		obj, isObj := item.(map[string]any)
		if !isObj {
			continue
		}
		if _, seen := res.blocks[n]; seen {
			continue
		}
		block := domain.SectorBlock{
			Sector:       n,
			CurrentIndex: intPtr(obj["currentIndex"]),
			Status:       stringPtr(obj["status"]),
		}
		if types, ok := stringList(obj["requiredTypes"]); ok {
			block.RequiredTypes = types
		}
		res.blocks[n] = block
	}

	res.sectors = sortedUnique(res.sectors)
	return res
}

// parseSectorMap reads sectorJobs: {"<sector>": SectorBlock}. Entries
// without their own required types inherit the root list. Keys are visited
// in sorted order so that "1" wins over "01" deterministically.
func parseSectorMap(doc map[string]any, info domain.JobInfo) parsed {
	entries, _ := doc["sectorJobs"].(map[string]any)
	res := parsed{blocks: map[int]domain.SectorBlock{}}

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		n, ok := numericString(key)
		if !ok {
			continue
		}
		res.sectors = append(res.sectors, n)
		if _, seen := res.blocks[n]; seen {
			continue
		}

		block := domain.SectorBlock{Sector: n}
		obj, _ := entries[key].(map[string]any)
		if types, ok := stringList(obj["requiredTypes"]); ok {
			block.RequiredTypes = types
		} else if info.HasRequiredTypes {
			block.RequiredTypes = slices.Clone(info.RequiredTypes)
		}
		block.CurrentIndex = intPtr(obj["currentIndex"])
		block.Status = stringPtr(obj["status"])
		res.blocks[n] = block
	}

	res.sectors = sortedUnique(res.sectors)
	return res
}

// parseLegacySector reads the flat single-sector shape.
func parseLegacySector(_ map[string]any, info domain.JobInfo) parsed {
	if info.Sector == nil {
		return parsed{sectors: []int{}, blocks: map[int]domain.SectorBlock{}}
	}
	n := *info.Sector
	block := domain.SectorBlock{
		Sector:       n,
		CurrentIndex: cloneInt(info.CurrentIndex),
		Status:       cloneString(info.Status),
	}
	if info.HasRequiredTypes {
		block.RequiredTypes = slices.Clone(info.RequiredTypes)
	}
	return parsed{
		sectors: []int{n},
		blocks:  map[int]domain.SectorBlock{n: block},
	}
}

// parseLegacyFlat builds the sector-less legacy block from root fields. It
// is nil unless the root carries requiredTypes or currentIndex.
func parseLegacyFlat(doc map[string]any, info domain.JobInfo) *domain.SectorBlock {
	rt, hasRT := doc["requiredTypes"]
	ci, hasCI := doc["currentIndex"]
	if (!hasRT || rt == nil) && (!hasCI || ci == nil) {
		return nil
	}

	block := domain.SectorBlock{
		CurrentIndex: cloneInt(info.CurrentIndex),
		Status:       cloneString(info.Status),
	}
	if info.Sector != nil {
		block.Sector = *info.Sector
	}
	if info.HasRequiredTypes {
		block.RequiredTypes = slices.Clone(info.RequiredTypes)
	}
	return &block
}

// parseInfo reads the flat root fields the summary shows.
func parseInfo(doc map[string]any) domain.JobInfo {
	info := domain.JobInfo{
		WorkerPhone:  stringPtr(doc["workerPhone"]),
		SiteID:       textPtr(doc["siteId"]),
		Status:       stringPtr(doc["status"]),
		Sector:       intPtr(doc["sector"]),
		CurrentIndex: intPtr(doc["currentIndex"]),
		CreatedAt:    textPtr(doc["createdAt"]),
	}
	if id, ok := text(doc["id"]); ok {
		info.ID = id
	} else if id, ok := text(doc["_id"]); ok {
		info.ID = id
	}
	if types, ok := stringList(doc["requiredTypes"]); ok {
		info.RequiredTypes = types
		info.HasRequiredTypes = true
	}
	return info
}

func sortedUnique(in []int) []int {
	if len(in) == 0 {
		return []int{}
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
