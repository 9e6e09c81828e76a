package jobshape

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Shape detection schemas. Each one only checks the discriminating field;
// the parsers coerce everything below it.
const (
	sectorArraySchema = `{
		"type": "object",
		"required": ["sectors"],
		"properties": {"sectors": {"type": "array", "minItems": 1}}
	}`

	sectorMapSchema = `{
		"type": "object",
		"required": ["sectorJobs"],
		"properties": {"sectorJobs": {"type": "object"}}
	}`

	legacySectorSchema = `{
		"type": "object",
		"required": ["sector"],
		"properties": {"sector": {"type": "integer"}}
	}`
)

var (
	sectorArray  = jsonschema.MustCompileString("sector_array.json", sectorArraySchema)
	sectorMap    = jsonschema.MustCompileString("sector_map.json", sectorMapSchema)
	legacySector = jsonschema.MustCompileString("legacy_sector.json", legacySectorSchema)
)

// matches reports whether doc satisfies schema. Values the validator cannot
// interpret count as a mismatch.
func matches(schema *jsonschema.Schema, doc map[string]any) bool {
	return schema.Validate(doc) == nil
}

// jsonDocument converts a raw job into plain decoded-JSON values so that
// schema validation and coercion see float64, []any and map[string]any
// regardless of how the caller built the map. Values that cannot be
// encoded are kept as they are.
func jsonDocument(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return raw
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil || doc == nil {
		return raw
	}
	return doc
}
