package jobshape

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxSector bounds sector numbers to values that fit an int everywhere.
const maxSector = 1 << 31

// number reads a JSON number. Strings, booleans and non-finite values are
// rejected.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// integer reads a JSON number with no fractional part.
func integer(v any) (int, bool) {
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= maxSector {
		return 0, false
	}
	return int(f), true
}

// numericString parses a trimmed decimal string, as the backend
// occasionally sends sector numbers and map keys as text.
func numericString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return integer(f)
}

// sectorOf maps a sectors array element to a sector number: the element
// itself when numeric, else its sector field.
func sectorOf(elem any) (int, bool) {
	switch e := elem.(type) {
	case map[string]any:
		return sectorValue(e["sector"])
	default:
		return sectorValue(e)
	}
}

func sectorValue(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return numericString(s)
	}
	return integer(v)
}

// stringList keeps the string items of a JSON array. ok is false when v is
// not an array at all.
func stringList(v any) ([]string, bool) {
	switch items := v.(type) {
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	case []string:
		return append([]string(nil), items...), true
	default:
		return nil, false
	}
}

func intPtr(v any) *int {
	n, ok := integer(v)
	if !ok {
		return nil
	}
	return &n
}

func stringPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// text reads a string, or formats a number, for identifier-like fields.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case map[string]any:
		// Mongo extended JSON object ids.
		if oid, ok := t["$oid"].(string); ok {
			return oid, true
		}
		return "", false
	default:
		f, ok := number(v)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
}

func textPtr(v any) *string {
	s, ok := text(v)
	if !ok {
		return nil
	}
	return &s
}
