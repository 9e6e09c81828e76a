package api

import (
	"encoding/json"
	"slices"
	"strconv"
	"time"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// createdAtLayouts are the timestamp formats the backend has emitted.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
}

// decodePhotos decodes each photo on its own, so one malformed entry is
// skipped rather than failing the whole job.
func decodePhotos(raw []json.RawMessage) []domain.PhotoRecord {
	photos := make([]domain.PhotoRecord, 0, len(raw))
	for i, msg := range raw {
		var m map[string]any
		if err := json.Unmarshal(msg, &m); err != nil || m == nil {
			logger.Warn("Skipping photo %d: not an object", i)
			continue
		}
		photos = append(photos, photoFromMap(m))
	}
	return photos
}

func photoFromMap(m map[string]any) domain.PhotoRecord {
	p := domain.PhotoRecord{
		ID:        firstString(m, "id", "_id"),
		JobID:     firstString(m, "jobId"),
		Type:      firstString(m, "type"),
		S3Key:     firstString(m, "s3Key"),
		S3URL:     firstString(m, "s3Url", "url"),
		Status:    firstString(m, "status"),
		CreatedAt: firstString(m, "createdAt"),
	}
	if f, ok := m["fields"].(map[string]any); ok {
		p.Fields = f
	}
	if c, ok := m["checks"].(map[string]any); ok {
		p.Checks = c
	}
	switch r := m["reason"].(type) {
	case string:
		if r != "" {
			p.Reason = []string{r}
		}
	case []any:
		for _, item := range r {
			if s, ok := item.(string); ok {
				p.Reason = append(p.Reason, s)
			}
		}
	}
	return p
}

// firstString returns the first key holding a string, an {"$oid": ...}
// object or a number.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			return v
		case map[string]any:
			if oid, ok := v["$oid"].(string); ok {
				return oid
			}
			if d, ok := v["$date"].(string); ok {
				return d
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// orderPhotos returns photos oldest-first when every photo has a
// parseable createdAt, and in arrival order otherwise.
func orderPhotos(photos []domain.PhotoRecord) []domain.PhotoRecord {
	times := make([]time.Time, len(photos))
	for i, p := range photos {
		t, ok := parseCreatedAt(p.CreatedAt)
		if !ok {
			return photos
		}
		times[i] = t
	}

	idx := make([]int, len(photos))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return times[a].Compare(times[b])
	})
	out := make([]domain.PhotoRecord, len(photos))
	for i, j := range idx {
		out[i] = photos[j]
	}
	return out
}

func parseCreatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
