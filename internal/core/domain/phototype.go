package domain

import "strings"

// SectorTemplate is the checklist the backend suggests for a sector.
type SectorTemplate struct {
	Sector        int               `json:"sector" yaml:"sector"`
	RequiredTypes []string          `json:"requiredTypes" yaml:"requiredTypes"`
	Labels        map[string]string `json:"labels" yaml:"labels"`
}

// Label returns the template label for a type, if the template has one.
func (t *SectorTemplate) Label(photoType string) (string, bool) {
	if t == nil {
		return "", false
	}
	l, ok := t.Labels[photoType]
	if !ok {
		l, ok = t.Labels[strings.ToUpper(photoType)]
	}
	return l, ok && l != ""
}

// DefaultRequiredTypes is the checklist used when a sector has no template.
var DefaultRequiredTypes = []string{"LABEL", "AZIMUTH"}

var typeAliases = map[string]string{
	"label":     "LABEL",
	"labelling": "LABEL",
	"labeling":  "LABEL",
	"angle":     "AZIMUTH",
	"azimuth":   "AZIMUTH",
	"azi":       "AZIMUTH",
}

var typeLabels = map[string]string{
	"INSTALLATION":         "Installation",
	"CLUTTER":              "Clutter",
	"AZIMUTH":              "Azimuth Photo",
	"A6_GROUNDING":         "A6 Grounding",
	"CPRI_GROUNDING":       "CPRI Grounding",
	"POWER_TERM_A6":        "POWER Termination at A6",
	"CPRI_TERM_A6":         "CPRI Termination at A6",
	"TILT":                 "Tilt",
	"LABELLING":            "Labelling",
	"ROXTEC":               "Roxtec",
	"A6_PANEL":             "A6 Panel",
	"MCB_POWER":            "MCB Power",
	"CPRI_TERM_SWITCH_CSS": "CPRI Termination at Switch-CSS",
	"GROUNDING_OGB_TOWER":  "Grounding at OGB Tower",
	"LABEL":                "Label Photo",
}

// CanonicalType maps a photo type and its aliases onto the upper-case code
// the backend stores. Empty input becomes PHOTO.
func CanonicalType(photoType string) string {
	k := strings.ToUpper(strings.TrimSpace(photoType))
	if k == "" {
		return "PHOTO"
	}
	if c, ok := typeAliases[strings.ToLower(k)]; ok {
		return c
	}
	return k
}

// TypeLabel returns the human label for a photo type.
func TypeLabel(photoType string) string {
	c := CanonicalType(photoType)
	if l, ok := typeLabels[c]; ok {
		return l
	}
	words := strings.Fields(strings.ReplaceAll(c, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// TypeCaption is the default tile caption: the type with underscores
// shown as spaces.
func TypeCaption(photoType string) string {
	return strings.ReplaceAll(photoType, "_", " ")
}
