// Package photourl derives displayable photo URLs from whatever the
// backend stored: an absolute URL, a server-relative static path, or a
// bare storage key.
package photourl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.PhotoURLResolver = (*Resolver)(nil)

var absoluteHTTP = regexp.MustCompile(`(?i)^https?://`)

// uploadsPrefix is where the backend serves stored keys.
const uploadsPrefix = "/uploads/"

// staticPrefix is the server-relative path local storage presigns to.
const staticPrefix = "/static/"

// Resolver resolves photo URLs against one API base. A Resolver built
// from an empty or malformed base only passes absolute URLs through.
type Resolver struct {
	origin string
	valid  bool
}

// NewResolver creates a resolver for apiBase, for example
// "https://api.example.com/api".
func NewResolver(apiBase string) *Resolver {
	origin, ok := Origin(apiBase)
	return &Resolver{origin: origin, valid: ok}
}

// Origin strips a trailing /api segment and any trailing slashes from an
// API base, keeping scheme, host and the remaining path. ok is false when
// the base is empty or not an absolute http(s) URL.
func Origin(apiBase string) (string, bool) {
	apiBase = strings.TrimSpace(apiBase)
	if apiBase == "" {
		return "", false
	}
	u, err := url.Parse(apiBase)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return "", false
	}

	p := strings.TrimRight(u.Path, "/")
	if p == "/api" || strings.HasSuffix(p, "/api") {
		p = strings.TrimSuffix(p, "/api")
	}
	p = strings.TrimRight(p, "/")
	return scheme + "://" + u.Host + p, true
}

// ResolveURL returns the URL a photo is displayed from. The photo URL is
// preferred over the storage key. ok is false when the photo has neither,
// or when a relative value cannot be resolved.
func (r *Resolver) ResolveURL(p domain.PhotoRecord) (string, bool) {
	v := strings.TrimSpace(p.S3URL)
	if v == "" {
		v = strings.TrimSpace(p.S3Key)
	}
	if v == "" {
		return "", false
	}
	if absoluteHTTP.MatchString(v) {
		return v, true
	}
	if !r.valid {
		return "", false
	}
	if strings.HasPrefix(v, staticPrefix) {
		return r.origin + v, true
	}

	key, ok := storageKey(v)
	if !ok {
		return "", false
	}
	return r.origin + uploadsPrefix + key, true
}

// storageKey reduces a stored value to a bare key: s3://bucket/ and a
// leading uploads/ are removed, as are leading slashes. Other URL schemes
// cannot be served and are rejected.
func storageKey(v string) (string, bool) {
	if rest, found := strings.CutPrefix(v, "s3://"); found {
		_, key, hasKey := strings.Cut(rest, "/")
		if !hasKey {
			return "", false
		}
		v = key
	} else if strings.Contains(v, "://") {
		return "", false
	}

	v = strings.TrimLeft(v, "/")
	v = strings.TrimPrefix(v, "uploads/")
	v = strings.TrimLeft(v, "/")
	if v == "" {
		return "", false
	}
	return v, true
}
