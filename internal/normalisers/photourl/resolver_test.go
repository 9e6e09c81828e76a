package photourl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

func TestOrigin(t *testing.T) {
	tests := []struct {
		base   string
		want   string
		wantOK bool
	}{
		{"https://api.example.com/api", "https://api.example.com", true},
		{"https://api.example.com/api/", "https://api.example.com", true},
		{"http://127.0.0.1:8000/api", "http://127.0.0.1:8000", true},
		{"https://x.com/v1/api", "https://x.com/v1", true},
		{"https://x.com/myapi", "https://x.com/myapi", true},
		{"https://x.com/api/v2", "https://x.com/api/v2", true},
		{"HTTPS://X.com", "https://X.com", true},
		{"https://x.com/api?debug=1", "https://x.com", true},
		{"", "", false},
		{"   ", "", false},
		{"not a url", "", false},
		{"/api", "", false},
		{"ftp://x.com/api", "", false},
		{"http://[::1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, ok := Origin(tt.base)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveURL(t *testing.T) {
	r := NewResolver("https://api.example.com/api")

	tests := []struct {
		name   string
		photo  domain.PhotoRecord
		want   string
		wantOK bool
	}{
		{"bare key", domain.PhotoRecord{S3Key: "foo.jpg"}, "https://api.example.com/uploads/foo.jpg", true},
		{"absolute url unchanged", domain.PhotoRecord{S3URL: "https://cdn/x.jpg"}, "https://cdn/x.jpg", true},
		{"absolute url any case", domain.PhotoRecord{S3URL: "HTTP://cdn/x.jpg"}, "HTTP://cdn/x.jpg", true},
		{"absolute key unchanged", domain.PhotoRecord{S3Key: "https://cdn/y.jpg"}, "https://cdn/y.jpg", true},
		{"url preferred over key", domain.PhotoRecord{S3Key: "k.jpg", S3URL: "https://cdn/u.jpg"}, "https://cdn/u.jpg", true},
		{"leading slashes stripped", domain.PhotoRecord{S3Key: "//jobs/a.jpg"}, "https://api.example.com/uploads/jobs/a.jpg", true},
		{"uploads prefix stripped", domain.PhotoRecord{S3Key: "/uploads/a.jpg"}, "https://api.example.com/uploads/a.jpg", true},
		{"s3 uri", domain.PhotoRecord{S3Key: "s3://bucket/jobs/j1/raw/a.jpg"}, "https://api.example.com/uploads/jobs/j1/raw/a.jpg", true},
		{"static path", domain.PhotoRecord{S3URL: "/static/jobs/j1/a.jpg"}, "https://api.example.com/static/jobs/j1/a.jpg", true},
		{"neither url nor key", domain.PhotoRecord{ID: "p"}, "", false},
		{"blank values", domain.PhotoRecord{S3Key: "  ", S3URL: ""}, "", false},
		{"file url", domain.PhotoRecord{S3Key: "file:///tmp/a.jpg"}, "", false},
		{"bucket only", domain.PhotoRecord{S3Key: "s3://bucket"}, "", false},
		{"slashes only", domain.PhotoRecord{S3Key: "///"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.ResolveURL(tt.photo)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveURL_NoBase(t *testing.T) {
	for _, base := range []string{"", "::::", "relative/api"} {
		r := NewResolver(base)

		_, ok := r.ResolveURL(domain.PhotoRecord{S3Key: "foo.jpg"})
		assert.False(t, ok, base)

		got, ok := r.ResolveURL(domain.PhotoRecord{S3URL: "https://cdn/x.jpg"})
		assert.True(t, ok, base)
		assert.Equal(t, "https://cdn/x.jpg", got)
	}
}
