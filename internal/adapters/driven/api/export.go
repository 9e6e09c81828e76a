package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// Export downloads a server-side export. The filename comes from the
// Content-Disposition header, falling back to the request's default name.
func (c *Client) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportPayload, error) {
	endpoint, err := c.exportEndpoint(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, OpExport, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w: %w", OpExport, domain.ErrExportFailed, err)
	}

	name := parseContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = req.FallbackFilename()
	}
	return &domain.ExportPayload{
		Filename:    name,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) exportEndpoint(req domain.ExportRequest) (string, error) {
	switch req.Kind {
	case domain.ExportXLSX:
		return c.endpoint(nil, "jobs", req.JobID, "export.xlsx"), nil
	case domain.ExportXLSXImages:
		return c.endpoint(nil, "jobs", req.JobID, "export_with_images.xlsx"), nil
	case domain.ExportZIP:
		var query url.Values
		if req.Sector != nil {
			query = url.Values{"sector": {strconv.Itoa(*req.Sector)}}
		}
		return c.endpoint(query, "jobs", req.JobID, "export.zip"), nil
	case domain.ExportSectorXLSX:
		if req.Sector == nil {
			return "", fmt.Errorf("%w: sector export needs a sector", domain.ErrInvalidInput)
		}
		query := url.Values{
			"jobId":  {req.JobID},
			"sector": {strconv.Itoa(*req.Sector)},
		}
		return c.endpoint(query, "exports", "sector.xlsx"), nil
	default:
		return "", fmt.Errorf("%w: export kind %q", domain.ErrUnsupportedType, req.Kind)
	}
}

// parseContentDisposition extracts the filename from a Content-Disposition
// header, preferring the RFC 5987 filename* form. Directory parts are
// stripped.
func parseContentDisposition(header string) string {
	if header == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		// mime decodes filename* into filename.
		if name := safeName(params["filename"]); name != "" {
			return name
		}
	}

	// Lenient fallback for headers mime rejects.
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "filename*":
			value = strings.Trim(value, `"`)
			if _, rest, ok := strings.Cut(value, "''"); ok {
				value = rest
			}
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
			if name := safeName(value); name != "" {
				return name
			}
		case "filename":
			if name := safeName(strings.Trim(value, `"`)); name != "" {
				return name
			}
		}
	}
	return ""
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
