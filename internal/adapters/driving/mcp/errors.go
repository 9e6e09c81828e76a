// Package mcp provides an MCP (Model Context Protocol) server adapter for
// fieldlens. It lets AI assistants list inspection jobs and read their
// assembled previews.
package mcp

import "errors"

// ErrMissingJobService is returned when the job service is not provided.
var ErrMissingJobService = errors.New("mcp: job service is required")

// ErrMissingPreviewService is returned when the preview service is not provided.
var ErrMissingPreviewService = errors.New("mcp: preview service is required")
