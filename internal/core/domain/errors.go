package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown export kind or output format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Authentication Errors.

	// ErrUnauthorized indicates the dashboard session is missing or expired.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrInvalidCredentials indicates the login was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Job API Errors.

	// ErrNoBaseURL indicates the API base URL is missing or not absolute.
	ErrNoBaseURL = errors.New("no API base URL configured")

	// ErrFetchFailed indicates a job or job list could not be fetched.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrExportFailed indicates the backend refused or failed an export.
	ErrExportFailed = errors.New("export failed")

	// ErrExportNotReady indicates the job or sector is not DONE yet.
	ErrExportNotReady = errors.New("export not ready")

	// Preview Errors.

	// ErrStaleResponse indicates a fetch result arrived after its view was
	// closed or switched to another job, and was discarded.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrNoPreview indicates no job is open in the preview session.
	ErrNoPreview = errors.New("no job open")

	// ErrNotEditing indicates a caption commit without a matching begin.
	ErrNotEditing = errors.New("no caption edit in progress")
)
