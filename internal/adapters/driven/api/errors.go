package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
)

// Operation names used in error messages.
const (
	OpListJobs = "List jobs"
	OpFetchJob = "Fetch job"
	OpCreate   = "Create job"
	OpDelete   = "Delete"
	OpExport   = "Export"
	OpTemplate = "Template"
	OpLogin    = "Login"
	OpMe       = "Session check"
	OpLogout   = "Logout"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Op         string
	StatusCode int
	Status     string
	Detail     string
	URL        string
}

// Error renders "<Op> failed: <detail>", or the status line when the
// backend sent no detail.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, e.statusText())
}

func (e *APIError) statusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// Unwrap maps the response onto the domain errors callers check for.
func (e *APIError) Unwrap() []error {
	var errs []error
	switch e.StatusCode {
	case http.StatusUnauthorized:
		if e.Op == OpLogin {
			errs = append(errs, domain.ErrInvalidCredentials)
		} else {
			errs = append(errs, domain.ErrUnauthorized)
		}
	case http.StatusForbidden:
		errs = append(errs, domain.ErrUnauthorized)
	case http.StatusNotFound:
		errs = append(errs, domain.ErrNotFound)
	case http.StatusTooManyRequests:
		errs = append(errs, domain.ErrRateLimited)
	}
	if e.Op == OpExport {
		errs = append(errs, domain.ErrExportFailed)
	} else {
		errs = append(errs, domain.ErrFetchFailed)
	}
	return errs
}

// UserMessage returns the message shown to users.
func (e *APIError) UserMessage() string {
	return e.Error()
}

// RateLimitError is a 429 response with the time the backend allows the
// next request.
type RateLimitError struct {
	Op         string
	RetryAfter time.Time
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter.IsZero() {
		return fmt.Sprintf("%s failed: rate limit exceeded", e.Op)
	}
	return fmt.Sprintf("%s failed: rate limit exceeded, retry after %s", e.Op, e.RetryAfter.Format(time.RFC3339))
}

// Unwrap returns domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
