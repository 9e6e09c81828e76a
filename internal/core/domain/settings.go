package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default settings values.
const (
	DefaultAPIBaseURL     = "http://127.0.0.1:8000/api"
	DefaultTimeoutSeconds = 30
	DefaultRatePerSecond  = 5
	DefaultExportDir      = "."
	DefaultOutputFormat   = OutputTable
)

// OutputFormat selects how the CLI prints previews and lists.
type OutputFormat string

// Available output formats.
const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// APISettings configures the backend connection.
type APISettings struct {
	// BaseURL is the API base, origin plus path prefix.
	BaseURL string

	// Token is an optional bearer token sent on every request.
	Token string

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond int
}

// Timeout returns the request timeout as a duration.
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AppSettings is the full application configuration.
type AppSettings struct {
	API APISettings

	// ExportDir is where downloaded exports are written.
	ExportDir string

	// HistoryEnabled records exports in the local history database.
	HistoryEnabled bool

	// Output is the default CLI output format.
	Output OutputFormat
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RatePerSecond:  DefaultRatePerSecond,
		},
		ExportDir:      DefaultExportDir,
		HistoryEnabled: true,
		Output:         DefaultOutputFormat,
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	if strings.TrimSpace(s.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidInput)
	}
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: api.timeout_seconds must not be negative", ErrInvalidInput)
	}
	if s.API.RatePerSecond < 0 {
		return fmt.Errorf("%w: api.rate_per_second must not be negative", ErrInvalidInput)
	}
	if !s.Output.IsValid() {
		return fmt.Errorf("%w: output.format %q", ErrUnsupportedType, s.Output)
	}
	return nil
}
