package driving

import "github.com/custodia-labs/fieldlens-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: stored values over defaults,
	// with environment overrides applied.
	Get() (*domain.AppSettings, error)

	// GetValue returns the effective value of one key as text.
	GetValue(key string) (string, error)

	// SetValue parses and stores one key.
	SetValue(key, value string) error

	// Unset removes a stored key so its default applies again.
	Unset(key string) error

	// Keys returns every supported key, sorted.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
