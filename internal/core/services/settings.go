package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyAPIToken       = "api.token"
	KeyAPITimeout     = "api.timeout_seconds"
	KeyAPIRate        = "api.rate_per_second"
	KeyExportDir      = "export.dir"
	KeyHistoryEnabled = "history.enabled"
	KeyOutputFormat   = "output.format"
)

// EnvAPIBaseURL overrides api.base_url when set.
const EnvAPIBaseURL = "FIELDLENS_API_URL"

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
)

var settingKeys = map[string]keyKind{
	KeyAPIBaseURL:     kindString,
	KeyAPIToken:       kindString,
	KeyAPITimeout:     kindInt,
	KeyAPIRate:        kindInt,
	KeyExportDir:      kindString,
	KeyHistoryEnabled: kindBool,
	KeyOutputFormat:   kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get returns stored values over defaults, with the environment override
// for the API base applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultSettings()

	settings.API.BaseURL = s.getString(KeyAPIBaseURL, settings.API.BaseURL)
	settings.API.Token = s.getString(KeyAPIToken, "")
	settings.API.TimeoutSeconds = s.getInt(KeyAPITimeout, settings.API.TimeoutSeconds)
	settings.API.RatePerSecond = s.getInt(KeyAPIRate, settings.API.RatePerSecond)
	settings.ExportDir = s.getString(KeyExportDir, settings.ExportDir)
	settings.HistoryEnabled = s.getBool(KeyHistoryEnabled, settings.HistoryEnabled)
	settings.Output = domain.OutputFormat(s.getString(KeyOutputFormat, string(settings.Output)))

	if v, ok := s.lookupEnv(EnvAPIBaseURL); ok && strings.TrimSpace(v) != "" {
		settings.API.BaseURL = strings.TrimSpace(v)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetValue returns the effective value of one key as text.
func (s *SettingsService) GetValue(key string) (string, error) {
	if _, ok := settingKeys[key]; !ok {
		return "", fmt.Errorf("%w: unknown key %q", domain.ErrNotFound, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	switch key {
	case KeyAPIBaseURL:
		return settings.API.BaseURL, nil
	case KeyAPIToken:
		return settings.API.Token, nil
	case KeyAPITimeout:
		return strconv.Itoa(settings.API.TimeoutSeconds), nil
	case KeyAPIRate:
		return strconv.Itoa(settings.API.RatePerSecond), nil
	case KeyExportDir:
		return settings.ExportDir, nil
	case KeyHistoryEnabled:
		return strconv.FormatBool(settings.HistoryEnabled), nil
	default:
		return settings.Output.String(), nil
	}
}

// SetValue parses value for key, checks the resulting settings are valid
// and stores it.
func (s *SettingsService) SetValue(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrNotFound, key)
	}
	value = strings.TrimSpace(value)

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		typed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	default:
		typed = value
	}

	candidate := domain.DefaultSettings()
	if current, err := s.Get(); err == nil {
		candidate = *current
	}
	applySetting(&candidate, key, typed)
	if err := candidate.Validate(); err != nil {
		return err
	}
	return s.configStore.Set(key, typed)
}

func applySetting(st *domain.AppSettings, key string, v any) {
	switch key {
	case KeyAPIBaseURL:
		st.API.BaseURL = v.(string)
	case KeyAPIToken:
		st.API.Token = v.(string)
	case KeyAPITimeout:
		st.API.TimeoutSeconds = v.(int)
	case KeyAPIRate:
		st.API.RatePerSecond = v.(int)
	case KeyExportDir:
		st.ExportDir = v.(string)
	case KeyHistoryEnabled:
		st.HistoryEnabled = v.(bool)
	case KeyOutputFormat:
		st.Output = domain.OutputFormat(v.(string))
	}
}

// Unset removes a stored key so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingKeys[key]; !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrNotFound, key)
	}
	return s.configStore.Unset(key)
}

// Keys returns every supported key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, def string) string {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}
