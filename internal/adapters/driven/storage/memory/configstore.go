package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration for the life of the process. It backs
// tests and stands in for the config file when that cannot be opened, in
// which case `config set` only lasts for the current command.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func lookup[T any](s *ConfigStore, key string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, _ := s.values[key].(T)
	return v
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns "" for missing or non-string values.
func (s *ConfigStore) GetString(key string) string { return lookup[string](s, key) }

// GetBool returns false for missing or non-boolean values.
func (s *ConfigStore) GetBool(key string) bool { return lookup[bool](s, key) }

// GetInt accepts the integer forms callers and decoders produce.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Set stores a value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Unset removes a value.
func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Keys returns every configured key, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Load is a no-op; there is nothing to re-read.
func (s *ConfigStore) Load() error { return nil }

// Path reports that nothing is persisted.
func (s *ConfigStore) Path() string { return ":memory:" }
