// Package prefs persists small user preferences as JSON values. Storage
// failures never reach the caller: writes are dropped and reads fall back
// to the caller's default, with the failure logged.
package prefs

import (
	"encoding/json"
	"sync"

	"github.com/soyeahso/sasagent/internal/logging"
	"github.com/soyeahso/sasagent/internal/store"
	"github.com/soyeahso/sasagent/internal/ui"
)

// KeyTheme holds the UI theme.
const KeyTheme = "theme"

// DefaultTheme is used when no theme was saved.
const DefaultTheme = ui.ThemeLight

// Backend is raw string storage keyed by name.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

var _ Backend = (*store.PreferenceStore)(nil)

// Store reads and writes JSON-encoded preferences through a Backend.
type Store struct {
	backend Backend
	log     *logging.Logger
}

// New creates a Store over backend.
func New(backend Backend, log *logging.Logger) *Store {
	return &Store{backend: backend, log: log.Sub("prefs")}
}

// Save JSON-encodes v under key. Failures are logged and ignored.
func (s *Store) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to encode preference")
		return
	}
	if err := s.backend.Set(key, string(data)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to save preference")
	}
}

// Remove deletes key. Failures are logged and ignored.
func (s *Store) Remove(key string) {
	if err := s.backend.Delete(key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to remove preference")
	}
}

// Load decodes the value under key into a T. It returns def when the key is
// absent, empty, or cannot be read or decoded.
func Load[T any](s *Store, key string, def T) T {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to load preference")
		return def
	}
	if !ok || raw == "" {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to decode preference")
		return def
	}
	return v
}

// Theme returns the saved theme, or DefaultTheme.
func (s *Store) Theme() string {
	return Load(s, KeyTheme, DefaultTheme)
}

// SetTheme saves theme and applies it to surface, which may be nil.
func (s *Store) SetTheme(surface *ui.Surface, theme string) {
	s.Save(KeyTheme, theme)
	if surface != nil {
		surface.SetTheme(theme)
	}
}

// MemoryBackend keeps preferences in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
