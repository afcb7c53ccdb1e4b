package widgets

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"paneboard/internal/module"
)

// StatePane shows one key of the device-state mirror. It asks its container to
// hide it while the key is absent. It has no Copy; splitting one rebuilds the
// copy from its fragment.
type StatePane struct {
	module.Base
	key     string
	source  StateSource
	value   string
	present bool
}

func newState(fragment string, env module.Env) (module.Content, error) {
	if fragment == "" {
		return nil, errors.New("state: empty key")
	}
	s := &StatePane{key: fragment}
	if src, ok := env.Data.(StateSource); ok {
		s.source = src
	}
	s.value, s.present = s.lookup()
	return s, nil
}

func (s *StatePane) lookup() (string, bool) {
	if s.source == nil {
		return "", false
	}
	return s.source.Lookup(s.key)
}

// Bind reports the initial visibility to the new host.
func (s *StatePane) Bind(h module.Host) {
	s.Base.Bind(h)
	if !s.present {
		s.Hide(true)
	}
}

// Update re-reads the key and hides or shows the pane when it disappears or
// reappears.
func (s *StatePane) Update() {
	v, ok := s.lookup()
	s.value = v
	if ok != s.present {
		s.present = ok
		s.Hide(!ok)
	}
}

func (s *StatePane) Serialize() (string, error) { return module.Escape(s.key), nil }

func (s *StatePane) Render(width, height int) string {
	label := mutedStyle.Render(s.key)
	return place(width, height, lipgloss.JoinVertical(lipgloss.Center, label, lipgloss.NewStyle().Bold(true).Render(s.value)))
}

// MapState is an in-memory StateSource safe for concurrent writers.
type MapState struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapState creates a MapState seeded with values.
func NewMapState(values map[string]string) *MapState {
	m := &MapState{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Lookup implements StateSource.
func (m *MapState) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores a value.
func (m *MapState) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Delete removes a key.
func (m *MapState) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Replace swaps the whole key set.
func (m *MapState) Replace(values map[string]string) {
	next := make(map[string]string, len(values))
	for k, v := range values {
		next[k] = v
	}
	m.mu.Lock()
	m.values = next
	m.mu.Unlock()
}

// LoadStateFile reads a flat YAML mapping of keys to scalar values.
func LoadStateFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
