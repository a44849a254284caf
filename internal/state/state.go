// Package state tracks which plugins and assets devflow has installed
// under one scope root, in <root>/.devflow/state.json. Uninstall and the
// full-install purge consult it so assets from an older registry shape do
// not survive as orphans.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PluginState records the assets one installed plugin owns.
type PluginState struct {
	InstalledAt string   `json:"installedAt"`
	Commands    []string `json:"commands,omitempty"`
	Agents      []string `json:"agents,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// State is the state.json structure.
type State struct {
	Version int                    `json:"version"`
	Plugins map[string]PluginState `json:"plugins"`
}

// NewState creates an empty State instance.
func NewState() *State {
	return &State{
		Version: 1,
		Plugins: make(map[string]PluginState),
	}
}

// InstalledNames returns the recorded plugin names in map order. Callers
// that care about ordering resolve the names against the registry.
func (s *State) InstalledNames() []string {
	names := make([]string, 0, len(s.Plugins))
	for name := range s.Plugins {
		names = append(names, name)
	}
	return names
}

// Manager loads and saves the state file for one scope root.
type Manager struct {
	path string
}

// NewManager creates a manager for the given state file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load loads the state from the JSON file. A missing file yields an
// empty state.
func (m *Manager) Load() (*State, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if st.Plugins == nil {
		st.Plugins = make(map[string]PluginState)
	}
	return &st, nil
}

// Save saves the state to the JSON file, creating parent directories as
// needed.
func (m *Manager) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0644)
}
