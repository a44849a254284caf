package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devflow-sh/devflow/internal/state"
)

func TestLoadMissingFile(t *testing.T) {
	m := state.NewManager(filepath.Join(t.TempDir(), ".devflow", "state.json"))

	st, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, st.Version)
	assert.NotNil(t, st.Plugins)
	assert.Empty(t, st.Plugins)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".devflow", "state.json")
	m := state.NewManager(path)

	st := state.NewState()
	st.Plugins["devflow-core"] = state.PluginState{
		InstalledAt: "2026-08-25T10:00:00Z",
		Commands:    []string{"plan", "commit"},
		Agents:      []string{"code-reviewer"},
		Skills:      []string{"conventional-commits", "repo-conventions"},
	}
	require.NoError(t, m.Save(st))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, st.Version, loaded.Version)
	assert.Equal(t, st.Plugins, loaded.Plugins)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".devflow", "state.json")
	m := state.NewManager(path)

	require.NoError(t, m.Save(state.NewState()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := state.NewManager(path).Load()
	assert.Error(t, err)
}

func TestLoadNilPluginsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0644))

	st, err := state.NewManager(path).Load()
	require.NoError(t, err)
	assert.NotNil(t, st.Plugins)
}

func TestInstalledNames(t *testing.T) {
	st := state.NewState()
	assert.Empty(t, st.InstalledNames())

	st.Plugins["devflow-core"] = state.PluginState{}
	st.Plugins["devflow-review"] = state.PluginState{}
	assert.ElementsMatch(t, []string{"devflow-core", "devflow-review"}, st.InstalledNames())
}
