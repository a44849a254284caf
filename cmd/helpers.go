package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/gitutil"
	"github.com/devflow-sh/devflow/internal/i18n"
)

// resolvePaths maps a scope to its target path layout. Local scope
// anchors at the enclosing git worktree root.
func resolvePaths(scope config.Scope) (config.Paths, error) {
	switch scope {
	case config.ScopeUser:
		return config.PathsFor(config.UserRoot()), nil
	case config.ScopeLocal:
		cwd, err := os.Getwd()
		if err != nil {
			return config.Paths{}, err
		}
		root, err := gitutil.NewClient().WorktreeRoot(cwd)
		if err != nil {
			return config.Paths{}, fmt.Errorf(i18n.T("LocalScopeNeedsRepo", nil)+": %w", err)
		}
		return config.PathsFor(root), nil
	default:
		return config.Paths{}, fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}
}

// readSettings returns the settings document text, or "" when the file
// does not exist yet.
func readSettings(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read settings: %w", err)
	}
	return string(data), nil
}

// writeSettingsIfChanged writes the mutated settings document back,
// atomically via a temp file rename, but only when the mutation actually
// changed it. Returns whether a write happened.
func writeSettingsIfChanged(path, before, after string) (bool, error) {
	if after == before {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return false, fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(after); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to replace settings: %w", err)
	}
	return true, nil
}
