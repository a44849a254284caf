// Package installer orchestrates the filesystem effects of installing
// and removing plugins: it asks the resolver which assets to copy or
// delete, performs the copies, and keeps the state file current.
//
// It is the only package here with I/O side effects, and it assumes it is
// the sole writer under the scope root for the duration of a run.
// Concurrent invocations against the same root are unsupported; every
// sub-operation is idempotent, so an interrupted run is recovered by
// simply running again.
package installer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/logging"
	"github.com/devflow-sh/devflow/internal/registry"
	"github.com/devflow-sh/devflow/internal/resolver"
	"github.com/devflow-sh/devflow/internal/state"
)

// UnknownAssetOwnerError reports an agent or skill that resolved to no
// owning plugin. The resolver assigns every declared asset an owner, so
// this is a registry integrity bug, not a runtime condition.
type UnknownAssetOwnerError struct {
	Asset  string
	Plugin string
}

func (e *UnknownAssetOwnerError) Error() string {
	return fmt.Sprintf("asset %q declared by plugin %q has no resolved owner", e.Asset, e.Plugin)
}

// Result summarizes what an install or uninstall touched.
type Result struct {
	Plugins  []string
	Commands []string
	Agents   []string
	Skills   []string
}

// Installer performs install/uninstall operations under one scope root.
type Installer struct {
	paths config.Paths
	all   []registry.Plugin
	st    *state.Manager
	log   zerolog.Logger
}

// New creates an installer over the full registry.
func New(paths config.Paths) *Installer {
	return NewWithRegistry(paths, registry.Plugins())
}

// NewWithRegistry creates an installer over an explicit plugin list.
// Tests use it to install synthetic registries into temp dirs.
func NewWithRegistry(paths config.Paths, plugins []registry.Plugin) *Installer {
	return &Installer{
		paths: paths,
		all:   plugins,
		st:    state.NewManager(paths.StatePath),
		log:   logging.GetLogger("installer"),
	}
}

// Installed returns the plugins recorded in the state file, in registry
// order. Plugins no longer present in the registry are dropped.
func (inst *Installer) Installed() ([]registry.Plugin, error) {
	st, err := inst.st.Load()
	if err != nil {
		return nil, err
	}

	var out []registry.Plugin
	for _, p := range inst.all {
		if _, ok := st.Plugins[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Install copies the selected plugins' assets into place. With full set,
// tool-owned directories and previously recorded skills are purged first,
// so nothing from an older registry shape survives; a selective install
// touches only the assets the selection owns.
func (inst *Installer) Install(selected []registry.Plugin, full bool) (*Result, error) {
	st, err := inst.st.Load()
	if err != nil {
		return nil, err
	}

	if full {
		if err := inst.purge(st); err != nil {
			return nil, err
		}
		st = state.NewState()
	}

	maps := resolver.BuildAssetMaps(selected)
	res := &Result{}
	now := time.Now().Format(time.RFC3339)

	for _, p := range selected {
		for _, c := range p.Commands {
			if err := inst.writeCommand(c); err != nil {
				return nil, fmt.Errorf("install %s: copy command %s: %w", p.Name, c, err)
			}
			res.Commands = append(res.Commands, c)
		}

		for _, a := range p.Agents {
			owner, ok := maps.Agents[a]
			if !ok {
				return nil, &UnknownAssetOwnerError{Asset: a, Plugin: p.Name}
			}
			if owner != p.Name {
				continue // another selected plugin already copies it
			}
			if err := inst.writeAgent(a); err != nil {
				return nil, fmt.Errorf("install %s: copy agent %s: %w", p.Name, a, err)
			}
			res.Agents = append(res.Agents, a)
		}

		for _, s := range p.Skills {
			owner, ok := maps.Skills[s]
			if !ok {
				return nil, &UnknownAssetOwnerError{Asset: s, Plugin: p.Name}
			}
			if owner != p.Name {
				continue
			}
			if err := inst.writeSkill(s); err != nil {
				return nil, fmt.Errorf("install %s: copy skill %s: %w", p.Name, s, err)
			}
			res.Skills = append(res.Skills, s)
		}

		st.Plugins[p.Name] = state.PluginState{
			InstalledAt: now,
			Commands:    p.Commands,
			Agents:      p.Agents,
			Skills:      p.Skills,
		}
		res.Plugins = append(res.Plugins, p.Name)
		inst.log.Debug().Str("plugin", p.Name).Msg("plugin installed")
	}

	if err := inst.EnsureHookScripts(); err != nil {
		return nil, fmt.Errorf("install hook scripts: %w", err)
	}

	if err := inst.st.Save(st); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return res, nil
}

// Uninstall removes the selected plugins' assets, keeping any agent or
// skill that a surviving installed plugin still declares.
func (inst *Installer) Uninstall(selected []registry.Plugin) (*Result, error) {
	st, err := inst.st.Load()
	if err != nil {
		return nil, err
	}

	// Retention is computed against what is actually installed, not the
	// whole registry: an asset only needs to survive for plugins that
	// currently have it on disk.
	var installed []registry.Plugin
	for _, p := range inst.all {
		if _, ok := st.Plugins[p.Name]; ok {
			installed = append(installed, p)
		}
	}

	var removing []registry.Plugin
	for _, p := range selected {
		if _, ok := st.Plugins[p.Name]; ok {
			removing = append(removing, p)
		}
	}

	rs := resolver.ComputeAssetsToRemove(removing, installed)
	res := &Result{}

	for _, c := range rs.Commands {
		if err := removeFile(filepath.Join(inst.paths.CommandsDir, c+".md")); err != nil {
			return nil, fmt.Errorf("remove command %s: %w", c, err)
		}
		res.Commands = append(res.Commands, c)
	}
	for _, a := range rs.Agents {
		if err := removeFile(filepath.Join(inst.paths.AgentsDir, a+".md")); err != nil {
			return nil, fmt.Errorf("remove agent %s: %w", a, err)
		}
		res.Agents = append(res.Agents, a)
	}
	for _, s := range rs.Skills {
		if err := os.RemoveAll(filepath.Join(inst.paths.SkillsDir, s)); err != nil {
			return nil, fmt.Errorf("remove skill %s: %w", s, err)
		}
		res.Skills = append(res.Skills, s)
	}

	for _, p := range removing {
		delete(st.Plugins, p.Name)
		res.Plugins = append(res.Plugins, p.Name)
		inst.log.Debug().Str("plugin", p.Name).Msg("plugin removed")
	}

	if err := inst.st.Save(st); err != nil {
		return nil, fmt.Errorf("write state: %w", err)
	}
	return res, nil
}

// purge clears the tool-owned command and agent directories and every
// skill the previous state recorded. Missing targets are no-op successes.
func (inst *Installer) purge(st *state.State) error {
	if err := os.RemoveAll(inst.paths.CommandsDir); err != nil {
		return fmt.Errorf("purge commands: %w", err)
	}
	if err := os.RemoveAll(inst.paths.AgentsDir); err != nil {
		return fmt.Errorf("purge agents: %w", err)
	}
	for name, ps := range st.Plugins {
		for _, s := range ps.Skills {
			if err := os.RemoveAll(filepath.Join(inst.paths.SkillsDir, s)); err != nil {
				return fmt.Errorf("purge skill %s (plugin %s): %w", s, name, err)
			}
		}
	}
	return nil
}

func (inst *Installer) writeCommand(name string) error {
	payload, err := registry.CommandPayload(name)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(inst.paths.CommandsDir, name+".md"), payload, 0644)
}

func (inst *Installer) writeAgent(name string) error {
	payload, err := registry.AgentPayload(name)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(inst.paths.AgentsDir, name+".md"), payload, 0644)
}

func (inst *Installer) writeSkill(name string) error {
	src, err := registry.SkillFS(name)
	if err != nil {
		return err
	}
	dest := filepath.Join(inst.paths.SkillsDir, name)
	// Replace wholesale so files dropped from the payload do not linger.
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	return copyFS(src, dest, 0644)
}

// EnsureHookScripts copies the embedded hook scripts under the scope's
// .devflow directory. The settings.json registrations added by the hooks
// package point at these paths. Safe to re-run; existing scripts are
// overwritten in place.
func (inst *Installer) EnsureHookScripts() error {
	src, err := registry.HookScriptsFS()
	if err != nil {
		return err
	}
	return copyFS(src, inst.paths.HookScriptsDir, 0755)
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, mode)
}

// removeFile deletes a file, treating a missing target as success.
func removeFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// copyFS copies an embedded file tree to dest with the given file mode.
func copyFS(src fs.FS, dest string, mode os.FileMode) error {
	return fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dest, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		return writeFile(target, data, mode)
	})
}
