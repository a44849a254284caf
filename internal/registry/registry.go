// Package registry holds the static, ordered plugin registry and the
// embedded asset payloads the installer copies into place. The registry is
// constructed once and never mutated; registry order decides asset
// ownership when two plugins declare the same agent or skill.
package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets
var assetsFS embed.FS

// NamePrefix is the fixed prefix every devflow plugin name carries.
// Selection shorthand without the prefix is normalized against it.
const NamePrefix = "devflow-"

// plugins is the full registry, in ownership order.
var plugins = []Plugin{
	{
		Name:        "devflow-core",
		Description: "Planning, commit and ship workflow commands",
		Commands:    []string{"plan", "commit", "ship"},
		Agents:      []string{"code-reviewer"},
		Skills:      []string{"conventional-commits", "repo-conventions"},
	},
	{
		Name:        "devflow-review",
		Description: "Pull-request review commands and audit agents",
		Commands:    []string{"review"},
		Agents:      []string{"code-reviewer", "security-auditor"},
		Skills:      []string{"repo-conventions", "diff-triage"},
	},
	{
		Name:        "devflow-memory",
		Description: "Session memory capture and recall",
		Commands:    []string{"remember"},
		Skills:      []string{"memory-recall"},
	},
	{
		Name:        "devflow-docs",
		Description: "Documentation drafting helpers",
		Commands:    []string{"docs"},
		Agents:      []string{"doc-writer"},
		Skills:      []string{"docs-style"},
		Optional:    true,
	},
}

// Plugins returns the registry in declaration order. The returned slice is
// a copy; callers may reorder or filter it freely.
func Plugins() []Plugin {
	out := make([]Plugin, len(plugins))
	copy(out, plugins)
	return out
}

// Find returns the plugin with the given (fully prefixed) name, or nil.
func Find(name string) *Plugin {
	for i := range plugins {
		if plugins[i].Name == name {
			p := plugins[i]
			return &p
		}
	}
	return nil
}

// NormalizeSelection parses a comma-separated plugin selection string,
// prepending NamePrefix to any shorthand entry that lacks it.
// Empty entries are dropped.
func NormalizeSelection(selection string) []string {
	var names []string
	for _, part := range strings.Split(selection, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, NamePrefix) {
			name = NamePrefix + name
		}
		names = append(names, name)
	}
	return names
}

// Select resolves a list of plugin names against the registry, preserving
// registry order. Unknown names produce an error.
func Select(names []string) ([]Plugin, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var selected []Plugin
	for _, p := range plugins {
		if want[p.Name] {
			selected = append(selected, p)
			delete(want, p.Name)
		}
	}

	for n := range want {
		return nil, fmt.Errorf("unknown plugin: %s", n)
	}
	return selected, nil
}

// CommandPayload returns the embedded markdown for a command.
func CommandPayload(name string) ([]byte, error) {
	return assetsFS.ReadFile(path.Join("assets", "commands", name+".md"))
}

// AgentPayload returns the embedded markdown for an agent.
func AgentPayload(name string) ([]byte, error) {
	return assetsFS.ReadFile(path.Join("assets", "agents", name+".md"))
}

// SkillFS returns the embedded file tree for a skill directory.
func SkillFS(name string) (fs.FS, error) {
	return fs.Sub(assetsFS, path.Join("assets", "skills", name))
}

// HookScriptsFS returns the embedded hook script tree. The installer
// copies it under <scope>/.devflow/scripts/hooks.
func HookScriptsFS() (fs.FS, error) {
	return fs.Sub(assetsFS, "assets/scripts/hooks")
}

// Verify checks registry integrity: every declared command, agent and
// skill must resolve to an embedded payload. A failure here is a
// programmer error in the registry, not a runtime condition.
func Verify() error {
	for _, p := range plugins {
		for _, c := range p.Commands {
			if _, err := CommandPayload(c); err != nil {
				return fmt.Errorf("plugin %s: command %s has no payload: %w", p.Name, c, err)
			}
		}
		for _, a := range p.Agents {
			if _, err := AgentPayload(a); err != nil {
				return fmt.Errorf("plugin %s: agent %s has no payload: %w", p.Name, a, err)
			}
		}
		for _, s := range p.Skills {
			if _, err := assetsFS.ReadFile(path.Join("assets", "skills", s, "SKILL.md")); err != nil {
				return fmt.Errorf("plugin %s: skill %s has no payload: %w", p.Name, s, err)
			}
		}
	}
	return nil
}
