// Package resolver computes asset ownership across the plugin registry.
// All functions are pure: given the same plugin lists in the same order
// they always produce the same result, and they perform no I/O.
package resolver

import (
	"github.com/devflow-sh/devflow/internal/registry"
)

// AssetMaps maps agent and skill names to the plugin that owns them for
// installation purposes. Ownership goes to the first plugin, in input
// order, that declares the asset.
type AssetMaps struct {
	Skills map[string]string
	Agents map[string]string
}

// BuildAssetMaps builds the ownership maps for an ordered plugin list.
// Empty input yields empty (non-nil) maps.
func BuildAssetMaps(plugins []registry.Plugin) AssetMaps {
	maps := AssetMaps{
		Skills: make(map[string]string),
		Agents: make(map[string]string),
	}

	for _, p := range plugins {
		for _, s := range p.Skills {
			if _, ok := maps.Skills[s]; !ok {
				maps.Skills[s] = p.Name
			}
		}
		for _, a := range p.Agents {
			if _, ok := maps.Agents[a]; !ok {
				maps.Agents[a] = p.Name
			}
		}
	}
	return maps
}

// RemovalSet lists the assets that are safe to delete when a plugin
// selection is removed. Each list is deduplicated and ordered by the
// declaration order of the selected plugins.
type RemovalSet struct {
	Commands []string
	Agents   []string
	Skills   []string
}

// ComputeAssetsToRemove determines which assets of the selected plugins
// can be deleted without breaking any plugin in all that survives the
// selection. An agent or skill still declared by a surviving plugin is
// retained. Commands are never shared, so every selected command is
// removable.
func ComputeAssetsToRemove(selected, all []registry.Plugin) RemovalSet {
	removing := make(map[string]bool, len(selected))
	for _, p := range selected {
		removing[p.Name] = true
	}

	retainedSkills := make(map[string]bool)
	retainedAgents := make(map[string]bool)
	for _, p := range all {
		if removing[p.Name] {
			continue
		}
		for _, s := range p.Skills {
			retainedSkills[s] = true
		}
		for _, a := range p.Agents {
			retainedAgents[a] = true
		}
	}

	var out RemovalSet
	seenCommands := make(map[string]bool)
	seenAgents := make(map[string]bool)
	seenSkills := make(map[string]bool)

	for _, p := range selected {
		for _, c := range p.Commands {
			if !seenCommands[c] {
				seenCommands[c] = true
				out.Commands = append(out.Commands, c)
			}
		}
		for _, a := range p.Agents {
			if retainedAgents[a] || seenAgents[a] {
				continue
			}
			seenAgents[a] = true
			out.Agents = append(out.Agents, a)
		}
		for _, s := range p.Skills {
			if retainedSkills[s] || seenSkills[s] {
				continue
			}
			seenSkills[s] = true
			out.Skills = append(out.Skills, s)
		}
	}
	return out
}
