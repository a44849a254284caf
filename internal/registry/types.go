package registry

// Plugin describes one distributable plugin: its identity plus the
// commands, agents and skills it declares ownership of.
type Plugin struct {
	Name        string
	Description string
	Commands    []string
	Agents      []string
	Skills      []string
	Optional    bool
}

// HasSkill reports whether the plugin declares the given skill.
func (p Plugin) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}

// HasAgent reports whether the plugin declares the given agent.
func (p Plugin) HasAgent(name string) bool {
	for _, a := range p.Agents {
		if a == name {
			return true
		}
	}
	return false
}
