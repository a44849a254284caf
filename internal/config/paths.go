package config

import (
	"os"
	"path/filepath"
)

var (
	homeDir string
)

func init() {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		homeDir = "~"
	}
}

// Scope is the installation target granularity.
type Scope string

const (
	// ScopeUser installs under the user's home directory.
	ScopeUser Scope = "user"
	// ScopeLocal installs under the current git worktree root.
	ScopeLocal Scope = "local"
)

// Valid reports whether the scope is one of the known values.
func (s Scope) Valid() bool {
	return s == ScopeUser || s == ScopeLocal
}

// Paths collects every target location under one scope root. The
// installer and the hook/profile commands only ever address the
// filesystem through this struct, which keeps tests on temp dirs trivial.
type Paths struct {
	Root           string // scope root (home dir or worktree root)
	ClaudeDir      string // <root>/.claude
	DevflowDir     string // <root>/.devflow
	SettingsPath   string // <root>/.claude/settings.json
	CommandsDir    string // <root>/.claude/commands/devflow
	AgentsDir      string // <root>/.claude/agents/devflow
	SkillsDir      string // <root>/.claude/skills
	HookScriptsDir string // <root>/.devflow/scripts/hooks
	StatePath      string // <root>/.devflow/state.json
	GitignorePath  string // <root>/.gitignore
}

// PathsFor lays out all devflow target paths under the given scope root.
func PathsFor(root string) Paths {
	claudeDir := filepath.Join(root, ".claude")
	devflowDir := filepath.Join(root, ".devflow")
	return Paths{
		Root:           root,
		ClaudeDir:      claudeDir,
		DevflowDir:     devflowDir,
		SettingsPath:   filepath.Join(claudeDir, "settings.json"),
		CommandsDir:    filepath.Join(claudeDir, "commands", "devflow"),
		AgentsDir:      filepath.Join(claudeDir, "agents", "devflow"),
		SkillsDir:      filepath.Join(claudeDir, "skills"),
		HookScriptsDir: filepath.Join(devflowDir, "scripts", "hooks"),
		StatePath:      filepath.Join(devflowDir, "state.json"),
		GitignorePath:  filepath.Join(root, ".gitignore"),
	}
}

// GitignoreEntries are the literal lines a local-scope install ensures
// are present in the repository's .gitignore.
var GitignoreEntries = []string{".claude/", ".devflow/"}

// UserRoot returns the root directory for user-scope installs.
func UserRoot() string {
	return homeDir
}

// DevflowHomeDir returns the user-level devflow directory
// ~/.devflow/
func DevflowHomeDir() string {
	return filepath.Join(homeDir, ".devflow")
}

// ConfigPath returns the config.json file path
// ~/.devflow/config.json
func ConfigPath() string {
	return filepath.Join(DevflowHomeDir(), "config.json")
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
