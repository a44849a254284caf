package installer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/installer"
	"github.com/devflow-sh/devflow/internal/registry"
)

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	return config.PathsFor(t.TempDir())
}

func plugin(t *testing.T, name string) registry.Plugin {
	t.Helper()
	p := registry.Find(name)
	require.NotNil(t, p, name)
	return *p
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	require.True(t, os.IsNotExist(err), "stat %s: %v", path, err)
	return false
}

func TestInstallCopiesAssets(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	core := plugin(t, "devflow-core")
	review := plugin(t, "devflow-review")

	res, err := inst.Install([]registry.Plugin{core, review}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"devflow-core", "devflow-review"}, res.Plugins)

	for _, c := range []string{"plan", "commit", "ship", "review"} {
		assert.True(t, fileExists(t, filepath.Join(paths.CommandsDir, c+".md")), c)
	}
	for _, a := range []string{"code-reviewer", "security-auditor"} {
		assert.True(t, fileExists(t, filepath.Join(paths.AgentsDir, a+".md")), a)
	}
	for _, s := range []string{"conventional-commits", "repo-conventions", "diff-triage"} {
		assert.True(t, fileExists(t, filepath.Join(paths.SkillsDir, s, "SKILL.md")), s)
	}

	// code-reviewer is declared by both plugins but copied exactly once,
	// by its owner.
	assert.Equal(t, []string{"code-reviewer", "security-auditor"}, res.Agents)
	assert.Equal(t, []string{"conventional-commits", "repo-conventions", "diff-triage"}, res.Skills)
}

func TestInstallRecordsState(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	_, err := inst.Install([]registry.Plugin{plugin(t, "devflow-core")}, false)
	require.NoError(t, err)

	installed, err := inst.Installed()
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "devflow-core", installed[0].Name)
}

func TestInstalledFollowsRegistryOrder(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	// Install review first, then core; Installed must come back in
	// registry order regardless.
	_, err := inst.Install([]registry.Plugin{plugin(t, "devflow-review")}, false)
	require.NoError(t, err)
	_, err = inst.Install([]registry.Plugin{plugin(t, "devflow-core")}, false)
	require.NoError(t, err)

	installed, err := inst.Installed()
	require.NoError(t, err)
	require.Len(t, installed, 2)
	assert.Equal(t, "devflow-core", installed[0].Name)
	assert.Equal(t, "devflow-review", installed[1].Name)
}

func TestInstallEnsuresHookScripts(t *testing.T) {
	paths := testPaths(t)

	_, err := installer.New(paths).Install([]registry.Plugin{plugin(t, "devflow-core")}, false)
	require.NoError(t, err)

	script := filepath.Join(paths.HookScriptsDir, "memory-capture.sh")
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111, "hook scripts must be executable")
}

func TestUninstallRetainsSharedAssets(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	core := plugin(t, "devflow-core")
	review := plugin(t, "devflow-review")
	_, err := inst.Install([]registry.Plugin{core, review}, false)
	require.NoError(t, err)

	res, err := inst.Uninstall([]registry.Plugin{core})
	require.NoError(t, err)
	assert.Equal(t, []string{"devflow-core"}, res.Plugins)

	// core's own commands go; review's stays.
	for _, c := range []string{"plan", "commit", "ship"} {
		assert.False(t, fileExists(t, filepath.Join(paths.CommandsDir, c+".md")), c)
	}
	assert.True(t, fileExists(t, filepath.Join(paths.CommandsDir, "review.md")))

	// code-reviewer and repo-conventions are still declared by the
	// surviving review plugin, so they must stay on disk.
	assert.True(t, fileExists(t, filepath.Join(paths.AgentsDir, "code-reviewer.md")))
	assert.True(t, fileExists(t, filepath.Join(paths.SkillsDir, "repo-conventions", "SKILL.md")))
	assert.False(t, fileExists(t, filepath.Join(paths.SkillsDir, "conventional-commits")))

	installed, err := inst.Installed()
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "devflow-review", installed[0].Name)
}

func TestUninstallEverything(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	core := plugin(t, "devflow-core")
	review := plugin(t, "devflow-review")
	_, err := inst.Install([]registry.Plugin{core, review}, false)
	require.NoError(t, err)

	_, err = inst.Uninstall([]registry.Plugin{core, review})
	require.NoError(t, err)

	for _, c := range []string{"plan", "commit", "ship", "review"} {
		assert.False(t, fileExists(t, filepath.Join(paths.CommandsDir, c+".md")), c)
	}
	assert.False(t, fileExists(t, filepath.Join(paths.AgentsDir, "code-reviewer.md")))
	assert.False(t, fileExists(t, filepath.Join(paths.SkillsDir, "repo-conventions")))

	installed, err := inst.Installed()
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestUninstallNotInstalledIsNoOp(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	res, err := inst.Uninstall([]registry.Plugin{plugin(t, "devflow-core")})
	require.NoError(t, err)
	assert.Empty(t, res.Plugins)
	assert.Empty(t, res.Commands)
}

func TestUninstallIgnoresSelectionNotInState(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	core := plugin(t, "devflow-core")
	_, err := inst.Install([]registry.Plugin{core}, false)
	require.NoError(t, err)

	// review was never installed; asking to remove both must only
	// remove core and must not treat review as a surviving declarer.
	res, err := inst.Uninstall([]registry.Plugin{core, plugin(t, "devflow-review")})
	require.NoError(t, err)
	assert.Equal(t, []string{"devflow-core"}, res.Plugins)
	assert.False(t, fileExists(t, filepath.Join(paths.AgentsDir, "code-reviewer.md")))
	assert.False(t, fileExists(t, filepath.Join(paths.SkillsDir, "repo-conventions")))
}

func TestFullInstallPurgesStaleAssets(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	review := plugin(t, "devflow-review")
	_, err := inst.Install([]registry.Plugin{review}, false)
	require.NoError(t, err)

	// A file from some older registry shape, not declared by anything.
	stale := filepath.Join(paths.CommandsDir, "legacy.md")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	core := plugin(t, "devflow-core")
	_, err = inst.Install([]registry.Plugin{core}, true)
	require.NoError(t, err)

	assert.False(t, fileExists(t, stale))
	assert.False(t, fileExists(t, filepath.Join(paths.CommandsDir, "review.md")))
	assert.False(t, fileExists(t, filepath.Join(paths.SkillsDir, "diff-triage")))
	assert.True(t, fileExists(t, filepath.Join(paths.CommandsDir, "plan.md")))

	installed, err := inst.Installed()
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "devflow-core", installed[0].Name)
}

func TestSelectiveReinstallIsIdempotent(t *testing.T) {
	paths := testPaths(t)
	inst := installer.New(paths)

	core := plugin(t, "devflow-core")
	_, err := inst.Install([]registry.Plugin{core}, false)
	require.NoError(t, err)
	_, err = inst.Install([]registry.Plugin{core}, false)
	require.NoError(t, err)

	installed, err := inst.Installed()
	require.NoError(t, err)
	assert.Len(t, installed, 1)
	assert.True(t, fileExists(t, filepath.Join(paths.CommandsDir, "plan.md")))
}

func TestInstallMissingPayloadFails(t *testing.T) {
	paths := testPaths(t)

	// An agent with no embedded payload must fail the install rather
	// than leave a half-written tree behind silently.
	broken := registry.Plugin{
		Name:   "devflow-broken",
		Agents: []string{"ghost"},
	}
	inst := installer.NewWithRegistry(paths, []registry.Plugin{broken})

	_, err := inst.Install([]registry.Plugin{broken}, false)
	require.Error(t, err)
}
