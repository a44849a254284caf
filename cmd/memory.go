package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/hooks"
	"github.com/devflow-sh/devflow/internal/i18n"
	"github.com/devflow-sh/devflow/internal/installer"
)

var memoryScope string

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage the memory lifecycle hooks",
	Long: `Manage the memory lifecycle hooks in Claude Code's settings.json.

Three hooks are registered: capture on Stop, load on SessionStart and a
snapshot on PreCompact. Enabling is idempotent and heals a partial
earlier registration without touching hooks that are already in place.`,
}

var memoryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Register the memory hooks",
	RunE:  runMemoryEnable,
}

var memoryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Unregister the memory hooks",
	RunE:  runMemoryDisable,
}

var memoryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show memory hook status",
	RunE:  runMemoryStatus,
}

func init() {
	memoryCmd.PersistentFlags().StringVarP(&memoryScope, "scope", "s", "user", "install scope (user or local)")
	memoryCmd.AddCommand(memoryEnableCmd)
	memoryCmd.AddCommand(memoryDisableCmd)
	memoryCmd.AddCommand(memoryStatusCmd)
}

func memoryPaths() (config.Paths, error) {
	scope := config.Scope(memoryScope)
	if !scope.Valid() {
		return config.Paths{}, fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}
	return resolvePaths(scope)
}

func runMemoryEnable(cmd *cobra.Command, args []string) error {
	paths, err := memoryPaths()
	if err != nil {
		return err
	}

	// The registered commands point into .devflow, so the scripts have
	// to exist before the registration does.
	if err := installer.New(paths).EnsureHookScripts(); err != nil {
		return err
	}

	before, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}
	after, err := hooks.AddMemoryHooks(before, paths.DevflowDir)
	if err != nil {
		return err
	}

	wrote, err := writeSettingsIfChanged(paths.SettingsPath, before, after)
	if err != nil {
		return err
	}
	if wrote {
		fmt.Println(i18n.T("MemoryEnabled", nil))
	} else {
		fmt.Println(i18n.T("MemoryAlreadyEnabled", nil))
	}
	return nil
}

func runMemoryDisable(cmd *cobra.Command, args []string) error {
	paths, err := memoryPaths()
	if err != nil {
		return err
	}

	before, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}
	after, err := hooks.RemoveMemoryHooks(before)
	if err != nil {
		return err
	}

	wrote, err := writeSettingsIfChanged(paths.SettingsPath, before, after)
	if err != nil {
		return err
	}
	if wrote {
		fmt.Println(i18n.T("MemoryDisabled", nil))
	} else {
		fmt.Println(i18n.T("MemoryNotEnabled", nil))
	}
	return nil
}

func runMemoryStatus(cmd *cobra.Command, args []string) error {
	paths, err := memoryPaths()
	if err != nil {
		return err
	}

	settings, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}

	count, err := hooks.CountMemoryHooks(settings)
	if err != nil {
		return err
	}

	total := len(hooks.MemorySlots)
	switch count {
	case total:
		fmt.Println(i18n.T("MemoryStatusEnabled", nil))
	case 0:
		fmt.Println(i18n.T("MemoryStatusDisabled", nil))
	default:
		fmt.Println(i18n.T("MemoryStatusPartial", map[string]any{
			"Count": count,
			"Total": total,
		}))
	}
	return nil
}
