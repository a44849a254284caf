package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/i18n"
	"github.com/devflow-sh/devflow/internal/installer"
	"github.com/devflow-sh/devflow/internal/registry"
)

var (
	uninstallScope string
	uninstallAll   bool
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall [plugins]",
	Aliases: []string{"remove", "rm"},
	Short:   "Remove installed devflow plugins",
	Long: `Remove installed plugins. Shared agents and skills survive as long
as any remaining installed plugin still declares them.

Example:
  devflow uninstall review
  devflow uninstall --all -s local`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVarP(&uninstallScope, "scope", "s", "user", "install scope (user or local)")
	uninstallCmd.Flags().BoolVar(&uninstallAll, "all", false, "remove every installed plugin")
}

func runUninstall(cmd *cobra.Command, args []string) error {
	scope := config.Scope(uninstallScope)
	if !scope.Valid() {
		return fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}

	paths, err := resolvePaths(scope)
	if err != nil {
		return err
	}
	inst := installer.New(paths)

	var selected []registry.Plugin
	if uninstallAll {
		selected, err = inst.Installed()
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("%s", i18n.T("EmptySelection", nil))
		}
		names := registry.NormalizeSelection(args[0])
		selected, err = registry.Select(names)
		if err != nil {
			return err
		}
	}

	if len(selected) == 0 {
		fmt.Println(i18n.T("NothingToUninstall", nil))
		return nil
	}

	res, err := inst.Uninstall(selected)
	if err != nil {
		return err
	}

	if len(res.Plugins) == 0 {
		fmt.Println(i18n.T("NothingToUninstall", nil))
		return nil
	}

	fmt.Println(i18n.T("UninstallSuccess", map[string]any{
		"Plugins": strings.Join(res.Plugins, ", "),
	}))
	fmt.Printf("  Commands: %d  Agents: %d  Skills: %d removed\n",
		len(res.Commands), len(res.Agents), len(res.Skills))

	return nil
}
