package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/gitignore"
	"github.com/devflow-sh/devflow/internal/i18n"
	"github.com/devflow-sh/devflow/internal/installer"
	"github.com/devflow-sh/devflow/internal/registry"
	"github.com/devflow-sh/devflow/internal/tui"
)

var (
	installScope string
	installAll   bool
)

var installCmd = &cobra.Command{
	Use:   "install [plugins]",
	Short: "Install devflow plugins",
	Long: `Install plugins from the devflow registry.

Plugins are named as a comma-separated list; the devflow- prefix may be
omitted. With no arguments an interactive selector opens.

Example:
  devflow install core,review
  devflow install --all -s local
  devflow install`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installScope, "scope", "s", "", "install scope (user or local)")
	installCmd.Flags().BoolVar(&installAll, "all", false, "install every non-optional plugin (full install)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	interactive := len(args) == 0 && !installAll

	scope := config.Scope(installScope)
	if installScope == "" {
		if interactive {
			chosen, ok, err := tui.RunScopeSelector()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(i18n.T("Cancelled", nil))
				return nil
			}
			scope = chosen
		} else {
			scope = config.ScopeUser
		}
	}
	if !scope.Valid() {
		return fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}

	paths, err := resolvePaths(scope)
	if err != nil {
		return err
	}
	inst := installer.New(paths)

	var selected []registry.Plugin
	full := false

	switch {
	case installAll:
		// Full install: the whole registry minus optional plugins, with
		// stale tool-owned directories purged first.
		for _, p := range registry.Plugins() {
			if !p.Optional {
				selected = append(selected, p)
			}
		}
		full = true

	case len(args) == 1:
		names := registry.NormalizeSelection(args[0])
		if len(names) == 0 {
			return fmt.Errorf("%s", i18n.T("EmptySelection", nil))
		}
		selected, err = registry.Select(names)
		if err != nil {
			return err
		}

	default:
		installed, ierr := inst.Installed()
		if ierr != nil {
			return ierr
		}
		installedSet := make(map[string]bool, len(installed))
		for _, p := range installed {
			installedSet[p.Name] = true
		}

		result, ferr := tui.RunPluginFinder(registry.Plugins(), installedSet)
		if ferr != nil {
			return ferr
		}
		if result.Cancelled {
			fmt.Println(i18n.T("Cancelled", nil))
			return nil
		}

		if len(result.ToUninstall) > 0 {
			res, uerr := inst.Uninstall(result.ToUninstall)
			if uerr != nil {
				return uerr
			}
			fmt.Println(i18n.T("UninstallSuccess", map[string]any{
				"Plugins": strings.Join(res.Plugins, ", "),
			}))
		}
		selected = result.ToInstall
	}

	if len(selected) == 0 {
		fmt.Println(i18n.T("NothingToInstall", nil))
		return nil
	}

	res, err := inst.Install(selected, full)
	if err != nil {
		return err
	}

	if scope == config.ScopeLocal {
		added, gerr := gitignore.Ensure(paths.GitignorePath, config.GitignoreEntries)
		if gerr != nil {
			return gerr
		}
		if len(added) > 0 {
			fmt.Println(i18n.T("GitignoreUpdated", map[string]any{
				"Lines": strings.Join(added, ", "),
			}))
		}
	}

	fmt.Println(i18n.T("InstallSuccess", map[string]any{
		"Plugins": strings.Join(res.Plugins, ", "),
	}))
	fmt.Printf("  Commands: %d  Agents: %d  Skills: %d\n",
		len(res.Commands), len(res.Agents), len(res.Skills))
	fmt.Printf("  Location: %s\n", paths.ClaudeDir)

	return nil
}
