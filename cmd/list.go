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

var listScope string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the plugin registry and install status",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listScope, "scope", "s", "user", "install scope (user or local)")
}

func runList(cmd *cobra.Command, args []string) error {
	scope := config.Scope(listScope)
	if !scope.Valid() {
		return fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}

	paths, err := resolvePaths(scope)
	if err != nil {
		return err
	}

	installed, err := installer.New(paths).Installed()
	if err != nil {
		return err
	}
	installedSet := make(map[string]bool, len(installed))
	for _, p := range installed {
		installedSet[p.Name] = true
	}

	fmt.Println(i18n.T("ListHeader", map[string]any{"Scope": string(scope)}))
	for _, p := range registry.Plugins() {
		marker := " "
		if installedSet[p.Name] {
			marker = "*"
		}
		name := p.Name
		if p.Optional {
			name += " (optional)"
		}
		fmt.Printf(" [%s] %-28s %s\n", marker, name, p.Description)
		fmt.Printf("       commands: %s\n", strings.Join(p.Commands, ", "))
		if len(p.Agents) > 0 {
			fmt.Printf("       agents:   %s\n", strings.Join(p.Agents, ", "))
		}
		if len(p.Skills) > 0 {
			fmt.Printf("       skills:   %s\n", strings.Join(p.Skills, ", "))
		}
	}

	return nil
}
