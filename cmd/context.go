package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/hooks"
	"github.com/devflow-sh/devflow/internal/i18n"
	"github.com/devflow-sh/devflow/internal/installer"
)

var contextScope string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the prompt context hook",
	Long: `Manage the prompt context hook: a UserPromptSubmit registration that
prepends repository context to every submitted prompt.`,
}

var contextEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Register the context hook",
	RunE:  runContextEnable,
}

var contextDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Unregister the context hook",
	RunE:  runContextDisable,
}

var contextStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show context hook status",
	RunE:  runContextStatus,
}

func init() {
	contextCmd.PersistentFlags().StringVarP(&contextScope, "scope", "s", "user", "install scope (user or local)")
	contextCmd.AddCommand(contextEnableCmd)
	contextCmd.AddCommand(contextDisableCmd)
	contextCmd.AddCommand(contextStatusCmd)

	rootCmd.AddCommand(contextCmd)
}

func contextPaths() (config.Paths, error) {
	scope := config.Scope(contextScope)
	if !scope.Valid() {
		return config.Paths{}, fmt.Errorf("%s", i18n.T("InvalidScope", map[string]any{"Scope": string(scope)}))
	}
	return resolvePaths(scope)
}

func runContextEnable(cmd *cobra.Command, args []string) error {
	paths, err := contextPaths()
	if err != nil {
		return err
	}

	if err := installer.New(paths).EnsureHookScripts(); err != nil {
		return err
	}

	before, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}
	after, err := hooks.AddContextHook(before, paths.DevflowDir)
	if err != nil {
		return err
	}

	wrote, err := writeSettingsIfChanged(paths.SettingsPath, before, after)
	if err != nil {
		return err
	}
	if wrote {
		fmt.Println(i18n.T("ContextEnabled", nil))
	} else {
		fmt.Println(i18n.T("ContextAlreadyEnabled", nil))
	}
	return nil
}

func runContextDisable(cmd *cobra.Command, args []string) error {
	paths, err := contextPaths()
	if err != nil {
		return err
	}

	before, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}
	after, err := hooks.RemoveContextHook(before)
	if err != nil {
		return err
	}

	wrote, err := writeSettingsIfChanged(paths.SettingsPath, before, after)
	if err != nil {
		return err
	}
	if wrote {
		fmt.Println(i18n.T("ContextDisabled", nil))
	} else {
		fmt.Println(i18n.T("ContextNotEnabled", nil))
	}
	return nil
}

func runContextStatus(cmd *cobra.Command, args []string) error {
	paths, err := contextPaths()
	if err != nil {
		return err
	}

	settings, err := readSettings(paths.SettingsPath)
	if err != nil {
		return err
	}

	enabled, err := hooks.HasContextHook(settings)
	if err != nil {
		return err
	}
	if enabled {
		fmt.Println(i18n.T("ContextStatusEnabled", nil))
	} else {
		fmt.Println(i18n.T("ContextStatusDisabled", nil))
	}
	return nil
}
