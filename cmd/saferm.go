package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/i18n"
	"github.com/devflow-sh/devflow/internal/shell"
	"github.com/devflow-sh/devflow/internal/tui"
)

var safermYes bool

var safermCmd = &cobra.Command{
	Use:   "saferm",
	Short: "Manage the safe-rm shell integration",
	Long: `Manage the safe-rm shell integration.

Enabling installs a marker-delimited block into your shell profile that
intercepts rm and routes deletions to a recoverable trash facility.
Set DEVFLOW_SAFE_RM=0 to fall through to the real rm.`,
}

var safermEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Install the safe-rm block into the shell profile",
	RunE:  runSafermEnable,
}

var safermDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the safe-rm block from the shell profile",
	RunE:  runSafermDisable,
}

var safermStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show safe-rm integration status",
	RunE:  runSafermStatus,
}

func init() {
	safermEnableCmd.Flags().BoolVarP(&safermYes, "yes", "y", false, "skip the confirmation prompt")
	safermCmd.AddCommand(safermEnableCmd)
	safermCmd.AddCommand(safermDisableCmd)
	safermCmd.AddCommand(safermStatusCmd)
}

func runSafermEnable(cmd *cobra.Command, args []string) error {
	sh, err := shell.Detect(runtime.GOOS)
	if err != nil {
		return fmt.Errorf(i18n.T("ShellUnsupported", nil)+": %w", err)
	}

	profile, err := shell.ProfilePath(sh, runtime.GOOS)
	if err != nil {
		return err
	}

	block, ok := shell.GenerateBlock(sh, runtime.GOOS, config.GetTrashCommand())
	if !ok {
		return fmt.Errorf(i18n.T("ShellUnsupported", nil)+": %s", sh)
	}

	installed, err := shell.IsInstalled(profile)
	if err != nil {
		return err
	}
	if installed {
		fmt.Println(i18n.T("SafermAlreadyEnabled", map[string]any{"Profile": profile}))
		return nil
	}

	if !safermYes {
		confirmed, cerr := tui.RunConfirm(
			i18n.T("SafermConfirmTitle", map[string]any{"Profile": profile}),
			block,
		)
		if cerr != nil {
			return cerr
		}
		if !confirmed {
			fmt.Println(i18n.T("Cancelled", nil))
			return nil
		}
	}

	if err := shell.Install(profile, block); err != nil {
		return err
	}

	fmt.Println(i18n.T("SafermEnabled", map[string]any{"Profile": profile}))
	return nil
}

func runSafermDisable(cmd *cobra.Command, args []string) error {
	sh, err := shell.Detect(runtime.GOOS)
	if err != nil {
		return fmt.Errorf(i18n.T("ShellUnsupported", nil)+": %w", err)
	}

	profile, err := shell.ProfilePath(sh, runtime.GOOS)
	if err != nil {
		return err
	}

	removed, err := shell.Remove(profile)
	if err != nil {
		return err
	}
	if removed {
		fmt.Println(i18n.T("SafermDisabled", map[string]any{"Profile": profile}))
	} else {
		fmt.Println(i18n.T("SafermNotEnabled", nil))
	}
	return nil
}

func runSafermStatus(cmd *cobra.Command, args []string) error {
	sh, err := shell.Detect(runtime.GOOS)
	if err != nil {
		return fmt.Errorf(i18n.T("ShellUnsupported", nil)+": %w", err)
	}

	profile, err := shell.ProfilePath(sh, runtime.GOOS)
	if err != nil {
		return err
	}

	installed, err := shell.IsInstalled(profile)
	if err != nil {
		return err
	}
	if installed {
		fmt.Println(i18n.T("SafermStatusEnabled", map[string]any{"Profile": profile}))
	} else {
		fmt.Println(i18n.T("SafermStatusDisabled", nil))
	}
	return nil
}
