package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devflow-sh/devflow/internal/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:           "devflow",
		Short:         "Installer for the devflow Claude Code plugin set",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `devflow distributes a curated set of Claude Code plugins
(commands, agents and skills) and wires up the optional extras:
memory lifecycle hooks and safe-rm shell integration.

Commands:
  install      Install plugins (interactive when no plugins are named)
  uninstall    Remove installed plugins
  list         Show the plugin registry and install status
  memory       Manage the memory lifecycle hooks (enable, disable, status)
  saferm       Manage the safe-rm shell integration (enable, disable, status)`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(safermCmd)
	rootCmd.AddCommand(versionCmd)
}
