package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Type represents the type of shell
type Type string

const (
	Zsh        Type = "zsh"
	Bash       Type = "bash"
	Fish       Type = "fish"
	PowerShell Type = "powershell"
	Unknown    Type = "unknown"
)

// ErrUnsupportedShell is returned when the shell cannot be integrated with
var ErrUnsupportedShell = errors.New("unsupported shell")

// Detect detects the current shell type. On Unix it inspects the SHELL
// environment variable; on Windows PowerShell is assumed.
func Detect(goos string) (Type, error) {
	if goos == "windows" {
		return PowerShell, nil
	}

	sh := os.Getenv("SHELL")
	if sh == "" {
		return Unknown, ErrUnsupportedShell
	}

	shellName := filepath.Base(sh)

	switch {
	case strings.Contains(shellName, "zsh"):
		return Zsh, nil
	case strings.Contains(shellName, "bash"):
		return Bash, nil
	case strings.Contains(shellName, "fish"):
		return Fish, nil
	case strings.Contains(shellName, "pwsh"):
		return PowerShell, nil
	default:
		return Unknown, ErrUnsupportedShell
	}
}

// ProfilePath returns the startup file the safe-rm block is installed
// into for the given shell.
func ProfilePath(shellType Type, goos string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch shellType {
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case Bash:
		// Check .bash_profile first (macOS), then .bashrc (Linux)
		bashProfile := filepath.Join(home, ".bash_profile")
		if _, err := os.Stat(bashProfile); err == nil {
			return bashProfile, nil
		}
		return filepath.Join(home, ".bashrc"), nil
	case Fish:
		// Function-autoload file: the block defines a single rm function.
		return filepath.Join(home, ".config", "fish", "functions", "rm.fish"), nil
	case PowerShell:
		if goos == "windows" {
			return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1"), nil
		}
		return filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1"), nil
	default:
		return "", ErrUnsupportedShell
	}
}
