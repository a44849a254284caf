package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devflow-sh/devflow/internal/shell"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		shell   string
		goos    string
		want    shell.Type
		wantErr bool
	}{
		{name: "zsh", shell: "/bin/zsh", goos: "darwin", want: shell.Zsh},
		{name: "bash", shell: "/usr/bin/bash", goos: "linux", want: shell.Bash},
		{name: "fish", shell: "/opt/homebrew/bin/fish", goos: "darwin", want: shell.Fish},
		{name: "pwsh", shell: "/usr/local/bin/pwsh", goos: "linux", want: shell.PowerShell},
		{name: "windows_ignores_env", shell: "/bin/zsh", goos: "windows", want: shell.PowerShell},
		{name: "empty", shell: "", goos: "linux", wantErr: true},
		{name: "unrecognized", shell: "/bin/csh", goos: "linux", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shell)

			got, err := shell.Detect(tt.goos)
			if tt.wantErr {
				assert.ErrorIs(t, err, shell.ErrUnsupportedShell)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name      string
		shellType shell.Type
		goos      string
		want      string
	}{
		{name: "zsh", shellType: shell.Zsh, goos: "darwin", want: filepath.Join(home, ".zshrc")},
		{name: "bash_default", shellType: shell.Bash, goos: "linux", want: filepath.Join(home, ".bashrc")},
		{name: "fish_function", shellType: shell.Fish, goos: "darwin", want: filepath.Join(home, ".config", "fish", "functions", "rm.fish")},
		{name: "powershell_unix", shellType: shell.PowerShell, goos: "linux", want: filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shell.ProfilePath(tt.shellType, tt.goos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfilePathBashPrefersBashProfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	profile := filepath.Join(home, ".bash_profile")
	require.NoError(t, os.WriteFile(profile, []byte("# existing\n"), 0644))

	got, err := shell.ProfilePath(shell.Bash, "darwin")
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestProfilePathUnsupported(t *testing.T) {
	_, err := shell.ProfilePath(shell.Unknown, "linux")
	assert.ErrorIs(t, err, shell.ErrUnsupportedShell)
}
