// Package gitutil wraps the git binary for worktree discovery. Only
// local read queries live here; devflow never talks to a remote.
package gitutil

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Client is the interface for git queries the installer needs.
type Client interface {
	WorktreeRoot(dir string) (string, error)
	IsRepository(dir string) bool
}

// DefaultClient shells out to the git binary.
type DefaultClient struct{}

// NewClient creates a new git client
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// WorktreeRoot returns the top-level directory of the worktree containing
// dir.
func (c *DefaultClient) WorktreeRoot(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("not inside a git worktree: %s", strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository checks if the given path is inside a git worktree
func (c *DefaultClient) IsRepository(dir string) bool {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--is-inside-work-tree")
	return cmd.Run() == nil
}
