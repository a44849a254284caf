package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsInstalled reports whether the profile file at path already contains a
// complete safe-rm region: the open marker followed, later in the file,
// by the close marker. A missing file is simply not installed.
func IsInstalled(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read profile: %w", err)
	}

	content := string(data)
	start := strings.Index(content, BlockStart)
	if start < 0 {
		return false, nil
	}
	return strings.Contains(content[start+len(BlockStart):], BlockEnd), nil
}

// Install appends the block to the profile file, creating it and its
// parent directories as needed. It does not check for a prior install;
// callers gate on IsInstalled.
func Install(path, block string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	content := block + "\n"
	if len(existing) > 0 {
		// One blank line between prior content and the block.
		sep := "\n"
		if !bytes.HasSuffix(existing, []byte("\n")) {
			sep = "\n\n"
		}
		content = sep + content
	}

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Remove deletes the marker-bounded region, markers included. Blank runs
// left at the seam collapse to a single blank line so repeated
// install/remove cycles do not accumulate whitespace, and a file whose
// remaining content is empty is deleted outright. Returns true when a
// region was found and removed.
func Remove(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read profile: %w", err)
	}

	lines := strings.Split(string(data), "\n")

	start, end := -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 && trimmed == BlockStart {
			start = i
			continue
		}
		if start >= 0 && trimmed == BlockEnd {
			end = i
			break
		}
	}
	if start < 0 || end < 0 {
		return false, nil
	}

	rest := append(lines[:start:start], lines[end+1:]...)

	// Collapse the blank run the removal exposed at the seam.
	for start > 0 && start < len(rest) && rest[start-1] == "" && rest[start] == "" {
		rest = append(rest[:start], rest[start+1:]...)
	}

	// Trim trailing blank lines down to a single newline terminator.
	for len(rest) > 0 && strings.TrimSpace(rest[len(rest)-1]) == "" {
		rest = rest[:len(rest)-1]
	}

	remaining := strings.Join(rest, "\n")
	if strings.TrimSpace(remaining) == "" {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("failed to delete empty profile: %w", err)
		}
		return true, nil
	}

	if err := os.WriteFile(path, []byte(remaining+"\n"), 0644); err != nil {
		return false, fmt.Errorf("failed to write profile: %w", err)
	}
	return true, nil
}
