// Package gitignore augments a repository's .gitignore with the entries a
// local-scope install needs, without duplicating lines that are already
// present.
package gitignore

import (
	"fmt"
	"os"
	"strings"
)

// ComputeAppend returns the required lines not already present in the
// existing content. Membership is trimmed-line equality, so indentation
// or trailing whitespace around an existing entry still counts.
func ComputeAppend(existing string, required []string) []string {
	present := make(map[string]bool)
	for _, line := range strings.Split(existing, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, line := range required {
		if !present[strings.TrimSpace(line)] {
			missing = append(missing, line)
		}
	}
	return missing
}

// Ensure appends the missing required lines to the .gitignore at path,
// creating the file if absent. It returns the lines actually added.
func Ensure(path string, required []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read gitignore: %w", err)
	}

	existing := string(data)
	missing := ComputeAppend(existing, required)
	if len(missing) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		sb.WriteString("\n")
	}
	for _, line := range missing {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write gitignore: %w", err)
	}
	return missing, nil
}
