package config

import (
	"fmt"
	"os"
	"strings"
)

// ReadSystemInstructions resolves an instructions setting. A value ending in
// ".txt" names a file whose contents are the instructions; anything else is
// returned verbatim.
func ReadSystemInstructions(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasSuffix(strings.ToLower(trimmed), ".txt") {
		return trimmed, nil
	}
	path, err := expandPath(trimmed)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read instructions file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
