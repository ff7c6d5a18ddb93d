package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultDBPath returns the default audit database path, creating the
// ~/.snapguard directory if it does not exist.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".snapguard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapguard directory: %w", err)
	}

	return filepath.Join(dir, "snapguard.db"), nil
}
