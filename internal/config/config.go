// Package config provides configuration file parsing for snapguard.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the snapguard config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/snapguard if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "snapguard"), nil
}

// Config holds defaults read from the optional config file. Flags on the
// command line take precedence over everything here.
type Config struct {
	Suffix string // default snapshot name suffix
	UTC    bool   // timestamp snapshots in UTC
	DBPath string // audit database location
}

// Load reads the config file at {dir}/config and returns the parsed config.
// If the file does not exist, an empty config is returned without an error.
// Invalid or malformed lines are silently skipped.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(dir, "config")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "suffix":
			cfg.Suffix = value
		case "utc":
			cfg.UTC = value == "true" || value == "1" || value == "yes"
		case "db":
			cfg.DBPath = value
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
