// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no config file exists in any search location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./whatch.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "whatch", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. WHATCH_CONFIG environment variable
//  2. ./whatch.toml (current directory)
//  3. $XDG_CONFIG_HOME/whatch/config.toml
//  4. /etc/whatch/config.toml
func Discover() (string, error) {
	// 1. Check WHATCH_CONFIG env var
	if envPath := os.Getenv("WHATCH_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("WHATCH_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	// Build search paths
	paths := []string{
		"./whatch.toml",
		DefaultPath(),
		"/etc/whatch/config.toml",
	}

	// 2-4. Check each path
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, formatPaths(paths))
}

// LoadDiscovered loads the discovered config file, or the defaults when
// there is none. The returned path is empty when defaults were used.
func LoadDiscovered() (*Config, string, error) {
	path, err := Discover()
	if errors.Is(err, ErrNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
