package config

import (
	"fmt"
	"strings"
)

// ConfigError collects every problem found while loading one config file.
type ConfigError struct {
	Path    string
	Missing []string // unresolved ${VAR} references, "VAR" or "VAR: message"
	Errors  []string // Validate output
}

// Error lists one problem per line, each prefixed with the file path.
func (e *ConfigError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	lines := make([]string, 0, len(e.Missing)+len(e.Errors))
	for _, m := range e.Missing {
		lines = append(lines, fmt.Sprintf("%sunresolved variable %s", prefix, m))
	}
	for _, v := range e.Errors {
		lines = append(lines, prefix+v)
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any problem was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing)+len(e.Errors) > 0
}
