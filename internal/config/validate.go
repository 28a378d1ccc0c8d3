// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/vmunix/whatch/pkg/medianame"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, "database.path: required")
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	// Import validation
	if c.Import.MatchThreshold < 0 || c.Import.MatchThreshold > 1 {
		errs = append(errs, fmt.Sprintf("import.match_threshold: must be between 0 and 1, got %g", c.Import.MatchThreshold))
	}
	for i, title := range c.Import.GenericSeriesTitles {
		if strings.TrimSpace(title) == "" {
			errs = append(errs, fmt.Sprintf("import.generic_series_titles[%d]: must not be blank", i))
		}
	}

	// Parser validation
	for i, token := range c.Parser.LanguageTokens {
		if token == "" || strings.ContainsFunc(token, func(r rune) bool { return r == ' ' || r == '\t' }) {
			errs = append(errs, fmt.Sprintf("parser.language_tokens[%d]: must be a single word, got %q", i, token))
		}
	}
	if err := medianame.ValidateQualityMarkers(c.Parser.QualityMarkers); err != nil {
		errs = append(errs, fmt.Sprintf("parser.quality_markers: %v", err))
	}

	return errs
}
