// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate_Default(t *testing.T) {
	errs := Default().Validate()
	assert.Empty(t, errs, "expected no errors for default config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"blank database path", func(c *Config) { c.Database.Path = "  " }, "database.path"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"negative threshold", func(c *Config) { c.Import.MatchThreshold = -0.1 }, "import.match_threshold"},
		{"threshold above one", func(c *Config) { c.Import.MatchThreshold = 1.01 }, "import.match_threshold"},
		{"blank generic title", func(c *Config) { c.Import.GenericSeriesTitles = []string{"tv", " "} }, "import.generic_series_titles[1]"},
		{"language token with space", func(c *Config) { c.Parser.LanguageTokens = []string{"en us"} }, "parser.language_tokens[0]"},
		{"empty language token", func(c *Config) { c.Parser.LanguageTokens = []string{""} }, "parser.language_tokens[0]"},
		{"bad quality regex", func(c *Config) { c.Parser.QualityMarkers = []string{"(720p"} }, "parser.quality_markers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %s error, got %v", tt.want, errs)
		})
	}
}

func TestValidate_ValidParserTables(t *testing.T) {
	cfg := Default()
	cfg.Parser.LanguageTokens = []string{"vostfr", "dubbed"}
	cfg.Parser.QualityMarkers = []string{"480p", `dvd-?rip`}
	assert.Empty(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "x"}, Import: ImportConfig{MatchThreshold: 2}}
	errs := cfg.Validate()
	assert.Len(t, errs, 3)
}
