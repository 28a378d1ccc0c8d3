// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/whatch/pkg/medianame"
)

// DefaultMatchThreshold is the Jaro-Winkler score used when
// import.match_threshold is unset.
const DefaultMatchThreshold = 0.92

// DefaultGenericSeriesTitles are the folder titles replaced during series
// title normalization.
var DefaultGenericSeriesTitles = []string{"tv", "tv show", "tv shows"}

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Import   ImportConfig   `toml:"import"`
	Parser   ParserConfig   `toml:"parser"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ImportConfig struct {
	MatchExistingSeries bool     `toml:"match_existing_series"`
	MatchThreshold      float64  `toml:"match_threshold"`
	GenericSeriesTitles []string `toml:"generic_series_titles"`
}

// ParserConfig overrides the filename parser's word tables. An empty list
// keeps the built-in table.
type ParserConfig struct {
	LanguageTokens []string `toml:"language_tokens"`
	QualityMarkers []string `toml:"quality_markers"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{Import: ImportConfig{MatchExistingSeries: true}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath()
	}
	c.Database.Path = expandHome(c.Database.Path)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Import.MatchThreshold == 0 {
		c.Import.MatchThreshold = DefaultMatchThreshold
	}
	if len(c.Import.GenericSeriesTitles) == 0 {
		c.Import.GenericSeriesTitles = slices.Clone(DefaultGenericSeriesTitles)
	}
}

// ParserTables returns the parser word tables configured under [parser].
func (c *Config) ParserTables() medianame.Tables {
	return medianame.Tables{
		LanguageTokens: c.Parser.LanguageTokens,
		QualityMarkers: c.Parser.QualityMarkers,
	}
}

// Load reads, parses and validates the configuration file.
// Unresolved variables and validation failures are returned as *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}
	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation. Unresolved variables are left in place.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	// An absent key keeps fuzzy matching on
	if !meta.IsDefined("import", "match_existing_series") {
		cfg.Import.MatchExistingSeries = true
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Lines that are TOML comments are left untouched. Unresolved references are
// left unchanged and reported in missing; a ${VAR:?message} reference reports
// "VAR: message".
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	resolve := func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, resolve)
	}
	return strings.Join(lines, ""), missing
}

func defaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./whatch.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "whatch", "whatch.db")
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
