// Package config loads the highlight service configuration from YAML with
// environment variable expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the highlight service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Flatten   FlattenConfig   `yaml:"flatten"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// FlattenConfig holds query flattening settings.
type FlattenConfig struct {
	MaxMultiTermQueryTerms int  `yaml:"max_multi_term_query_terms"`
	PhraseAsTerms          bool `yaml:"phrase_as_terms"`

	// KeepCommonTermsHighFreq retains the optional high-frequency clause of
	// common-terms queries instead of stripping it (stripping is the
	// default).
	KeepCommonTermsHighFreq bool `yaml:"keep_common_terms_high_freq"`
}

// HighlightConfig holds fragment rendering settings.
type HighlightConfig struct {
	Analyzer     string `yaml:"analyzer"` // standard, whitespace, keyword
	PreTag       string `yaml:"pre_tag"`
	PostTag      string `yaml:"post_tag"`
	FragmentSize int    `yaml:"fragment_size"`
	MaxFragments int    `yaml:"max_fragments"`
}

// Load reads configuration from a YAML file, expands ${VAR} references,
// applies defaults and validates.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration usable without a config file.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Flatten.MaxMultiTermQueryTerms <= 0 {
		c.Flatten.MaxMultiTermQueryTerms = 1000
	}
	if c.Highlight.Analyzer == "" {
		c.Highlight.Analyzer = "standard"
	}
	if c.Highlight.PreTag == "" {
		c.Highlight.PreTag = "<em>"
	}
	if c.Highlight.PostTag == "" {
		c.Highlight.PostTag = "</em>"
	}
	if c.Highlight.FragmentSize <= 0 {
		c.Highlight.FragmentSize = 100
	}
	if c.Highlight.MaxFragments <= 0 {
		c.Highlight.MaxFragments = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Highlight.Analyzer {
	case "standard", "whitespace", "keyword":
	default:
		return fmt.Errorf("highlight.analyzer must be one of standard, whitespace, keyword, got %q", c.Highlight.Analyzer)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
