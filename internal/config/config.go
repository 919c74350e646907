// Package config provides reading of docfill configuration.
// Supports both global (~/.docfill/config.yaml) and local (.docfill/config.yaml).
// Reading: uses local if it exists, otherwise global. Environment variables
// (optionally from a .env file) override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/docfill/docfill/internal/document"
)

// ErrInvalidValue is returned when a config value is out of bounds.
var ErrInvalidValue = errors.New("invalid config value")

// Verify holds verification behaviour options.
type Verify struct {
	// CaseSensitive selects case-sensitive substring matching during
	// content verification. Defaults to false: filled forms routinely
	// differ from expectations in casing alone, and that is rarely what
	// an agent needs flagged.
	CaseSensitive *bool `yaml:"case_sensitive,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxAnswers      *int   `yaml:"max_answers,omitempty"`
	MaxFileSize     *int64 `yaml:"max_file_size,omitempty"`
	RawSnippetLimit *int   `yaml:"raw_snippet_limit,omitempty"`
	ContextLimit    *int   `yaml:"context_limit,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxAnswers  = 50
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50 MB
)

// Validation bounds for configuration values.
const (
	MinMaxAnswers  = 1
	MaxMaxAnswers  = 10000
	MinMaxFileSize = 1
	MaxMaxFileSize = 1024 * 1024 * 1024 // 1 GB
)

// Environment variable overrides. Set directly or via a .env file in the
// working directory.
const (
	EnvCaseSensitive = "DOCFILL_CASE_SENSITIVE"
	EnvMaxAnswers    = "DOCFILL_MAX_ANSWERS"
	EnvMaxFileSize   = "DOCFILL_MAX_FILE_SIZE"
)

// Config contains configuration for docfill.
type Config struct {
	Verify Verify `yaml:"verify,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from
	path string
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxAnswers != nil {
		v := *c.Limits.MaxAnswers
		if v < MinMaxAnswers || v > MaxMaxAnswers {
			return fmt.Errorf("%w: max_answers must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxAnswers, MaxMaxAnswers, v)
		}
	}
	if c.Limits.MaxFileSize != nil {
		v := *c.Limits.MaxFileSize
		if v < MinMaxFileSize || v > MaxMaxFileSize {
			return fmt.Errorf("%w: max_file_size must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxFileSize, MaxMaxFileSize, v)
		}
	}
	return nil
}

// CaseSensitive returns whether verification matches case-sensitively
// (defaults to false).
func (c *Config) CaseSensitive() bool {
	if c.Verify.CaseSensitive == nil {
		return false
	}
	return *c.Verify.CaseSensitive
}

// MaxAnswers returns the maximum answers accepted per write (defaults to 50).
func (c *Config) MaxAnswers() int {
	if c.Limits.MaxAnswers == nil {
		return DefaultMaxAnswers
	}
	return *c.Limits.MaxAnswers
}

// MaxFileSize returns the maximum document size in bytes (defaults to 50 MB).
func (c *Config) MaxFileSize() int64 {
	if c.Limits.MaxFileSize == nil {
		return DefaultMaxFileSize
	}
	return *c.Limits.MaxFileSize
}

// Options returns the handler options this configuration selects.
func (c *Config) Options() document.Options {
	opts := document.Options{CaseSensitive: c.CaseSensitive()}
	if c.Limits.RawSnippetLimit != nil {
		opts.RawSnippetLimit = *c.Limits.RawSnippetLimit
	}
	if c.Limits.ContextLimit != nil {
		opts.ContextLimit = *c.Limits.ContextLimit
	}
	return opts.Normalised()
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".docfill", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.docfill/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docfill", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global, then
// applies environment overrides. A .env file in the working directory is
// read first when present.
func Load() (*Config, error) {
	// Missing .env is the normal case
	_ = godotenv.Load()

	path := GlobalPath()
	if _, err := os.Stat(LocalPath()); err == nil {
		path = LocalPath()
	}

	cfg, err := loadPath(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func loadPath(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	return &cfg, nil
}

// applyEnv overrides file values from the environment. Unparseable values
// are ignored rather than fatal: an override that does not parse is treated
// as not set.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvCaseSensitive); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verify.CaseSensitive = &b
		}
	}
	if v, ok := os.LookupEnv(EnvMaxAnswers); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Limits.MaxAnswers = &n
		}
	}
	if v, ok := os.LookupEnv(EnvMaxFileSize); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Limits.MaxFileSize = &n
		}
	}
}
