// Package config loads and validates the filewarden configuration file.
package config

import (
	"os"
	"path/filepath"

	apperrors "filewarden/internal/errors"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultHashLength is the number of hex characters kept from the
	// full SHA-256 digest when recording manifest entries.
	DefaultHashLength = 16

	defaultManifestFile = "manifest.db"
)

// Config describes the tool behaviour for a single workspace.
type Config struct {
	Workspace string         `yaml:"workspace"`
	Manifest  ManifestConfig `yaml:"manifest"`
	Scan      ScanConfig     `yaml:"scan"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// ManifestConfig locates the checksum manifest database.
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// ScanConfig controls enumeration and hashing during scans.
type ScanConfig struct {
	Patterns   []string `yaml:"patterns"`
	HashLength int      `yaml:"hash_length"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration rooted at workspace.
func Default(workspace string) *Config {
	return &Config{
		Workspace: workspace,
		Manifest: ManifestConfig{
			Path: filepath.Join(workspace, ".filewarden", defaultManifestFile),
		},
		Scan: ScanConfig{
			Patterns:   []string{"*.*"},
			HashLength: DefaultHashLength,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from disk and fills unset fields with
// defaults derived from the configured workspace.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}
	return Parse(data)
}

// Parse decodes configuration data from bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Workspace == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.Workspace = wd
		}
	}
	if cfg.Manifest.Path == "" {
		cfg.Manifest.Path = filepath.Join(cfg.Workspace, ".filewarden", defaultManifestFile)
	}
	if len(cfg.Scan.Patterns) == 0 {
		cfg.Scan.Patterns = []string{"*.*"}
	}
	if cfg.Scan.HashLength == 0 {
		cfg.Scan.HashLength = DefaultHashLength
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate performs basic sanity checks on the configuration.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return apperrors.ConfigError(
			apperrors.CodeConfigGeneric,
			"configuration is required",
			nil,
		)
	}

	if cfg.Workspace == "" {
		return apperrors.ValidationError(
			apperrors.CodeValidationGeneric,
			"workspace path is required",
			nil,
		)
	}

	if cfg.Scan.HashLength < 1 {
		return apperrors.ValidationError(
			apperrors.CodeValidationGeneric,
			"hash length must be at least 1",
			nil,
		).WithField("hash_length", cfg.Scan.HashLength)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return apperrors.ValidationError(
			apperrors.CodeValidationGeneric,
			"logging format must be text or json",
			nil,
		).WithField("format", cfg.Logging.Format)
	}

	return nil
}
