// Package config provides configuration types and defaults for quanta.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tbuckley/quanta/internal/log"
)

// Config holds all configuration options for quanta.
type Config struct {
	// Strict selects the unknown-name policy: "strict", "warn", or "silent".
	Strict string `mapstructure:"strict"`

	// System selects the preferred unit system for output: "si" or "cgs".
	System string `mapstructure:"system"`

	// CatalogPaths lists YAML files with user unit definitions, loaded in
	// order on top of the built-in catalog.
	CatalogPaths []string `mapstructure:"catalog_paths"`

	// Debug enables file logging.
	Debug bool `mapstructure:"debug"`

	Tracing TracingConfig `mapstructure:"tracing"`
}

// TracingConfig holds trace export configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quanta/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/quanta/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quanta", "traces", "traces.jsonl")
}

// Validate checks the configuration for errors.
// Empty values fall back to defaults and are valid.
func Validate(c Config) error {
	switch c.Strict {
	case "", "strict", "warn", "silent":
	default:
		return fmt.Errorf("strict must be \"strict\", \"warn\", or \"silent\", got %q", c.Strict)
	}

	switch c.System {
	case "", "si", "cgs":
	default:
		return fmt.Errorf("system must be \"si\" or \"cgs\", got %q", c.System)
	}

	for i, p := range c.CatalogPaths {
		if p == "" {
			return fmt.Errorf("catalog_paths[%d]: path is required", i)
		}
	}

	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Strict: "strict",
		System: "si",
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Quanta Configuration

# Unknown unit name policy:
#   strict - fail the parse (default)
#   warn   - warn and carry the name as an unrecognized unit
#   silent - carry the name as an unrecognized unit without comment
strict: strict

# Preferred unit system for composed output: "si" (default) or "cgs"
system: si

# Extra unit definitions loaded on top of the built-in catalog.
# Each file is YAML; see 'quanta catalog --help' for the format.
# catalog_paths:
#   - ~/.config/quanta/units.yaml

# Write a debug log to .quanta/debug.log
debug: false

# Trace export configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quanta/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
