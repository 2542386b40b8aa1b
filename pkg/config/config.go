package config

import (
	"github.com/sdejongh/imgdiff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompareConfig holds comparison-related settings
type CompareConfig struct {
	// BlockSize is the read block size for content fingerprinting
	BlockSize int `yaml:"block_size"`
	// Sorted enables deterministic lexicographic traversal by default
	Sorted bool `yaml:"sorted"`
	// DiffoscopeBinary overrides the diffoscope binary name/path
	DiffoscopeBinary string `yaml:"diffoscope_binary"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Color    bool   `yaml:"color"`    // Colorize terminal output
	Progress bool   `yaml:"progress"` // Show a progress bar on stderr
	Stats    bool   `yaml:"stats"`    // Emit the statistics block by default
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	File       string `yaml:"file"`   // Log file path (empty = stderr)
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			BlockSize:        65536,
			Sorted:           false,
			DiffoscopeBinary: "diffoscope",
		},
		Output: OutputConfig{
			Format:   "human",
			Color:    true,
			Progress: true,
			Stats:    false,
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Format:     "json",
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Compare.BlockSize < 4096 {
		return &models.ValidationError{
			Field:   "compare.block_size",
			Message: "must be at least 4096 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
