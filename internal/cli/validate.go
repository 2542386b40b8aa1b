package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/imgdiff/internal/platform"
	"github.com/sdejongh/imgdiff/pkg/config"
	"github.com/sdejongh/imgdiff/pkg/logging"
)

// validateImageArgs validates the two positional image arguments
func validateImageArgs(sourceImage, destImage string) error {
	for _, image := range []string{sourceImage, destImage} {
		if err := platform.ValidatePath(image); err != nil {
			return err
		}
		if _, err := os.Stat(image); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("image does not exist: %s", image)
			}
			return fmt.Errorf("failed to access image: %w", err)
		}
	}

	sourceAbs, err := filepath.Abs(platform.NormalizePath(sourceImage))
	if err != nil {
		return fmt.Errorf("failed to resolve source image path: %w", err)
	}
	destAbs, err := filepath.Abs(platform.NormalizePath(destImage))
	if err != nil {
		return fmt.Errorf("failed to resolve destination image path: %w", err)
	}

	if sourceAbs == destAbs {
		return fmt.Errorf("cannot compare an image against itself: %s", sourceAbs)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if compareFlags.Sort {
		cfg.Compare.Sorted = true
	}

	if compareFlags.Format != "" {
		cfg.Output.Format = compareFlags.Format
	}

	if compareFlags.Stats {
		cfg.Output.Stats = true
	}

	// Disable progress and color in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Color = false
	}

	// Verbose mode turns logging on
	if globalFlags.Verbose {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
}

// buildLogger constructs the run logger from configuration
func buildLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	level := logging.InfoLevel
	switch cfg.Logging.Level {
	case "debug":
		level = logging.DebugLevel
	case "warn":
		level = logging.WarnLevel
	case "error":
		level = logging.ErrorLevel
	}

	format := logging.FormatJSON
	if cfg.Logging.Format == "text" {
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     format,
		Level:      level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}
