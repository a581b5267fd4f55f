// Package config loads and validates web2pdf configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxUserAgentLength = 512
	MaxMarkerLength    = 200
	MaxMarkers         = 50
	MaxWorkers         = 32
)

// Config holds all configuration for article conversion.
type Config struct {
	Fetch    FetchConfig    `yaml:"fetch"`
	Images   ImagesConfig   `yaml:"images"`
	Compile  CompileConfig  `yaml:"compile"`
	Template TemplateConfig `yaml:"template"`
	Metadata MetadataConfig `yaml:"metadata"`
	Engine   string         `yaml:"engine"` // "xelatex" (default) or "chrome"
}

// FetchConfig defines article download options.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "30s" (empty = default)
	UserAgent string `yaml:"userAgent"` // empty = built-in UA
}

// ImagesConfig defines image download options.
type ImagesConfig struct {
	Workers int `yaml:"workers"` // concurrent downloads (0 = default)
}

// CompileConfig defines XeLaTeX orchestrator options.
type CompileConfig struct {
	Binary         string   `yaml:"binary"`      // compiler executable (empty = "xelatex")
	PassTimeout    string   `yaml:"passTimeout"` // per-pass budget, e.g. "2m"
	SinglePass     bool     `yaml:"singlePass"`
	NoCleanup      bool     `yaml:"noCleanup"`
	FatalMarkers   []string `yaml:"fatalMarkers"`   // appended to the built-in table
	WarningMarkers []string `yaml:"warningMarkers"` // appended to the built-in table
}

// TemplateConfig defines the Pandoc LaTeX template.
type TemplateConfig struct {
	Path string `yaml:"path"` // empty = "webarticle.latex" in the working directory
}

// MetadataConfig defines default metadata overrides.
type MetadataConfig struct {
	Author string `yaml:"author"`
	Editor string `yaml:"editor"`
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks value ranges and formats.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateDuration("fetch.timeout", c.Fetch.Timeout); err != nil {
		return err
	}
	if err := validateDuration("compile.passTimeout", c.Compile.PassTimeout); err != nil {
		return err
	}
	if len(c.Fetch.UserAgent) > MaxUserAgentLength {
		return fmt.Errorf("%w: fetch.userAgent exceeds %d characters", ErrInvalidValue, MaxUserAgentLength)
	}
	if c.Images.Workers < 0 || c.Images.Workers > MaxWorkers {
		return fmt.Errorf("%w: images.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Images.Workers)
	}
	switch c.Engine {
	case "", "xelatex", "chrome":
		// valid
	default:
		return fmt.Errorf("%w: engine must be xelatex or chrome, got %q", ErrInvalidValue, c.Engine)
	}
	if err := validateMarkers("compile.fatalMarkers", c.Compile.FatalMarkers); err != nil {
		return err
	}
	if err := validateMarkers("compile.warningMarkers", c.Compile.WarningMarkers); err != nil {
		return err
	}
	return nil
}

// validateDuration checks an optional Go duration string.
func validateDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, field)
	}
	return nil
}

// validateMarkers bounds a marker table extension.
func validateMarkers(field string, markers []string) error {
	if len(markers) > MaxMarkers {
		return fmt.Errorf("%w: %s has %d entries (max %d)", ErrInvalidValue, field, len(markers), MaxMarkers)
	}
	for i, m := range markers {
		if m == "" {
			return fmt.Errorf("%w: %s[%d] is empty", ErrInvalidValue, field, i)
		}
		if len(m) > MaxMarkerLength {
			return fmt.Errorf("%w: %s[%d] exceeds %d characters", ErrInvalidValue, field, i, MaxMarkerLength)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	// Strict mode rejects unknown keys, so a typo in a config file is an
	// error instead of a silently ignored setting.
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/web2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "web2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
