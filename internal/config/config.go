// Package config provides unified configuration loading for sdbtool.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains all sdbtool configuration settings.
type Config struct {
	// AXL contains the macro bindings used to resolve relocatable
	// paths found in setup database files.
	AXL AXLConfig `json:"axl" yaml:"axl"`

	// Catalog contains settings for the local run catalog.
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Output contains settings for command output.
	Output OutputConfig `json:"output" yaml:"output"`
}

// AXLConfig binds the AXL path macros to concrete directories.
// Values support ${VAR} syntax for environment variables.
type AXLConfig struct {
	// SetupDBDir is the directory $AXL_SETUPDB_DIR expands to.
	SetupDBDir string `json:"setupdb_dir,omitempty" yaml:"setupdb_dir,omitempty"`

	// ProjectDir is the directory $AXL_PROJECT_DIR expands to.
	ProjectDir string `json:"project_dir,omitempty" yaml:"project_dir,omitempty"`
}

// CatalogConfig configures the local run catalog.
type CatalogConfig struct {
	// Path is the catalog database file. Defaults to
	// ~/.config/sdbtool/catalog.db. Supports ${VAR} syntax.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// OutputConfig configures human-readable command output.
type OutputConfig struct {
	// Color controls styled output: "auto" (default), "always", or "never".
	Color string `json:"color" yaml:"color"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Dir returns the sdbtool configuration directory, ~/.config/sdbtool.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sdbtool"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.config/sdbtool/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	dir, err := Dir()
	if err == nil {
		configPath := filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in path values
	config.AXL.SetupDBDir = expandEnvVars(config.AXL.SetupDBDir)
	config.AXL.ProjectDir = expandEnvVars(config.AXL.ProjectDir)
	config.Catalog.Path = expandEnvVars(config.Catalog.Path)

	return config, nil
}

// CatalogPath returns the configured catalog database path, falling back
// to the default location under the config directory.
func (c *Config) CatalogPath() (string, error) {
	if c.Catalog.Path != "" {
		return c.Catalog.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.db"), nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validColors := map[string]bool{"": true, "auto": true, "always": true, "never": true}
	if !validColors[c.Output.Color] {
		return fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", c.Output.Color)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// The AXL macro variables themselves take precedence over the config
// file, since the producing tool sets them per session.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("AXL_SETUPDB_DIR"); v != "" {
		config.AXL.SetupDBDir = v
	}

	if v := os.Getenv("AXL_PROJECT_DIR"); v != "" {
		config.AXL.ProjectDir = v
	}

	if v := os.Getenv("SDBTOOL_CATALOG"); v != "" {
		config.Catalog.Path = v
	}

	if v := os.Getenv("SDBTOOL_COLOR"); v != "" {
		config.Output.Color = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
