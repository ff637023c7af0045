// Package config holds the explicit paths and merge options every
// settingsync operation runs with.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/settingsync/internal/constants"
	"github.com/wizzomafizzo/settingsync/internal/filesystem"
	"github.com/wizzomafizzo/settingsync/internal/project"
	"gopkg.in/yaml.v3"
)

const maxIndent = 8

// Config is the resolved configuration for one settings directory.
// An Indent of 0 writes compact single-line JSON.
type Config struct {
	Dir          string
	SettingsPath string
	BackupPath   string
	DefaultPath  string
	Resolve      string
	Separator    string
	Indent       int
}

// fileConfig is the settingsync.yml layout. Unset fields keep their defaults.
type fileConfig struct {
	SettingsPath string `yaml:"settings,omitempty"`
	BackupPath   string `yaml:"backup,omitempty"`
	DefaultPath  string `yaml:"default,omitempty"`
	Resolve      string `yaml:"resolve,omitempty"`
	Separator    string `yaml:"separator,omitempty"`
	Indent       *int   `yaml:"indent,omitempty"`
}

// Default returns the configuration for the settings files inside dir.
func Default(dir string) *Config {
	return &Config{
		Dir:          dir,
		SettingsPath: filepath.Join(dir, constants.SettingsFilename),
		BackupPath:   filepath.Join(dir, constants.BackupFilename),
		DefaultPath:  filepath.Join(dir, constants.DefaultFilename),
		Resolve:      project.StrategyAncestors,
		Separator:    " ",
		Indent:       2,
	}
}

// Load returns Default(dir) overlaid with dir/settingsync.yml when that file exists.
func Load(fs afero.Fs, dir string) (*Config, error) {
	path := filepath.Join(dir, constants.ConfigFilename)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return Default(dir), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := LoadFromYAML(dir, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromYAML overlays YAML bytes onto Default(dir).
func LoadFromYAML(dir string, data []byte) (*Config, error) {
	var overrides fileConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg := Default(dir)
	cfg.apply(&overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) apply(o *fileConfig) {
	if o.SettingsPath != "" {
		c.SettingsPath = c.resolvePath(o.SettingsPath)
	}
	if o.BackupPath != "" {
		c.BackupPath = c.resolvePath(o.BackupPath)
	}
	if o.DefaultPath != "" {
		c.DefaultPath = c.resolvePath(o.DefaultPath)
	}
	if o.Resolve != "" {
		c.Resolve = o.Resolve
	}
	if o.Separator != "" {
		c.Separator = separatorAlias(o.Separator)
	}
	if o.Indent != nil {
		c.Indent = *o.Indent
	}
}

// resolvePath makes relative paths relative to the settings directory
func (c *Config) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// separatorAlias maps the names "space" and "tab" to their characters.
func separatorAlias(value string) string {
	switch value {
	case "space":
		return " "
	case "tab":
		return "\t"
	default:
		return value
	}
}

// Validate performs config validation
func (c *Config) Validate() error {
	if c.SettingsPath == "" || c.BackupPath == "" || c.DefaultPath == "" {
		return errors.New("settings, backup and default paths are required")
	}
	if filesystem.SamePath(c.SettingsPath, c.BackupPath) {
		return fmt.Errorf("backup path must differ from settings path %s", c.SettingsPath)
	}
	if c.Resolve != project.StrategyAncestors && c.Resolve != project.StrategySibling {
		return fmt.Errorf("invalid resolve strategy '%s': must be one of: %s, %s",
			c.Resolve, project.StrategyAncestors, project.StrategySibling)
	}
	if c.Separator == "" {
		return errors.New("separator cannot be empty")
	}
	if c.Indent < 0 || c.Indent > maxIndent {
		return fmt.Errorf("indent must be between 0 and %d, got %d", maxIndent, c.Indent)
	}
	return nil
}

// SeparatorName returns a printable name for the separator.
func (c *Config) SeparatorName() string {
	switch c.Separator {
	case " ":
		return "space"
	case "\t":
		return "tab"
	default:
		return fmt.Sprintf("%q", c.Separator)
	}
}
