// Package config loads the apkg settings file and computes the on-disk layout under the install root.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apkgErrors "github.com/glorpus-work/apkg/pkg/errors"
	"github.com/glorpus-work/apkg/pkg/fsutil"
	"github.com/glorpus-work/apkg/pkg/platform"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// RootDir is the install root every persisted path is relative to.
	RootDir string `yaml:"root_dir,omitempty"`

	// Platform overrides the detected platform tag (e.g. "lnx64").
	Platform string `yaml:"platform,omitempty"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogLevel    string        `yaml:"log_level"` // debug, info, warn, error

	// ScriptsDir is the relative directory whose files get the executable bit.
	ScriptsDir string `yaml:"scripts_dir"`
}

// Default configuration values.
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
	DefaultScriptsDir  = "share/scripts"
	DefaultRootDir     = "."

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			RootDir:     DefaultRootDir,
			HTTPTimeout: DefaultHTTPTimeout,
			LogLevel:    DefaultLogLevel,
			ScriptsDir:  DefaultScriptsDir,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, apkgErrors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, apkgErrors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apkgErrors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", apkgErrors.ErrConfigParse, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig writes the configuration to path through a temporary file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return apkgErrors.ErrEmptyConfigPath
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return apkgErrors.Wrapf(err, "failed to create config directory for %s", path)
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, fsutil.FileModeDefault); err != nil {
		return apkgErrors.Wrapf(err, "failed to write %s", tempPath)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return apkgErrors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var sb strings.Builder
	encoder := yaml.NewEncoder(&sb)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, apkgErrors.Wrap(err, "failed to encode config")
	}
	if err := encoder.Close(); err != nil {
		return nil, apkgErrors.Wrap(err, "failed to encode config")
	}
	return []byte(sb.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return apkgErrors.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return fmt.Errorf("%w: %w", apkgErrors.ErrConfigValidation, err)
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return apkgErrors.ErrHTTPTimeout
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return apkgErrors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	if err := fsutil.ValidateRelPath(s.ScriptsDir); err != nil {
		return fmt.Errorf("scripts_dir: %w", err)
	}
	if strings.ContainsAny(s.Platform, " \t/\\") {
		return fmt.Errorf("platform tag %q contains invalid characters", s.Platform)
	}
	return nil
}

// PlatformTag returns the configured platform tag, or the detected one when none is set.
func (c *Config) PlatformTag() string {
	if c.Settings.Platform != "" {
		return c.Settings.Platform
	}
	return platform.Tag()
}

// Layout returns the persisted layout under the configured install root.
func (c *Config) Layout() Layout {
	root := c.Settings.RootDir
	if root == "" {
		root = DefaultRootDir
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return NewLayout(root)
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.RootDir == "" {
		c.Settings.RootDir = defaults.Settings.RootDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.ScriptsDir == "" {
		c.Settings.ScriptsDir = defaults.Settings.ScriptsDir
	}
}
