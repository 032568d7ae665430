// Package config provides configuration management for GhostCAT.
// It handles loading, saving, and managing application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ghostcat/ghostcat/common"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// APIVersion is the ghostcatd API version the client requires.
	APIVersion int `yaml:"api_version"`
	// DeveloperMode talks to a daemon on the session bus instead of the system bus.
	DeveloperMode bool `yaml:"developer_mode"`
	// PollIntervalSeconds is the active-resolution poll period.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	// PollTimeoutMS bounds each live IsActive read during a poll.
	PollTimeoutMS int `yaml:"poll_timeout_ms"`
	// InitialActive is "first" (assume row 0 when nothing reports active) or "none".
	InitialActive string `yaml:"initial_active"`
	// UpdatePolicy is "optimistic" or "confirmed".
	UpdatePolicy string `yaml:"update_policy"`
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`
	// CustomCSS is an optional stylesheet layered over the built-in one.
	CustomCSS string `yaml:"custom_css"`
	// ShowTray shows the tray indicator.
	ShowTray bool `yaml:"show_tray"`
	// NotifyDPIChanges sends a desktop notification when the hardware switches DPI.
	NotifyDPIChanges bool `yaml:"notify_dpi_changes"`

	path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:          common.RequiredAPIVersion,
		DeveloperMode:       false,
		PollIntervalSeconds: int(common.PollInterval / time.Second),
		PollTimeoutMS:       int(common.PollCallTimeout / time.Millisecond),
		InitialActive:       common.InitialActiveFirst,
		UpdatePolicy:        common.UpdateOptimistic,
		Theme:               common.ThemeAuto,
		ShowTray:            false,
		NotifyDPIChanges:    true,
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path.
// A missing file yields the defaults, which are written back to path.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %w", common.ErrConfigLoad, err)
	}

	config.validate()
	config.path = configPath

	return config, nil
}

// validate replaces out-of-range values with their defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	if !common.StringInSlice(c.Theme, []string{common.ThemeAuto, common.ThemeLight, common.ThemeDark}) {
		c.Theme = defaults.Theme
	}
	if !common.StringInSlice(c.InitialActive, []string{common.InitialActiveFirst, common.InitialActiveNone}) {
		c.InitialActive = defaults.InitialActive
	}
	if !common.StringInSlice(c.UpdatePolicy, []string{common.UpdateOptimistic, common.UpdateConfirmed}) {
		c.UpdatePolicy = defaults.UpdatePolicy
	}
	if c.APIVersion <= 0 {
		c.APIVersion = defaults.APIVersion
	}
	if c.PollIntervalSeconds <= 0 {
		c.PollIntervalSeconds = defaults.PollIntervalSeconds
	}
	if c.PollTimeoutMS <= 0 {
		c.PollTimeoutMS = defaults.PollTimeoutMS
	}
}

// PollInterval returns the poll period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// PollTimeout returns the per-read poll timeout as a duration.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMS) * time.Millisecond
}

// CustomCSSPath returns the expanded custom stylesheet path, or "" when
// none is configured.
func (c *Config) CustomCSSPath() string {
	if c.CustomCSS == "" {
		return ""
	}
	return common.ExpandHome(c.CustomCSS)
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save saves the configuration to the file it was loaded from, or to the
// default location.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %w", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %w", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", common.ErrConfigSave, err)
	}

	c.path = configPath
	return nil
}

func getConfigPath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ConfigFileName), nil
}
