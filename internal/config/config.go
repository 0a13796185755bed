package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It controls where match files are looked up and how the UI behaves.
type Config struct {
	Matches struct {
		Dir      string   `yaml:"dir"`      // Match directory; empty means the espanso default
		Patterns []string `yaml:"patterns"` // Glob patterns selecting match files
	} `yaml:"matches"`
	UI struct {
		ConfirmDelete bool   `yaml:"confirm_delete"` // Ask before deleting a match
		WatchEnabled  bool   `yaml:"watch_enabled"`  // Reload when the match directory changes on disk
		Theme         string `yaml:"theme"`          // GUI accent theme: default, dark, or light
	} `yaml:"ui"`
	Debug bool `yaml:"debug"` // Enable debug logging
}

// EspansoMatchDir returns the default espanso match directory
// (<platform-config-dir>/espanso/match). The directory is owned by espanso
// and is never created here.
func EspansoMatchDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("espanso", "match")
	}
	return filepath.Join(base, "espanso", "match")
}

// MatchDir returns the effective match directory, honoring the override.
func (c *Config) MatchDir() string {
	if c.Matches.Dir != "" {
		return c.Matches.Dir
	}
	return EspansoMatchDir()
}

// Load loads configuration from the default location
// (~/.config/matchman/config.yaml).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "matchman", "config.yaml")
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Matches.Dir != "" {
		cfg.Matches.Dir = tempCfg.Matches.Dir
	}
	if len(tempCfg.Matches.Patterns) > 0 {
		cfg.Matches.Patterns = tempCfg.Matches.Patterns
	}
	if tempCfg.UI.Theme != "" {
		cfg.UI.Theme = tempCfg.UI.Theme
	}
	cfg.UI.ConfirmDelete = tempCfg.UI.ConfirmDelete
	cfg.UI.WatchEnabled = tempCfg.UI.WatchEnabled
	cfg.Debug = tempCfg.Debug

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Matches.Dir = "" // espanso default location
	cfg.Matches.Patterns = []string{"*.yml"}

	cfg.UI.ConfirmDelete = true
	cfg.UI.WatchEnabled = true
	cfg.UI.Theme = "default"

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Save saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if len(c.Matches.Patterns) == 0 {
		return fmt.Errorf("at least one match file pattern is required")
	}
	for i, pattern := range c.Matches.Patterns {
		if pattern == "" {
			return fmt.Errorf("pattern %d: pattern cannot be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("pattern %d: invalid glob %q: %w", i, pattern, err)
		}
	}

	validThemes := map[string]bool{"default": true, "dark": true, "light": true}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}
