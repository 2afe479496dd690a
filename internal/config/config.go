package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultHubURL is the hub document hubview loads when none is configured.
const DefaultHubURL = "https://d1q0vy0v52gyjr.cloudfront.net/hub.json"

// Config represents the complete hubview configuration
type Config struct {
	Hub     HubConfig     `mapstructure:"hub" yaml:"hub"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve"`
}

// HubConfig controls where the hub is fetched from and how
type HubConfig struct {
	// URL is the hub document endpoint. Relative collection hrefs resolve against it.
	URL string `mapstructure:"url" yaml:"url"`
	// RequestTimeoutMs bounds each HTTP request in milliseconds (0 = no timeout)
	RequestTimeoutMs int `mapstructure:"request_timeout_ms" yaml:"request_timeout_ms"`
	// MaxConcurrentFetches bounds parallel collection fetches in headless
	// assembly (0 = one goroutine per lazy row)
	MaxConcurrentFetches int `mapstructure:"max_concurrent_fetches" yaml:"max_concurrent_fetches"`
	// UserAgent is sent with every request
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	Theme string `mapstructure:"theme" yaml:"theme"`
	// TileWidth is the width of one tile in columns (default: 24, min: 12, max: 60)
	TileWidth int `mapstructure:"tile_width" yaml:"tile_width"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// PathsConfig controls where hubview stores data
type PathsConfig struct {
	// StateDir holds the debug log. Empty means $XDG_STATE_HOME/hubview.
	// Supports ~ for home directory expansion.
	StateDir string `mapstructure:"state_dir" yaml:"state_dir"`
}

// ServeConfig controls the local fixture server
type ServeConfig struct {
	// Addr is the listen address (default: "127.0.0.1:8080")
	Addr string `mapstructure:"addr" yaml:"addr"`
	// FixturesDir serves hub.json and collections/*.json from disk instead of
	// the built-in fixtures
	FixturesDir string `mapstructure:"fixtures_dir" yaml:"fixtures_dir"`
	// MaxDelayMs adds a random delay up to this many milliseconds to each
	// collection response, to make out-of-order completion visible
	MaxDelayMs int `mapstructure:"max_delay_ms" yaml:"max_delay_ms"`
}

// RequestTimeout returns the request timeout as a time.Duration (0 means disabled)
func (c *HubConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// MaxDelay returns the fixture server delay bound as a time.Duration
func (c *ServeConfig) MaxDelay() time.Duration {
	return time.Duration(c.MaxDelayMs) * time.Millisecond
}

// ResolveStateDir returns the resolved state directory path.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir == "" {
		return StateDir()
	}

	path := p.StateDir
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Hub: HubConfig{
			URL:                  DefaultHubURL,
			RequestTimeoutMs:     0, // No timeout, a stalled row stalls the rows after it
			MaxConcurrentFetches: 0,
			UserAgent:            "hubview",
		},
		TUI: TUIConfig{
			Theme:     "default",
			TileWidth: 24,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Paths: PathsConfig{
			StateDir: "",
		},
		Serve: ServeConfig{
			Addr:        "127.0.0.1:8080",
			FixturesDir: "",
			MaxDelayMs:  0,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Hub defaults
	viper.SetDefault("hub.url", defaults.Hub.URL)
	viper.SetDefault("hub.request_timeout_ms", defaults.Hub.RequestTimeoutMs)
	viper.SetDefault("hub.max_concurrent_fetches", defaults.Hub.MaxConcurrentFetches)
	viper.SetDefault("hub.user_agent", defaults.Hub.UserAgent)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.tile_width", defaults.TUI.TileWidth)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Paths defaults
	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)

	// Serve defaults
	viper.SetDefault("serve.addr", defaults.Serve.Addr)
	viper.SetDefault("serve.fixtures_dir", defaults.Serve.FixturesDir)
	viper.SetDefault("serve.max_delay_ms", defaults.Serve.MaxDelayMs)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hubview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hubview"
	}
	return filepath.Join(home, ".config", "hubview")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the default directory for logs
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "hubview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hubview", "state")
	}
	return filepath.Join(home, ".local", "state", "hubview")
}
