package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.tile_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Tile width bounds. tui.DefaultTileWidth must fall inside them
// (defined here to avoid an import cycle).
const (
	MinTileWidth = 12
	MaxTileWidth = 60
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of built-in theme names.
// Must stay in sync with styles.BuiltinThemes.
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateHub()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateServe()...)

	return errors
}

// validateHub validates the HubConfig
func (c *Config) validateHub() []ValidationError {
	var errors []ValidationError

	if c.Hub.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "hub.url",
			Value:   c.Hub.URL,
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.Hub.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "hub.url",
			Value:   c.Hub.URL,
			Message: "must be an absolute http or https URL",
		})
	}

	if c.Hub.RequestTimeoutMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "hub.request_timeout_ms",
			Value:   c.Hub.RequestTimeoutMs,
			Message: "must be non-negative (0 disables the timeout)",
		})
	}

	if c.Hub.MaxConcurrentFetches < 0 {
		errors = append(errors, ValidationError{
			Field:   "hub.max_concurrent_fetches",
			Value:   c.Hub.MaxConcurrentFetches,
			Message: "must be non-negative (0 means unbounded)",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	// 0 means use default
	if c.TUI.TileWidth != 0 {
		if c.TUI.TileWidth < MinTileWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.tile_width",
				Value:   c.TUI.TileWidth,
				Message: fmt.Sprintf("must be at least %d columns", MinTileWidth),
			})
		}
		if c.TUI.TileWidth > MaxTileWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.tile_width",
				Value:   c.TUI.TileWidth,
				Message: fmt.Sprintf("exceeds maximum of %d columns", MaxTileWidth),
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if c.Paths.StateDir != "" {
		path := c.Paths.StateDir

		if strings.ContainsRune(path, '\x00') {
			errors = append(errors, ValidationError{
				Field:   "paths.state_dir",
				Value:   path,
				Message: "path contains invalid null character",
			})
		}

		const maxPathLength = 4096
		if len(path) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   "paths.state_dir",
				Value:   path,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}

// validateServe validates the ServeConfig
func (c *Config) validateServe() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Serve.Addr) == "" {
		errors = append(errors, ValidationError{
			Field:   "serve.addr",
			Value:   c.Serve.Addr,
			Message: "must not be empty",
		})
	}

	if c.Serve.MaxDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "serve.max_delay_ms",
			Value:   c.Serve.MaxDelayMs,
			Message: "must be non-negative",
		})
	}

	const maxDelayLimitMs = 60000
	if c.Serve.MaxDelayMs > maxDelayLimitMs {
		errors = append(errors, ValidationError{
			Field:   "serve.max_delay_ms",
			Value:   c.Serve.MaxDelayMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxDelayLimitMs),
		})
	}

	return errors
}
