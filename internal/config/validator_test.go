package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty hub url", func(c *Config) { c.Hub.URL = "" }, "hub.url"},
		{"relative hub url", func(c *Config) { c.Hub.URL = "/hub.json" }, "hub.url"},
		{"non-http hub url", func(c *Config) { c.Hub.URL = "file:///tmp/hub.json" }, "hub.url"},
		{"negative timeout", func(c *Config) { c.Hub.RequestTimeoutMs = -1 }, "hub.request_timeout_ms"},
		{"negative concurrency", func(c *Config) { c.Hub.MaxConcurrentFetches = -2 }, "hub.max_concurrent_fetches"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized" }, "tui.theme"},
		{"tile too narrow", func(c *Config) { c.TUI.TileWidth = MinTileWidth - 1 }, "tui.tile_width"},
		{"tile too wide", func(c *Config) { c.TUI.TileWidth = MaxTileWidth + 1 }, "tui.tile_width"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
		{"null byte in state dir", func(c *Config) { c.Paths.StateDir = "/tmp/\x00bad" }, "paths.state_dir"},
		{"long state dir", func(c *Config) { c.Paths.StateDir = "/" + strings.Repeat("a", 5000) }, "paths.state_dir"},
		{"empty serve addr", func(c *Config) { c.Serve.Addr = "  " }, "serve.addr"},
		{"negative serve delay", func(c *Config) { c.Serve.MaxDelayMs = -10 }, "serve.max_delay_ms"},
		{"huge serve delay", func(c *Config) { c.Serve.MaxDelayMs = 120000 }, "serve.max_delay_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_AcceptsBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"http hub url", func(c *Config) { c.Hub.URL = "http://127.0.0.1:8080/hub.json" }},
		{"zero tile width means default", func(c *Config) { c.TUI.TileWidth = 0 }},
		{"min tile width", func(c *Config) { c.TUI.TileWidth = MinTileWidth }},
		{"max tile width", func(c *Config) { c.TUI.TileWidth = MaxTileWidth }},
		{"empty theme means default", func(c *Config) { c.TUI.Theme = "" }},
		{"empty log level", func(c *Config) { c.Logging.Level = "" }},
		{"zero backups", func(c *Config) { c.Logging.MaxBackups = 0 }},
		{"bounded concurrency", func(c *Config) { c.Hub.MaxConcurrentFetches = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if errs := cfg.Validate(); len(errs) != 0 {
				t.Errorf("Validate() = %v, want no errors", errs)
			}
		})
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Hub.URL = ""
	cfg.TUI.TileWidth = 100
	cfg.Logging.Level = "loud"

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidThemes(t *testing.T) {
	themes := ValidThemes()
	if len(themes) == 0 || themes[0] != "default" {
		t.Errorf("ValidThemes() = %v, want default first", themes)
	}
}
