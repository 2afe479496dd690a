// Package configcmd provides CLI commands for inspecting and creating the
// hubview configuration file.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/hubview/internal/config"
	"github.com/Iron-Ham/hubview/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create hubview configuration",
	Long: `View or create hubview configuration.

Use 'config show' to print the effective configuration, 'config path' to see
where it is read from, and 'config init' to write a commented default file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/hubview/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config and log file paths",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds the config command tree to parent.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	stateDir := viper.GetString("paths.state_dir")
	paths := config.PathsConfig{StateDir: stateDir}
	fmt.Fprintf(out, "Log file: %s\n", filepath.Join(paths.ResolveStateDir(), logging.LogFileName))

	fmt.Fprintln(out, "\nEnvironment variables: HUBVIEW_* (e.g., HUBVIEW_HUB_URL)")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize hubview's behavior.")
	return nil
}

const defaultConfigFile = `# hubview configuration

hub:
  # Hub document to load. Relative collection hrefs resolve against it.
  url: ` + config.DefaultHubURL + `
  # Per-request timeout in milliseconds (0 = no timeout)
  request_timeout_ms: 0
  # Parallel collection fetches for 'hubview dump' (0 = unbounded)
  max_concurrent_fetches: 0
  user_agent: hubview

tui:
  # Color theme: default, monokai, dracula, nord
  # Changes are applied to a running browser.
  theme: default
  # Tile width in columns (12-60)
  tile_width: 24

logging:
  enabled: true
  # debug, info, warn, error
  level: info
  max_size_mb: 10
  max_backups: 3

paths:
  # Directory for debug.log (empty = $XDG_STATE_HOME/hubview)
  state_dir: ""

serve:
  # Listen address for 'hubview serve'
  addr: 127.0.0.1:8080
  # Serve hub.json and collections/*.json from this directory
  fixtures_dir: ""
  # Random delay bound per collection response in milliseconds
  max_delay_ms: 0
`
