package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/hubview/internal/cmd/configcmd"
	"github.com/Iron-Ham/hubview/internal/config"
	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/Iron-Ham/hubview/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "hubview",
	Short: "Browse a content hub from the terminal",
	Long: `hubview loads a content hub (rows of tiles described by remote JSON),
assembles its rows in editorial order as their collections arrive, and lets
you move a focus cursor over the tiles with the arrow keys.

Run without a subcommand to open the browser.`,
	RunE:          runBrowse,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/hubview/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	// The root command browses, so it takes browse's flags too.
	addBrowseFlags(rootCmd)

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HUBVIEW")
	// e.g. HUBVIEW_HUB_URL for hub.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig reads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger opens the file logger described by cfg, or a no-op logger when
// logging is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(
		cfg.Paths.ResolveStateDir(),
		cfg.Logging.Level,
		logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}

// newClient builds a hub client for url, falling back to the configured
// hub URL when url is empty.
func newClient(cfg *config.Config, url string, logger *logging.Logger) (*hub.Client, error) {
	if url == "" {
		url = cfg.Hub.URL
	}
	return hub.NewClient(url,
		hub.WithTimeout(cfg.Hub.RequestTimeout()),
		hub.WithUserAgent(cfg.Hub.UserAgent),
		hub.WithLogger(logger),
	)
}
