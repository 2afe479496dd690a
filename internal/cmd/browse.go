package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/hubview/internal/logging"
	"github.com/Iron-Ham/hubview/internal/tui"
	"github.com/Iron-Ham/hubview/internal/tui/styles"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the hub browser",
	Long: `Open the interactive hub browser.

Rows appear in editorial order as their collections load. Once every row has
resolved, use the arrow keys to move between tiles and Enter to select one.
If the hub itself cannot be loaded, press r or Enter to retry.

Changes to tui.theme in the config file are applied while the browser runs.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addBrowseFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func addBrowseFlags(c *cobra.Command) {
	c.Flags().String("url", "", "hub URL (overrides hub.url)")
	c.Flags().String("theme", "", "color theme (overrides tui.theme)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the browser needs a terminal; use 'hubview dump' for non-interactive output")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url, _ := cmd.Flags().GetString("url")
	themeFlag, _ := cmd.Flags().GetString("theme")
	theme := cfg.TUI.Theme
	if themeFlag != "" {
		if !styles.IsValidTheme(themeFlag) {
			return fmt.Errorf("unknown theme %q (valid: %v)", themeFlag, styles.BuiltinThemes())
		}
		theme = themeFlag
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	client, err := newClient(cfg, url, logger)
	if err != nil {
		return err
	}

	styles.SetActiveTheme(styles.ThemeName(theme))
	model := tui.NewModel(client,
		tui.WithHubURL(client.HubURL()),
		tui.WithLogger(logger),
		tui.WithTheme(theme),
		tui.WithTileWidth(cfg.TUI.TileWidth),
	)
	app := tui.New(model)

	// An explicit --theme wins over the config file for the whole session.
	if themeFlag == "" {
		watchTheme(app, logger, theme)
	}

	logger.Info("browser starting", "url", client.HubURL(), "theme", theme)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchTheme applies tui.theme changes from the config file to the running
// browser. It does nothing when no config file was read.
func watchTheme(app *tui.App, logger *logging.Logger, current string) {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		theme := viper.GetString("tui.theme")
		if theme == current {
			return
		}
		if !styles.IsValidTheme(theme) {
			logger.Warn("ignoring unknown theme from config", "file", e.Name, "theme", theme)
			return
		}
		current = theme
		logger.Info("config changed", "file", e.Name, "op", e.Op.String(), "theme", theme)
		app.SetTheme(theme)
	})
	viper.WatchConfig()
}
