package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/hubview/internal/fixture"
	"github.com/Iron-Ham/hubview/internal/logging"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local fixture hub",
	Long: `Serve a hub document and its collections over HTTP for demos and
offline use.

The built-in fixtures include a failing collection and an empty one, so the
browser's row omission can be seen without a real backend. Use --fixtures to
serve hub.json and collections/<id>.json from a directory instead.

Point the browser at it with:
  hubview --url http://127.0.0.1:8080/hub.json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides serve.addr)")
	serveCmd.Flags().String("fixtures", "", "fixture directory (overrides serve.fixtures_dir)")
	serveCmd.Flags().Duration("max-delay", 0, "maximum random delay per collection request (overrides serve.max_delay_ms)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}
	dir := cfg.Serve.FixturesDir
	if cmd.Flags().Changed("fixtures") {
		dir, _ = cmd.Flags().GetString("fixtures")
	}
	maxDelay := cfg.Serve.MaxDelay()
	if cmd.Flags().Changed("max-delay") {
		maxDelay, _ = cmd.Flags().GetDuration("max-delay")
	}

	// The server runs in the foreground, so its request log goes to stderr.
	logger, err := logging.NewLogger("", cfg.Logging.Level)
	if err != nil {
		return err
	}

	opts := []fixture.Option{
		fixture.WithMaxDelay(maxDelay),
		fixture.WithLogger(logger),
	}
	if dir != "" {
		opts = append(opts, fixture.WithDir(dir))
	}
	server, err := fixture.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return server.ListenAndServe(ctx, addr, func(a net.Addr) {
		fmt.Fprintf(out, "Serving fixture hub at http://%s%s\n", a, fixture.HubPath)
		if maxDelay > 0 {
			fmt.Fprintf(out, "Collection responses are delayed by up to %s\n", maxDelay.Round(time.Millisecond))
		}
	})
}
