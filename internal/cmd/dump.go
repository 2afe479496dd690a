package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/hubview/internal/errors"
	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Load the hub and print the assembled grid",
	Long: `Load the hub, fetch every lazy row concurrently, and print the sealed
grid without starting the browser.

Rows are printed in editorial order. Rows whose collection failed or came
back empty are listed under "omitted".`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("url", "", "hub URL (overrides hub.url)")
	dumpCmd.Flags().StringP("format", "f", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(dumpCmd)
}

type dumpTile struct {
	ID       string `json:"id" yaml:"id"`
	Headline string `json:"headline" yaml:"headline"`
	Artwork  string `json:"artwork,omitempty" yaml:"artwork,omitempty"`
}

type dumpRow struct {
	Index int        `json:"index" yaml:"index"`
	Name  string     `json:"name" yaml:"name"`
	Tiles []dumpTile `json:"tiles" yaml:"tiles"`
}

type dumpOmission struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

type dumpOutput struct {
	Hub     string         `json:"hub" yaml:"hub"`
	Shape   string         `json:"shape" yaml:"shape"`
	Rows    []dumpRow      `json:"rows" yaml:"rows"`
	Omitted []dumpOmission `json:"omitted,omitempty" yaml:"omitted,omitempty"`
}

func runDump(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "json" {
		return errors.NewValidationError("unsupported output format").
			WithField("format").
			WithValue(format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	url, _ := cmd.Flags().GetString("url")
	client, err := newClient(cfg, url, logger)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := client.FetchHub(ctx)
	if err != nil {
		return fmt.Errorf("failed to load hub: %w", err)
	}

	assembler := hub.NewAssembler(client,
		hub.WithMaxConcurrent(cfg.Hub.MaxConcurrentFetches),
		hub.WithAssemblerLogger(logger),
	)
	grid, err := assembler.Assemble(ctx, doc, commitProgress(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("assembly interrupted: %w", err)
	}

	return writeDump(cmd.OutOrStdout(), format, newDumpOutput(client.HubURL(), doc, grid))
}

// commitProgress reports committed rows on w when w is a terminal.
func commitProgress(w io.Writer) func(hub.Row) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return func(r hub.Row) {
		fmt.Fprintf(w, "✓ %s (%d tiles)\n", r.Name, len(r.Items))
	}
}

func newDumpOutput(hubURL string, doc *hub.Document, grid hub.Grid) dumpOutput {
	out := dumpOutput{
		Hub:   hubURL,
		Shape: grid.String(),
		Rows:  make([]dumpRow, 0, grid.RowCount()),
	}

	present := make(map[int]bool, grid.RowCount())
	for _, row := range grid.Rows {
		present[row.Index] = true
		tiles := make([]dumpTile, 0, len(row.Items))
		for _, item := range row.Items {
			tiles = append(tiles, dumpTile{
				ID:       item.ID,
				Headline: item.Headline(),
				Artwork:  item.ArtworkURL(),
			})
		}
		out.Rows = append(out.Rows, dumpRow{Index: row.Index, Name: row.Name, Tiles: tiles})
	}

	for i, spec := range doc.Components {
		if !present[i] {
			out.Omitted = append(out.Omitted, dumpOmission{Index: i, Name: spec.Name})
		}
	}
	return out
}

func writeDump(w io.Writer, format string, out dumpOutput) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
