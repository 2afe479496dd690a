// Package tui implements the interactive hub browser: it loads the hub,
// assembles rows as their collections arrive, and lets the user move a
// focus cursor over the sealed grid.
package tui

import (
	"context"

	"github.com/Iron-Ham/hubview/internal/focus"
	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/Iron-Ham/hubview/internal/logging"
	"github.com/Iron-Ham/hubview/internal/tui/keymap"
	"github.com/Iron-Ham/hubview/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
)

// DefaultTileWidth is the tile width used when none is configured.
const DefaultTileWidth = 24

// GenericErrorMessage is the only error text the browser shows.
const GenericErrorMessage = "Something went wrong while loading the content"

// Fetcher retrieves both the hub document and its collections.
type Fetcher interface {
	hub.HubFetcher
	hub.CollectionFetcher
}

// selection is the most recently activated tile.
type selection struct {
	cursor focus.Cursor
	item   hub.Item
}

// Model holds the TUI application state
type Model struct {
	// Core components
	ctx     context.Context
	fetcher Fetcher
	logger  *logging.Logger
	keymap  *keymap.Keymap
	styles  *styles.ThemedStyles
	spinner spinner.Model

	hubURL    string
	tileWidth int

	// Load state. run is nil until the hub document arrives.
	mode     keymap.Mode
	run      *hub.Assembly
	grid     hub.Grid
	focus    *focus.Controller
	loadErr  error
	attempts int

	// UI state
	selected *selection
	width    int
	height   int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithHubURL sets the URL shown in the header.
func WithHubURL(url string) Option {
	return func(m *Model) {
		m.hubURL = url
	}
}

// WithLogger sets the logger. The browser owns the terminal, so the logger
// should write to a file.
func WithLogger(l *logging.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l.WithComponent("tui")
		}
	}
}

// WithTheme selects the color theme. Unknown names fall back to the default.
func WithTheme(name string) Option {
	return func(m *Model) {
		m.setTheme(styles.ThemeName(name))
	}
}

// WithTileWidth sets the tile width in cells. Zero keeps DefaultTileWidth.
func WithTileWidth(w int) Option {
	return func(m *Model) {
		if w > 0 {
			m.tileWidth = w
		}
	}
}

// WithKeymap replaces the default key bindings.
func WithKeymap(km *keymap.Keymap) Option {
	return func(m *Model) {
		if km != nil {
			m.keymap = km
		}
	}
}

// NewModel creates a new TUI model that loads from fetcher.
func NewModel(fetcher Fetcher, opts ...Option) Model {
	m := Model{
		ctx:       context.Background(),
		fetcher:   fetcher,
		logger:    logging.NopLogger(),
		keymap:    keymap.DefaultKeymap(),
		styles:    styles.GetActiveTheme(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		tileWidth: DefaultTileWidth,
		mode:      keymap.ModeLoading,
		focus:     focus.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.styles.Spinner
	return m
}

func (m *Model) setTheme(name styles.ThemeName) {
	m.styles = styles.ForTheme(name)
	m.spinner.Style = m.styles.Spinner
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode {
	return m.mode
}

// Grid returns the committed rows. It is the final grid once Mode is
// ModeBrowse.
func (m Model) Grid() hub.Grid {
	return m.grid
}

// Cursor returns the focused cell, or false when focus is inert.
func (m Model) Cursor() (focus.Cursor, bool) {
	return m.focus.Cursor()
}

// Selected returns the most recently selected tile.
func (m Model) Selected() (hub.Item, bool) {
	if m.selected == nil {
		return hub.Item{}, false
	}
	return m.selected.item, true
}

// Err returns the error behind the fallback view, if it is showing.
func (m Model) Err() error {
	return m.loadErr
}
