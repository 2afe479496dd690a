package tui

import (
	"context"

	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/Iron-Ham/hubview/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// hubLoadedMsg carries the outcome of a hub document fetch.
type hubLoadedMsg struct {
	doc *hub.Document
	err error
}

// rowResolvedMsg carries the outcome of one row's collection fetch. runID
// ties it to the assembly run that issued the fetch.
type rowResolvedMsg struct {
	runID string
	index int
	col   *hub.Collection
	err   error
}

// themeChangedMsg is sent when the configured theme changes while running.
type themeChangedMsg struct {
	theme styles.ThemeName
}

// Commands

// fetchHub returns a command that loads the hub document.
func fetchHub(ctx context.Context, f hub.HubFetcher) tea.Cmd {
	return func() tea.Msg {
		doc, err := f.FetchHub(ctx)
		return hubLoadedMsg{doc: doc, err: err}
	}
}

// fetchRow returns a command that loads one pending row's collection.
func fetchRow(ctx context.Context, f hub.CollectionFetcher, runID string, row hub.PendingRow) tea.Cmd {
	return func() tea.Msg {
		col, err := f.FetchCollection(ctx, row.Href)
		return rowResolvedMsg{runID: runID, index: row.Index, col: col, err: err}
	}
}
