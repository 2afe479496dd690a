package tui

import (
	"github.com/Iron-Ham/hubview/internal/errors"
	"github.com/Iron-Ham/hubview/internal/focus"
	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/Iron-Ham/hubview/internal/tui/keymap"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the spinner and the first hub fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchHub(m.ctx, m.fetcher))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case spinner.TickMsg:
		// Dropping ticks outside loading ends the tick chain; a retry
		// starts a new one.
		if m.mode != keymap.ModeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case hubLoadedMsg:
		return m.handleHubLoaded(msg)

	case rowResolvedMsg:
		return m.handleRowResolved(msg)

	case themeChangedMsg:
		m.setTheme(msg.theme)
		m.logger.Info("theme changed", "theme", string(m.styles.Name))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(msg, m.mode)
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdMoveLeft:
		m.move(focus.Left)
	case keymap.CmdMoveRight:
		m.move(focus.Right)
	case keymap.CmdMoveUp:
		m.move(focus.Up)
	case keymap.CmdMoveDown:
		m.move(focus.Down)
	case keymap.CmdSelect:
		m.selectFocused()
	case keymap.CmdRetry:
		return m.retry()
	}
	return m, nil
}

func (m *Model) move(d focus.Direction) {
	if !m.focus.Move(d) {
		return
	}
	cur, _ := m.focus.Cursor()
	m.logger.Debug("focus moved", "direction", d.String(), "row", cur.Row, "column", cur.Column)
}

func (m *Model) selectFocused() {
	cur, ok := m.focus.Select()
	if !ok {
		return
	}
	item, ok := m.grid.Tile(cur.Row, cur.Column)
	if !ok {
		return
	}
	m.selected = &selection{cursor: cur, item: item}
	m.logger.Info("tile selected",
		"row", cur.Row,
		"column", cur.Column,
		"id", item.ID,
		"headline", item.Headline(),
		"artwork", item.ArtworkURL(),
	)
}

// retry discards everything from the failed load and fetches the hub again.
func (m Model) retry() (tea.Model, tea.Cmd) {
	m.attempts++
	m.logger.Info("retrying hub fetch", "attempt", m.attempts)

	m.mode = keymap.ModeLoading
	m.run = nil
	m.grid = hub.Grid{}
	m.focus.Clear()
	m.loadErr = nil
	m.selected = nil

	return m, tea.Batch(m.spinner.Tick, fetchHub(m.ctx, m.fetcher))
}

func (m Model) handleHubLoaded(msg hubLoadedMsg) (tea.Model, tea.Cmd) {
	if m.mode != keymap.ModeLoading || m.run != nil {
		return m, nil
	}

	if msg.err != nil {
		m.mode = keymap.ModeError
		m.loadErr = msg.err
		m.logger.Error("hub fetch failed",
			"url", m.hubURL,
			"error", msg.err.Error(),
			"retryable", errors.IsRetryable(msg.err),
			"severity", errors.GetSeverity(msg.err).String(),
		)
		return m, nil
	}

	m.run = hub.NewAssembly(msg.doc)
	log := m.logger.WithRun(m.run.ID())
	pending := m.run.Pending()
	log.Info("assembly started", "rows", m.run.Total(), "pending", len(pending))
	for _, o := range m.run.Omitted() {
		log.WithRow(o.Index).Warn("row omitted", "name", o.Name, "error", o.Err.Error())
	}

	m.grid = m.run.Grid()
	if m.run.Sealed() {
		m.seal()
		return m, nil
	}

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, p := range pending {
		cmds = append(cmds, fetchRow(m.ctx, m.fetcher, m.run.ID(), p))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleRowResolved(msg rowResolvedMsg) (tea.Model, tea.Cmd) {
	if m.run == nil || msg.runID != m.run.ID() {
		m.logger.Debug("discarding row result from a superseded run", "run_id", msg.runID, "row", msg.index)
		return m, nil
	}

	log := m.logger.WithRun(msg.runID).WithRow(msg.index)
	omittedBefore := len(m.run.Omitted())
	committed := m.run.Resolve(msg.index, msg.col, msg.err)
	if omitted := m.run.Omitted(); len(omitted) > omittedBefore {
		o := omitted[omittedBefore]
		log.Warn("row omitted", "name", o.Name, "error", o.Err.Error())
	}
	for _, row := range committed {
		log.Debug("row committed", "committed_row", row.Index, "name", row.Name, "tiles", len(row.Items))
	}

	m.grid = m.run.Grid()
	if m.run.Sealed() {
		m.seal()
	}
	return m, nil
}

// seal hands the final grid to the focus controller and enters browsing.
func (m *Model) seal() {
	m.grid = m.run.Grid()
	m.focus.Reset(m.grid)
	m.mode = keymap.ModeBrowse
	m.logger.WithRun(m.run.ID()).Info("assembly sealed",
		"grid", m.grid.String(),
		"omitted", len(m.run.Omitted()),
	)
}
