package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/hubview/internal/hub"
	"github.com/Iron-Ham/hubview/internal/tui/keymap"
	"github.com/Iron-Ham/hubview/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Used until the first WindowSizeMsg arrives.
	fallbackWidth  = 80
	fallbackHeight = 24

	headerHeight   = 2 // title + blank line
	footerHeight   = 3 // blank line + status + help
	scrollHintRows = 2 // "more rows" hints above and below the grid

	tileLines = 2 // headline + id
	tileGap   = 1
	edgeHint  = 2 // "‹" or "›" plus a space, on each side of a row
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case keymap.ModeError:
		b.WriteString(m.renderError())
	case keymap.ModeBrowse:
		b.WriteString(m.renderBrowse())
	default:
		b.WriteString(m.renderLoading())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) size() (width, height int) {
	width, height = m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return width, height
}

func (m Model) renderHeader() string {
	width, _ := m.size()
	title := m.styles.Title.Render("hubview")
	if m.hubURL == "" {
		return title
	}
	room := width - lipgloss.Width(title) - 2
	return title + "  " + m.styles.Subtitle.Render(util.Truncate(m.hubURL, room))
}

func (m Model) renderLoading() string {
	var line string
	if m.run == nil {
		line = m.spinner.View() + " Loading hub…"
	} else {
		progress := fmt.Sprintf("%d/%d rows resolved", m.run.Resolved(), m.run.Total())
		line = m.spinner.View() + " Loading rows… " + m.styles.Progress.Render(progress)
	}

	if m.grid.Empty() {
		return line
	}
	// Committed rows are shown while the rest load but cannot take focus yet.
	return line + "\n\n" + m.renderGrid(-1, -1, 2)
}

func (m Model) renderError() string {
	body := m.styles.ErrorTitle.Render(GenericErrorMessage) + "\n\n" +
		m.styles.Muted.Render("Press r or enter to retry")
	return m.styles.ErrorBox.Render(body)
}

func (m Model) renderBrowse() string {
	if m.grid.Empty() {
		return m.styles.Muted.Render("This hub has nothing to show.")
	}
	cur, ok := m.focus.Cursor()
	if !ok {
		return m.renderGrid(-1, -1, 0)
	}
	return m.renderGrid(cur.Row, cur.Column, 0)
}

// rowHeight is the number of lines one rendered row occupies.
func (m Model) rowHeight() int {
	return 1 + tileLines + m.styles.Tile.GetVerticalFrameSize() + 1
}

// tileOuterWidth is the number of columns one tile occupies, gap included.
func (m Model) tileOuterWidth() int {
	return m.tileWidth + m.styles.Tile.GetHorizontalBorderSize() + tileGap
}

// renderGrid renders the window of rows around focusRow, with the window of
// tiles in focusRow centered on focusCol. A negative focusRow renders the
// grid from the top with nothing focused. reserved is the number of lines
// the caller uses above the grid.
func (m Model) renderGrid(focusRow, focusCol, reserved int) string {
	width, height := m.size()
	rows := m.grid.Rows

	avail := height - headerHeight - footerHeight - scrollHintRows - reserved
	visible := max(1, avail/m.rowHeight())
	start, end := util.CenteredWindow(len(rows), max(focusRow, 0), visible)

	var b strings.Builder
	if start > 0 {
		b.WriteString(m.styles.ScrollHint.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for r := start; r < end; r++ {
		col := -1
		if r == focusRow {
			col = focusCol
		}
		b.WriteString(m.renderRow(rows[r], r == focusRow, col, width))
		if r < end-1 {
			b.WriteString("\n\n")
		}
	}
	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(m.styles.ScrollHint.Render(fmt.Sprintf("↓ %d more", len(rows)-end)))
	}
	return b.String()
}

func (m Model) renderRow(row hub.Row, focused bool, focusCol, width int) string {
	titleStyle := m.styles.RowTitle
	if focused {
		titleStyle = m.styles.RowTitleFocused
	}
	count := m.styles.Muted.Render(fmt.Sprintf(" (%d)", len(row.Items)))
	title := titleStyle.Render(util.Truncate(row.Name, width-lipgloss.Width(count))) + count

	visible := max(1, (width-2*edgeHint)/m.tileOuterWidth())
	start, end := util.CenteredWindow(len(row.Items), max(focusCol, 0), visible)

	left, right := "  ", "  "
	if start > 0 {
		left = m.styles.ScrollHint.Render("‹") + " "
	}
	if end < len(row.Items) {
		right = " " + m.styles.ScrollHint.Render("›")
	}

	parts := make([]string, 0, end-start+2)
	parts = append(parts, left)
	for c := start; c < end; c++ {
		tile := m.renderTile(row.Items[c], focused && c == focusCol)
		if c < end-1 {
			tile += strings.Repeat(" ", tileGap)
		}
		parts = append(parts, tile)
	}
	parts = append(parts, right)

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderTile(item hub.Item, focused bool) string {
	style := m.styles.Tile
	if focused {
		style = m.styles.TileFocused
	}
	inner := m.tileWidth - style.GetHorizontalPadding()

	headline := m.styles.TileHeadline.Render(util.Truncate(item.Headline(), inner))
	meta := m.styles.TileMeta.Render(util.Truncate(item.ID, inner))
	return style.Width(m.tileWidth).Render(headline + "\n" + meta)
}

func (m Model) renderStatus() string {
	if m.selected == nil {
		return ""
	}
	width, _ := m.size()
	status := m.styles.StatusBar.Render("Tile selected: " + m.selected.item.Headline())
	if art := m.selected.item.ArtworkURL(); art != "" {
		room := width - lipgloss.Width(status) - 2
		if room > 0 {
			status += "  " + m.styles.Muted.Render(util.Truncate(art, room))
		}
	}
	return status
}

func (m Model) renderHelp() string {
	entries := m.keymap.Help(m.mode)
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, m.styles.HelpKey.Render(e.Keys)+" "+m.styles.HelpBar.Render(e.Label))
	}
	return strings.Join(parts, "  ")
}
