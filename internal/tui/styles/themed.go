package styles

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// ThemedStyles contains all the lipgloss styles built from a color palette.
// Styles are regenerated when the theme changes.
type ThemedStyles struct {
	Name ThemeName

	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	MutedColor     lipgloss.Color
	BorderColor    lipgloss.Color

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Grid
	RowTitle        lipgloss.Style
	RowTitleFocused lipgloss.Style
	Tile            lipgloss.Style
	TileFocused     lipgloss.Style
	TileHeadline    lipgloss.Style
	TileMeta        lipgloss.Style
	ScrollHint      lipgloss.Style

	// Loading and fallback views
	Spinner    lipgloss.Style
	Progress   lipgloss.Style
	ErrorBox   lipgloss.Style
	ErrorTitle lipgloss.Style

	// Footer
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style
	HelpKey   lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from the given color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		MutedColor:     p.Muted,
		BorderColor:    p.Border,
	}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.RowTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	s.RowTitleFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	// Both tile styles carry a border so focus does not shift the layout.
	s.Tile = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.TileFocused = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Primary).
		Background(p.Surface).
		Padding(0, 1)

	s.TileHeadline = lipgloss.NewStyle().
		Foreground(p.Text)

	s.TileMeta = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.ScrollHint = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.Spinner = lipgloss.NewStyle().
		Foreground(p.Primary)

	s.Progress = lipgloss.NewStyle().
		Foreground(p.Warning)

	s.ErrorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Padding(1, 3)

	s.ErrorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Error)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Secondary)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(p.Muted)

	s.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)

	return s
}

// ForTheme builds the styles for a named theme.
func ForTheme(name ThemeName) *ThemedStyles {
	if !IsValidTheme(string(name)) {
		name = ThemeDefault
	}
	s := NewThemedStyles(GetPalette(name))
	s.Name = name
	return s
}

var activeTheme atomic.Pointer[ThemedStyles]

func init() {
	activeTheme.Store(ForTheme(ThemeDefault))
}

// SetActiveTheme sets the process-wide theme used by newly created models.
func SetActiveTheme(name ThemeName) {
	activeTheme.Store(ForTheme(name))
}

// GetActiveTheme returns the currently active themed styles.
func GetActiveTheme() *ThemedStyles {
	return activeTheme.Load()
}
