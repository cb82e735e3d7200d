package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/store"
)

// theme is a selectable accent colour; the index is stored as app_theme_id.
type theme struct {
	Name    string
	Primary string
}

var themes = []theme{
	{"Violet", "#6C63FF"},
	{"Teal", "#2EC4B6"},
	{"Coral", "#FF6B6B"},
	{"Amber", "#F39C12"},
	{"Emerald", "#2ECC71"},
	{"Sky", "#3498DB"},
}

// Color palette
var (
	colorPrimary   = lipgloss.Color(themes[0].Primary)
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	doneItemStyle     lipgloss.Style
	trophyStyle       lipgloss.Style
)

func init() {
	buildStyles()
}

// themeIndex clamps a stored theme id to the palette.
func themeIndex(id int) int {
	if id < 0 || id >= len(themes) {
		return 0
	}
	return id
}

// applyTheme switches the palette to the saved preference and rebuilds
// every style.
func applyTheme(pref store.UserPreference) {
	colorPrimary = lipgloss.Color(themes[themeIndex(pref.ThemeID)].Primary)
	if pref.ThemeMode == store.ThemeLight {
		colorFg = lipgloss.Color("#1A1B26")
		colorMuted = lipgloss.Color("#8A8FA3")
		colorSubtle = lipgloss.Color("#C8CCD9")
	} else {
		colorFg = lipgloss.Color("#C0CAF5")
		colorMuted = lipgloss.Color("#666666")
		colorSubtle = lipgloss.Color("#414868")
	}
	buildStyles()
}

func buildStyles() {
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	accentStyle = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)
	doneItemStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)

	trophyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)
}
