package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/export"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators the TUI is built on.
type Deps struct {
	Store     *store.Store
	Projects  *state.Projects
	Entries   *state.Entries
	Log       *zap.Logger
	ExportDir string
}

// App is the root Bubble Tea model.
type App struct {
	deps   Deps
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	projects projectsModel
	entries  entriesModel
	success  successModel
	settings settingsModel

	projectsCh <-chan struct{}
	entriesCh  <-chan struct{}
	unsubs     []func()

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(d Deps) App {
	h := help.New()
	h.ShowAll = false

	pch, punsub := d.Projects.Subscribe()
	ech, eunsub := d.Entries.Subscribe()

	return App{
		deps:       d,
		activeView: viewProjects,
		projects:   newProjectsModel(d.Projects, d.Store.ProjectProgress),
		entries:    newEntriesModel(d.Entries),
		success:    newSuccessModel(d.Entries),
		settings:   newSettingsModel(d.Store),
		projectsCh: pch,
		entriesCh:  ech,
		unsubs:     []func(){punsub, eunsub},
		help:       h,
	}
}

// Close drops the state subscriptions; pending waits return nil.
func (a App) Close() {
	for _, u := range a.unsubs {
		u()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.projects.load(),
		a.projects.loadProgress(),
		a.settings.refresh(),
		waitForChange(a.projectsCh, projectsChangedMsg{}),
		waitForChange(a.entriesCh, entriesChangedMsg{}),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.projects.setSize(a.width, contentHeight)
		a.entries.setSize(a.width, contentHeight)
		a.success.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewProjects
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = a.checklistView()
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			switch a.activeView {
			case viewProjects:
				a.activeView = a.checklistView()
			case viewEntries, viewSuccess:
				a.activeView = viewSettings
			default:
				a.activeView = viewProjects
			}
			return a, nil
		case key.Matches(msg, keys.Back):
			if a.activeView == viewEntries || a.activeView == viewSuccess {
				a.activeView = viewProjects
				return a, nil
			}
		}

	case projectsChangedMsg:
		a.projects.sync()
		// the open project may have been deleted here or by another process
		if p := a.entries.project; p != nil && !a.projects.has(p.ID) {
			a.entries.project = nil
			a.entries.entries = nil
			a.entries.cursor = 0
			a.success.project = nil
			if a.activeView == viewEntries || a.activeView == viewSuccess {
				a.activeView = viewProjects
			}
		}
		return a, tea.Batch(
			waitForChange(a.projectsCh, projectsChangedMsg{}),
			a.projects.loadProgress(),
		)

	case entriesChangedMsg:
		a.entries.sync()
		if a.activeView == viewEntries && a.checklistDone() {
			a.activeView = viewSuccess
		}
		return a, tea.Batch(
			waitForChange(a.entriesCh, entriesChangedMsg{}),
			a.projects.loadProgress(),
		)

	case openProjectMsg:
		p := msg.project
		a.entries.project = &p
		a.entries.entries = nil
		a.entries.cursor = 0
		a.success.project = &p
		a.activeView = viewEntries
		return a, a.entries.load(p.ID)

	case entriesResetMsg:
		if a.activeView == viewSuccess {
			a.activeView = viewEntries
		}
		a.status = "Checklist reset"
		a.statusErr = false
		return a, nil

	case progressMsg:
		a.projects.tally = msg.progress
		return a, nil

	case preferenceMsg:
		applyTheme(*msg.pref)
		a.settings.pref = *msg.pref
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			a.deps.Log.Warn("tui", zap.String("status", msg.text))
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// checklistDone reports whether the open project's checklist is complete.
func (a App) checklistDone() bool {
	p := a.entries.project
	return p != nil && a.deps.Entries.ProjectID() == p.ID && a.deps.Entries.AllCompleted()
}

func (a App) checklistView() viewState {
	if a.checklistDone() {
		return viewSuccess
	}
	return viewEntries
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewEntries:
		a.entries, cmd = a.entries.update(msg)
	case viewSuccess:
		a.success, cmd = a.success.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewProjects:
		return a.projects.formActive
	case viewEntries:
		return a.entries.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewProjects:
		content = a.projects.view()
	case viewEntries:
		content = a.entries.view()
	case viewSuccess:
		content = a.success.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	active := a.activeView
	if active == viewSuccess {
		active = viewEntries
	}

	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("ticklist")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"), "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	s, dir := a.deps.Store, a.deps.ExportDir
	return func() tea.Msg {
		projects, entries, err := export.Collect(s)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		dateStr := time.Now().Format("2006-01-02")
		if format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("ticklist-export-%s.csv", dateStr))
			if err := export.ToCSV(projects, entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		path := filepath.Join(dir, fmt.Sprintf("ticklist-export-%s.json", dateStr))
		if err := export.ToJSON(projects, entries, path); err != nil {
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
