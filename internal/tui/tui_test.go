package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/ticklist/internal/logging"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	log := logging.Nop()
	projects, entries := state.NewProjects(s, log), state.NewEntries(s, log)
	projects.OnDelete(entries.Forget)
	return Deps{
		Store:     s,
		Projects:  projects,
		Entries:   entries,
		Log:       log,
		ExportDir: t.TempDir(),
	}
}

func newTestApp(t *testing.T) (App, Deps) {
	t.Helper()
	d := newTestDeps(t)
	app := NewApp(d)
	t.Cleanup(app.Close)
	app.width = 120
	app.height = 40
	app.projects.setSize(120, 36)
	app.entries.setSize(120, 36)
	app.success.setSize(120, 36)
	app.settings.setSize(120, 36)
	return app, d
}

func update(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	a, ok := m.(App)
	require.True(t, ok)
	return a, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// openProject runs the open + load round trip the way the program would.
func openProject(t *testing.T, app App, p store.Project) App {
	t.Helper()
	app, cmd := update(t, app, openProjectMsg{project: p})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	app, _ = update(t, app, entriesChangedMsg{})
	return app
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, viewProjects, app.activeView)
	assert.False(t, app.showHelp)
	assert.False(t, app.exportPicking)
	assert.False(t, app.isFormActive())
}

func TestAppLoadingState(t *testing.T) {
	d := newTestDeps(t)
	app := NewApp(d)
	defer app.Close()
	assert.Equal(t, "Loading...", app.View())
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)
	for _, v := range []viewState{viewProjects, viewEntries, viewSettings, viewSuccess} {
		app.activeView = v
		assert.NotEmpty(t, app.View(), "view %d rendered empty", v)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	header := app.renderHeader()
	for _, name := range viewNames {
		assert.Contains(t, header, name)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = update(t, app, statusMsg{text: "test status"})
	assert.Contains(t, app.renderFooter(), "test status")
}

func TestAppWindowResize(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = update(t, app, tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Equal(t, 90, app.width)
	assert.Equal(t, 26, app.entries.height)
}

func TestAppTabKeys(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = update(t, app, keyRune('3'))
	assert.Equal(t, viewSettings, app.activeView)

	app, _ = update(t, app, keyRune('2'))
	assert.Equal(t, viewEntries, app.activeView)

	app, _ = update(t, app, keyRune('1'))
	assert.Equal(t, viewProjects, app.activeView)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewEntries, app.activeView)
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := update(t, app, keyRune('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// ============================================================
// Projects view
// ============================================================

func TestProjectsChangedSyncsList(t *testing.T) {
	app, d := newTestApp(t)
	_, err := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	require.NoError(t, err)

	app, cmd := update(t, app, projectsChangedMsg{})
	assert.NotNil(t, cmd)
	require.Len(t, app.projects.projects, 1)
	assert.Contains(t, app.View(), "Groceries")
}

func TestProjectsEmptyState(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Contains(t, app.projects.view(), "No Projects. Add one to view.")
}

func TestProjectsEnterOpensProject(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	app, _ = update(t, app, projectsChangedMsg{})

	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(openProjectMsg)
	require.True(t, ok)
	assert.Equal(t, p.ID, msg.project.ID)
}

func TestProjectsDeleteKey(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Old"})
	d.Entries.Create(store.EntryInput{Title: "x", ProjectID: p.ID})
	app, _ = update(t, app, projectsChangedMsg{})

	_, cmd := update(t, app, keyRune('d'))
	require.NotNil(t, cmd)
	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.False(t, status.isError)
	assert.Empty(t, d.Projects.All())

	left, _ := d.Store.ListEntries(p.ID)
	assert.Empty(t, left)
}

func TestDeleteOpenCompletedProject(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	e, _ := d.Store.CreateEntry(store.EntryInput{Title: "Milk", ProjectID: p.ID})
	d.Store.ToggleEntry(e.ID)
	app, _ = update(t, app, projectsChangedMsg{})

	app = openProject(t, app, *p)
	require.Equal(t, viewSuccess, app.activeView)

	app, _ = update(t, app, keyRune('1'))
	_, cmd := update(t, app, keyRune('d'))
	require.NotNil(t, cmd)
	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	require.False(t, status.isError)

	app, _ = update(t, app, projectsChangedMsg{})
	app, _ = update(t, app, entriesChangedMsg{})

	assert.Nil(t, app.entries.project)
	assert.Nil(t, app.success.project)
	assert.Empty(t, d.Entries.All())
	assert.False(t, d.Entries.AllCompleted())

	app, _ = update(t, app, keyRune('2'))
	assert.Equal(t, viewEntries, app.activeView)
	assert.NotContains(t, app.View(), "All tasks completed")
	assert.Contains(t, app.View(), "Pick a project")
}

func TestProjectsNewOpensForm(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = update(t, app, keyRune('n'))
	assert.True(t, app.isFormActive())

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.isFormActive())
}

func TestProjectsProgressAndChart(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	e, _ := d.Entries.Create(store.EntryInput{Title: "Milk", ProjectID: p.ID})
	d.Entries.Toggle(e.ID)
	app, _ = update(t, app, projectsChangedMsg{})

	msg := app.projects.loadProgress()()
	pm, ok := msg.(progressMsg)
	require.True(t, ok)
	require.Len(t, pm.progress, 1)

	app, _ = update(t, app, pm)
	assert.NotEmpty(t, app.projects.renderChart(100))
	assert.Contains(t, app.projects.view(), "1/1")
}

func TestProjectsChartSkippedWhenNarrow(t *testing.T) {
	app, _ := newTestApp(t)
	app.projects.tally = []store.Progress{{ProjectID: 1, ProjectTitle: "A", Total: 1}}
	assert.Empty(t, app.projects.renderChart(10))
}

// ============================================================
// Checklist and success
// ============================================================

func TestOpenProjectShowsEmptyChecklist(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})

	app = openProject(t, app, *p)
	assert.Equal(t, viewEntries, app.activeView)
	assert.Empty(t, app.entries.entries)
	assert.Contains(t, app.entries.view(), "Checklist is empty. Add one to view.")
}

func TestChecklistCompletesToSuccess(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	d.Store.CreateEntry(store.EntryInput{Title: "Milk", ProjectID: p.ID})
	d.Store.CreateEntry(store.EntryInput{Title: "Eggs", ProjectID: p.ID})

	app = openProject(t, app, *p)
	require.Len(t, app.entries.entries, 2)

	// toggle Milk through the key binding
	_, cmd := update(t, app, keyRune('x'))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	app, _ = update(t, app, entriesChangedMsg{})
	assert.Equal(t, viewEntries, app.activeView)

	// toggle Eggs
	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = update(t, app, keyRune('x'))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	app, _ = update(t, app, entriesChangedMsg{})

	assert.Equal(t, viewSuccess, app.activeView)
	assert.Contains(t, app.View(), "All tasks completed")
}

func TestSuccessResetReturnsToChecklist(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	e, _ := d.Store.CreateEntry(store.EntryInput{Title: "Milk", ProjectID: p.ID})
	d.Store.ToggleEntry(e.ID)

	// an already finished project opens straight onto the success screen
	app = openProject(t, app, *p)
	require.Equal(t, viewSuccess, app.activeView)

	_, cmd := update(t, app, keyRune('r'))
	require.NotNil(t, cmd)
	msg := cmd()
	reset, ok := msg.(entriesResetMsg)
	require.True(t, ok)
	assert.Equal(t, p.ID, reset.projectID)

	app, _ = update(t, app, msg)
	app, _ = update(t, app, entriesChangedMsg{})
	assert.Equal(t, viewEntries, app.activeView)
	assert.False(t, d.Entries.AllCompleted())
	assert.Equal(t, "Checklist reset", app.status)
}

func TestStaleEntriesIgnored(t *testing.T) {
	app, d := newTestApp(t)
	a, _ := d.Projects.Create(store.ProjectInput{Title: "A"})
	b, _ := d.Projects.Create(store.ProjectInput{Title: "B"})
	e, _ := d.Store.CreateEntry(store.EntryInput{Title: "done", ProjectID: a.ID})
	d.Store.ToggleEntry(e.ID)
	require.NoError(t, d.Entries.Load(a.ID))

	// B is opened but its load has not run yet
	app, _ = update(t, app, openProjectMsg{project: *b})
	app, _ = update(t, app, entriesChangedMsg{})

	assert.Equal(t, viewEntries, app.activeView)
	assert.Nil(t, app.entries.entries)
}

func TestEscLeavesChecklist(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "P"})
	app = openProject(t, app, *p)

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewProjects, app.activeView)
}

func TestChecklistWithoutProject(t *testing.T) {
	app, _ := newTestApp(t)
	app.activeView = viewEntries
	assert.Contains(t, app.View(), "Pick a project")

	_, cmd := update(t, app, keyRune('x'))
	assert.Nil(t, cmd)
}

func TestChecklistNewOpensForm(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "P"})
	app = openProject(t, app, *p)

	app, _ = update(t, app, keyRune('n'))
	assert.True(t, app.isFormActive())
	assert.Equal(t, "", *app.entries.formTitle)
}

// ============================================================
// Settings and theme
// ============================================================

func TestPreferenceAppliesTheme(t *testing.T) {
	t.Cleanup(func() { applyTheme(store.UserPreference{ThemeMode: store.ThemeDark}) })
	app, _ := newTestApp(t)

	app, _ = update(t, app, preferenceMsg{pref: &store.UserPreference{ID: 1, ThemeID: 2, ThemeMode: store.ThemeLight}})
	assert.Equal(t, themes[2].Primary, string(colorPrimary))
	assert.Equal(t, 2, app.settings.pref.ThemeID)
	assert.Contains(t, app.settings.view(), themes[2].Name)
}

func TestSettingsSave(t *testing.T) {
	app, d := newTestApp(t)

	msg := app.settings.save("3", "light")()
	pm, ok := msg.(preferenceMsg)
	require.True(t, ok)
	assert.Equal(t, 3, pm.pref.ThemeID)

	stored, err := d.Store.GetPreference()
	require.NoError(t, err)
	assert.Equal(t, store.ThemeLight, stored.ThemeMode)
}

func TestSettingsSaveInvalid(t *testing.T) {
	app, _ := newTestApp(t)

	msg, ok := app.settings.save("3", "sepia")().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isError)

	msg, ok = app.settings.save("three", "dark")().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isError)
}

func TestSettingsRefresh(t *testing.T) {
	app, d := newTestApp(t)
	d.Store.SavePreference(4, store.ThemeDark)

	pm, ok := app.settings.refresh()().(preferenceMsg)
	require.True(t, ok)
	assert.Equal(t, 4, pm.pref.ThemeID)
}

func TestThemeIndex(t *testing.T) {
	assert.Equal(t, 0, themeIndex(-1))
	assert.Equal(t, 0, themeIndex(len(themes)))
	assert.Equal(t, 3, themeIndex(3))
}

// ============================================================
// Export
// ============================================================

func TestExportPicker(t *testing.T) {
	app, d := newTestApp(t)
	p, _ := d.Projects.Create(store.ProjectInput{Title: "Groceries"})
	d.Store.CreateEntry(store.EntryInput{Title: "Milk", ProjectID: p.ID})

	app, _ = update(t, app, keyRune('e'))
	require.True(t, app.exportPicking)
	assert.Contains(t, app.View(), "Export Format")

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, app.exportCursor)

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)
	assert.Equal(t, ".json", filepath.Ext(done.path))

	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Milk")

	app, _ = update(t, app, done)
	assert.True(t, strings.HasPrefix(app.status, "Exported to "))
}

// ============================================================
// Helpers
// ============================================================

func TestWaitForChange(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	assert.Equal(t, entriesChangedMsg{}, waitForChange(ch, entriesChangedMsg{})())

	close(ch)
	assert.Nil(t, waitForChange(ch, entriesChangedMsg{})())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(5, 0))
	assert.Equal(t, 2, clamp(5, 3))
	assert.Equal(t, 1, clamp(1, 3))
	assert.Equal(t, 0, clamp(-1, 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 8))
	assert.Equal(t, "Grocerie…", truncate("Groceries list", 9))
}

func TestViewNames(t *testing.T) {
	assert.Len(t, viewNames, 3)
	assert.Equal(t, "Checklist", viewNames[viewEntries])
}

func TestKeyMapHelp(t *testing.T) {
	assert.NotEmpty(t, keys.ShortHelp())
	groups := keys.FullHelp()
	require.NotEmpty(t, groups)
	for i, g := range groups {
		assert.NotEmpty(t, g, "full help group %d is empty", i)
	}
}

// Styles smoke test: just verify they render.
func TestStylesRender(t *testing.T) {
	for _, pref := range []store.UserPreference{
		{ThemeID: 1, ThemeMode: store.ThemeLight},
		{ThemeID: 0, ThemeMode: store.ThemeDark},
	} {
		applyTheme(pref)
		for _, s := range []string{
			activeTabStyle.Render("t"), inactiveTabStyle.Render("t"), panelStyle.Render("t"),
			activePanelStyle.Render("t"), titleStyle.Render("t"), successStyle.Render("t"),
			mutedStyle.Render("t"), doneItemStyle.Render("t"), trophyStyle.Render("t"),
		} {
			assert.NotEmpty(t, s)
		}
	}
}
