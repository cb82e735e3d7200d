package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/store"
)

// PreferenceRepo is the preference persistence the settings view needs.
type PreferenceRepo interface {
	GetPreference() (*store.UserPreference, error)
	SavePreference(themeID int, mode store.ThemeMode) (*store.UserPreference, error)
}

type settingsModel struct {
	repo   PreferenceRepo
	width  int
	height int

	pref       store.UserPreference
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	themeID *string
	mode    *string
}

func newSettingsModel(repo PreferenceRepo) settingsModel {
	id, mode := "0", string(store.ThemeDark)
	return settingsModel{
		repo:    repo,
		pref:    store.UserPreference{ThemeMode: store.ThemeDark},
		themeID: &id,
		mode:    &mode,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		pref, err := repo.GetPreference()
		if err != nil {
			return statusMsg{text: "Load preferences: " + err.Error(), isError: true}
		}
		return preferenceMsg{pref: pref}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case preferenceMsg:
		s.pref = *msg.pref
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.themeID = strconv.Itoa(themeIndex(s.pref.ThemeID))
	*s.mode = string(s.pref.ThemeMode)

	themeOptions := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render("●")
		themeOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, t.Name), strconv.Itoa(i))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Select Theme").Options(themeOptions...).Value(s.themeID),
			huh.NewSelect[string]().Title("Mode").
				Options(
					huh.NewOption("Dark", string(store.ThemeDark)),
					huh.NewOption("Light", string(store.ThemeLight)),
				).Value(s.mode),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save(*s.themeID, *s.mode)
	}

	return s, cmd
}

func (s settingsModel) save(themeID, mode string) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		id, err := strconv.Atoi(themeID)
		if err != nil {
			return statusMsg{text: "Invalid theme: " + themeID, isError: true}
		}
		m, err := store.ParseThemeMode(mode)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		pref, err := repo.SavePreference(id, m)
		if err != nil {
			return statusMsg{text: "Save preferences: " + err.Error(), isError: true}
		}
		return preferenceMsg{pref: pref}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	t := themes[themeIndex(s.pref.ThemeID)]
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render("●")

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render("Theme"), dot+" "+highlightStyle.Render(t.Name)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render("Mode"), highlightStyle.Render(string(s.pref.ThemeMode))),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
