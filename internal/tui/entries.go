package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
)

type entriesModel struct {
	state  *state.Entries
	width  int
	height int

	project *store.Project
	entries []store.Entry
	cursor  int

	formActive bool
	form       *huh.Form
	formTitle  *string
}

func newEntriesModel(es *state.Entries) entriesModel {
	title := ""
	return entriesModel{state: es, formTitle: &title}
}

func (m *entriesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m entriesModel) load(projectID int64) tea.Cmd {
	es := m.state
	return func() tea.Msg {
		if err := es.Load(projectID); err != nil {
			return statusMsg{text: "Load checklist: " + err.Error(), isError: true}
		}
		return nil
	}
}

// sync pulls the cached entries, ignoring a cache still holding another project.
func (m *entriesModel) sync() {
	if m.project == nil || m.state.ProjectID() != m.project.ID {
		m.entries = nil
		return
	}
	m.entries = m.state.All()
	m.cursor = clamp(m.cursor, len(m.entries))
}

func (m entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.project == nil {
		return m, nil
	}

	es := m.state
	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Enter):
		if m.cursor < len(m.entries) {
			id := m.entries[m.cursor].ID
			return m, func() tea.Msg {
				if _, err := es.Toggle(id); err != nil {
					return statusMsg{text: "Toggle: " + err.Error(), isError: true}
				}
				return nil
			}
		}
	case key.Matches(km, keys.New):
		return m.showNewEntryForm()
	case key.Matches(km, keys.Reset):
		return m, resetCmd(es, m.project.ID)
	}
	return m, nil
}

// resetCmd restarts a checklist; the success screen uses it too.
func resetCmd(es *state.Entries, projectID int64) tea.Cmd {
	return func() tea.Msg {
		if err := es.ResetAll(projectID); err != nil {
			return statusMsg{text: "Reset checklist: " + err.Error(), isError: true}
		}
		return entriesResetMsg{projectID: projectID}
	}
}

func (m entriesModel) showNewEntryForm() (entriesModel, tea.Cmd) {
	*m.formTitle = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Add Task").Placeholder("Enter your task title...").Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		title := strings.TrimSpace(*m.formTitle)
		if title == "" || m.project == nil {
			return m, nil
		}
		in := store.EntryInput{Title: title, ProjectID: m.project.ID}
		es := m.state
		return m, func() tea.Msg {
			if _, err := es.Create(in); err != nil {
				return statusMsg{text: "Add task: " + err.Error(), isError: true}
			}
			return nil
		}
	}

	return m, cmd
}

func (m entriesModel) view() string {
	w := m.width - 4

	if m.project == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Checklist"),
			"",
			mutedStyle.Render("Pick a project on the Projects tab first."),
		))
	}

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.project.Title), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	done := 0
	for _, e := range m.entries {
		if e.Completed {
			done++
		}
	}
	title := titleStyle.Render(m.project.Title) + mutedStyle.Render(fmt.Sprintf("  %d/%d", done, len(m.entries)))

	if len(m.entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Checklist is empty. Add one to view."),
			mutedStyle.Render("Press n to add a task."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		box := "[ ]"
		style := normalItemStyle
		if e.Completed {
			box = successStyle.Render("[x]")
			style = doneItemStyle
		}
		if i == m.cursor && !e.Completed {
			style = selectedItemStyle
		}
		rows = append(rows, cursor+box+" "+style.Render(e.Title))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new task  r: reset  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
