package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
)

const trophy = `
   ___________
  '._==_==_=_.'
  .-\:      /-.
 | (|:.     |) |
  '-|:.     |-'
    \::.    /
     '::. .'
       ) (
     _.' '._
    '-------'`

type successModel struct {
	state  *state.Entries
	width  int
	height int

	project *store.Project
}

func newSuccessModel(es *state.Entries) successModel {
	return successModel{state: es}
}

func (m *successModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m successModel) update(msg tea.Msg) (successModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.project != nil {
		if key.Matches(km, keys.Reset) || key.Matches(km, keys.Enter) {
			return m, resetCmd(m.state, m.project.ID)
		}
	}
	return m, nil
}

func (m successModel) view() string {
	w := m.width - 4
	name := ""
	if m.project != nil {
		name = m.project.Title
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		trophyStyle.Render(trophy),
		"",
		successStyle.Bold(true).Render("All tasks completed"),
		mutedStyle.Render(name),
		"",
		accentStyle.Render("r: reset checklist")+mutedStyle.Render("  esc: back to projects"),
	)
	return activePanelStyle.Width(w).Align(lipgloss.Center).Render(content)
}
