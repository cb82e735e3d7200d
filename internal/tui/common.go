package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/ticklist/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewProjects viewState = iota
	viewEntries
	viewSettings
	viewSuccess
)

// viewNames are the tabs; the success screen takes over the checklist tab.
var viewNames = []string{"Projects", "Checklist", "Settings"}

// --- Messages ---

type projectsChangedMsg struct{}
type entriesChangedMsg struct{}

type openProjectMsg struct {
	project store.Project
}

type entriesResetMsg struct {
	projectID int64
}

type progressMsg struct {
	progress []store.Progress
}

type preferenceMsg struct {
	pref *store.UserPreference
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// waitForChange blocks on a state subscription and reports the change as msg.
// A closed channel ends the loop.
func waitForChange(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
