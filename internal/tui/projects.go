package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
)

type projectsModel struct {
	state    *state.Projects
	progress func() ([]store.Progress, error)
	width    int
	height   int

	projects []store.Project
	tally    []store.Progress
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
}

func newProjectsModel(ps *state.Projects, progress func() ([]store.Progress, error)) projectsModel {
	title, desc := "", ""
	return projectsModel{
		state:           ps,
		progress:        progress,
		formTitle:       &title,
		formDescription: &desc,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p projectsModel) load() tea.Cmd {
	return func() tea.Msg {
		if err := p.state.Load(); err != nil {
			return statusMsg{text: "Load projects: " + err.Error(), isError: true}
		}
		return nil
	}
}

func (p projectsModel) loadProgress() tea.Cmd {
	return func() tea.Msg {
		progress, err := p.progress()
		if err != nil {
			return statusMsg{text: "Load progress: " + err.Error(), isError: true}
		}
		return progressMsg{progress: progress}
	}
}

// sync pulls the cached projects after a change notification.
func (p *projectsModel) sync() {
	p.projects = p.state.All()
	p.cursor = clamp(p.cursor, len(p.projects))
}

func (p projectsModel) has(id int64) bool {
	return slices.ContainsFunc(p.projects, func(pr store.Project) bool { return pr.ID == id })
}

func (p projectsModel) selected() (store.Project, bool) {
	if p.cursor >= len(p.projects) {
		return store.Project{}, false
	}
	return p.projects[p.cursor], true
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case progressMsg:
		p.tally = msg.progress
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if proj, ok := p.selected(); ok {
				return p, func() tea.Msg { return openProjectMsg{project: proj} }
			}
		case key.Matches(msg, keys.New):
			return p.showNewProjectForm()
		case key.Matches(msg, keys.Delete):
			if proj, ok := p.selected(); ok {
				ps := p.state
				return p, func() tea.Msg {
					if err := ps.Delete(proj.ID); err != nil {
						return statusMsg{text: "Delete project: " + err.Error(), isError: true}
					}
					return statusMsg{text: fmt.Sprintf("Deleted %q", proj.Title)}
				}
			}
		}
	}
	return p, nil
}

func (p projectsModel) showNewProjectForm() (projectsModel, tea.Cmd) {
	*p.formTitle = ""
	*p.formDescription = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Title").Value(p.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description (optional)").Value(p.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		in := store.ProjectInput{Title: strings.TrimSpace(*p.formTitle)}
		if d := strings.TrimSpace(*p.formDescription); d != "" {
			in.Description = &d
		}
		ps := p.state
		return p, func() tea.Msg {
			if _, err := ps.Create(in); err != nil {
				return statusMsg{text: "Create project: " + err.Error(), isError: true}
			}
			return statusMsg{text: fmt.Sprintf("Created %q", in.Title)}
		}
	}

	return p, cmd
}

func (p projectsModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Project"), "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Projects")
	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No Projects. Add one to view."),
			mutedStyle.Render("Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	counts := make(map[int64]store.Progress, len(p.tally))
	for _, pr := range p.tally {
		counts[pr.ProjectID] = pr
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %-10s %s", "Title", "Done", "Description")))

	for i, proj := range p.projects {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		done := "-"
		if c, ok := counts[proj.ID]; ok {
			done = fmt.Sprintf("%d/%d", c.Completed, c.Total)
			if c.Total > 0 && c.Completed == c.Total {
				done = successStyle.Render(done + " ✓")
			}
		}
		desc := ""
		if proj.Description != nil {
			desc = *proj.Description
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s ", cursor, proj.Title))+fmt.Sprintf("%-10s ", done)+mutedStyle.Render(desc))
	}

	if chart := p.renderChart(w - 4); chart != "" {
		rows = append(rows, "", chart)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  enter: open checklist"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderChart draws completed versus open entries per project.
func (p projectsModel) renderChart(width int) string {
	if len(p.tally) == 0 || width < 20 {
		return ""
	}
	height := 8
	if p.height > 30 {
		height = 12
	}

	chart := barchart.New(width, height)
	var bars []barchart.BarData
	for _, pr := range p.tally {
		bars = append(bars, barchart.BarData{
			Label: truncate(pr.ProjectTitle, 8),
			Values: []barchart.BarValue{
				{Name: "done", Value: float64(pr.Completed), Style: lipgloss.NewStyle().Foreground(colorSuccess)},
				{Name: "open", Value: float64(pr.Total - pr.Completed), Style: lipgloss.NewStyle().Foreground(colorSubtle)},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
