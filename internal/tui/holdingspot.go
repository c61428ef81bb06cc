package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/export"
	"github.com/sadopc/taskpad/internal/session"
)

type holdingSpotModel struct {
	width  int
	height int

	ideas []session.Idea
	empty bool
	ended string
	table table.Model
}

func newHoldingSpotModel() holdingSpotModel {
	t := table.New(
		table.WithColumns(ideaColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return holdingSpotModel{table: t, empty: true}
}

func (m *holdingSpotModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetColumns(ideaColumns(w - 8))
	m.table.SetHeight(max(3, h-10))
}

func ideaColumns(width int) []table.Column {
	captured := 20
	return []table.Column{
		{Title: "Idea", Width: max(12, width-captured-4)},
		{Title: "Captured On", Width: captured},
	}
}

func (m holdingSpotModel) refresh(s *session.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ideas, err := s.ViewIdeas(id)
		return holdingDataMsg{ideas: ideas, err: err}
	}
}

func (m holdingSpotModel) update(msg tea.Msg) (holdingSpotModel, tea.Cmd) {
	switch msg := msg.(type) {
	case holdingDataMsg:
		m.setIdeas(msg.ideas, msg.err)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *holdingSpotModel) setIdeas(ideas []session.Idea, err error) {
	m.ended = ""
	if err != nil {
		m.ideas = nil
		m.empty = true
		if errors.Is(err, session.ErrSessionNotFound) {
			m.ended = describeError(err)
		}
		m.table.SetRows(nil)
		return
	}
	m.ideas = ideas
	m.empty = false
	rows := make([]table.Row, len(ideas))
	for i, idea := range ideas {
		rows[i] = table.Row{idea.Text, idea.CapturedAt.Local().Format(export.CapturedLayout)}
	}
	m.table.SetRows(rows)
}

func (m holdingSpotModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Holding Spot")

	if m.ended != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render(m.ended),
		))
	}

	if m.empty || len(m.ideas) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("The Holding Spot is empty. Capture an idea to see it here."),
		)
		return panelStyle.Width(w).Render(content)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", mutedStyle.Render(pluralize(len(m.ideas), "idea"))),
		"",
		m.table.View(),
		"",
		mutedStyle.Render("  ↑/↓: scroll  2: capture idea  e: export"),
	))
}
