package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/session"
)

type masterListModel struct {
	width  int
	height int

	tasks []session.Task
	empty bool
	ended string
	table table.Model
}

func newMasterListModel() masterListModel {
	t := table.New(
		table.WithColumns(taskColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return masterListModel{table: t, empty: true}
}

func (m *masterListModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetColumns(taskColumns(w - 8))
	m.table.SetHeight(max(3, h-10))
}

// taskColumns splits width across the five Master List columns, giving the
// description whatever the fixed columns leave.
func taskColumns(width int) []table.Column {
	cat, due, status, prio := 20, 12, 11, 9
	desc := max(12, width-cat-due-status-prio-10)
	return []table.Column{
		{Title: "Task", Width: desc},
		{Title: "Category", Width: cat},
		{Title: "Due Date", Width: due},
		{Title: "Status", Width: status},
		{Title: "Priority", Width: prio},
	}
}

func (m masterListModel) refresh(s *session.Store, id string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := s.ViewTasks(id)
		return masterDataMsg{tasks: tasks, err: err}
	}
}

func (m masterListModel) update(msg tea.Msg) (masterListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case masterDataMsg:
		m.setTasks(msg.tasks, msg.err)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *masterListModel) setTasks(tasks []session.Task, err error) {
	m.ended = ""
	if err != nil {
		m.tasks = nil
		m.empty = true
		if errors.Is(err, session.ErrSessionNotFound) {
			m.ended = describeError(err)
		}
		m.table.SetRows(nil)
		return
	}
	m.tasks = tasks
	m.empty = false
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = table.Row{
			t.Description,
			string(t.Category),
			t.DueDate.Format(session.DateLayout),
			string(t.Status),
			string(t.Priority),
		}
	}
	m.table.SetRows(rows)
}

func (m masterListModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Master List")

	if m.ended != "" {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", errorStyle.Render(m.ended),
		))
	}

	if m.empty || len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("The Master List is empty. Add a task to see it here."),
		)
		return panelStyle.Width(w).Render(content)
	}

	pending := 0
	for _, t := range m.tasks {
		if t.Status == session.StatusPending {
			pending++
		}
	}
	counts := mutedStyle.Render(fmt.Sprintf("%s, %d pending", pluralize(len(m.tasks), "task"), pending))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", counts),
		"",
		m.table.View(),
		"",
		mutedStyle.Render("  ↑/↓: scroll  1: add task  e: export"),
	))
}
