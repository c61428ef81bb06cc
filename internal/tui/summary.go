package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/session"
)

type summaryModel struct {
	width  int
	height int

	tasks []session.Task
	ideas int

	chart barchart.Model
}

func newSummaryModel() summaryModel {
	return summaryModel{chart: barchart.New(60, 12)}
}

func (s *summaryModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s summaryModel) refresh(st *session.Store, id string) tea.Cmd {
	return func() tea.Msg {
		// An empty table is a normal state here, so errors collapse to zero.
		tasks, _ := st.ViewTasks(id)
		ideas, _ := st.ViewIdeas(id)
		return summaryDataMsg{tasks: tasks, ideas: len(ideas)}
	}
}

func (s summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	if msg, ok := msg.(summaryDataMsg); ok {
		s.tasks = msg.tasks
		s.ideas = msg.ideas
		s.buildChart()
	}
	return s, nil
}

// categoryCounts tallies tasks per category and status.
func categoryCounts(tasks []session.Task) map[session.Category]map[session.Status]int {
	counts := make(map[session.Category]map[session.Status]int, len(session.Categories))
	for _, c := range session.Categories {
		counts[c] = make(map[session.Status]int, len(session.Statuses))
	}
	for _, t := range tasks {
		if m, ok := counts[t.Category]; ok {
			m[t.Status]++
		}
	}
	return counts
}

func statusStyle(st session.Status) lipgloss.Style {
	if st == session.StatusCompleted {
		return lipgloss.NewStyle().Foreground(colorSuccess)
	}
	return lipgloss.NewStyle().Foreground(colorWarning)
}

func (s *summaryModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 30 {
		chartWidth = 30
	}
	chartHeight := 10
	if s.height > 30 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	counts := categoryCounts(s.tasks)
	var bars []barchart.BarData
	for _, c := range session.Categories {
		var values []barchart.BarValue
		for _, st := range session.Statuses {
			if n := counts[c][st]; n > 0 {
				values = append(values, barchart.BarValue{
					Name:  string(st),
					Value: float64(n),
					Style: statusStyle(st),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  truncate(string(c), 8),
			Values: values,
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s summaryModel) view() string {
	w := s.width - 4

	completed := 0
	for _, t := range s.tasks {
		if t.Status == session.StatusCompleted {
			completed++
		}
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		highlightStyle.Render(pluralize(len(s.tasks), "task")), "   ",
		successStyle.Render(fmt.Sprintf("%d completed", completed)), "   ",
		warningStyle.Render(fmt.Sprintf("%d pending", len(s.tasks)-completed)), "   ",
		highlightStyle.Render(pluralize(s.ideas, "idea")),
	)

	if len(s.tasks) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Summary"), "", stats, "",
			mutedStyle.Render("  No tasks yet in this session"),
		))
	}

	legend := "  " + statusStyle(session.StatusPending).Render("● Pending") + "  " +
		statusStyle(session.StatusCompleted).Render("● Completed")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Summary"), "", stats, "",
		s.chart.View(), "", legend, s.renderCategoryLegend(), "",
		s.renderPriorityTable(w),
	))
}

func (s summaryModel) renderPriorityTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %8s %10s", "Priority", "Pending", "Completed")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 30))))

	for _, p := range session.Priorities {
		var pending, done int
		for _, t := range s.tasks {
			if t.Priority != p {
				continue
			}
			if t.Status == session.StatusCompleted {
				done++
			} else {
				pending++
			}
		}
		rows = append(rows, fmt.Sprintf("  %-10s %8d %10d", p, pending, done))
	}
	return strings.Join(rows, "\n")
}

// renderCategoryLegend maps the truncated bar labels back to full names.
func (s summaryModel) renderCategoryLegend() string {
	counts := categoryCounts(s.tasks)
	var items []string
	for i, c := range session.Categories {
		n := 0
		for _, v := range counts[c] {
			n += v
		}
		dot := lipgloss.NewStyle().Foreground(categoryColors[i%len(categoryColors)]).Render("●")
		items = append(items, fmt.Sprintf("%s %s (%d)", dot, c, n))
	}
	return "  " + strings.Join(items, "  ")
}
