package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/session"
	"github.com/sadopc/taskpad/internal/store"
)

type taskFormModel struct {
	width  int
	height int

	formActive bool
	form       *huh.Form
	defaults   store.Preferences

	// Form field pointers (survive value copies)
	description *string
	category    *string
	dueDate     *string
	status      *string
	priority    *string
}

func newTaskFormModel(prefs store.Preferences) taskFormModel {
	desc, cat, due, st, pr := "", "", "", "", ""
	return taskFormModel{
		defaults:    prefs,
		description: &desc,
		category:    &cat,
		dueDate:     &due,
		status:      &st,
		priority:    &pr,
	}
}

func (f *taskFormModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

// reset drops any half-filled form.
func (f taskFormModel) reset() taskFormModel {
	f.formActive = false
	f.form = nil
	return f
}

func (f taskFormModel) update(msg tea.Msg, today string) (taskFormModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.New) || key.Matches(msg, keys.Enter) {
			return f.showForm(today)
		}
	}
	return f, nil
}

func (f taskFormModel) showForm(today string) (taskFormModel, tea.Cmd) {
	*f.description = ""
	*f.category = string(f.defaults.DefaultCategory)
	*f.dueDate = today
	*f.status = string(f.defaults.DefaultStatus)
	*f.priority = string(f.defaults.DefaultPriority)

	catOptions := make([]huh.Option[string], len(session.Categories))
	for i, c := range session.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}
	statusOptions := make([]huh.Option[string], len(session.Statuses))
	for i, s := range session.Statuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}
	priorityOptions := make([]huh.Option[string], len(session.Priorities))
	for i, p := range session.Priorities {
		priorityOptions[i] = huh.NewOption(string(p), string(p))
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(f.description),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(f.category),
			huh.NewInput().Title("Due Date (YYYY-MM-DD)").Value(f.dueDate).Validate(func(s string) error {
				_, err := session.ParseDate(s)
				return err
			}),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(f.status),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(f.priority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f taskFormModel) updateForm(msg tea.Msg) (taskFormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			return f.reset(), nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		in := f.input()
		f = f.reset()
		return f, func() tea.Msg { return taskSubmittedMsg{input: in} }
	}
	return f, cmd
}

// input builds the submission from the bound fields. The date was already
// checked by the form.
func (f taskFormModel) input() session.TaskInput {
	due, _ := session.ParseDate(*f.dueDate)
	return session.TaskInput{
		Description: *f.description,
		Category:    session.Category(*f.category),
		DueDate:     due,
		Status:      session.Status(*f.status),
		Priority:    session.Priority(*f.priority),
	}
}

func (f taskFormModel) view() string {
	w := f.width - 4
	if f.formActive && f.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Add a New Task"), "", f.form.View(),
		)
		return activePanelStyle.Width(w).Render(content)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Add a New Task"),
		"",
		subtitleStyle.Render("Tasks go to the Master List and last until this session ends."),
		"",
		mutedStyle.Render("Press n or enter to open the form."),
	)
	return panelStyle.Width(w).Render(content)
}
