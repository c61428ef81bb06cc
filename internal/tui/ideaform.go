package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type ideaFormModel struct {
	width  int
	height int

	formActive bool
	form       *huh.Form
	text       *string
}

func newIdeaFormModel() ideaFormModel {
	text := ""
	return ideaFormModel{text: &text}
}

func (f *ideaFormModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f ideaFormModel) reset() ideaFormModel {
	f.formActive = false
	f.form = nil
	return f
}

func (f ideaFormModel) update(msg tea.Msg) (ideaFormModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.New) || key.Matches(msg, keys.Enter) {
			return f.showForm()
		}
	}
	return f, nil
}

func (f ideaFormModel) showForm() (ideaFormModel, tea.Cmd) {
	*f.text = ""
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Quick Idea").Value(f.text),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f ideaFormModel) updateForm(msg tea.Msg) (ideaFormModel, tea.Cmd) {
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
		text := *f.text
		f = f.reset()
		return f, func() tea.Msg { return ideaSubmittedMsg{text: text} }
	}
	return f, cmd
}

func (f ideaFormModel) view() string {
	w := f.width - 4
	if f.formActive && f.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Capture a Quick Idea"), "", f.form.View(),
		)
		return activePanelStyle.Width(w).Render(content)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Capture a Quick Idea"),
		"",
		subtitleStyle.Render("Ideas land in the Holding Spot with the time you captured them."),
		"",
		mutedStyle.Render("Press n or enter to open the form."),
	)
	return panelStyle.Width(w).Render(content)
}
