package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/session"
	"github.com/sadopc/taskpad/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	idleTimeout     *string
	throttleWindow  *string
	enforceThrottle *bool
	defaultCategory *string
	defaultStatus   *string
	defaultPriority *string
}

func newSettingsModel(s *store.Store) settingsModel {
	it, tw, dc, ds, dp := "", "", "", "", ""
	enforce := false
	return settingsModel{
		store:           s,
		idleTimeout:     &it,
		throttleWindow:  &tw,
		enforceThrottle: &enforce,
		defaultCategory: &dc,
		defaultStatus:   &ds,
		defaultPriority: &dp,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
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
	prefs, _ := s.store.LoadPreferences()
	*s.idleTimeout = strconv.Itoa(int(prefs.IdleTimeout / time.Second))
	*s.throttleWindow = strconv.Itoa(int(prefs.ThrottleWindow / time.Second))
	*s.enforceThrottle = prefs.EnforceThrottle
	*s.defaultCategory = string(prefs.DefaultCategory)
	*s.defaultStatus = string(prefs.DefaultStatus)
	*s.defaultPriority = string(prefs.DefaultPriority)

	catOptions := make([]huh.Option[string], len(session.Categories))
	for i, c := range session.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}
	statusOptions := make([]huh.Option[string], len(session.Statuses))
	for i, st := range session.Statuses {
		statusOptions[i] = huh.NewOption(string(st), string(st))
	}
	priorityOptions := make([]huh.Option[string], len(session.Priorities))
	for i, p := range session.Priorities {
		priorityOptions[i] = huh.NewOption(string(p), string(p))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Idle timeout (sec)").Value(s.idleTimeout).Validate(settingValidator(store.KeyIdleTimeout)),
			huh.NewInput().Title("Throttle window (sec)").Value(s.throttleWindow).Validate(settingValidator(store.KeyThrottleWindow)),
			huh.NewConfirm().Title("Reject fast submissions?").
				Description("Off: save and warn. On: refuse until the window passes.").
				Value(s.enforceThrottle),
		).Title("Session"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default category").Options(catOptions...).Value(s.defaultCategory),
			huh.NewSelect[string]().Title("Default status").Options(statusOptions...).Value(s.defaultStatus),
			huh.NewSelect[string]().Title("Default priority").Options(priorityOptions...).Value(s.defaultPriority),
		).Title("New tasks"),
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
		s.form = nil
		return s, tea.Batch(s.save(s.preferences()), s.refresh())
	}

	return s, cmd
}

// preferences reads the bound form fields. Inputs were validated by the form.
func (s settingsModel) preferences() store.Preferences {
	idle, _ := strconv.Atoi(strings.TrimSpace(*s.idleTimeout))
	throttle, _ := strconv.Atoi(strings.TrimSpace(*s.throttleWindow))
	return store.Preferences{
		IdleTimeout:     time.Duration(idle) * time.Second,
		ThrottleWindow:  time.Duration(throttle) * time.Second,
		EnforceThrottle: *s.enforceThrottle,
		DefaultCategory: session.Category(*s.defaultCategory),
		DefaultStatus:   session.Status(*s.defaultStatus),
		DefaultPriority: session.Priority(*s.defaultPriority),
	}
}

func (s settingsModel) save(p store.Preferences) tea.Cmd {
	return func() tea.Msg {
		if err := s.store.SavePreferences(p); err != nil {
			return statusMsg{text: "Settings not saved: " + err.Error(), isError: true}
		}
		return prefsSavedMsg{prefs: p}
	}
}

// settingValidator checks a form field with the same rule the store applies.
func settingValidator(key string) func(string) error {
	return func(v string) error {
		if store.ValidateSetting(key, strings.TrimSpace(v)) != nil {
			return fmt.Errorf("enter whole seconds from 1 to %d", store.MaxSeconds)
		}
		return nil
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(20).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	secs, err := strconv.Atoi(v)
	if err != nil {
		return v
	}
	switch k {
	case store.KeyIdleTimeout:
		return humanDuration(time.Duration(secs) * time.Second)
	case store.KeyThrottleWindow:
		return fmt.Sprintf("%d sec", secs)
	}
	return v
}
