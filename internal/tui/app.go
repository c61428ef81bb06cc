package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskpad/internal/config"
	"github.com/sadopc/taskpad/internal/export"
	"github.com/sadopc/taskpad/internal/session"
	"github.com/sadopc/taskpad/internal/store"
)

// App is the root Bubble Tea model. Each key press is one interaction with
// the session store; it touches the current session before anything else.
type App struct {
	sessions  *session.Store
	prefs     *store.Store
	cfg       config.Config
	sessionID string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	taskForm    taskFormModel
	ideaForm    ideaFormModel
	masterList  masterListModel
	holdingSpot holdingSpotModel
	summary     summaryModel
	settings    settingsModel

	help      help.Model
	status    string
	statusErr bool
	idleLeft  time.Duration
}

func NewApp(sessions *session.Store, prefs *store.Store, cfg config.Config) App {
	h := help.New()
	h.ShowAll = false

	p, err := prefs.LoadPreferences()
	if err != nil {
		log.Printf("load preferences: %v", err)
	}
	sessions.SetLimits(p.Limits())

	sess, _ := sessions.Touch("")
	log.Printf("session %s: started", shortID(sess.ID))

	return App{
		sessions:    sessions,
		prefs:       prefs,
		cfg:         cfg,
		sessionID:   sess.ID,
		activeView:  viewAddTask,
		taskForm:    newTaskFormModel(p),
		ideaForm:    newIdeaFormModel(),
		masterList:  newMasterListModel(),
		holdingSpot: newHoldingSpotModel(),
		summary:     newSummaryModel(),
		settings:    newSettingsModel(prefs),
		help:        h,
		idleLeft:    p.IdleTimeout,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.refreshAll(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.taskForm.setSize(a.width, contentHeight)
		a.ideaForm.setSize(a.width, contentHeight)
		a.masterList.setSize(a.width, contentHeight)
		a.holdingSpot.setSize(a.width, contentHeight)
		a.summary.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.sessions.Close(a.sessionID)
			return a, tea.Quit
		}

		var expired bool
		a, expired = a.touch()
		if expired {
			return a, a.refreshAll()
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.sessions.Close(a.sessionID)
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewAddTask)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewCaptureIdea)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewMasterList)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewHoldingSpot)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewSummary)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		swept := a.sessions.Sweep()
		if swept > 0 {
			log.Printf("swept %d idle session(s)", swept)
		}
		a.idleLeft = 0
		sess, err := a.sessions.Get(a.sessionID)
		if err == nil {
			a.idleLeft = sess.IdleRemaining(a.sessions.Now(), a.sessions.Limits().IdleTimeout)
		} else if swept > 0 {
			// The views still show the old session until they reload.
			return a, tea.Batch(tickCmd(), a.refreshAll())
		}
		return a, tickCmd()

	case taskSubmittedMsg:
		a.setStatus(submitTask(a.sessions, a.sessionID, msg.input))
		return a, a.refreshAll()

	case ideaSubmittedMsg:
		a.setStatus(submitIdea(a.sessions, a.sessionID, msg.text))
		return a, a.refreshAll()

	case masterDataMsg:
		a.masterList, _ = a.masterList.update(msg)
		return a, nil

	case holdingDataMsg:
		a.holdingSpot, _ = a.holdingSpot.update(msg)
		return a, nil

	case summaryDataMsg:
		a.summary, _ = a.summary.update(msg)
		return a, nil

	case settingsDataMsg:
		a.settings, _ = a.settings.update(msg)
		return a, nil

	case prefsSavedMsg:
		a.sessions.SetLimits(msg.prefs.Limits())
		a.taskForm.defaults = msg.prefs
		log.Printf("preferences saved: idle=%s throttle=%s enforce=%t",
			msg.prefs.IdleTimeout, msg.prefs.ThrottleWindow, msg.prefs.EnforceThrottle)
		a.setStatus(statusMsg{text: "Settings saved"})
		return a, nil

	case statusMsg:
		a.setStatus(msg)
		return a, nil

	case exportDoneMsg:
		a.setStatus(statusMsg{text: "Exported to " + strings.Join(msg.paths, ", ")})
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// touch runs the session lifecycle check for one interaction. On expiry the
// app moves to the replacement session and drops any half-filled form.
func (a App) touch() (App, bool) {
	sess, state := a.sessions.Touch(a.sessionID)
	a.sessionID = sess.ID
	a.idleLeft = a.sessions.Limits().IdleTimeout
	if state != session.TouchExpired {
		return a, false
	}

	log.Printf("session expired, continuing as %s", shortID(sess.ID))
	a.taskForm = a.taskForm.reset()
	a.ideaForm = a.ideaForm.reset()
	a.exportPicking = false
	a.setStatus(statusMsg{
		text: fmt.Sprintf("Session expired after %s of inactivity. Started a new session.",
			humanDuration(a.sessions.Limits().IdleTimeout)),
		isError: true,
	})
	return a, true
}

func (a *App) setStatus(msg statusMsg) {
	a.status = msg.text
	a.statusErr = msg.isError
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewAddTask:
		a.taskForm, cmd = a.taskForm.update(msg, a.today())
	case viewCaptureIdea:
		a.ideaForm, cmd = a.ideaForm.update(msg)
	case viewMasterList:
		a.masterList, cmd = a.masterList.update(msg)
	case viewHoldingSpot:
		a.holdingSpot, cmd = a.holdingSpot.update(msg)
	case viewSummary:
		a.summary, cmd = a.summary.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewAddTask:
		return a.taskForm.formActive
	case viewCaptureIdea:
		return a.ideaForm.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) today() string {
	return session.DateOf(a.sessions.Now()).Format(session.DateLayout)
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewMasterList:
		return a.masterList.refresh(a.sessions, a.sessionID)
	case viewHoldingSpot:
		return a.holdingSpot.refresh(a.sessions, a.sessionID)
	case viewSummary:
		return a.summary.refresh(a.sessions, a.sessionID)
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

// refreshAll reloads every view that reads session data.
func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.masterList.refresh(a.sessions, a.sessionID),
		a.holdingSpot.refresh(a.sessions, a.sessionID),
		a.summary.refresh(a.sessions, a.sessionID),
		a.settings.refresh(),
	)
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewAddTask:
		content = a.taskForm.view()
	case viewCaptureIdea:
		content = a.ideaForm.view()
	case viewMasterList:
		content = a.masterList.view()
	case viewHoldingSpot:
		content = a.holdingSpot.view()
	case viewSummary:
		content = a.summary.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("taskpad")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := successStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	idle := successStyle
	if a.idleLeft < time.Minute {
		idle = warningStyle
	}
	sessionInfo := sessionBadgeStyle.Render(" ◆ "+shortID(a.sessionID)) +
		idle.Render(" idle "+formatClock(a.idleLeft))

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Session")
	formats := []string{"CSV (tasks + ideas)", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render("  to "+a.cfg.ExportDir))
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.sessions.Get(a.sessionID)
		if err != nil {
			return statusMsg{text: describeError(err), isError: true}
		}
		now := a.sessions.Now()

		if format == 0 {
			paths, err := export.SessionCSV(sess, a.cfg.ExportDir, now)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{paths: paths}
		}
		path, err := export.SessionJSON(sess, a.cfg.ExportDir, now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		return exportDoneMsg{paths: []string{path}}
	}
}
