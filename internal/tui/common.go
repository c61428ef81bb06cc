package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/taskpad/internal/session"
	"github.com/sadopc/taskpad/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewAddTask viewState = iota
	viewCaptureIdea
	viewMasterList
	viewHoldingSpot
	viewSummary
	viewSettings
)

var viewNames = []string{"Add Task", "Capture Idea", "Master List", "Holding Spot", "Summary", "Settings"}

// --- Messages ---

type taskSubmittedMsg struct {
	input session.TaskInput
}

type ideaSubmittedMsg struct {
	text string
}

type masterDataMsg struct {
	tasks []session.Task
	err   error
}

type holdingDataMsg struct {
	ideas []session.Idea
	err   error
}

type summaryDataMsg struct {
	tasks []session.Task
	ideas int
}

type prefsSavedMsg struct {
	prefs store.Preferences
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	paths []string
}

// --- Helpers ---

// formatClock renders d as mm:ss, or h:mm:ss past an hour.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// humanDuration renders whole minutes as "30 minutes" and anything else in seconds.
func humanDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", n)
	}
	n := int(d / time.Second)
	if n == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", n)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
