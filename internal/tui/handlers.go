package tui

import (
	"errors"
	"fmt"
	"log"

	"github.com/sadopc/taskpad/internal/session"
)

// Request handlers. Each takes the current session and one action payload
// and returns the outcome to show; the root model re-renders afterwards.

func submitTask(s *session.Store, id string, in session.TaskInput) statusMsg {
	rl := s.CheckRateLimit(id)
	task, err := s.AddTask(id, in)
	if err != nil {
		log.Printf("session %s: add task rejected: %v", shortID(id), err)
		return statusMsg{text: describeError(err), isError: true}
	}
	log.Printf("session %s: task added category=%s priority=%s", shortID(id), task.Category, task.Priority)
	return statusMsg{text: withThrottleWarning("Task added successfully!", rl)}
}

func submitIdea(s *session.Store, id, text string) statusMsg {
	rl := s.CheckRateLimit(id)
	if _, err := s.AddIdea(id, text); err != nil {
		log.Printf("session %s: capture idea rejected: %v", shortID(id), err)
		return statusMsg{text: describeError(err), isError: true}
	}
	log.Printf("session %s: idea captured", shortID(id))
	return statusMsg{text: withThrottleWarning("Idea captured successfully!", rl)}
}

func withThrottleWarning(text string, rl session.RateLimit) string {
	if !rl.Throttled {
		return text
	}
	return fmt.Sprintf("%s Slow down: wait %ds between submissions.", text, rl.Seconds())
}

// describeError turns a session error into the message shown to the user.
func describeError(err error) string {
	var verr *session.ValidationError
	var terr *session.ThrottledError
	var ierr *session.InternalError

	switch {
	case errors.As(err, &verr):
		switch {
		case errors.Is(err, session.ErrEmptyInput):
			return fmt.Sprintf("Please enter %s.", withArticle(verr.Field))
		case errors.Is(err, session.ErrInputTooLong):
			return fmt.Sprintf("The %s must be %d characters or fewer.", verr.Field, session.MaxInputLength)
		case errors.Is(err, session.ErrInvalidEnum):
			return fmt.Sprintf("%q is not a valid %s.", verr.Value, verr.Field)
		}
	case errors.As(err, &terr):
		rl := session.RateLimit{Throttled: true, Remaining: terr.Remaining}
		return fmt.Sprintf("Too many submissions. Please wait %ds and try again.", rl.Seconds())
	case errors.As(err, &ierr):
		return "Something went wrong, nothing was saved: " + ierr.Message
	case errors.Is(err, session.ErrSessionNotFound):
		return "Your session has ended. Press any key to start a new one."
	}
	return "Error: " + err.Error()
}

func withArticle(field string) string {
	switch field {
	case "idea":
		return "an idea"
	case "task":
		return "a task"
	}
	return "a " + field
}
