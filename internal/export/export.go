package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

// SessionCSV writes taskpad-tasks-<date>.csv and taskpad-ideas-<date>.csv
// into dir and returns both paths.
func SessionCSV(sess session.Session, dir string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	date := now.Format(session.DateLayout)
	tasksPath := filepath.Join(dir, fmt.Sprintf("taskpad-tasks-%s.csv", date))
	ideasPath := filepath.Join(dir, fmt.Sprintf("taskpad-ideas-%s.csv", date))

	if err := TasksToCSV(sess.Tasks, tasksPath); err != nil {
		return nil, err
	}
	if err := IdeasToCSV(sess.Ideas, ideasPath); err != nil {
		return nil, err
	}
	return []string{tasksPath, ideasPath}, nil
}

// SessionJSON writes taskpad-session-<date>.json into dir.
func SessionJSON(sess session.Session, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("taskpad-session-%s.json", now.Format(session.DateLayout)))
	if err := ToJSON(sess, path); err != nil {
		return "", err
	}
	return path, nil
}
