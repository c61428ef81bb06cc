package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	SessionID  string     `json:"session_id"`
	TaskCount  int        `json:"task_count"`
	IdeaCount  int        `json:"idea_count"`
	Tasks      []jsonTask `json:"tasks"`
	Ideas      []jsonIdea `json:"ideas"`
}

type jsonTask struct {
	Task     string `json:"task"`
	Category string `json:"category"`
	DueDate  string `json:"due_date"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type jsonIdea struct {
	Idea       string `json:"idea"`
	CapturedOn string `json:"captured_on"`
}

// ToJSON writes both tables of sess to path.
func ToJSON(sess session.Session, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		SessionID:  sess.ID,
		TaskCount:  len(sess.Tasks),
		IdeaCount:  len(sess.Ideas),
		Tasks:      []jsonTask{},
		Ideas:      []jsonIdea{},
	}

	for _, t := range sess.Tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			Task:     t.Description,
			Category: string(t.Category),
			DueDate:  t.DueDate.Format(session.DateLayout),
			Status:   string(t.Status),
			Priority: string(t.Priority),
		})
	}
	for _, i := range sess.Ideas {
		export.Ideas = append(export.Ideas, jsonIdea{
			Idea:       i.Text,
			CapturedOn: i.CapturedAt.Local().Format(CapturedLayout),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
