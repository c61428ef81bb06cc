package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/taskpad/internal/session"
)

// CapturedLayout formats idea capture times.
const CapturedLayout = "2006-01-02 15:04:05"

// TasksToCSV writes the Master List to path.
func TasksToCSV(tasks []session.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Task", "Category", "Due Date", "Status", "Priority"}); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			t.Description,
			string(t.Category),
			t.DueDate.Format(session.DateLayout),
			string(t.Status),
			string(t.Priority),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// IdeasToCSV writes the Holding Spot to path.
func IdeasToCSV(ideas []session.Idea, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Idea", "Captured On"}); err != nil {
		return err
	}
	for _, i := range ideas {
		if err := w.Write([]string{i.Text, i.CapturedAt.Local().Format(CapturedLayout)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
