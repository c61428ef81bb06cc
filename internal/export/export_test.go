package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

func sampleSession() session.Session {
	captured := time.Date(2026, 3, 14, 9, 30, 5, 0, time.Local)
	return session.Session{
		ID: "sess-1",
		Tasks: []session.Task{
			{
				Description: "Write report",
				Category:    session.CategoryProfessional,
				DueDate:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
				Status:      session.StatusPending,
				Priority:    session.PriorityHigh,
			},
			{
				Description: "Morning run",
				Category:    session.CategoryHealth,
				DueDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
				Status:      session.StatusCompleted,
				Priority:    session.PriorityLow,
			},
		},
		Ideas: []session.Idea{
			{Text: "Buy milk", CapturedAt: captured},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestTasksToCSV(t *testing.T) {
	sess := sampleSession()
	path := filepath.Join(t.TempDir(), "tasks.csv")

	if err := TasksToCSV(sess.Tasks, path); err != nil {
		t.Fatalf("TasksToCSV: %v", err)
	}
	records := readCSV(t, path)

	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}
	expectedHeader := []string{"Task", "Category", "Due Date", "Status", "Priority"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	row := records[1]
	if row[0] != "Write report" || row[1] != "Professional" || row[2] != "2026-03-20" || row[3] != "Pending" || row[4] != "High" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if records[2][0] != "Morning run" {
		t.Fatal("rows should keep insertion order")
	}
}

func TestIdeasToCSV(t *testing.T) {
	sess := sampleSession()
	path := filepath.Join(t.TempDir(), "ideas.csv")

	if err := IdeasToCSV(sess.Ideas, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	if records[0][0] != "Idea" || records[0][1] != "Captured On" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Buy milk" || records[1][1] != "2026-03-14 09:30:05" {
		t.Fatalf("unexpected row: %v", records[1])
	}
}

func TestTasksToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := TasksToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := TasksToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
	if err := IdeasToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	ideas := []session.Idea{{Text: `idea with "quotes" and, commas`, CapturedAt: time.Now()}}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := IdeasToCSV(ideas, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][0] != `idea with "quotes" and, commas` {
		t.Fatalf("text mangled: %q", records[1][0])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := ToJSON(sampleSession(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.SessionID != "sess-1" {
		t.Fatalf("session_id = %q", result.SessionID)
	}
	if result.TaskCount != 2 || len(result.Tasks) != 2 {
		t.Fatalf("tasks = %d/%d, want 2", result.TaskCount, len(result.Tasks))
	}
	if result.IdeaCount != 1 || result.Ideas[0].Idea != "Buy milk" {
		t.Fatalf("unexpected ideas: %+v", result.Ideas)
	}
	if result.Tasks[1].Category != "Health" || result.Tasks[1].DueDate != "2026-03-15" {
		t.Fatalf("unexpected task: %+v", result.Tasks[1])
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
}

func TestToJSONEmptyTablesAreArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(session.Session{ID: "x"}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"tasks": []`) || !strings.Contains(string(data), `"ideas": []`) {
		t.Fatalf("empty tables should encode as []: %s", data)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(session.Session{}, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// Session exports
// ============================================================

func TestSessionCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	paths, err := SessionCSV(sampleSession(), dir, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "taskpad-tasks-2026-03-14.csv" || filepath.Base(paths[1]) != "taskpad-ideas-2026-03-14.csv" {
		t.Fatalf("unexpected names: %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
}

func TestSessionJSON(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path, err := SessionJSON(sampleSession(), dir, now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "taskpad-session-2026-03-14.json" {
		t.Fatalf("unexpected name: %s", path)
	}
}
