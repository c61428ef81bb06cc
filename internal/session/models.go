package session

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxInputLength is the longest task description or idea text accepted, in characters.
const MaxInputLength = 100

// DateLayout is the layout used for due dates.
const DateLayout = "2006-01-02"

type Category string

const (
	CategoryHealth        Category = "Health"
	CategoryLeisure       Category = "Leisure"
	CategoryDailyLiving   Category = "Daily Living Tasks"
	CategoryPersonal      Category = "Personal"
	CategoryProfessional  Category = "Professional"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryLeisure,
	CategoryDailyLiving,
	CategoryPersonal,
	CategoryProfessional,
	CategoryMiscellaneous,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryLeisure, CategoryDailyLiving,
		CategoryPersonal, CategoryProfessional, CategoryMiscellaneous:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

var Statuses = []Status{StatusPending, StatusCompleted}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task is one row of the Master List.
type Task struct {
	Description string
	Category    Category
	DueDate     time.Time // midnight UTC
	Status      Status
	Priority    Priority
}

// Idea is one row of the Holding Spot.
type Idea struct {
	Text       string
	CapturedAt time.Time
}

// TaskInput carries the raw values of an Add Task submission.
type TaskInput struct {
	Description string
	Category    Category
	DueDate     time.Time
	Status      Status
	Priority    Priority
}

// validate checks the input in submission order and returns the task to append.
// A zero DueDate falls back to today.
func (in TaskInput) validate(now time.Time) (Task, error) {
	desc, err := cleanText("task", in.Description)
	if err != nil {
		return Task{}, err
	}
	if !in.Category.IsValid() {
		return Task{}, invalidEnum("category", string(in.Category))
	}
	if !in.Status.IsValid() {
		return Task{}, invalidEnum("status", string(in.Status))
	}
	if !in.Priority.IsValid() {
		return Task{}, invalidEnum("priority", string(in.Priority))
	}
	due := in.DueDate
	if due.IsZero() {
		due = now
	}
	return Task{
		Description: desc,
		Category:    in.Category,
		DueDate:     DateOf(due),
		Status:      in.Status,
		Priority:    in.Priority,
	}, nil
}

func cleanText(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &ValidationError{Field: field, Err: ErrEmptyInput}
	}
	if utf8.RuneCountInString(s) > MaxInputLength {
		return "", &ValidationError{Field: field, Err: ErrInputTooLong}
	}
	return s, nil
}

func invalidEnum(field, value string) error {
	return &ValidationError{Field: field, Value: value, Err: ErrInvalidEnum}
}

// DateOf drops the time of day from t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD due date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due date %q: %w", s, err)
	}
	return t, nil
}
