package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

const (
	KeyIdleTimeout     = "idle_timeout"
	KeyThrottleWindow  = "throttle_window"
	KeyEnforceThrottle = "enforce_throttle"
	KeyDefaultCategory = "default_category"
	KeyDefaultStatus   = "default_status"
	KeyDefaultPriority = "default_priority"
)

// MaxSeconds caps idle_timeout and throttle_window at one day.
const MaxSeconds = 24 * 60 * 60

var (
	ErrUnknownSetting = errors.New("store: unknown setting")
	ErrInvalidSetting = errors.New("store: invalid setting value")
)

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key after checking it parses for that key.
func (s *Store) SetSetting(key, value string) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		var updatedAt string
		if err := rows.Scan(&st.Key, &st.Value, &updatedAt); err != nil {
			return nil, err
		}
		st.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// ValidateSetting reports whether value is acceptable for key.
func ValidateSetting(key, value string) error {
	switch key {
	case KeyIdleTimeout, KeyThrottleWindow:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n > MaxSeconds {
			return fmt.Errorf("%w: %s must be between 1 and %d seconds, got %q", ErrInvalidSetting, key, MaxSeconds, value)
		}
	case KeyEnforceThrottle:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidSetting, key, value)
		}
	case KeyDefaultCategory:
		if !session.Category(value).IsValid() {
			return fmt.Errorf("%w: %s %q", ErrInvalidSetting, key, value)
		}
	case KeyDefaultStatus:
		if !session.Status(value).IsValid() {
			return fmt.Errorf("%w: %s %q", ErrInvalidSetting, key, value)
		}
	case KeyDefaultPriority:
		if !session.Priority(value).IsValid() {
			return fmt.Errorf("%w: %s %q", ErrInvalidSetting, key, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return nil
}
