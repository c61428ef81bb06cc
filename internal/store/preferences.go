package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

// Preferences is the typed view of the settings table.
type Preferences struct {
	IdleTimeout     time.Duration
	ThrottleWindow  time.Duration
	EnforceThrottle bool
	DefaultCategory session.Category
	DefaultStatus   session.Status
	DefaultPriority session.Priority
}

func DefaultPreferences() Preferences {
	return Preferences{
		IdleTimeout:     session.DefaultIdleTimeout,
		ThrottleWindow:  session.DefaultThrottleWindow,
		DefaultCategory: session.CategoryHealth,
		DefaultStatus:   session.StatusPending,
		DefaultPriority: session.PriorityHigh,
	}
}

// Limits converts the preferences into session store limits.
func (p Preferences) Limits() session.Limits {
	return session.Limits{
		IdleTimeout:     p.IdleTimeout,
		ThrottleWindow:  p.ThrottleWindow,
		EnforceThrottle: p.EnforceThrottle,
	}
}

// LoadPreferences reads every known setting. Missing or unparsable rows
// keep their default.
func (s *Store) LoadPreferences() (Preferences, error) {
	p := DefaultPreferences()
	settings, err := s.GetAllSettings()
	if err != nil {
		return p, err
	}
	for _, st := range settings {
		if ValidateSetting(st.Key, st.Value) != nil {
			continue
		}
		switch st.Key {
		case KeyIdleTimeout:
			if d, err := secondsValue(st.Value); err == nil {
				p.IdleTimeout = d
			}
		case KeyThrottleWindow:
			if d, err := secondsValue(st.Value); err == nil {
				p.ThrottleWindow = d
			}
		case KeyEnforceThrottle:
			p.EnforceThrottle, _ = strconv.ParseBool(st.Value)
		case KeyDefaultCategory:
			p.DefaultCategory = session.Category(st.Value)
		case KeyDefaultStatus:
			p.DefaultStatus = session.Status(st.Value)
		case KeyDefaultPriority:
			p.DefaultPriority = session.Priority(st.Value)
		}
	}
	return p, nil
}

// SavePreferences writes every field; it stops at the first invalid one.
func (s *Store) SavePreferences(p Preferences) error {
	values := []Setting{
		{Key: KeyIdleTimeout, Value: strconv.Itoa(int(p.IdleTimeout / time.Second))},
		{Key: KeyThrottleWindow, Value: strconv.Itoa(int(p.ThrottleWindow / time.Second))},
		{Key: KeyEnforceThrottle, Value: strconv.FormatBool(p.EnforceThrottle)},
		{Key: KeyDefaultCategory, Value: string(p.DefaultCategory)},
		{Key: KeyDefaultStatus, Value: string(p.DefaultStatus)},
		{Key: KeyDefaultPriority, Value: string(p.DefaultPriority)},
	}
	for _, v := range values {
		if err := ValidateSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	for _, v := range values {
		if err := s.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	return nil
}

func secondsValue(v string) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse seconds %q: %w", v, err)
	}
	if n <= 0 || n > MaxSeconds {
		return 0, fmt.Errorf("%w: %d seconds out of range", ErrInvalidSetting, n)
	}
	return time.Duration(n) * time.Second, nil
}
