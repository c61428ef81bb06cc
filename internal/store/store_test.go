package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/taskpad/internal/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/taskpad.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting(KeyThrottleWindow, "30"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: should not re-migrate or reset values.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.GetSetting(KeyThrottleWindow)
	if err != nil {
		t.Fatal(err)
	}
	if v != "30" {
		t.Fatalf("expected persisted value 30, got %q", v)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 6 {
		t.Fatalf("expected 6 settings, got %d", len(settings))
	}
	// Sorted by key
	for i := 1; i < len(settings); i++ {
		if settings[i-1].Key > settings[i].Key {
			t.Fatalf("settings not sorted: %s before %s", settings[i-1].Key, settings[i].Key)
		}
	}
	v, _ := s.GetSetting(KeyIdleTimeout)
	if v != "1800" {
		t.Fatalf("idle_timeout = %q, want 1800", v)
	}
}

func TestSetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(KeyDefaultCategory, "Professional"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting(KeyDefaultCategory)
	if v != "Professional" {
		t.Fatalf("got %q", v)
	}
}

func TestSetSettingRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		key, value string
		want       error
	}{
		{KeyIdleTimeout, "0", ErrInvalidSetting},
		{KeyIdleTimeout, "soon", ErrInvalidSetting},
		{KeyThrottleWindow, "-5", ErrInvalidSetting},
		{KeyIdleTimeout, "10000000000", ErrInvalidSetting},
		{KeyIdleTimeout, "86401", ErrInvalidSetting},
		{KeyThrottleWindow, "99999999999999999999", ErrInvalidSetting},
		{KeyEnforceThrottle, "maybe", ErrInvalidSetting},
		{KeyDefaultCategory, "Chores", ErrInvalidSetting},
		{KeyDefaultStatus, "Blocked", ErrInvalidSetting},
		{KeyDefaultPriority, "Urgent", ErrInvalidSetting},
		{"theme", "dark", ErrUnknownSetting},
	}
	for _, tt := range tests {
		err := s.SetSetting(tt.key, tt.value)
		if !errors.Is(err, tt.want) {
			t.Fatalf("%s=%q: expected %v, got %v", tt.key, tt.value, tt.want, err)
		}
	}
	v, _ := s.GetSetting(KeyIdleTimeout)
	if v != "1800" {
		t.Fatal("rejected value must not be stored")
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing setting")
	}
}

// ============================================================
// Preferences
// ============================================================

func TestLoadPreferencesDefaults(t *testing.T) {
	s := newTestStore(t)
	p, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if p != DefaultPreferences() {
		t.Fatalf("got %+v, want defaults", p)
	}
	l := p.Limits()
	if l.IdleTimeout != 30*time.Minute || l.ThrottleWindow != 10*time.Second || l.EnforceThrottle {
		t.Fatalf("unexpected limits: %+v", l)
	}
}

func TestSaveAndLoadPreferences(t *testing.T) {
	s := newTestStore(t)
	want := Preferences{
		IdleTimeout:     15 * time.Minute,
		ThrottleWindow:  5 * time.Second,
		EnforceThrottle: true,
		DefaultCategory: session.CategoryPersonal,
		DefaultStatus:   session.StatusCompleted,
		DefaultPriority: session.PriorityLow,
	}
	if err := s.SavePreferences(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSavePreferencesInvalidWritesNothing(t *testing.T) {
	s := newTestStore(t)
	p := DefaultPreferences()
	p.ThrottleWindow = 20 * time.Second
	p.DefaultPriority = "Someday"
	if err := s.SavePreferences(p); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	v, _ := s.GetSetting(KeyThrottleWindow)
	if v != "10" {
		t.Fatalf("throttle_window = %q, want untouched 10", v)
	}
}

func TestLoadPreferencesSkipsCorruptRows(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`UPDATE settings SET value = 'abc' WHERE key = ?`, KeyIdleTimeout); err != nil {
		t.Fatal(err)
	}
	p, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if p.IdleTimeout != session.DefaultIdleTimeout {
		t.Fatalf("corrupt row should fall back to default, got %v", p.IdleTimeout)
	}
}

func TestSetSettingAcceptsCeiling(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(KeyIdleTimeout, "86400"); err != nil {
		t.Fatal(err)
	}
	p, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if p.IdleTimeout != 24*time.Hour {
		t.Fatalf("IdleTimeout = %v, want 24h", p.IdleTimeout)
	}
}

func TestLoadPreferencesIgnoresOversizedTimeout(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`UPDATE settings SET value = '10000000000' WHERE key = ?`, KeyIdleTimeout); err != nil {
		t.Fatal(err)
	}
	p, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if p.IdleTimeout != session.DefaultIdleTimeout {
		t.Fatalf("oversized row should fall back to default, got %v", p.IdleTimeout)
	}

	sessions := session.NewStore(session.WithLimits(p.Limits()))
	sess := sessions.Create()
	if _, err := sessions.AddTask(sess.ID, session.TaskInput{
		Description: "Stretch",
		Category:    session.CategoryHealth,
		Status:      session.StatusPending,
		Priority:    session.PriorityLow,
	}); err != nil {
		t.Fatal(err)
	}
	got, state := sessions.Touch(sess.ID)
	if state != session.TouchActive || got.ID != sess.ID || len(got.Tasks) != 1 {
		t.Fatalf("Touch = %s id=%s tasks=%d, want active session kept", state, got.ID, len(got.Tasks))
	}
}

func TestSecondsValue(t *testing.T) {
	if d, err := secondsValue("90"); err != nil || d != 90*time.Second {
		t.Fatalf("secondsValue(90) = %v, %v", d, err)
	}
	for _, v := range []string{"", "x", "0", "86401", "10000000000"} {
		if _, err := secondsValue(v); err == nil {
			t.Errorf("secondsValue(%q) should fail", v)
		}
	}
}
