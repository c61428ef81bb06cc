package session

import "time"

const (
	DefaultIdleTimeout    = 30 * time.Minute
	DefaultThrottleWindow = 10 * time.Second
)

// Limits holds the expiry and throttle thresholds applied by a Store.
type Limits struct {
	IdleTimeout    time.Duration
	ThrottleWindow time.Duration
	// EnforceThrottle turns the advisory throttle into a hard gate on appends.
	EnforceThrottle bool
}

func DefaultLimits() Limits {
	return Limits{
		IdleTimeout:    DefaultIdleTimeout,
		ThrottleWindow: DefaultThrottleWindow,
	}
}

// Session is the state owned by one continuous interaction.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastActivity   time.Time
	LastSubmission time.Time // zero until the first successful append
	Tasks          []Task
	Ideas          []Idea
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (s *Session) expired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastActivity) > idle
}

// IdleRemaining is how long the session can stay idle at now before it expires.
func (s Session) IdleRemaining(now time.Time, idle time.Duration) time.Duration {
	left := idle - now.Sub(s.LastActivity)
	if left < 0 {
		return 0
	}
	return left
}

func (s *Session) snapshot() Session {
	out := *s
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Ideas = append([]Idea(nil), s.Ideas...)
	return out
}

// TouchState tells the caller what Touch did to the session.
type TouchState int

const (
	TouchActive TouchState = iota
	TouchCreated
	TouchExpired
)

func (t TouchState) String() string {
	switch t {
	case TouchActive:
		return "active"
	case TouchCreated:
		return "created"
	case TouchExpired:
		return "expired"
	}
	return "unknown"
}

// RateLimit is the advisory throttle state of a session.
type RateLimit struct {
	Throttled bool
	Remaining time.Duration
}

// Seconds rounds Remaining up to whole seconds.
func (r RateLimit) Seconds() int {
	return ceilSeconds(r.Remaining)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
