package session

import (
	"fmt"
	"sync"
	"time"
)

// AppendHook observes a record right before it is committed to a table.
// It runs under the store lock and must not call back into the Store.
type AppendHook func(sessionID string, record any)

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithLimits(l Limits) Option {
	return func(s *Store) { s.limits = l }
}

func WithAppendHook(h AppendHook) Option {
	return func(s *Store) { s.hook = h }
}

// Store owns every live session, keyed by session ID. Sessions never share
// mutable state; one lock guards the map and the records inside it.
type Store struct {
	mu       sync.Mutex
	clock    Clock
	ids      IDGenerator
	limits   Limits
	hook     AppendHook
	sessions map[string]*Session
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		clock:    SystemClock{},
		ids:      UUIDGenerator{},
		limits:   DefaultLimits(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Limits() Limits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits
}

func (s *Store) SetLimits(l Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = l
}

func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Create starts a fresh, empty session.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(s.clock.Now()).snapshot()
}

func (s *Store) createLocked(now time.Time) *Session {
	sess := newSession(s.ids.New(), now)
	s.sessions[sess.ID] = sess
	return sess
}

// Touch records an interaction. It must run before any other operation of
// a request cycle. An empty id creates a session; an id past the idle
// timeout, or one the store no longer holds, is replaced by a new session
// and reported as TouchExpired.
func (s *Store) Touch(id string) (Session, TouchState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if id == "" {
		return s.createLocked(now).snapshot(), TouchCreated
	}
	sess, ok := s.sessions[id]
	if !ok {
		return s.createLocked(now).snapshot(), TouchExpired
	}
	if sess.expired(now, s.limits.IdleTimeout) {
		delete(s.sessions, id)
		return s.createLocked(now).snapshot(), TouchExpired
	}
	sess.LastActivity = now
	return sess.snapshot(), TouchActive
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.snapshot(), nil
}

// AddTask validates in and appends it to the Master List.
func (s *Store) AddTask(id string, in TaskInput) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Task{}, ErrSessionNotFound
	}
	now := s.clock.Now()
	task, err := in.validate(now)
	if err != nil {
		return Task{}, err
	}
	if err := s.gateLocked(sess, now); err != nil {
		return Task{}, err
	}
	if err := s.commit(sess.ID, task, func() {
		sess.Tasks = append(sess.Tasks, task)
	}); err != nil {
		return Task{}, err
	}
	sess.LastSubmission = now
	return task, nil
}

// AddIdea validates text and appends it to the Holding Spot.
func (s *Store) AddIdea(id, text string) (Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Idea{}, ErrSessionNotFound
	}
	clean, err := cleanText("idea", text)
	if err != nil {
		return Idea{}, err
	}
	now := s.clock.Now()
	if err := s.gateLocked(sess, now); err != nil {
		return Idea{}, err
	}
	idea := Idea{Text: clean, CapturedAt: now}
	if err := s.commit(sess.ID, idea, func() {
		sess.Ideas = append(sess.Ideas, idea)
	}); err != nil {
		return Idea{}, err
	}
	sess.LastSubmission = now
	return idea, nil
}

func (s *Store) gateLocked(sess *Session, now time.Time) error {
	if !s.limits.EnforceThrottle {
		return nil
	}
	if rl := s.rateLimit(sess, now); rl.Throttled {
		return &ThrottledError{Remaining: rl.Remaining}
	}
	return nil
}

// commit runs the hook and then apply. A panic in either leaves the
// session untouched and comes back as an InternalError.
func (s *Store) commit(id string, record any, apply func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Message: fmt.Sprint(r)}
		}
	}()
	if s.hook != nil {
		s.hook(id, record)
	}
	apply()
	return nil
}

// CheckRateLimit reports whether the last successful submission falls inside
// the throttle window. It never blocks anything by itself.
func (s *Store) CheckRateLimit(id string) RateLimit {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return RateLimit{}
	}
	return s.rateLimit(sess, s.clock.Now())
}

func (s *Store) rateLimit(sess *Session, now time.Time) RateLimit {
	if sess.LastSubmission.IsZero() {
		return RateLimit{}
	}
	elapsed := now.Sub(sess.LastSubmission)
	if elapsed >= s.limits.ThrottleWindow {
		return RateLimit{}
	}
	return RateLimit{Throttled: true, Remaining: s.limits.ThrottleWindow - elapsed}
}

// ViewTasks returns the Master List in insertion order, or ErrEmpty.
func (s *Store) ViewTasks(id string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if len(sess.Tasks) == 0 {
		return nil, ErrEmpty
	}
	return append([]Task(nil), sess.Tasks...), nil
}

// ViewIdeas returns the Holding Spot in insertion order, or ErrEmpty.
func (s *Store) ViewIdeas(id string) ([]Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if len(sess.Ideas) == 0 {
		return nil, ErrEmpty
	}
	return append([]Idea(nil), sess.Ideas...), nil
}

// Close destroys a session and everything in it.
func (s *Store) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep drops every session idle past the timeout and returns how many went.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	n := 0
	for id, sess := range s.sessions {
		if sess.expired(now, s.limits.IdleTimeout) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
