// Package session approximates the number of learners currently using the
// trainer from their heartbeats.
package session

import (
	"sync"
	"time"
)

// DefaultTTL is how long a session stays active after its last heartbeat.
const DefaultTTL = 65 * time.Second

// Tracker maps session ids to the time of their last heartbeat.
// It is safe for concurrent use.
type Tracker struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(ttl time.Duration, opts ...Option) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tracker{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Touch records a heartbeat for id, prunes expired sessions and returns the
// number of active ones. An empty id only prunes.
func (t *Tracker) Touch(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if id != "" {
		t.sessions[id] = now
	}
	for sessionID, lastSeen := range t.sessions {
		if now.Sub(lastSeen) > t.ttl {
			delete(t.sessions, sessionID)
		}
	}
	return len(t.sessions)
}

// Active returns the number of active sessions without recording a heartbeat.
func (t *Tracker) Active() int {
	return t.Touch("")
}

func (t *Tracker) TTL() time.Duration {
	return t.ttl
}
