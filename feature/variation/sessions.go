package variation

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Registry holds the open editing sessions. Sessions expire after ttl without
// access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry whose sessions expire after ttl of inactivity.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put stores a session.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

// Get returns the session with id and refreshes its expiry.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := r.now()
	s.mu.Lock()
	expired := r.isExpired(s, now)
	if !expired {
		s.touched = now
	}
	s.mu.Unlock()

	if expired {
		r.Delete(id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Sweep drops expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		s.mu.Lock()
		expired := r.isExpired(s, now)
		s.mu.Unlock()
		if expired {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions held, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) isExpired(s *Session, now time.Time) bool {
	if r.ttl <= 0 {
		return false
	}
	return now.Sub(s.touched) > r.ttl
}
