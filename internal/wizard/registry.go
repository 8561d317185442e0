package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry isolates wizard sessions per browser session token.
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*Session
	seen     map[string]time.Time
	newToken func() string
	now      func() time.Time
}

// NewRegistry returns an empty registry sharing deps across sessions.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:     deps.withDefaults(),
		sessions: make(map[string]*Session),
		seen:     make(map[string]time.Time),
		newToken: uuid.NewString,
		now:      time.Now,
	}
}

// NewToken mints an identifier for a new browser session.
func (r *Registry) NewToken() string {
	return r.newToken()
}

// Session returns the session for token, creating it on first use.
func (r *Registry) Session(token string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen[token] = r.now()
	if s, ok := r.sessions[token]; ok {
		return s
	}
	s := NewSession(token, r.deps)
	r.sessions[token] = s
	return s
}

// Lookup returns the session for token without creating one. A hit counts
// as activity for Sweep.
func (r *Registry) Lookup(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if ok {
		r.seen[token] = r.now()
	}
	return s, ok
}

// Remove forgets the session for token.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	delete(r.seen, token)
}

// Sweep forgets every session not looked up within maxIdle and returns how
// many were removed. Work still running for a swept session finishes
// against the detached *Session and is dropped with it.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for token, last := range r.seen {
		if last.Before(cutoff) {
			delete(r.sessions, token)
			delete(r.seen, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
