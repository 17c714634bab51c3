package server

import (
	"context"
	"sync"
	"time"

	"github.com/matst80/slask-storefront/pkg/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_sessions_active",
	Help: "The number of page sessions held in memory",
})

type sessionEntry struct {
	controller *page.Controller
	lastSeen   time.Time
}

// SessionStore keeps one page controller per session id and drops sessions
// that have been idle for longer than the ttl.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	factory  func() *page.Controller
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration, factory func() *page.Controller) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		factory:  factory,
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Get returns the controller of the session, creating it on first use.
func (s *SessionStore) Get(sessionId string) *page.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, found := s.sessions[sessionId]
	if !found {
		entry = &sessionEntry{controller: s.factory()}
		s.sessions[sessionId] = entry
		activeSessions.Inc()
	}
	entry.lastSeen = s.now()
	return entry.controller
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict removes idle sessions and returns how many were removed.
func (s *SessionStore) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	activeSessions.Sub(float64(removed))
	return removed
}

// Run evicts idle sessions every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}
