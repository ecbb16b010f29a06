package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"wear-simulator/models"
	"wear-simulator/placement"
)

// ErrSessionNotFound is returned for unknown or evicted design sessions
var ErrSessionNotFound = errors.New("design session not found")

// Design is the mutable state of one session: the placement controller plus the
// chosen fabric tint
type Design struct {
	*placement.Controller
	Tint *models.FabricColor
}

// Session owns one Design and serializes every access to it
type Session struct {
	ID string

	mu       sync.Mutex
	design   *Design
	lastUsed time.Time
}

// Do runs fn with exclusive access to the design
func (s *Session) Do(fn func(d *Design) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.design)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// SessionService keeps design sessions in memory and evicts idle ones
type SessionService struct {
	settings placement.Settings
	initial  placement.Context
	idle     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionService creates a SessionService; new sessions start on initial
func NewSessionService(settings placement.Settings, initial placement.Context, idle time.Duration) *SessionService {
	return &SessionService{
		settings: settings,
		initial:  initial,
		idle:     idle,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session
func (s *SessionService) Create() (*Session, error) {
	controller, err := placement.NewController(s.settings, s.initial)
	if err != nil {
		return nil, fmt.Errorf("failed to create design: %w", err)
	}
	session := &Session{
		ID:       uuid.NewString(),
		design:   &Design{Controller: controller},
		lastUsed: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("✓ Design session created: %s (%s)", session.ID, s.initial)
	return session, nil
}

// Get returns a session by id
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return session, nil
}

// Delete drops a session. It reports whether the session existed.
func (s *SessionService) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	log.Printf("🗑️  Design session deleted: %s", id)
	return true
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune evicts sessions idle since before now-idle and returns how many were removed
func (s *SessionService) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.idleSince()) > s.idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("🔄 Evicted %d idle design sessions", removed)
	}
	return removed
}

// Run prunes idle sessions every interval until ctx is done
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Prune(now)
		}
	}
}
