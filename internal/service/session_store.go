package service

import (
	"errors"
	"sync"
	"time"

	"ledger/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// sweepEvery bounds how often Create walks the registry.
const sweepEvery = time.Minute

type sessionEntry struct {
	mu       sync.Mutex
	session  models.Session
	lastSeen time.Time
}

// lastActive must be called with e.mu held.
func (e *sessionEntry) lastActive() time.Time {
	if e.lastSeen.After(e.session.UpdatedAt) {
		return e.lastSeen
	}
	return e.session.UpdatedAt
}

// snapshot must be called with e.mu held.
func (e *sessionEntry) snapshot() models.Session {
	return e.session
}

// SessionStore keeps display state in memory only. Sessions that have been
// neither changed nor requested for longer than the TTL are evicted unless a
// run is in flight.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*sessionEntry
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    *zap.Logger
}

func NewSessionStore(ttl time.Duration, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *SessionStore) Create() models.Session {
	now := s.now()
	s.mu.RLock()
	due := now.Sub(s.lastSweep) >= sweepEvery
	s.mu.RUnlock()
	if due {
		s.Sweep()
	}

	entry := &sessionEntry{
		session: models.Session{
			ID:        uuid.New(),
			Stage:     models.StageIdle,
			CreatedAt: now,
			UpdatedAt: now,
		},
		lastSeen: now,
	}

	s.mu.Lock()
	s.sessions[entry.session.ID] = entry
	s.mu.Unlock()

	s.logger.Debug("Session created", zap.String("session_id", entry.session.ID.String()))
	return entry.session
}

func (s *SessionStore) Get(id uuid.UUID) (models.Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return models.Session{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.snapshot(), nil
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSweep = now

	removed := 0
	for id, entry := range s.sessions {
		entry.mu.Lock()
		expired := entry.lastActive().Before(cutoff) && !entry.session.Stage.Busy()
		entry.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Expired sessions evicted", zap.Int("count", removed))
	}
	return removed
}

func (s *SessionStore) entry(id uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

// Touch reports whether id names a live session and restarts its idle timer.
func (s *SessionStore) Touch(id uuid.UUID) bool {
	entry, err := s.entry(id)
	if err != nil {
		return false
	}
	entry.mu.Lock()
	entry.lastSeen = s.now()
	entry.mu.Unlock()
	return true
}

// Open creates a session and returns its id.
func (s *SessionStore) Open() uuid.UUID {
	return s.Create().ID
}
