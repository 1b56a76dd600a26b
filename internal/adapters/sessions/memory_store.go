package sessions

import (
	"context"
	"errors"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/ports"
	"sync"
	"time"
)

type memoryEntry struct {
	state     domain.SessionState
	expiresAt time.Time
}

// In-process SessionStore. Sessions expire ttl after their last Save;
// a zero ttl keeps them forever.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	if m.expired(e) {
		delete(m.entries, id)
		return nil, ports.ErrSessionNotFound
	}

	s := cloneState(e.state)
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *domain.SessionState) error {
	if s == nil || s.ID == "" {
		return errors.New("memory session store: session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{state: cloneState(*s)}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[s.ID] = e
	m.sweepLocked()
	return nil
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	return len(m.entries)
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

func (m *MemoryStore) sweepLocked() {
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
		}
	}
}

func cloneState(s domain.SessionState) domain.SessionState {
	if s.LastClick != nil {
		v := *s.LastClick
		s.LastClick = &v
	}
	return s
}
