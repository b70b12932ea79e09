package memory

import (
	"context"
	"sync"
	"time"

	"hostel_pms/internal/domain"
)

// Sessions is the in-process SessionStore used when no Redis is configured.
type Sessions struct {
	mu   sync.Mutex
	now  func() time.Time
	byID map[string]sessionEntry
}

type sessionEntry struct {
	s       domain.Session
	expires time.Time
}

func NewSessions() *Sessions {
	return &Sessions{now: time.Now, byID: map[string]sessionEntry{}}
}

func (m *Sessions) Put(ctx context.Context, s domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = sessionEntry{s: s, expires: m.now().Add(ttl)}
	return nil
}

func (m *Sessions) Get(ctx context.Context, id string) (domain.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return domain.Session{}, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.byID, id)
		return domain.Session{}, false, nil
	}
	return e.s, true, nil
}

func (m *Sessions) Del(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

var _ domain.SessionStore = (*Sessions)(nil)
