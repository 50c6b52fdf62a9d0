// File path: internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/surveyforge/surveyforge/internal/survey"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, st survey.State) (Session, error) {
	now := m.now().UTC()
	sess := Session{ID: newID(), State: st.Clone(), CreatedAt: now, UpdatedAt: now}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	sess.State = sess.State.Clone()
	return sess, nil
}

func (m *MemoryStore) UpdateState(_ context.Context, id string, st survey.State) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	sess.State = st.Clone()
	sess.UpdatedAt = m.now().UTC()
	m.sessions[id] = sess
	return sess, nil
}

func (m *MemoryStore) Reset(_ context.Context, id string, st survey.State) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	sess.State = st.Clone()
	sess.UpdatedAt = m.now().UTC()
	m.sessions[id] = sess
	return sess, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
