package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// memorySessionStore keeps sessions in an in-memory map with optimistic
// locking. Used for tests and single-process deployments.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SessionData
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions: make(map[string]*domain.SessionData),
	}
}

func (s *memorySessionStore) Create(ctx context.Context, data *domain.SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	s.sessions[data.ID] = cloneSession(data)
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, id string) (*domain.SessionData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.sessions[id]
	if !exists {
		return nil, nil
	}
	return cloneSession(data), nil
}

func (s *memorySessionStore) Update(ctx context.Context, data *domain.SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[data.ID]
	if !exists {
		return domain.ErrNotFound
	}
	if stored.Version != data.Version {
		return domain.ErrVersionConflict
	}

	data.Version++
	data.UpdatedAt = time.Now()

	s.sessions[data.ID] = cloneSession(data)
	return nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}

// cloneSession copies the session so callers never share history slices
// with the map.
func cloneSession(data *domain.SessionData) *domain.SessionData {
	clone := *data
	clone.History = append([]domain.RawEntry(nil), data.History...)
	return &clone
}
