package memory

import (
	"context"
	"sync"

	audit "ocdm/pkg/platform/audit"
)

// InMemoryStore keeps events in insertion order, indexed by session id.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    []audit.Event
	bySession map[string][]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bySession: make(map[string][]int)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if event.SessionID != "" {
		s.bySession[event.SessionID] = append(s.bySession[event.SessionID], len(s.events)-1)
	}
	return nil
}

func (s *InMemoryStore) ListBySession(_ context.Context, sessionID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.bySession[sessionID]
	out := make([]audit.Event, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.events[i])
	}
	return out, nil
}

// ListAll returns every event in the order it was appended.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}
