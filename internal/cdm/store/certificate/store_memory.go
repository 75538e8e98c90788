package certificate

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"ocdm/pkg/platform/sentinel"
)

// InMemoryStore keeps server certificates in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	certs map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{certs: make(map[string][]byte)}
}

// Save replaces the certificate stored for keySystem.
func (s *InMemoryStore) Save(_ context.Context, keySystem string, cert []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certs[keySystem] = slices.Clone(cert)
	return nil
}

// Find returns a copy of the certificate stored for keySystem.
func (s *InMemoryStore) Find(_ context.Context, keySystem string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cert, ok := s.certs[keySystem]
	if !ok {
		return nil, fmt.Errorf("certificate for %s: %w", keySystem, sentinel.ErrNotFound)
	}
	return slices.Clone(cert), nil
}
