package authstate

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore keeps tokens for the lifetime of the process.
func NewMemoryStore() Store {
	return &memoryStore{tokens: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[sessionID], nil
}

func (s *memoryStore) Set(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = token
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
	return nil
}

func (s *memoryStore) Ping(context.Context) error { return nil }

func (s *memoryStore) Close() error { return nil }
