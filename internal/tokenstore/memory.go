package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the entries in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	user, err := encodeIdentity(rec.Identity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[EntryToken] = rec.Token
	s.entries[EntryUser] = user
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.Lock()
	token, hasToken := s.entries[EntryToken]
	user, hasUser := s.entries[EntryUser]
	s.mu.Unlock()
	return decodeEntries(token, hasToken, user, hasUser)
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, EntryToken)
	delete(s.entries, EntryUser)
	return nil
}

// Put writes a raw entry. Tests use it to fabricate inconsistent state.
func (s *MemoryStore) Put(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = value
}

// Len reports how many entries are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
