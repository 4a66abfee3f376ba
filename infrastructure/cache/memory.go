package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
)

// MemoryStore é o cache padrão de processo único; não é compartilhado entre instâncias
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]Entry
	ttl     time.Duration
	clock   clock.Clock
}

func NewMemoryStore(ttl time.Duration, clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &MemoryStore{
		entries: make(map[Key]Entry),
		ttl:     ttl,
		clock:   clk,
	}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}

	if s.expired(entry) {
		delete(s.entries, key)
		return nil, nil
	}

	return &entry, nil
}

func (s *MemoryStore) Set(_ context.Context, key Key, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{Payload: payload, StoredAt: s.clock.Now()}
	return nil
}

// DeleteBusiness remove todas as entradas do negócio, de qualquer período
func (s *MemoryStore) DeleteBusiness(_ context.Context, businessID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if key.BusinessID == businessID {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(entry Entry) bool {
	return s.clock.Now().Sub(entry.StoredAt) >= s.ttl
}
