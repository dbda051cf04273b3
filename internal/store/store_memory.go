package store

import (
	"context"
	"sync"
)

// MemStore keeps the encoded records in memory. It backs tests and
// deployments without a DATABASE_URL.
type MemStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) LikedIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeLikedIDs(s.m[likedKey]), nil
}

func (s *MemStore) SetLikedIDs(ctx context.Context, ids []string) error {
	b, err := encodeLikedIDs(ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[likedKey] = b
	return nil
}

func (s *MemStore) CartItems(ctx context.Context) ([]CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeCartItems(s.m[cartKey]), nil
}

func (s *MemStore) SetCartItems(ctx context.Context, items []CartItem) error {
	b, err := encodeCartItems(items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[cartKey] = b
	return nil
}

func (s *MemStore) ClearCartItems(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, cartKey)
	return nil
}
