package kvstore

import (
	"context"
	"sync"
)

// MemStore is a map-backed Store. It is the default for tests and for
// ephemeral runs where losing data on restart is acceptable.
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(key, value)
	return nil
}

func (s *MemStore) Update(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for k, v := range tx.staged {
		s.put(k, v)
	}
	return nil
}

func (s *MemStore) Close() {}

// put stores a private copy; callers must hold s.mu.
func (s *MemStore) put(key string, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
}

type memTx struct {
	store  *MemStore
	staged map[string][]byte
}

func (tx *memTx) Get(key string) ([]byte, error) {
	if v, ok := tx.staged[key]; ok {
		return v, nil
	}
	v, ok := tx.store.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (tx *memTx) Put(key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	tx.staged[key] = cp
	return nil
}
