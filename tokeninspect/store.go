package tokeninspect

import (
	"context"
	"sync"
)

// Store is the key-value storage a token is read from. Implementations report
// a missing key with found == false and a nil error; err is reserved for
// storage that could not be reached or read.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
}

// StoreFunc adapts a function into a Store.
type StoreFunc func(ctx context.Context, key string) (string, bool, error)

// Get satisfies the Store interface.
func (f StoreFunc) Get(ctx context.Context, key string) (string, bool, error) {
	return f(ctx, key)
}

// MemoryStore is an in-process Store. Set and Delete belong to whoever issues
// the token; the Inspector only calls Get.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a MemoryStore seeded with the given key/value pairs.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
