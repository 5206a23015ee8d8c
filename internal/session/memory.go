package session

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps session values in process memory
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
