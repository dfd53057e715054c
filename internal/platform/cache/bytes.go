package cache

import (
	"context"
	"time"
)

// ByteStore caches raw encoded payloads. Implementations are safe for
// concurrent use and report a miss with ok=false and a nil error.
type ByteStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryByteStore adapts Store to ByteStore for single-instance deployments.
type MemoryByteStore struct {
	store *Store
}

func NewMemoryByteStore(store *Store) *MemoryByteStore {
	if store == nil {
		store = NewStore(0)
	}
	return &MemoryByteStore{store: store}
}

func (m *MemoryByteStore) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryByteStore) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.SetWithTTL(ctx, key, append([]byte(nil), value...), ttl)
	return nil
}
