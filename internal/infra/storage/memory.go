package storage

import (
	"context"
	"slices"
	"sync"
)

type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]Record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: map[string]Record{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.entries[key]
	return Record{Value: slices.Clone(r.Value), Revision: r.Revision}, nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte, expected int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.entries[key]
	if expected != AnyRevision && expected != cur.Revision {
		return 0, ErrConflict
	}
	next := Record{Value: slices.Clone(value), Revision: cur.Revision + 1}
	m.entries[key] = next
	return next.Revision, nil
}
