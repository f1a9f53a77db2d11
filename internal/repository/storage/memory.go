package storage

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemory returns a process-local Repository. Data does not survive restarts.
func NewMemory() Repository {
	return &memoryRepo{data: make(map[string]map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, namespace, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[namespace][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *memoryRepo) Set(_ context.Context, namespace, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[namespace] == nil {
		r.data[namespace] = make(map[string][]byte)
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	r.data[namespace][key] = clone
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, namespace, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data[namespace], key)
	return nil
}

func (r *memoryRepo) Ping(context.Context) error { return nil }
