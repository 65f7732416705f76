package persistence

import (
	"context"
	"errors"
	"sync"
)

// Fixed slot keys. The data slot holds the whole store snapshot and the
// session slot holds the signed-in user's record.
const (
	DataSlotKey    = "villageData"
	SessionSlotKey = "villageUser"
)

// ErrSlotEmpty is returned when nothing has been written under a key yet.
var ErrSlotEmpty = errors.New("slot empty")

// Backend is a durable key-value store holding whole blobs per key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Slot is one named location in a backend. Every write replaces the blob.
type Slot struct {
	backend Backend
	key     string
}

// NewSlot binds a key to a backend.
func NewSlot(backend Backend, key string) *Slot {
	return &Slot{backend: backend, key: key}
}

// Key returns the backend key of the slot.
func (s *Slot) Key() string {
	return s.key
}

// Load returns the stored blob or ErrSlotEmpty.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	return s.backend.Get(ctx, s.key)
}

// Save overwrites the slot.
func (s *Slot) Save(ctx context.Context, value []byte) error {
	return s.backend.Set(ctx, s.key, value)
}

// Clear removes the slot. Clearing an empty slot is not an error.
func (s *Slot) Clear(ctx context.Context) error {
	return s.backend.Delete(ctx, s.key)
}

// Memory is a process-local backend used in tests and throwaway runs.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.items[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
