package kvstore

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/nikolayk812/shopcart/internal/port"
)

var ErrEmptyKey = errors.New("key is empty")

// Memory keeps entries in process memory only. Nothing survives a restart.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]byte
}

var _ port.KVStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}

	return bytes.Clone(value), true, nil
}

func (m *Memory) Update(_ context.Context, key string, fn port.UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, found := m.entries[key]

	next, err := fn(bytes.Clone(prev), found)
	if err != nil {
		return err
	}

	m.entries[key] = bytes.Clone(next)

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[key]
	delete(m.entries, key)

	return ok, nil
}
