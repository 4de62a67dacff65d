package storage

import (
	"context"
	"sync"
)

// MockStorage is an in-memory Storage for tests and the "memory" backend
type MockStorage struct {
	mu       sync.RWMutex
	records  map[string]string
	getError error
	setError error
	delError error
	closed   bool
	sets     int
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		records: make(map[string]string),
	}
}

// SetGetError configures the mock to fail on Get with the given error
func (m *MockStorage) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

// SetSetError configures the mock to fail on Set with the given error
func (m *MockStorage) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setError = err
}

// SetDelError configures the mock to fail on Del with the given error
func (m *MockStorage) SetDelError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delError = err
}

// Put stores a raw record directly (for testing)
func (m *MockStorage) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
}

// Has reports whether a key is present (for testing)
func (m *MockStorage) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[key]
	return ok
}

// SetCount returns how many successful writes were made (for testing)
func (m *MockStorage) SetCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrClosed
	}
	if m.getError != nil {
		return "", m.getError
	}
	return m.records[key], nil
}

func (m *MockStorage) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.setError != nil {
		return m.setError
	}
	m.records[key] = value
	m.sets++
	return nil
}

func (m *MockStorage) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.delError != nil {
		return m.delError
	}
	delete(m.records, key)
	return nil
}
