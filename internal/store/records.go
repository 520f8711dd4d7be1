// Package store persists the ledger and profile records.
//
// Each record is a whole JSON document stored under its own key and
// replaced atomically on every write.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Record keys.
const (
	LedgerKey  = "ledger"
	ProfileKey = "profile"
)

// ErrNotFound is returned by Get when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// Records is the whole-record persistence used by the ledger and the
// profile store.
type Records interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CorruptStateError reports a stored record that could not be decoded.
// Callers recover by starting from an empty state.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt %s record: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// Memory is an in-process Records implementation.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
