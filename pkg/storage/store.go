// Package storage is the persistence collaborator: a small key-value
// contract, a msgpack codec for values, and a write-behind Writer so callers
// never block on disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Keys used by guessr. They match the names the browser extension stored
// its state under, so migrated stores stay readable.
const (
	KeyAnswers   = "correctAnswers"
	KeyFrequency = "wordFrequency"
	KeyStats     = "stats"
	KeySettings  = "settings"
)

// ErrClosed is returned by writers and stores after Close.
var ErrClosed = errors.New("storage: closed")

// Store is an eventual key-value store of encoded values. Get returns only
// the keys that exist; a missing key is not an error.
type Store interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, values map[string][]byte) error
}

// Encode serializes v with msgpack.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return data, nil
}

// Decode deserializes msgpack data into v.
func Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode into %T: %w", v, err)
	}
	return nil
}

// LoadInto fetches key and decodes it into v. It reports whether the key
// was present.
func LoadInto(ctx context.Context, store Store, key string, v any) (bool, error) {
	values, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	data, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := Decode(data, v); err != nil {
		return true, fmt.Errorf("key %s: %w", key, err)
	}
	return true, nil
}

// Memory is an in-process Store, used in tests and when no data dir is usable.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Store
func (m *Memory) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, nil
}

// Set implements Store
func (m *Memory) Set(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = append([]byte(nil), v...)
	}
	return nil
}
