package memory

import (
	"context"
	"sync"

	"github.com/SAP-F-2025/quizzone/internal/repositories"
)

// KeyValueMemory keeps values in process memory. Values are copied on the way in and out.
type KeyValueMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

func NewKeyValueMemory() *KeyValueMemory {
	return &KeyValueMemory{
		values: make(map[string][]byte),
	}
}

func (m *KeyValueMemory) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *KeyValueMemory) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *KeyValueMemory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *KeyValueMemory) Close() error {
	return nil
}

// SaveCount returns how many writes reached the store.
func (m *KeyValueMemory) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
