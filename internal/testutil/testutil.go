package testutil

import (
	"fmt"
	"sync"

	"wordbook/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word record
func NewTestWord(id, word, meaning string, memorized bool) domain.WordRecord {
	return domain.WordRecord{
		ID:                  id,
		Word:                word,
		Meaning:             meaning,
		IsMarkedAsMemorized: memorized,
	}
}

// MemorySlots is an in-memory SlotRepository that counts writes
type MemorySlots struct {
	mu     sync.Mutex
	slots  map[string][]byte
	Writes int
	// FailWrites makes every Set return an error
	FailWrites bool
}

// NewMemorySlots creates an empty in-memory slot store
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemorySlots) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return fmt.Errorf("write to %q failed", key)
	}
	m.slots[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}
