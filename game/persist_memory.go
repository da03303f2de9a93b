package game

import (
	"sync"

	"github.com/pkg/errors"
)

// MemoryHandStateTracker keeps hand state in process memory. It is the
// default store for tests and single-node deployments.
type MemoryHandStateTracker struct {
	mu         sync.RWMutex
	records    map[string]*HandRecord
	restricted map[string]*RestrictedRecord
}

func NewMemoryHandStateTracker() *MemoryHandStateTracker {
	return &MemoryHandStateTracker{
		records:    make(map[string]*HandRecord),
		restricted: make(map[string]*RestrictedRecord),
	}
}

func (m *MemoryHandStateTracker) Save(gameCode string, record *HandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[gameCode] = record
	return nil
}

func (m *MemoryHandStateTracker) Load(gameCode string) (*HandRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[gameCode]
	if !ok {
		return nil, errors.Errorf("Hand state for game %s is not found", gameCode)
	}
	return record, nil
}

func (m *MemoryHandStateTracker) SaveRestricted(gameCode string, record *RestrictedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restricted[gameCode] = record
	return nil
}

func (m *MemoryHandStateTracker) LoadRestricted(gameCode string) (*RestrictedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.restricted[gameCode]
	if !ok {
		return nil, errors.Errorf("Restricted hand state for game %s is not found", gameCode)
	}
	return record, nil
}

func (m *MemoryHandStateTracker) Remove(gameCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, gameCode)
	delete(m.restricted, gameCode)
	return nil
}

func (m *MemoryHandStateTracker) CompletedBefore(cutoff int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gameCodes := make([]string, 0)
	for gameCode, record := range m.records {
		if record.Hand == nil {
			continue
		}
		if record.Hand.Phase == HandStatus_COMPLETE &&
			record.Hand.CompletedAt != 0 && record.Hand.CompletedAt < cutoff {
			gameCodes = append(gameCodes, gameCode)
		}
	}
	return gameCodes, nil
}
