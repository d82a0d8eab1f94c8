package store

import (
	"context"
	"sync"
	"time"
)

type memoryRecords struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemory returns an in-memory Records used by tests.
func NewMemory() Records {
	return &memoryRecords{records: make(map[string]Record)}
}

func key(sessionID, kind string) string {
	return sessionID + "/" + kind
}

func (m *memoryRecords) Load(_ context.Context, sessionID, kind string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[key(sessionID, kind)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

func (m *memoryRecords) Save(_ context.Context, sessionID, kind string, version int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key(sessionID, kind)] = Record{
		SessionID:     sessionID,
		Kind:          kind,
		SchemaVersion: version,
		Data:          append([]byte(nil), data...),
		UpdatedAt:     time.Now(),
	}
	return nil
}

func (m *memoryRecords) Delete(_ context.Context, sessionID, kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key(sessionID, kind))
	return nil
}

func (m *memoryRecords) PurgeKind(_ context.Context, kind string, keepVersion int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dropped int64
	for k, record := range m.records {
		if record.Kind == kind && record.SchemaVersion != keepVersion {
			delete(m.records, k)
			dropped++
		}
	}
	return dropped, nil
}
