package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// MemoryStore is a process-local RecordStore for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.RecordKey]domain.SoftwareRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[domain.RecordKey]domain.SoftwareRecord)}
}

func (m *MemoryStore) Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) Put(ctx context.Context, record domain.SoftwareRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[record.Key()] = record
	return nil
}

func (m *MemoryStore) PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.records[record.Key()]
	switch {
	case previous == "" && ok:
		return domain.ErrConditionFailed
	case previous != "" && (!ok || stored.Version != previous):
		return domain.ErrConditionFailed
	}
	m.records[record.Key()] = record
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key domain.RecordKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

func (m *MemoryStore) ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error) {
	return m.collect(func(domain.SoftwareRecord) bool { return true }), nil
}

func (m *MemoryStore) Query(ctx context.Context, id string) ([]domain.SoftwareRecord, error) {
	return m.collect(func(r domain.SoftwareRecord) bool { return r.ID == id }), nil
}

func (m *MemoryStore) collect(match func(domain.SoftwareRecord) bool) []domain.SoftwareRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.SoftwareRecord, 0, len(m.records))
	for _, r := range m.records {
		if match(r) {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out
}

func sortRecords(records []domain.SoftwareRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ID != records[j].ID {
			return records[i].ID < records[j].ID
		}
		return records[i].SortKey < records[j].SortKey
	})
}
