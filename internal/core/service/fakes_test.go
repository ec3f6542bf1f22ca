package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// Mock RecordStore
type mockStore struct {
	mu      sync.Mutex
	records map[domain.RecordKey]domain.SoftwareRecord
	puts    int
	failPut func(domain.SoftwareRecord) error
	failGet error
}

func newMockStore(records ...domain.SoftwareRecord) *mockStore {
	m := &mockStore{records: make(map[domain.RecordKey]domain.SoftwareRecord)}
	for _, r := range records {
		m.records[r.Key()] = r
	}
	return m
}

func (m *mockStore) Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	rec, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *mockStore) Put(ctx context.Context, record domain.SoftwareRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPut != nil {
		if err := m.failPut(record); err != nil {
			return err
		}
	}
	m.puts++
	m.records[record.Key()] = record
	return nil
}

func (m *mockStore) PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPut != nil {
		if err := m.failPut(record); err != nil {
			return err
		}
	}
	stored, ok := m.records[record.Key()]
	if (ok && stored.Version != previous) || (!ok && previous != "") {
		return domain.ErrConditionFailed
	}
	m.puts++
	m.records[record.Key()] = record
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key domain.RecordKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *mockStore) ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.SoftwareRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].SortKey < out[j].SortKey
	})
	return out, nil
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Mock VersionFetcher, also serving as the registry
type mockFetcher struct {
	mu       sync.Mutex
	versions map[string]domain.FetchResult
	failures map[string]error
	calls    map[string]int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		versions: make(map[string]domain.FetchResult),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (m *mockFetcher) set(id, name, version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[id] = domain.FetchResult{Name: name, Version: version}
}

func (m *mockFetcher) fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[id] = err
}

func (m *mockFetcher) FetchLatest(ctx context.Context, id string) (domain.FetchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[id]++
	if err, ok := m.failures[id]; ok {
		return domain.FetchResult{}, err
	}
	res, ok := m.versions[id]
	if !ok {
		return domain.FetchResult{}, errors.New("unknown software")
	}
	return res, nil
}

func (m *mockFetcher) SoftwareIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.versions)+len(m.failures))
	seen := make(map[string]bool)
	for id := range m.versions {
		seen[id] = true
		ids = append(ids, id)
	}
	for id := range m.failures {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Mock Publisher
type mockPublisher struct {
	mu        sync.Mutex
	published []domain.Notification
	failFor   map[string]bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{failFor: make(map[string]bool)}
}

func (m *mockPublisher) Publish(ctx context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failFor[n.ID] {
		return errors.New("topic unavailable")
	}
	m.published = append(m.published, n)
	return nil
}

func (m *mockPublisher) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.published))
	for _, n := range m.published {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}
