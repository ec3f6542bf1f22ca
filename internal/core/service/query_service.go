package service

import (
	"context"
	"fmt"

	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/port"
)

// QueryService answers read requests by projecting the record store on every call.
type QueryService struct {
	store port.RecordStore
}

func NewQueryService(store port.RecordStore) *QueryService {
	return &QueryService{store: store}
}

func (s *QueryService) ListSoftware(ctx context.Context) ([]string, error) {
	records, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return Project(records).IDs(), nil
}

func (s *QueryService) ListVersions(ctx context.Context, id string) (domain.SoftwareView, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return domain.SoftwareView{}, err
	}
	return *view, nil
}

func (s *QueryService) GetVersion(ctx context.Context, id, version string) (domain.VersionDetail, error) {
	view, err := s.view(ctx, id)
	if err != nil {
		return domain.VersionDetail{}, err
	}

	if view.HasPointer() && view.Current == version {
		return domain.VersionDetail{ID: id, Name: view.Name, Version: version, Current: true}, nil
	}
	for _, v := range view.Versions {
		if v == version {
			return domain.VersionDetail{ID: id, Name: view.Name, Version: version}, nil
		}
	}
	return domain.VersionDetail{}, fmt.Errorf("%w: %s %s", ErrNotFound, id, version)
}

func (s *QueryService) view(ctx context.Context, id string) (*domain.SoftwareView, error) {
	records, err := readPartition(ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	view, ok := Project(records).Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return view, nil
}

// readPartition returns the records of one id, or every record when the store
// has no partition index. Callers filter by id through the projector.
func readPartition(ctx context.Context, store port.RecordStore, id string) ([]domain.SoftwareRecord, error) {
	if reader, ok := store.(port.PartitionReader); ok {
		records, err := reader.Query(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("query records of %s: %w", id, err)
		}
		return records, nil
	}

	records, err := store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}
