package service

import (
	"context"
	"errors"
	"fmt"
)

// Forget deletes every record of one software id and returns how many were
// removed. Deletions show up on the change feed and are dropped by the filter,
// so no notification is sent. Removing the id from the registry is up to the
// caller; otherwise the next cycle observes it again.
func (s *RefreshService) Forget(ctx context.Context, softwareID string) (int, error) {
	records, err := readPartition(ctx, s.store, softwareID)
	if err != nil {
		return 0, err
	}

	var (
		deleted int
		errs    []error
	)
	for _, rec := range records {
		if rec.ID != softwareID {
			continue
		}
		if err := s.store.Delete(ctx, rec.Key()); err != nil {
			errs = append(errs, fmt.Errorf("%w: delete %s/%s: %w", ErrStoreWrite, rec.ID, rec.SortKey, err))
			continue
		}
		deleted++
	}
	if deleted == 0 && len(errs) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, softwareID)
	}
	return deleted, errors.Join(errs...)
}
