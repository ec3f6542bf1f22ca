package port

import (
	"context"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

type RecordStore interface {
	// Get returns the record stored under key, or nil when there is none
	Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error)

	// Put creates or replaces a record
	Put(ctx context.Context, record domain.SoftwareRecord) error

	// PutIfVersion writes a latest pointer only if the stored pointer still holds
	// previous ("" means no pointer may exist yet). Returns domain.ErrConditionFailed otherwise.
	PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error

	// Delete removes a record; deleting a missing record is not an error
	Delete(ctx context.Context, key domain.RecordKey) error

	// ScanAll returns every record ordered by id, then sort key
	ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error)
}

// PartitionReader is implemented by stores that can read a single software id
// without a full scan.
type PartitionReader interface {
	Query(ctx context.Context, id string) ([]domain.SoftwareRecord, error)
}
