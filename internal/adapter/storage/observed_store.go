package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/port"
)

// ObservedStore wraps a RecordStore and emits a mutation event to sink after every
// write that changed data, mirroring what a database change stream delivers.
// Writes that leave a record untouched emit nothing. When the sink rejects an
// event the write is undone and an error returned, so a retried write emits again.
type ObservedStore struct {
	inner port.RecordStore
	sink  port.MutationSink
}

func NewObservedStore(inner port.RecordStore, sink port.MutationSink) *ObservedStore {
	return &ObservedStore{inner: inner, sink: sink}
}

func (o *ObservedStore) Get(ctx context.Context, key domain.RecordKey) (*domain.SoftwareRecord, error) {
	return o.inner.Get(ctx, key)
}

func (o *ObservedStore) Put(ctx context.Context, record domain.SoftwareRecord) error {
	old, err := o.inner.Get(ctx, record.Key())
	if err != nil {
		return err
	}
	if err := o.inner.Put(ctx, record); err != nil {
		return err
	}
	if old != nil && *old == record {
		return nil
	}
	if err := o.emit(ctx, changeEvent(old, record)); err != nil {
		return o.undo(ctx, record.Key(), old, err, func() error { return o.inner.Put(ctx, *old) })
	}
	return nil
}

func (o *ObservedStore) PutIfVersion(ctx context.Context, record domain.SoftwareRecord, previous string) error {
	old, err := o.inner.Get(ctx, record.Key())
	if err != nil {
		return err
	}
	if err := o.inner.PutIfVersion(ctx, record, previous); err != nil {
		return err
	}
	if old != nil && *old == record {
		return nil
	}
	if err := o.emit(ctx, changeEvent(old, record)); err != nil {
		return o.undo(ctx, record.Key(), old, err, func() error {
			return o.inner.PutIfVersion(ctx, *old, record.Version)
		})
	}
	return nil
}

func (o *ObservedStore) Delete(ctx context.Context, key domain.RecordKey) error {
	old, err := o.inner.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := o.inner.Delete(ctx, key); err != nil {
		return err
	}
	if old == nil {
		return nil
	}
	if err := o.emit(ctx, domain.MutationEvent{Kind: domain.EventDelete, Key: key, OldImage: old}); err != nil {
		return o.undo(ctx, key, old, err, func() error { return o.inner.Put(ctx, *old) })
	}
	return nil
}

func (o *ObservedStore) ScanAll(ctx context.Context) ([]domain.SoftwareRecord, error) {
	return o.inner.ScanAll(ctx)
}

func (o *ObservedStore) Query(ctx context.Context, id string) ([]domain.SoftwareRecord, error) {
	if reader, ok := o.inner.(port.PartitionReader); ok {
		return reader.Query(ctx, id)
	}

	all, err := o.inner.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	var out []domain.SoftwareRecord
	for _, r := range all {
		if r.ID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (o *ObservedStore) emit(ctx context.Context, event domain.MutationEvent) error {
	if err := o.sink.Emit(ctx, []domain.MutationEvent{event}); err != nil {
		common.Logger().Error("store: emit mutation event failed",
			"kind", event.Kind, "id", event.Key.ID, "sort_key", event.Key.SortKey, "error", err)
		return fmt.Errorf("emit %s event for %s/%s: %w", event.Kind, event.Key.ID, event.Key.SortKey, err)
	}
	return nil
}

// undo reverts a write whose event never reached the sink. A record that did
// not exist before is deleted; otherwise restore puts the old image back.
func (o *ObservedStore) undo(ctx context.Context, key domain.RecordKey, old *domain.SoftwareRecord, emitErr error, restore func() error) error {
	var err error
	if old == nil {
		err = o.inner.Delete(ctx, key)
	} else {
		err = restore()
	}
	if err != nil {
		common.Logger().Error("store: undo after emit failure failed",
			"id", key.ID, "sort_key", key.SortKey, "error", err)
		return errors.Join(emitErr, fmt.Errorf("undo write: %w", err))
	}
	return emitErr
}

func changeEvent(old *domain.SoftwareRecord, record domain.SoftwareRecord) domain.MutationEvent {
	kind := domain.EventInsert
	if old != nil {
		kind = domain.EventModify
	}
	return domain.MutationEvent{Kind: kind, Key: record.Key(), NewImage: &record, OldImage: old}
}
