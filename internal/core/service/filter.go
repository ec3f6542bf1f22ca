package service

import (
	"sort"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/metrics"
)

// FilterBatch reduces a mutation batch to the latest pointer records whose
// version changed. Deletes, historical version writes and malformed events are
// dropped; when several events in the batch touch the same id the last one wins.
func FilterBatch(batch domain.MutationBatch) []domain.SoftwareRecord {
	logger := common.Logger()
	latest := make(map[string]domain.SoftwareRecord)

	for _, event := range batch.Events {
		if event.Kind == domain.EventDelete {
			logger.Info("filter: skipping delete event", "id", event.Key.ID, "sort_key", event.Key.SortKey)
			metrics.FilteredEvents.WithLabelValues("delete").Inc()
			continue
		}
		if event.Key.SortKey != domain.LatestSortKey {
			metrics.FilteredEvents.WithLabelValues("not_latest").Inc()
			continue
		}
		if err := validateImage(event); err != nil {
			logger.Warn("filter: discarding event", "kind", event.Kind, "id", event.Key.ID, "error", err)
			metrics.FilteredEvents.WithLabelValues("malformed").Inc()
			continue
		}

		if _, dup := latest[event.Key.ID]; dup {
			metrics.FilteredEvents.WithLabelValues("duplicate").Inc()
		}
		latest[event.Key.ID] = *event.NewImage
		metrics.FilteredEvents.WithLabelValues("accepted").Inc()
	}

	records := make([]domain.SoftwareRecord, 0, len(latest))
	for _, rec := range latest {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

func validateImage(event domain.MutationEvent) error {
	switch {
	case event.Kind != domain.EventInsert && event.Kind != domain.EventModify:
		return errorf(ErrMalformedEvent, "unknown event kind %q", event.Kind)
	case event.NewImage == nil:
		return errorf(ErrMalformedEvent, "%s without new image", event.Kind)
	case event.NewImage.Key() != event.Key:
		return errorf(ErrMalformedEvent, "new image key %v does not match event key %v", event.NewImage.Key(), event.Key)
	case event.NewImage.Version == "":
		return errorf(ErrMalformedEvent, "new image without version")
	}
	return nil
}
