package service

import (
	"sort"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
)

// Catalog is the per-software view reconstructed from the flat record store.
type Catalog struct {
	Software map[string]*domain.SoftwareView

	// Anomalies lists ids that have history but no latest pointer, or that hold
	// records with an unrecognised sort key.
	Anomalies []string
}

// IDs returns the distinct software ids in ascending order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Software))
	for id := range c.Software {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c Catalog) Lookup(id string) (*domain.SoftwareView, bool) {
	view, ok := c.Software[id]
	return view, ok
}

// Project groups records by id. The pointer supplies name and current version;
// every historical record other than the current version is listed in stored order.
func Project(records []domain.SoftwareRecord) Catalog {
	catalog := Catalog{Software: make(map[string]*domain.SoftwareView)}
	history := make(map[string][]string)
	unknown := make(map[string]bool)

	for _, rec := range records {
		view, ok := catalog.Software[rec.ID]
		if !ok {
			view = &domain.SoftwareView{ID: rec.ID, Versions: []string{}}
			catalog.Software[rec.ID] = view
		}

		switch rec.Key().Kind() {
		case domain.RecordKindLatest:
			view.Name = rec.Name
			view.Current = rec.Version
		case domain.RecordKindHistorical:
			history[rec.ID] = append(history[rec.ID], rec.Version)
		default:
			unknown[rec.ID] = true
		}
	}

	for id, view := range catalog.Software {
		for _, version := range history[id] {
			if version == view.Current {
				continue
			}
			view.Versions = append(view.Versions, version)
		}
		if !view.HasPointer() || unknown[id] {
			catalog.Anomalies = append(catalog.Anomalies, id)
		}
	}
	sort.Strings(catalog.Anomalies)

	if len(catalog.Anomalies) > 0 {
		common.Logger().Warn("catalog: records without a consistent latest pointer", "ids", catalog.Anomalies)
	}

	return catalog
}
