package domain

import (
	"errors"
	"strings"
)

const (
	// LatestSortKey is the sort key of the record holding a software's current version.
	LatestSortKey = "latest"

	// VersionSortKeyPrefix prefixes the sort key of every historical version record.
	VersionSortKeyPrefix = "Version#"
)

// ErrConditionFailed is returned by a store when a conditional pointer write finds
// a different previous version than the caller expected.
var ErrConditionFailed = errors.New("conditional write failed")

type RecordKind string

const (
	RecordKindLatest     RecordKind = "latest"
	RecordKindHistorical RecordKind = "historical"
	RecordKindUnknown    RecordKind = "unknown"
)

type RecordKey struct {
	ID      string `json:"id"`
	SortKey string `json:"sort_key"`
}

func LatestKey(id string) RecordKey {
	return RecordKey{ID: id, SortKey: LatestSortKey}
}

func VersionKey(id, version string) RecordKey {
	return RecordKey{ID: id, SortKey: VersionSortKeyPrefix + version}
}

// Kind reports which record variant the key denotes.
func (k RecordKey) Kind() RecordKind {
	switch {
	case k.SortKey == LatestSortKey:
		return RecordKindLatest
	case strings.HasPrefix(k.SortKey, VersionSortKeyPrefix) && len(k.SortKey) > len(VersionSortKeyPrefix):
		return RecordKindHistorical
	default:
		return RecordKindUnknown
	}
}

// SoftwareRecord is one row of the record store. Name is only set on the
// latest pointer.
type SoftwareRecord struct {
	ID      string `json:"id"`
	SortKey string `json:"sort_key"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version"`
}

func NewLatestPointer(id, name, version string) SoftwareRecord {
	return SoftwareRecord{ID: id, SortKey: LatestSortKey, Name: name, Version: version}
}

func NewHistoricalVersion(id, version string) SoftwareRecord {
	return SoftwareRecord{ID: id, SortKey: VersionSortKeyPrefix + version, Version: version}
}

func (r SoftwareRecord) Key() RecordKey {
	return RecordKey{ID: r.ID, SortKey: r.SortKey}
}

func (r SoftwareRecord) IsLatest() bool {
	return r.Key().Kind() == RecordKindLatest
}

func (r SoftwareRecord) IsHistorical() bool {
	return r.Key().Kind() == RecordKindHistorical
}
