package service

import (
	"testing"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

func pointerEvent(kind domain.EventKind, id, name, version string) domain.MutationEvent {
	rec := domain.NewLatestPointer(id, name, version)
	return domain.MutationEvent{Kind: kind, Key: rec.Key(), NewImage: &rec}
}

func TestFilter_SuppressesDeletes(t *testing.T) {
	old := domain.NewLatestPointer("app", "App", "1.0")
	batch := domain.MutationBatch{Events: []domain.MutationEvent{
		{Kind: domain.EventDelete, Key: old.Key(), OldImage: &old},
		{Kind: domain.EventDelete, Key: domain.VersionKey("app", "1.0")},
	}}

	if got := FilterBatch(batch); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilter_SuppressesHistoricalInserts(t *testing.T) {
	hist := domain.NewHistoricalVersion("app", "1.1")
	batch := domain.MutationBatch{Events: []domain.MutationEvent{
		{Kind: domain.EventInsert, Key: hist.Key(), NewImage: &hist},
	}}

	if got := FilterBatch(batch); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilter_DropsMalformedEvents(t *testing.T) {
	mismatched := domain.NewLatestPointer("other", "Other", "1.0")
	batch := domain.MutationBatch{Events: []domain.MutationEvent{
		{Kind: domain.EventModify, Key: domain.LatestKey("app")},
		{Kind: domain.EventInsert, Key: domain.LatestKey("app"), NewImage: &mismatched},
		{Kind: "UPSERT", Key: mismatched.Key(), NewImage: &mismatched},
	}}

	if got := FilterBatch(batch); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilter_DeduplicatesWithinBatch(t *testing.T) {
	batch := domain.MutationBatch{Events: []domain.MutationEvent{
		pointerEvent(domain.EventModify, "app", "App", "1.1"),
		pointerEvent(domain.EventModify, "app", "App", "1.2"),
		pointerEvent(domain.EventInsert, "lib", "Lib", "0.1"),
	}}

	got := FilterBatch(batch)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(got), got)
	}
	if got[0].ID != "app" || got[0].Version != "1.2" {
		t.Errorf("expected the last app update to win, got %+v", got[0])
	}
	if got[1].ID != "lib" {
		t.Errorf("expected lib, got %+v", got[1])
	}
}

func TestFilter_MixedBatch(t *testing.T) {
	hist := domain.NewHistoricalVersion("app", "1.1")
	batch := domain.MutationBatch{Events: []domain.MutationEvent{
		{Kind: domain.EventInsert, Key: hist.Key(), NewImage: &hist},
		pointerEvent(domain.EventModify, "app", "App", "1.1"),
		{Kind: domain.EventDelete, Key: domain.LatestKey("gone")},
	}}

	got := FilterBatch(batch)
	if len(got) != 1 || got[0].ID != "app" || got[0].Name != "App" {
		t.Errorf("expected only the app pointer, got %v", got)
	}
}
