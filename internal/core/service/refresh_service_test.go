package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

func TestRefresh_FirstObservation(t *testing.T) {
	store := newMockStore()
	fetcher := newMockFetcher()
	fetcher.set("go", "Go", "1.22.0")
	svc := NewRefreshService(store, fetcher, fetcher, 2, 0)

	outcome := svc.Refresh(context.Background(), "go")
	if outcome.Status != domain.RefreshUpdated {
		t.Fatalf("expected updated, got %s (%v)", outcome.Status, outcome.Err)
	}
	if outcome.Previous != "" {
		t.Errorf("expected no previous version, got %q", outcome.Previous)
	}

	latest, _ := store.Get(context.Background(), domain.LatestKey("go"))
	if latest == nil || latest.Version != "1.22.0" || latest.Name != "Go" {
		t.Errorf("unexpected latest pointer: %+v", latest)
	}
	hist, _ := store.Get(context.Background(), domain.VersionKey("go", "1.22.0"))
	if hist == nil {
		t.Error("expected historical version record")
	}
}

func TestRefresh_ChangeDetection(t *testing.T) {
	store := newMockStore(
		domain.NewLatestPointer("app", "App", "1.0"),
		domain.NewHistoricalVersion("app", "1.0"),
	)
	fetcher := newMockFetcher()
	fetcher.set("app", "App", "1.1")
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	outcome := svc.Refresh(context.Background(), "app")
	if outcome.Status != domain.RefreshUpdated || outcome.Version != "1.1" || outcome.Previous != "1.0" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	latest, _ := store.Get(context.Background(), domain.LatestKey("app"))
	if latest.Version != "1.1" {
		t.Errorf("expected latest 1.1, got %s", latest.Version)
	}
	if hist, _ := store.Get(context.Background(), domain.VersionKey("app", "1.1")); hist == nil {
		t.Error("expected historical record for 1.1")
	}

	records, _ := store.ScanAll(context.Background())
	view, _ := Project(records).Lookup("app")
	if view.Current != "1.1" {
		t.Errorf("expected current 1.1, got %s", view.Current)
	}
	if len(view.Versions) != 1 || view.Versions[0] != "1.0" {
		t.Errorf("expected history [1.0], got %v", view.Versions)
	}
}

func TestRefresh_UnchangedIsIdempotent(t *testing.T) {
	store := newMockStore()
	fetcher := newMockFetcher()
	fetcher.set("app", "App", "2.0")
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	if o := svc.Refresh(context.Background(), "app"); o.Status != domain.RefreshUpdated {
		t.Fatalf("first refresh: %+v", o)
	}
	recordsAfterFirst := store.count()
	putsAfterFirst := store.puts

	for i := 0; i < 2; i++ {
		o := svc.Refresh(context.Background(), "app")
		if o.Status != domain.RefreshUnchanged {
			t.Errorf("refresh %d: expected unchanged, got %s", i, o.Status)
		}
	}

	if store.count() != recordsAfterFirst {
		t.Errorf("expected %d records, got %d", recordsAfterFirst, store.count())
	}
	if store.puts != putsAfterFirst {
		t.Errorf("unchanged refresh must not write, puts went from %d to %d", putsAfterFirst, store.puts)
	}
}

func TestRefresh_FetchErrorDoesNotWrite(t *testing.T) {
	store := newMockStore(domain.NewLatestPointer("app", "App", "1.0"))
	fetcher := newMockFetcher()
	fetcher.fail("app", errors.New("upstream timeout"))
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	outcome := svc.Refresh(context.Background(), "app")
	if outcome.Status != domain.RefreshError {
		t.Fatalf("expected error, got %s", outcome.Status)
	}
	if !errors.Is(outcome.Err, ErrFetch) {
		t.Errorf("expected ErrFetch, got: %v", outcome.Err)
	}
	if store.puts != 0 {
		t.Errorf("expected no writes, got %d", store.puts)
	}
}

func TestRefresh_EmptyVersionIsFetchError(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.set("app", "App", "")
	svc := NewRefreshService(newMockStore(), fetcher, fetcher, 1, 0)

	outcome := svc.Refresh(context.Background(), "app")
	if !errors.Is(outcome.Err, ErrFetch) {
		t.Errorf("expected ErrFetch, got: %v", outcome.Err)
	}
}

func TestRefresh_PartialFailureSelfHeals(t *testing.T) {
	store := newMockStore(domain.NewLatestPointer("app", "App", "1.0"))
	store.failPut = func(r domain.SoftwareRecord) error {
		if r.IsLatest() {
			return errors.New("throttled")
		}
		return nil
	}
	fetcher := newMockFetcher()
	fetcher.set("app", "App", "1.1")
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	outcome := svc.Refresh(context.Background(), "app")
	if !errors.Is(outcome.Err, ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got: %+v", outcome)
	}
	if hist, _ := store.Get(context.Background(), domain.VersionKey("app", "1.1")); hist == nil {
		t.Fatal("expected historical record to be written before the pointer")
	}

	// Next cycle retries the pointer write
	store.failPut = nil
	outcome = svc.Refresh(context.Background(), "app")
	if outcome.Status != domain.RefreshUpdated {
		t.Fatalf("expected updated on retry, got %+v", outcome)
	}
	if store.count() != 2 {
		t.Errorf("expected pointer + one history record, got %d records", store.count())
	}
}

func TestRefresh_ConcurrentPointerChange(t *testing.T) {
	store := newMockStore(domain.NewLatestPointer("app", "App", "1.0"))
	fetcher := newMockFetcher()
	fetcher.set("app", "App", "1.2")
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	// Another refresh moves the pointer between our read and our write
	store.failPut = func(r domain.SoftwareRecord) error {
		if r.IsHistorical() {
			store.records[domain.LatestKey("app")] = domain.NewLatestPointer("app", "App", "1.1")
		}
		return nil
	}

	outcome := svc.Refresh(context.Background(), "app")
	if !errors.Is(outcome.Err, ErrConcurrentRefresh) {
		t.Errorf("expected ErrConcurrentRefresh, got: %+v", outcome)
	}
}

func TestRefresh_KeepsStoredNameWhenFetcherHasNone(t *testing.T) {
	store := newMockStore(domain.NewLatestPointer("app", "Application", "1.0"))
	fetcher := newMockFetcher()
	fetcher.set("app", "", "1.1")
	svc := NewRefreshService(store, fetcher, fetcher, 1, 0)

	svc.Refresh(context.Background(), "app")

	latest, _ := store.Get(context.Background(), domain.LatestKey("app"))
	if latest.Name != "Application" {
		t.Errorf("expected stored name to be kept, got %q", latest.Name)
	}
}

func TestRefreshAll_FailureDoesNotAbortSiblings(t *testing.T) {
	store := newMockStore()
	fetcher := newMockFetcher()
	for i := 0; i < 20; i++ {
		fetcher.set(fmt.Sprintf("sw-%02d", i), fmt.Sprintf("Software %d", i), "1.0")
	}
	fetcher.fail("broken", errors.New("404"))
	svc := NewRefreshService(store, fetcher, fetcher, 4, 0)

	outcomes := svc.RefreshAll(context.Background())
	if len(outcomes) != 21 {
		t.Fatalf("expected 21 outcomes, got %d", len(outcomes))
	}

	var updated, failed int
	for i, o := range outcomes {
		if i > 0 && outcomes[i-1].SoftwareID > o.SoftwareID {
			t.Errorf("outcomes not ordered by id at %d", i)
		}
		switch o.Status {
		case domain.RefreshUpdated:
			updated++
		case domain.RefreshError:
			failed++
			if o.SoftwareID != "broken" {
				t.Errorf("unexpected failure for %s: %v", o.SoftwareID, o.Err)
			}
		}
	}
	if updated != 20 || failed != 1 {
		t.Errorf("expected 20 updated and 1 failed, got %d/%d", updated, failed)
	}
}
