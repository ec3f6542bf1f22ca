package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rl1809/updatechecker/internal/adapter/fetcher"
	"github.com/rl1809/updatechecker/internal/adapter/storage"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/core/service"
)

const testAPIKey = "s3cret"

// newServices seeds "app" at 2.0 (with 1.0 historical) and registers a second
// id "tool" that has never been observed.
func newServices(t *testing.T) (*service.QueryService, *service.RefreshService) {
	t.Helper()
	store := storage.NewMemoryStore()
	ctx := context.Background()
	for _, rec := range []domain.SoftwareRecord{
		domain.NewLatestPointer("app", "App", "2.0"),
		domain.NewHistoricalVersion("app", "1.0"),
		domain.NewHistoricalVersion("app", "2.0"),
	} {
		if err := store.Put(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	registry := fetcher.NewRegistry(
		fetcher.Entry{ID: "app", Name: "App", Source: fetcher.Source{Kind: fetcher.SourceStatic, Version: "2.0"}},
		fetcher.Entry{ID: "tool", Name: "Tool", Source: fetcher.Source{Kind: fetcher.SourceStatic, Version: "0.9"}},
	)
	f := fetcher.NewHTTPFetcher(registry, http.DefaultClient)
	return service.NewQueryService(store), service.NewRefreshService(store, f, registry, 2, 0)
}
