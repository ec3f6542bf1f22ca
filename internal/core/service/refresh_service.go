package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/metrics"
	"github.com/rl1809/updatechecker/internal/port"
)

const defaultRefreshWorkers = 4

type RefreshService struct {
	store    port.RecordStore
	fetcher  port.VersionFetcher
	registry port.SoftwareRegistry
	workers  int
	timeout  time.Duration
}

// NewRefreshService builds the refresh engine. workers bounds concurrent refreshes
// in RefreshAll; timeout, when positive, caps a single software refresh.
func NewRefreshService(store port.RecordStore, fetcher port.VersionFetcher, registry port.SoftwareRegistry, workers int, timeout time.Duration) *RefreshService {
	if workers <= 0 {
		workers = defaultRefreshWorkers
	}
	return &RefreshService{
		store:    store,
		fetcher:  fetcher,
		registry: registry,
		workers:  workers,
		timeout:  timeout,
	}
}

// Refresh compares the fetched version of one software id against its latest
// pointer and records a new version when they differ.
func (s *RefreshService) Refresh(ctx context.Context, softwareID string) domain.RefreshOutcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	outcome := s.refresh(ctx, softwareID)
	metrics.RefreshOutcomes.WithLabelValues(softwareID, string(outcome.Status)).Inc()
	return outcome
}

func (s *RefreshService) refresh(ctx context.Context, softwareID string) domain.RefreshOutcome {
	outcome := domain.RefreshOutcome{SoftwareID: softwareID}
	fail := func(err error) domain.RefreshOutcome {
		outcome.Status = domain.RefreshError
		outcome.Err = err
		return outcome
	}

	current, err := s.store.Get(ctx, domain.LatestKey(softwareID))
	if err != nil {
		return fail(fmt.Errorf("read latest pointer of %s: %w", softwareID, err))
	}
	if current != nil {
		outcome.Previous = current.Version
	}

	fetched, err := s.fetcher.FetchLatest(ctx, softwareID)
	if err != nil {
		return fail(fmt.Errorf("%w: %s: %w", ErrFetch, softwareID, err))
	}
	if fetched.Version == "" {
		return fail(fmt.Errorf("%w: %s: empty version", ErrFetch, softwareID))
	}
	outcome.Version = fetched.Version

	if current != nil && current.Version == fetched.Version {
		outcome.Status = domain.RefreshUnchanged
		return outcome
	}

	name := fetched.Name
	if name == "" && current != nil {
		name = current.Name
	}

	if err := s.store.Put(ctx, domain.NewHistoricalVersion(softwareID, fetched.Version)); err != nil {
		return fail(fmt.Errorf("%w: historical version %s of %s: %w", ErrStoreWrite, fetched.Version, softwareID, err))
	}

	pointer := domain.NewLatestPointer(softwareID, name, fetched.Version)
	if err := s.store.PutIfVersion(ctx, pointer, outcome.Previous); err != nil {
		if errors.Is(err, domain.ErrConditionFailed) {
			return fail(fmt.Errorf("%w: %s: expected %q", ErrConcurrentRefresh, softwareID, outcome.Previous))
		}
		return fail(fmt.Errorf("%w: latest pointer of %s: %w", ErrStoreWrite, softwareID, err))
	}

	outcome.Status = domain.RefreshUpdated
	return outcome
}

// RefreshAll runs one refresh cycle over every registered software id. A failure
// for one id never stops the others. Outcomes are ordered by id.
func (s *RefreshService) RefreshAll(ctx context.Context) []domain.RefreshOutcome {
	logger := common.Logger()
	start := time.Now()

	ids := s.registry.SoftwareIDs()
	outcomes := make([]domain.RefreshOutcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = s.Refresh(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].SoftwareID < outcomes[j].SoftwareID })

	var updated, unchanged, failed int
	for _, o := range outcomes {
		switch o.Status {
		case domain.RefreshUpdated:
			updated++
			logger.Info("refresh: new version", "software", o.SoftwareID, "previous", o.Previous, "version", o.Version)
		case domain.RefreshUnchanged:
			unchanged++
		case domain.RefreshError:
			failed++
			logger.Error("refresh: failed", "software", o.SoftwareID, "error", o.Err)
		}
	}

	elapsed := time.Since(start)
	metrics.RefreshCycleDuration.Observe(elapsed.Seconds())
	logger.Info("refresh: cycle complete",
		"software", len(ids),
		"updated", updated,
		"unchanged", unchanged,
		"failed", failed,
		"duration", elapsed,
	)
	return outcomes
}
