package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/updatechecker/internal/adapter/fetcher"
	"github.com/rl1809/updatechecker/internal/adapter/messaging"
	"github.com/rl1809/updatechecker/internal/adapter/storage"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/core/service"
)

const (
	redisAddr        = "localhost:6379"
	stream           = "stress:software-mutations"
	group            = "stress"
	softwareCount    = 200
	concurrentCycles = 8
	refreshWorkers   = 16
)

type countingPublisher struct {
	mu    sync.Mutex
	byID  map[string]int
	total atomic.Int32
}

func (p *countingPublisher) Publish(ctx context.Context, n domain.Notification) error {
	p.mu.Lock()
	p.byID[n.ID]++
	p.mu.Unlock()
	p.total.Add(1)
	return nil
}

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, stream)

	feed := messaging.NewRedisStreamAdapter(rdb, stream, group, "stress-1", 500)
	if err := feed.EnsureGroup(ctx); err != nil {
		log.Fatalf("failed to create consumer group: %v", err)
	}
	store := storage.NewObservedStore(storage.NewMemoryStore(), feed)
	publisher := &countingPublisher{byID: make(map[string]int)}
	streamService := service.NewStreamService(service.NewDispatcher(publisher, time.Second))

	for round, version := range []string{"1.0.0", "1.1.0"} {
		entries := make([]fetcher.Entry, softwareCount)
		for i := range entries {
			entries[i] = fetcher.Entry{
				ID:     fmt.Sprintf("software-%03d", i),
				Name:   fmt.Sprintf("Software %d", i),
				Source: fetcher.Source{Kind: fetcher.SourceStatic, Version: version},
			}
		}
		registry := fetcher.NewRegistry(entries...)
		refreshService := service.NewRefreshService(store, fetcher.NewHTTPFetcher(registry, nil), registry, refreshWorkers, 0)

		// Race several full cycles over the same ids
		var updated, unchanged, failed atomic.Int32
		var wg sync.WaitGroup
		start := time.Now()
		for c := 0; c < concurrentCycles; c++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, o := range refreshService.RefreshAll(ctx) {
					switch o.Status {
					case domain.RefreshUpdated:
						updated.Add(1)
					case domain.RefreshUnchanged:
						unchanged.Add(1)
					default:
						failed.Add(1)
					}
				}
			}()
		}
		wg.Wait()
		elapsed := time.Since(start)

		before := publisher.total.Load()
		drain(ctx, streamService, feed)
		notified := publisher.total.Load() - before

		fmt.Printf("========== ROUND %d (version %s) ==========\n", round+1, version)
		fmt.Printf("Software:         %d\n", softwareCount)
		fmt.Printf("Racing Cycles:    %d\n", concurrentCycles)
		fmt.Printf("Updated:          %d\n", updated.Load())
		fmt.Printf("Unchanged:        %d\n", unchanged.Load())
		fmt.Printf("Errors:           %d\n", failed.Load())
		fmt.Printf("Notifications:    %d\n", notified)
		fmt.Printf("Duration:         %v\n", elapsed)
		fmt.Println("==========================================")

		// Assertions
		if updated.Load() == softwareCount {
			fmt.Printf("PASS: exactly one update per software\n")
		} else {
			fmt.Printf("FAIL: expected %d updates, got %d\n", softwareCount, updated.Load())
		}
		if notified == softwareCount {
			fmt.Printf("PASS: exactly one notification per software\n")
		} else {
			fmt.Printf("FAIL: expected %d notifications, got %d\n", softwareCount, notified)
		}

		query := service.NewQueryService(store)
		wrong := 0
		for _, e := range entries {
			view, err := query.ListVersions(ctx, e.ID)
			if err != nil || view.Current != version || len(view.Versions) != round {
				wrong++
			}
		}
		if wrong == 0 {
			fmt.Println("PASS: every latest pointer holds the fetched version")
		} else {
			fmt.Printf("FAIL: %d software with unexpected versions\n", wrong)
		}
	}
}

// drain processes the feed until two reads in a row come back empty. The
// first empty read may only mean there were no pending entries.
func drain(ctx context.Context, streamService *service.StreamService, feed *messaging.RedisStreamAdapter) {
	empty := 0
	for empty < 2 {
		batch, err := feed.ReadBatch(ctx)
		if err != nil {
			log.Fatalf("failed to read feed: %v", err)
		}
		if len(batch.Events) == 0 {
			empty++
			continue
		}
		empty = 0
		streamService.HandleBatch(ctx, batch)
		if err := feed.Ack(ctx, batch); err != nil {
			log.Fatalf("failed to ack feed: %v", err)
		}
	}
}
