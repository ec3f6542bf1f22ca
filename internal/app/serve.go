package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/rl1809/updatechecker/internal/adapter/handler"
	"github.com/rl1809/updatechecker/internal/adapter/handler/pb"
	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/service"
	"github.com/rl1809/updatechecker/internal/port"
)

const (
	shutdownTimeout = 5 * time.Second
	consumerBackoff = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the query servers, the refresh scheduler and the notifier",
	Long: `Start the HTTP and gRPC query servers, refresh every registered software
at startup and then every REFRESH_INTERVAL, reload the registry when its file
changes, and consume the mutation feed to publish notifications.

The process stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := common.Logger()
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st, err := openStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	registry, versionFetcher, err := st.fetcher()
	if err != nil {
		return err
	}
	logger.Info("loaded registry", "path", cfg.RegistryFile, "software", len(registry.SoftwareIDs()))

	refreshService := service.NewRefreshService(st.store, versionFetcher, registry, cfg.RefreshWorkers, cfg.FetchTimeout)
	queryService := service.NewQueryService(st.store)

	var wg sync.WaitGroup
	stopWorkers := func() {
		cancel()
		wg.Wait()
	}
	// Runs before st.Close so no worker outlives the stack on an early return.
	defer stopWorkers()

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := registry.Watch(ctx); err != nil {
			logger.Error("registry watcher stopped", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		runScheduler(ctx, cfg.RefreshInterval, func(ctx context.Context) {
			refreshService.RefreshAll(ctx)
		})
	}()

	if st.stream != nil {
		publisher, err := st.publisher(ctx)
		if err != nil {
			return err
		}
		streamService := service.NewStreamService(service.NewDispatcher(publisher, cfg.PublishTimeout))
		wg.Add(1)
		go func() {
			defer wg.Done()
			runConsumer(ctx, streamService, st.stream, consumerBackoff)
		}()
		logger.Info("started notifier", "topic", cfg.Topic)
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	pb.RegisterCatalogServiceServer(grpcServer, handler.NewGRPCHandler(queryService, refreshService, cfg.APIKey))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewHTTPHandler(queryService, refreshService, cfg.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown", "error", err)
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	// Stop scheduler, watcher and consumer
	stopWorkers()
	logger.Info("background workers stopped")
	return nil
}

// runScheduler runs cycle once immediately and then on every tick until ctx
// is done. A cycle that overruns the interval delays the next one.
func runScheduler(ctx context.Context, interval time.Duration, cycle func(context.Context)) {
	cycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycle(ctx)
		}
	}
}

// runConsumer keeps the stream consumer alive, restarting it after a backoff
// when the source fails.
func runConsumer(ctx context.Context, streamService *service.StreamService, source port.MutationSource, backoff time.Duration) {
	logger := common.Logger()
	for {
		err := streamService.Consume(ctx, source)
		if ctx.Err() != nil {
			return
		}
		logger.Error("consumer stopped, restarting", "error", err, "backoff", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}
