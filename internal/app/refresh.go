package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rl1809/updatechecker/internal/adapter/handler"
	"github.com/rl1809/updatechecker/internal/adapter/handler/pb"
	"github.com/rl1809/updatechecker/internal/core/service"
)

var refreshRemote string

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one refresh cycle and print the outcomes",
	Long: `Fetch the current version of every registered software once and record
the ones that changed. With --remote the cycle runs on a server through gRPC,
authenticated with UPDATECHECKER_API_KEY.

Exits non-zero when any software failed to refresh.`,
	Example: `  updatechecker refresh --registry ./registry.yaml
  updatechecker refresh --remote localhost:50051`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshRemote, "remote", "", "gRPC address of a running server")
	RootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	var (
		rows []handler.OutcomeResponse
		err  error
	)
	if refreshRemote != "" {
		rows, err = refreshOnServer(cmd.Context(), refreshRemote)
	} else {
		rows, err = refreshLocally(cmd.Context())
	}
	if err != nil {
		return err
	}

	if failed := renderOutcomes(cmd.OutOrStdout(), rows); failed > 0 {
		return fmt.Errorf("%d of %d refreshes failed", failed, len(rows))
	}
	return nil
}

func refreshLocally(ctx context.Context) ([]handler.OutcomeResponse, error) {
	st, err := openStack(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	registry, versionFetcher, err := st.fetcher()
	if err != nil {
		return nil, err
	}
	svc := service.NewRefreshService(st.store, versionFetcher, registry, cfg.RefreshWorkers, cfg.FetchTimeout)
	return outcomeRows(svc.RefreshAll(ctx)), nil
}

func refreshOnServer(ctx context.Context, addr string) ([]handler.OutcomeResponse, error) {
	conn, err := dialCatalog(addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	resp, err := pb.NewCatalogServiceClient(conn).Refresh(withAPIKey(ctx, cfg.APIKey), &pb.RefreshRequest{})
	if err != nil {
		return nil, err
	}
	rows := make([]handler.OutcomeResponse, 0, len(resp.GetOutcomes()))
	for _, o := range resp.GetOutcomes() {
		rows = append(rows, handler.OutcomeResponse{
			SoftwareID: o.GetSoftwareId(),
			Status:     o.GetStatus(),
			Version:    o.GetVersion(),
			Previous:   o.GetPrevious(),
			Error:      o.GetError(),
		})
	}
	return rows, nil
}
