package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/rl1809/updatechecker/internal/adapter/handler"
	"github.com/rl1809/updatechecker/internal/adapter/handler/pb"
)

var queryServer string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a running server over gRPC",
	Example: `  updatechecker query software
  updatechecker query versions go
  updatechecker query version go 1.22.3 --server catalog:50051`,
}

var querySoftwareCmd = &cobra.Command{
	Use:   "software",
	Short: "List tracked software ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogClient(cmd.Context(), func(ctx context.Context, c pb.CatalogServiceClient) error {
			resp, err := c.ListSoftware(ctx, &pb.ListSoftwareRequest{})
			if err != nil {
				return err
			}
			for _, id := range resp.GetIds() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var queryVersionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "Show the current and earlier versions of one software",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogClient(cmd.Context(), func(ctx context.Context, c pb.CatalogServiceClient) error {
			resp, err := c.ListVersions(ctx, &pb.ListVersionsRequest{Id: args[0]})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", resp.GetId(), dash(resp.GetName()))
			fmt.Fprintf(out, "current:  %s\n", resp.GetCurrent())
			fmt.Fprintf(out, "previous: %s\n", dash(strings.Join(resp.GetVersions(), ", ")))
			return nil
		})
	},
}

var queryVersionCmd = &cobra.Command{
	Use:   "version <id> <version>",
	Short: "Check whether a version of one software is known",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalogClient(cmd.Context(), func(ctx context.Context, c pb.CatalogServiceClient) error {
			resp, err := c.GetVersion(ctx, &pb.GetVersionRequest{Id: args[0], Version: args[1]})
			if err != nil {
				return err
			}
			state := "historical"
			if resp.GetCurrent() {
				state = "current"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", resp.GetId(), resp.GetVersion(), state)
			return nil
		})
	},
}

func init() {
	queryCmd.PersistentFlags().StringVar(&queryServer, "server", "", "gRPC server address (default: the configured gRPC address)")
	queryCmd.AddCommand(querySoftwareCmd, queryVersionsCmd, queryVersionCmd)
	RootCmd.AddCommand(queryCmd)
}

func withCatalogClient(ctx context.Context, fn func(context.Context, pb.CatalogServiceClient) error) error {
	addr := serverAddr(queryServer, cfg.GRPCAddr)
	conn, err := dialCatalog(addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(withAPIKey(ctx, cfg.APIKey), pb.NewCatalogServiceClient(conn))
}

// dialCatalog opens a plaintext connection to a catalog server.
func dialCatalog(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

func withAPIKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, handler.APIKeyMetadata, key)
}

// serverAddr turns a listen address such as ":50051" into a dialable one.
func serverAddr(explicit, listen string) string {
	if explicit != "" {
		return explicit
	}
	if strings.HasPrefix(listen, ":") {
		return "localhost" + listen
	}
	return listen
}
