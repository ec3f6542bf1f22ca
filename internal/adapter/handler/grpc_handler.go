package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/updatechecker/internal/adapter/handler/pb"
	"github.com/rl1809/updatechecker/internal/core/service"
)

// APIKeyMetadata is the metadata key carrying the refresh API key.
const APIKeyMetadata = "x-api-key"

type GRPCHandler struct {
	pb.UnimplementedCatalogServiceServer
	queryService   *service.QueryService
	refreshService *service.RefreshService
	apiKey         string
}

func NewGRPCHandler(queryService *service.QueryService, refreshService *service.RefreshService, apiKey string) *GRPCHandler {
	return &GRPCHandler{queryService: queryService, refreshService: refreshService, apiKey: apiKey}
}

func (h *GRPCHandler) ListSoftware(ctx context.Context, _ *pb.ListSoftwareRequest) (*pb.ListSoftwareResponse, error) {
	ids, err := h.queryService.ListSoftware(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.ListSoftwareResponse{Ids: ids}, nil
}

func (h *GRPCHandler) ListVersions(ctx context.Context, req *pb.ListVersionsRequest) (*pb.ListVersionsResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	view, err := h.queryService.ListVersions(ctx, req.GetId())
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.ListVersionsResponse{
		Id:       view.ID,
		Name:     view.Name,
		Current:  view.Current,
		Versions: view.Versions,
	}, nil
}

func (h *GRPCHandler) GetVersion(ctx context.Context, req *pb.GetVersionRequest) (*pb.GetVersionResponse, error) {
	if req.GetId() == "" || req.GetVersion() == "" {
		return nil, status.Error(codes.InvalidArgument, "id and version are required")
	}
	detail, err := h.queryService.GetVersion(ctx, req.GetId(), req.GetVersion())
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.GetVersionResponse{
		Id:      detail.ID,
		Name:    detail.Name,
		Version: detail.Version,
		Current: detail.Current,
	}, nil
}

func (h *GRPCHandler) Refresh(ctx context.Context, _ *pb.RefreshRequest) (*pb.RefreshResponse, error) {
	var provided string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(APIKeyMetadata); len(values) > 0 {
			provided = values[0]
		}
	}
	if !validAPIKey(h.apiKey, provided) {
		return nil, status.Error(codes.PermissionDenied, "invalid or missing api key")
	}

	outcomes := h.refreshService.RefreshAll(ctx)
	resp := &pb.RefreshResponse{Outcomes: make([]*pb.RefreshOutcome, 0, len(outcomes))}
	for _, o := range outcomes {
		out := toOutcomeResponse(o)
		resp.Outcomes = append(resp.Outcomes, &pb.RefreshOutcome{
			SoftwareId: out.SoftwareID,
			Status:     out.Status,
			Version:    out.Version,
			Previous:   out.Previous,
			Error:      out.Error,
		})
	}
	return resp, nil
}

func grpcError(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
