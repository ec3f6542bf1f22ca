package handler

import (
	"context"
	"net"
	"reflect"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/rl1809/updatechecker/internal/adapter/handler/pb"
)

func newTestClient(t *testing.T, serverKey string) pb.CatalogServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	query, refresh := newServices(t)

	srv := grpc.NewServer()
	pb.RegisterCatalogServiceServer(srv, NewGRPCHandler(query, refresh, serverKey))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return pb.NewCatalogServiceClient(conn)
}

func withAPIKey(key string) context.Context {
	ctx := context.Background()
	if key == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, APIKeyMetadata, key)
}

func TestGRPC_Queries(t *testing.T) {
	client := newTestClient(t, testAPIKey)
	ctx := context.Background()

	list, err := client.ListSoftware(ctx, &pb.ListSoftwareRequest{})
	if err != nil {
		t.Fatalf("ListSoftware: %v", err)
	}
	if !reflect.DeepEqual(list.GetIds(), []string{"app"}) {
		t.Errorf("ids = %v", list.GetIds())
	}

	versions, err := client.ListVersions(ctx, &pb.ListVersionsRequest{Id: "app"})
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if versions.GetCurrent() != "2.0" || !reflect.DeepEqual(versions.GetVersions(), []string{"1.0"}) {
		t.Errorf("unexpected versions: %v", versions)
	}

	detail, err := client.GetVersion(ctx, &pb.GetVersionRequest{Id: "app", Version: "2.0"})
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if !detail.GetCurrent() || detail.GetName() != "App" {
		t.Errorf("unexpected detail: %v", detail)
	}
}

func TestGRPC_ErrorCodes(t *testing.T) {
	client := newTestClient(t, testAPIKey)
	ctx := context.Background()

	_, err := client.ListVersions(ctx, &pb.ListVersionsRequest{Id: "missing"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("missing id code = %v", status.Code(err))
	}
	_, err = client.GetVersion(ctx, &pb.GetVersionRequest{Id: "app", Version: "9.9"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("missing version code = %v", status.Code(err))
	}
	_, err = client.GetVersion(ctx, &pb.GetVersionRequest{Id: "app"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("empty version code = %v", status.Code(err))
	}
}

func TestGRPC_Refresh(t *testing.T) {
	client := newTestClient(t, testAPIKey)

	resp, err := client.Refresh(withAPIKey(testAPIKey), &pb.RefreshRequest{})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(resp.GetOutcomes()) != 2 {
		t.Fatalf("outcomes = %v", resp.GetOutcomes())
	}
	tool := resp.GetOutcomes()[1]
	if tool.GetSoftwareId() != "tool" || tool.GetStatus() != "updated" || tool.GetVersion() != "0.9" || tool.GetPrevious() != "" {
		t.Errorf("unexpected tool outcome: %v", tool)
	}
}

func TestGRPC_RefreshPermissionDenied(t *testing.T) {
	for name, keys := range map[string][2]string{
		"missing key": {testAPIKey, ""},
		"wrong key":   {testAPIKey, "nope"},
		"disabled":    {"", "anything"},
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, keys[0])
			_, err := client.Refresh(withAPIKey(keys[1]), &pb.RefreshRequest{})
			if status.Code(err) != codes.PermissionDenied {
				t.Errorf("code = %v", status.Code(err))
			}
		})
	}
}

func TestCatalogDescriptorMatchesService(t *testing.T) {
	services := pb.File_updatechecker_v1_catalog_proto.Services()
	if services.Len() != 1 {
		t.Fatalf("services = %d", services.Len())
	}
	svc := services.Get(0)
	if string(svc.FullName()) != pb.CatalogService_ServiceDesc.ServiceName {
		t.Errorf("descriptor %s, service desc %s", svc.FullName(), pb.CatalogService_ServiceDesc.ServiceName)
	}
	if svc.Methods().Len() != len(pb.CatalogService_ServiceDesc.Methods) {
		t.Errorf("descriptor has %d methods, service desc %d", svc.Methods().Len(), len(pb.CatalogService_ServiceDesc.Methods))
	}
	for _, m := range pb.CatalogService_ServiceDesc.Methods {
		if svc.Methods().ByName(protoreflect.Name(m.MethodName)) == nil {
			t.Errorf("method %s missing from descriptor", m.MethodName)
		}
	}
}

func TestRefreshResponseWireEncoding(t *testing.T) {
	in := &pb.RefreshResponse{Outcomes: []*pb.RefreshOutcome{
		{SoftwareId: "go", Status: "updated", Version: "1.10", Previous: "1.9"},
		{SoftwareId: "node", Status: "error", Error: "fetch failed"},
	}}
	raw, err := proto.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := &pb.RefreshResponse{}
	if err := proto.Unmarshal(raw, out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !proto.Equal(in, out) {
		t.Errorf("decoded %v, want %v", out, in)
	}
}
