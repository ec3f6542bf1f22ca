package app

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/rl1809/updatechecker/internal/adapter/handler"
	"github.com/rl1809/updatechecker/internal/core/domain"
	"github.com/rl1809/updatechecker/internal/core/service"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		found[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "refresh", "consume", "query", "forget"} {
		if !found[want] {
			t.Errorf("expected command %q to be registered", want)
		}
	}

	sub := make(map[string]bool)
	for _, cmd := range queryCmd.Commands() {
		sub[cmd.Name()] = true
	}
	for _, want := range []string{"software", "versions", "version"} {
		if !sub[want] {
			t.Errorf("expected query subcommand %q", want)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	for _, name := range []string{"store", "sqlite-path", "registry", "topic", "stream", "http-addr", "grpc-addr"} {
		flag := RootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s to have usage text", name)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct{ explicit, listen, want string }{
		{"", ":50051", "localhost:50051"},
		{"", "10.0.0.1:50051", "10.0.0.1:50051"},
		{"catalog:9000", ":50051", "catalog:9000"},
	}
	for _, tt := range tests {
		if got := serverAddr(tt.explicit, tt.listen); got != tt.want {
			t.Errorf("serverAddr(%q, %q) = %q, want %q", tt.explicit, tt.listen, got, tt.want)
		}
	}
}

func TestRenderOutcomes(t *testing.T) {
	var buf bytes.Buffer
	failed := renderOutcomes(&buf, outcomeRows([]domain.RefreshOutcome{
		{SoftwareID: "app", Status: domain.RefreshUpdated, Version: "1.1", Previous: "1.0"},
		{SoftwareID: "new", Status: domain.RefreshUpdated, Version: "0.1"},
		{SoftwareID: "bad", Status: domain.RefreshError, Err: errors.New("fetch failed: boom")},
	}))

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	out := buf.String()
	for _, want := range []string{"SOFTWARE", "app", "1.0", "1.1", "fetch failed: boom", "3 software, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("no color codes expected for a buffer")
	}
}

func TestRunScheduler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var cycles atomic.Int32

	done := make(chan struct{})
	go func() {
		runScheduler(ctx, 20*time.Millisecond, func(context.Context) {
			cycles.Add(1)
		})
		close(done)
	}()

	time.Sleep(110 * time.Millisecond)
	cancel()
	<-done

	if n := cycles.Load(); n < 2 {
		t.Errorf("expected an immediate cycle plus ticks, got %d", n)
	}
}

type flakySource struct {
	mu    sync.Mutex
	reads int
	acked int
}

func (f *flakySource) ReadBatch(ctx context.Context) (domain.MutationBatch, error) {
	f.mu.Lock()
	f.reads++
	n := f.reads
	f.mu.Unlock()

	switch n {
	case 1:
		return domain.MutationBatch{}, errors.New("connection reset")
	case 2:
		rec := domain.NewLatestPointer("app", "App", "1.0")
		return domain.MutationBatch{Events: []domain.MutationEvent{{
			Kind: domain.EventInsert, Key: rec.Key(), NewImage: &rec,
		}}}, nil
	default:
		<-ctx.Done()
		return domain.MutationBatch{}, ctx.Err()
	}
}

func (f *flakySource) Ack(ctx context.Context, batch domain.MutationBatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked += len(batch.Events)
	return nil
}

type countingPublisher struct {
	published atomic.Int32
}

func (p *countingPublisher) Publish(ctx context.Context, n domain.Notification) error {
	p.published.Add(1)
	return nil
}

func TestRunConsumer_RestartsAfterSourceError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &flakySource{}
	pub := &countingPublisher{}
	svc := service.NewStreamService(service.NewDispatcher(pub, time.Second))

	done := make(chan struct{})
	go func() {
		runConsumer(ctx, svc, source, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for pub.published.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if pub.published.Load() != 1 {
		t.Errorf("published = %d, want 1", pub.published.Load())
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.acked != 1 {
		t.Errorf("acked = %d, want 1", source.acked)
	}
}

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRefreshAndForget_SQLite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	registryPath := filepath.Join(dir, "registry.yaml")
	registry := "software:\n" +
		"  - id: tool\n    name: Tool\n    source: {kind: static, version: '1.2.0'}\n" +
		"  - id: lib\n    source: {kind: static, version: '0.3'}\n"
	if err := os.WriteFile(registryPath, []byte(registry), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	base := []string{
		"--store", "sqlite",
		"--sqlite-path", filepath.Join(dir, "catalog.db"),
		"--registry", registryPath,
		"--stream", "none",
	}

	out, err := executeCLI(t, append([]string{"refresh"}, base...)...)
	if err != nil {
		t.Fatalf("refresh: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 software, 0 failed") || strings.Count(out, "updated") != 2 {
		t.Errorf("unexpected first refresh output:\n%s", out)
	}

	out, err = executeCLI(t, append([]string{"refresh"}, base...)...)
	if err != nil {
		t.Fatalf("second refresh: %v\n%s", err, out)
	}
	if strings.Count(out, "unchanged") != 2 {
		t.Errorf("second cycle should be unchanged:\n%s", out)
	}

	out, err = executeCLI(t, append([]string{"forget", "tool"}, base...)...)
	if err != nil {
		t.Fatalf("forget: %v\n%s", err, out)
	}
	if !strings.Contains(out, "deleted 2 records of tool") || !strings.Contains(out, "will be observed again") {
		t.Errorf("unexpected forget output:\n%s", out)
	}

	if _, err := executeCLI(t, append([]string{"forget", "tool"}, base...)...); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("second forget should report not found, got %v", err)
	}
}

func TestRefresh_FailureExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	registryPath := filepath.Join(dir, "registry.yaml")
	registry := "software:\n  - id: broken\n    source: {kind: json, url: 'http://127.0.0.1:1/none', field: v}\n"
	if err := os.WriteFile(registryPath, []byte(registry), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	out, err := executeCLI(t, "refresh",
		"--store", "sqlite",
		"--sqlite-path", filepath.Join(dir, "catalog.db"),
		"--registry", registryPath,
		"--stream", "none",
	)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 refreshes failed") {
		t.Errorf("expected failure error, got %v", err)
	}
	if !strings.Contains(out, "broken") {
		t.Errorf("output should list the failed id:\n%s", out)
	}
}

func TestOutcomeRowsMatchWireShape(t *testing.T) {
	rows := outcomeRows([]domain.RefreshOutcome{{SoftwareID: "a", Status: domain.RefreshUnchanged, Version: "1"}})
	want := handler.OutcomeResponse{SoftwareID: "a", Status: "unchanged", Version: "1"}
	if len(rows) != 1 || rows[0] != want {
		t.Errorf("rows = %+v", rows)
	}
}

func TestServe_ListenFailureStopsWorkers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	t.Chdir(dir)

	registryPath := filepath.Join(dir, "registry.yaml")
	registry := "software:\n  - id: tool\n    source: {kind: static, version: '1.0'}\n"
	if err := os.WriteFile(registryPath, []byte(registry), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	_, err = executeCLI(t, "serve",
		"--store", "sqlite",
		"--sqlite-path", filepath.Join(dir, "catalog.db"),
		"--registry", registryPath,
		"--stream", "none",
		"--grpc-addr", taken.Addr().String(),
		"--http-addr", "127.0.0.1:0",
	)
	if err == nil || !strings.Contains(err.Error(), "listen on") {
		t.Errorf("expected listen error, got %v", err)
	}
}
