package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.GRPCAddr != ":50051" {
		t.Errorf("unexpected addrs: %s %s", cfg.HTTPAddr, cfg.GRPCAddr)
	}
	if cfg.Store != StoreMemory || cfg.Topic != TopicLog {
		t.Errorf("unexpected store/topic: %s/%s", cfg.Store, cfg.Topic)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Errorf("refresh interval = %s, want 1h", cfg.RefreshInterval)
	}
	if cfg.ConsumerName == "" {
		t.Error("consumer name should default to something")
	}
	if cfg.APIKey != "" {
		t.Error("api key must not have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UPDATECHECKER_STORE", "SQLite")
	t.Setenv("UPDATECHECKER_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("UPDATECHECKER_REFRESH_INTERVAL", "15m")
	t.Setenv("UPDATECHECKER_REFRESH_WORKERS", "3")
	t.Setenv("UPDATECHECKER_API_KEY", " key ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.SQLitePath != "/tmp/x.db" {
		t.Errorf("unexpected store config: %+v", cfg)
	}
	if cfg.RefreshInterval != 15*time.Minute || cfg.RefreshWorkers != 3 {
		t.Errorf("unexpected refresh config: %s %d", cfg.RefreshInterval, cfg.RefreshWorkers)
	}
	if cfg.APIKey != "key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("UPDATECHECKER_BATCH_SIZE", "many")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "UPDATECHECKER_BATCH_SIZE") {
		t.Errorf("expected batch size error, got %v", err)
	}

	t.Setenv("UPDATECHECKER_BATCH_SIZE", "")
	t.Setenv("UPDATECHECKER_FETCH_TIMEOUT", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "UPDATECHECKER_FETCH_TIMEOUT") {
		t.Errorf("expected fetch timeout error, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := Config{HTTPAddr: ":1", Store: StoreMemory, BatchSize: 10}
	got := base.Merge(Config{HTTPAddr: " ", Store: "MYSQL", BatchSize: 0, RefreshWorkers: 4})

	if got.HTTPAddr != ":1" {
		t.Errorf("blank override should not replace value, got %q", got.HTTPAddr)
	}
	if got.Store != StoreMySQL {
		t.Errorf("store = %q", got.Store)
	}
	if got.BatchSize != 10 || got.RefreshWorkers != 4 {
		t.Errorf("unexpected numbers: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Store: "postgres", Topic: TopicSNS}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"unknown store", "SNS_TOPIC_ARN"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
