package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	toml := "ServicePort = 9090\nBlockSize = 50\nShutdownTimeout = \"3s\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.toml"), []byte(toml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("CONFIG_NAME", "")
	t.Setenv("SEARCH_BACKEND", BackendPostgres)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.ServicePort != 9090 || cfg.BlockSize != 50 {
		t.Fatalf("toml values not applied: port %d, block size %d", cfg.ServicePort, cfg.BlockSize)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout = %v, want 3s", cfg.ShutdownTimeout)
	}
	if cfg.ServiceHost != "0.0.0.0" {
		t.Fatalf("default host = %q", cfg.ServiceHost)
	}
	if cfg.SearchBackend != BackendPostgres {
		t.Fatalf("backend = %q, want %q", cfg.SearchBackend, BackendPostgres)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("redis db = %d, want 3", cfg.RedisDB)
	}
	if cfg.MinioEndpoint != "" || !cfg.MinioUseSSL || cfg.MinioBucket != "contacts" {
		t.Fatalf("unexpected minio settings %+v", cfg)
	}
}
