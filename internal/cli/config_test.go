package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadConfig(missing) error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Store.Backend != backendMemory {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9000"
metrics = false

[cache]
backend = "redis"
addr = "localhost:6379"
db = 2

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"

[render]
format = "text"
title = "Club Meet"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Server.Metrics {
		t.Error("Server.Metrics should be false")
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.Addr != "localhost:6379" || cfg.Cache.DB != 2 {
		t.Errorf("Cache = %+v, want redis at localhost:6379 db 2", cfg.Cache)
	}
	if cfg.Store.Backend != backendMongo {
		t.Errorf("Store.Backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Render.Title != "Club Meet" {
		t.Errorf("Render.Title = %q, want Club Meet", cfg.Render.Title)
	}
}

func TestLoadConfigRejectsUnknownBackends(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad store backend", "[store]\nbackend = \"postgres\"\n"},
		{"not toml", "{json: true}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadConfig(path); err == nil {
				t.Error("loadConfig() should fail")
			}
		})
	}
}
