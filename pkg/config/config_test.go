package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robustify/gmplot/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gmplot.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.MinInterval() != 3*time.Second {
		t.Errorf("MinInterval() = %v, want %v", cfg.MinInterval(), 3*time.Second)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "none")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[maps]
api_key = "k123"
icon_base = "https://icons.example.com/markers"

[limits]
min_interval_seconds = 1.5

[cache]
backend = "redis"

[cache.redis]
addr = "localhost:6379"
db = 2

[archive]
backend = "mongo"
uri = "mongodb://localhost:27017"
database = "maps"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Maps.APIKey != "k123" {
		t.Errorf("Maps.APIKey = %q, want %q", cfg.Maps.APIKey, "k123")
	}
	if cfg.MinInterval() != 1500*time.Millisecond {
		t.Errorf("MinInterval() = %v, want %v", cfg.MinInterval(), 1500*time.Millisecond)
	}
	if cfg.Cache.Redis.DB != 2 {
		t.Errorf("Cache.Redis.DB = %d, want 2", cfg.Cache.Redis.DB)
	}
	if cfg.Archive.Database != "maps" {
		t.Errorf("Archive.Database = %q, want %q", cfg.Archive.Database, "maps")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[maps]
api_key = "k123"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Archive.Backend != "memory" {
		t.Errorf("Archive.Backend = %q, want default %q", cfg.Archive.Backend, "memory")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"file cache without dir", func(c *Config) { c.Cache.Backend = "file" }, false},
		{"file cache with dir", func(c *Config) { c.Cache.Backend = "file"; c.Cache.Dir = "/tmp/x" }, true},
		{"mongo without uri", func(c *Config) { c.Archive.Backend = "mongo" }, false},
		{"negative interval", func(c *Config) { c.Limits.MinIntervalSeconds = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() error = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}

func TestOpenCacheNone(t *testing.T) {
	cfg := Default()
	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	if c == nil {
		t.Fatal("OpenCache() returned nil cache")
	}
}

func TestOpenStoreMemory(t *testing.T) {
	cfg := Default()
	st, err := cfg.OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if st == nil {
		t.Fatal("OpenStore() returned nil store for memory backend")
	}
}

func TestOpenStoreNone(t *testing.T) {
	cfg := Default()
	cfg.Archive.Backend = "none"
	st, err := cfg.OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if st != nil {
		t.Fatal("OpenStore() returned a store for the none backend")
	}
}
