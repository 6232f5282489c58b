// Package config loads service configuration from TOML files.
//
// All settings have working defaults, so a missing config file yields a
// usable local setup: in-memory archive, no page cache, no API key.
package config

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/robustify/gmplot/pkg/cache"
	"github.com/robustify/gmplot/pkg/errors"
	"github.com/robustify/gmplot/pkg/pipeline"
	"github.com/robustify/gmplot/pkg/store"
)

// Config is the root configuration.
type Config struct {
	Server  Server  `toml:"server"`
	Maps    Maps    `toml:"maps"`
	Limits  Limits  `toml:"limits"`
	Cache   Cache   `toml:"cache"`
	Archive Archive `toml:"archive"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `toml:"addr"`
}

// Maps configures the rendered pages.
type Maps struct {
	// APIKey is the Google Maps JavaScript API key embedded into pages.
	// Pages render without one, with a degraded watermark.
	APIKey string `toml:"api_key"`

	// IconBase is the directory or URL prefix for marker icons.
	IconBase string `toml:"icon_base"`
}

// Limits configures request throttling.
type Limits struct {
	// MinIntervalSeconds is the required gap between render sessions.
	MinIntervalSeconds float64 `toml:"min_interval_seconds"`
}

// Cache configures the rendered-page cache.
type Cache struct {
	// Backend selects the cache implementation: "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	Redis Redis `toml:"redis"`
}

// Redis holds redis connection settings.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Archive configures map archival.
type Archive struct {
	// Backend selects the archive implementation: "memory" or "mongo".
	Backend string `toml:"backend"`

	// URI is the MongoDB connection string for the mongo backend.
	URI string `toml:"uri"`

	// Database is the MongoDB database name.
	Database string `toml:"database"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080"},
		Limits: Limits{MinIntervalSeconds: pipeline.DefaultMinIntervalSeconds},
		Cache:  Cache{Backend: "none"},
		Archive: Archive{
			Backend:  "memory",
			Database: "gmplot",
		},
	}
}

// Load reads a TOML config file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", "none", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Archive.Backend {
	case "", "none", "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown archive backend %q", c.Archive.Backend)
	}
	if c.Cache.Backend == "file" && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "file cache backend requires cache.dir")
	}
	if c.Archive.Backend == "mongo" && c.Archive.URI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mongo archive backend requires archive.uri")
	}
	if c.Limits.MinIntervalSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limits.min_interval_seconds must not be negative")
	}
	return nil
}

// MinInterval returns the throttle interval as a duration.
func (c *Config) MinInterval() time.Duration {
	return time.Duration(c.Limits.MinIntervalSeconds * float64(time.Second))
}

// OpenCache constructs the configured page cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		return cache.NewFileCache(c.Cache.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
}

// OpenStore constructs the configured archive backend. A "none" backend
// returns a nil store, which disables archival.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Archive.Backend {
	case "none":
		return nil, nil
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		st, err := store.NewMongoStore(ctx, c.Archive.URI, c.Archive.Database)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown archive backend %q", c.Archive.Backend)
	}
}
