// Package config loads depscan settings from .depscan.toml or .depscan.yaml.
//
// Every field is optional. [Default] reproduces the scanner's built-in
// behavior, and a file only overrides the keys it sets. Connection strings
// may reference environment variables as ${VAR}.
//
// Example .depscan.toml:
//
//	exclude = ["build", "third_party"]
//	workers = 4
//
//	[cache]
//	redis_url = "${DEPSCAN_REDIS_URL}"
//	ttl = "72h"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depscan/pkg/cache"
	"github.com/matzehuels/depscan/pkg/deps/source"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/io"
)

// MaxWorkers bounds the workers setting.
const MaxWorkers = 64

// Config is the top-level configuration.
type Config struct {
	SourceExtensions []string    `toml:"source_extensions" yaml:"source_extensions"` // Extensions handled by the source extractor
	StdlibExclusions []string    `toml:"stdlib_exclusions" yaml:"stdlib_exclusions"` // Include names never reported
	Exclude          []string    `toml:"exclude" yaml:"exclude"`                     // Base-name globs skipped by the walk
	Workers          int         `toml:"workers" yaml:"workers"`                     // Parallel extraction workers
	ErrorLog         string      `toml:"error_log" yaml:"error_log"`                 // Error log path
	Cache            CacheConfig `toml:"cache" yaml:"cache"`
	Store            StoreConfig `toml:"store" yaml:"store"`
}

// CacheConfig selects the extraction cache backend. At most one of Dir and
// RedisURL may be set; neither disables caching.
type CacheConfig struct {
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	TTL      string `toml:"ttl" yaml:"ttl"` // Go duration, e.g. "168h"
}

// StoreConfig selects where scan reports are persisted. At most one of Dir
// and MongoURI may be set; neither disables persistence.
type StoreConfig struct {
	Dir      string `toml:"dir" yaml:"dir"`
	MongoURI string `toml:"mongo_uri" yaml:"mongo_uri"`
	Database string `toml:"database" yaml:"database"`
}

// DefaultDatabase is the MongoDB database used when none is configured.
const DefaultDatabase = "depscan"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceExtensions: append([]string(nil), source.DefaultExtensions...),
		StdlibExclusions: append([]string(nil), source.DefaultStdlib...),
		Workers:          1,
		ErrorLog:         io.DefaultErrorLog,
		Cache:            CacheConfig{TTL: cache.DefaultTTL.String()},
		Store:            StoreConfig{Database: DefaultDatabase},
	}
}

// Load reads a configuration file over [Default]. The format is chosen by
// extension (.toml, .yaml or .yml). Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "read config %s", path)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	cfg.Cache.RedisURL = os.ExpandEnv(cfg.Cache.RedisURL)
	cfg.Store.MongoURI = os.ExpandEnv(cfg.Store.MongoURI)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileNames are the configuration file names searched by [FindConfigFile],
// in order.
var FileNames = []string{
	".depscan.toml",
	".depscan.yaml",
	".depscan.yml",
}

// FindConfigFile searches the scan root, the working directory and
// ~/.config/depscan for a configuration file. The boolean is false when
// none exists.
func FindConfigFile(root string) (string, bool) {
	locations := []string{root, "."}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "depscan"))
	}

	for _, loc := range locations {
		if loc == "" {
			continue
		}
		for _, name := range FileNames {
			p := filepath.Join(loc, name)
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				return p, true
			}
		}
	}
	return "", false
}

// Validate checks value ranges and backend settings.
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}
	for _, ext := range c.SourceExtensions {
		if strings.Trim(ext, ". ") == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source_extensions contains an empty extension")
		}
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	if c.Cache.Dir != "" && c.Cache.RedisURL != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.dir and cache.redis_url are mutually exclusive")
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateURI(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	}

	if c.Store.Dir != "" && c.Store.MongoURI != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.dir and store.mongo_uri are mutually exclusive")
	}
	if c.Store.MongoURI != "" {
		if err := errors.ValidateURI(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "store.mongo_uri")
		}
	}
	return nil
}

// CacheTTL parses the cache TTL. An empty value selects [cache.DefaultTTL].
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	if ttl < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return ttl, nil
}
