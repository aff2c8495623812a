// Package config loads tagplacer settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/tagplacer/config.toml (falling back to
// ~/.config/tagplacer/config.toml) unless a path is given explicitly. Every
// key is optional; missing keys keep their defaults:
//
//	[placement]
//	step = 5.0
//	clearance = 5.0
//	count = 50
//	tag_width = 2.0
//	tag_height = 1.0
//	category = "windows"
//	tag_category = "window_tags"
//	family = ""
//	patterns = ["Window Tag", "Window_Tag"]
//
//	[batch]
//	workers = 8
//
//	[cache]
//	backend = "file"   # file, redis or none
//	dir = ""           # defaults to $XDG_CACHE_HOME/tagplacer
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	prefix = "tagplacer:"
//	scope = ""         # isolates projects sharing one redis
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override values read from the file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagplacer/pkg/cache"
	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
	"github.com/matzehuels/tagplacer/pkg/placement"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

const appName = "tagplacer"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Placement Placement `toml:"placement"`
	Batch     Batch     `toml:"batch"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Placement holds resolver and tag defaults.
type Placement struct {
	Step        float64  `toml:"step"`
	Clearance   float64  `toml:"clearance"`
	Count       int      `toml:"count"`
	TagWidth    float64  `toml:"tag_width"`
	TagHeight   float64  `toml:"tag_height"`
	Category    string   `toml:"category"`
	TagCategory string   `toml:"tag_category"`
	Family      string   `toml:"family"`
	Patterns    []string `toml:"patterns"`
}

// Batch configures the concurrent runner.
type Batch struct {
	Workers int `toml:"workers"`
}

// Cache selects and configures the placement cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	Scope         string   `toml:"scope"`
	TTL           Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("168h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Placement: Placement{
			Step:        placement.DefaultStep,
			Clearance:   placement.DefaultClearance,
			Count:       placement.DefaultCount,
			TagWidth:    pipeline.DefaultTagWidth,
			TagHeight:   pipeline.DefaultTagHeight,
			Category:    pipeline.DefaultCategory,
			TagCategory: pipeline.DefaultTagCategory,
			Patterns:    slices.Clone(scene.DefaultFamilyPatterns),
		},
		Batch: Batch{Workers: pipeline.DefaultWorkers},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			Prefix:    appName + ":",
			TTL:       Duration{cache.TTLPlacement},
		},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or the XDG default
// ($XDG_CACHE_HOME/tagplacer or ~/.cache/tagplacer).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path over the defaults. An empty path means the
// default location, where a missing file is not an error. An explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err := checkDecoded(path, md, err); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode parses TOML text over the defaults.
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err := checkDecoded("config", md, err); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func checkDecoded(src string, md toml.MetaData, err error) error {
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", src)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", src, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every value.
func (c Config) Validate() error {
	p := c.Placement
	if err := c.Placer().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[placement]")
	}
	if p.TagWidth <= 0 || p.TagHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[placement] tag size must be positive, got %gx%g", p.TagWidth, p.TagHeight)
	}
	if c.Batch.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "[batch] workers must be at least 1, got %d", c.Batch.Workers)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[cache] redis backend needs redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] ttl must not be negative")
	}
	return nil
}

// Options returns pipeline options carrying the configured defaults.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Step:           c.Placement.Step,
		Clearance:      c.Placement.Clearance,
		Count:          c.Placement.Count,
		Category:       c.Placement.Category,
		TagCategory:    c.Placement.TagCategory,
		Family:         c.Placement.Family,
		FamilyPatterns: slices.Clone(c.Placement.Patterns),
		TagWidth:       c.Placement.TagWidth,
		TagHeight:      c.Placement.TagHeight,
		Workers:        c.Batch.Workers,
	}
}

// Placer returns the resolver settings.
func (c Config) Placer() placement.Placer {
	return placement.Placer{
		Step:      c.Placement.Step,
		Clearance: c.Placement.Clearance,
		Count:     c.Placement.Count,
	}
}
