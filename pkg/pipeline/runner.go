package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagplacer/pkg/cache"
	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/observability"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// keyTypePlacement labels placement entries in cache hooks.
const keyTypePlacement = "placement"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long placement results stay cached. Zero never expires.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Results are cached for cache.TTLPlacement until TTL is changed.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLPlacement,
	}
}

// cachedResult is the cache payload for a placement run.
type cachedResult struct {
	Scene  *scene.Scene `json:"scene"`
	Report Report       `json:"report"`
}

// Execute places tags on s with caching. The input scene is not modified.
//
// Results are cached by scene content and options unless opts.Refresh is set.
// A run whose family came from opts.ChooseFamily is not cached, since the
// choice is not part of the key.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	sceneData, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)
	cacheKey := r.Keyer.PlacementKey(sceneHash, opts.KeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedResult
			if err := json.Unmarshal(data, &cached); err == nil && cached.Scene != nil {
				observability.Cache().OnCacheHit(ctx, keyTypePlacement)
				r.Logger.Debug("placement cache hit", "key", cacheKey)
				return &Result{
					Scene:     cached.Scene,
					Report:    cached.Report,
					SceneHash: sceneHash,
					CacheInfo: CacheInfo{Hit: true},
				}, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypePlacement)
	}

	result, chosen, err := r.place(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.SceneHash = sceneHash

	// Cache the result
	if !chosen {
		data, err := json.Marshal(cachedResult{Scene: result.Scene, Report: result.Report})
		if err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, keyTypePlacement, len(data))
			}
		}
	}

	return result, nil
}

// Place places tags on s without consulting the cache.
func (r *Runner) Place(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	result, _, err := r.place(ctx, s, opts)
	return result, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
