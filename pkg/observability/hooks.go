// Package observability lets a binary observe placement batches, cache
// traffic, and API requests without the library packages importing a metrics
// backend.
//
// The placement, cache, and server code call the registered [Hooks]; main
// decides what is behind them. Nothing is registered by default:
//
//	observability.Set(observability.LogHooks(logger))
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// BatchStats summarizes a finished placement batch.
type BatchStats struct {
	Tags      int
	Created   int
	Corrected int
	Unchanged int
}

// PlacementHooks receives events from the batch placement pipeline.
type PlacementHooks interface {
	OnBatchStart(ctx context.Context, n int)
	// outcome is the resolver outcome name, e.g. "corrected".
	OnTagPlaced(ctx context.Context, tagID, outcome string, inspected int)
	OnBatchComplete(ctx context.Context, stats BatchStats, duration time.Duration, err error)
}

// CacheHooks receives events from the pipeline's cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path, requestID string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// Hooks is the set of registered observers. Nil members are no-ops.
type Hooks struct {
	Placement PlacementHooks
	Cache     CacheHooks
	HTTP      HTTPHooks
}

type noopPlacement struct{}

func (noopPlacement) OnBatchStart(context.Context, int)                                 {}
func (noopPlacement) OnTagPlaced(context.Context, string, string, int)                  {}
func (noopPlacement) OnBatchComplete(context.Context, BatchStats, time.Duration, error) {}

type noopCache struct{}

func (noopCache) OnCacheHit(context.Context, string)      {}
func (noopCache) OnCacheMiss(context.Context, string)     {}
func (noopCache) OnCacheSet(context.Context, string, int) {}

type noopHTTP struct{}

func (noopHTTP) OnRequest(context.Context, string, string, string)              {}
func (noopHTTP) OnResponse(context.Context, string, string, int, time.Duration) {}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Set replaces the registered hooks. Call it before work starts; hooks
// already handed out keep running.
func Set(h Hooks) {
	if h.Placement == nil {
		h.Placement = noopPlacement{}
	}
	if h.Cache == nil {
		h.Cache = noopCache{}
	}
	if h.HTTP == nil {
		h.HTTP = noopHTTP{}
	}
	current.Store(&h)
}

// Reset unregisters all hooks.
func Reset() { Set(Hooks{}) }

// Placement returns the registered placement hooks.
func Placement() PlacementHooks { return current.Load().Placement }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().HTTP }

// LogHooks returns hooks that report every event to logger at debug level.
func LogHooks(logger *log.Logger) Hooks {
	l := logHooks{logger.WithPrefix("hooks")}
	return Hooks{Placement: l, Cache: l, HTTP: l}
}

type logHooks struct{ l *log.Logger }

func (h logHooks) OnBatchStart(_ context.Context, n int) {
	h.l.Debug("batch start", "targets", n)
}

func (h logHooks) OnTagPlaced(_ context.Context, tagID, outcome string, inspected int) {
	h.l.Debug("tag placed", "tag", tagID, "outcome", outcome, "inspected", inspected)
}

func (h logHooks) OnBatchComplete(_ context.Context, s BatchStats, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("batch failed", "elapsed", d, "err", err)
		return
	}
	h.l.Debug("batch done", "tags", s.Tags, "created", s.Created, "corrected", s.Corrected, "unchanged", s.Unchanged, "elapsed", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.l.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.l.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.l.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.l.Debug("request start", "method", method, "path", path, "request_id", requestID)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.l.Debug("request done", "method", method, "path", path, "status", status, "elapsed", d)
}
