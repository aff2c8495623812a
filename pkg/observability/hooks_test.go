package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingCache struct{ hits, misses, sets int }

func (c *countingCache) OnCacheHit(context.Context, string)      { c.hits++ }
func (c *countingCache) OnCacheMiss(context.Context, string)     { c.misses++ }
func (c *countingCache) OnCacheSet(context.Context, string, int) { c.sets++ }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	Placement().OnBatchStart(ctx, 12)
	Placement().OnTagPlaced(ctx, "tag-w1", "corrected", 4)
	Placement().OnBatchComplete(ctx, BatchStats{Tags: 12}, time.Second, nil)
	Cache().OnCacheSet(ctx, "placement", 1024)
	HTTP().OnResponse(ctx, "POST", "/v1/place", 200, time.Millisecond)
}

func TestSetFillsMissingHooks(t *testing.T) {
	defer Reset()

	c := &countingCache{}
	Set(Hooks{Cache: c})

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "placement")
	Cache().OnCacheMiss(ctx, "placement")
	Cache().OnCacheMiss(ctx, "placement")
	if c.hits != 1 || c.misses != 2 {
		t.Errorf("hits %d, misses %d", c.hits, c.misses)
	}
	if Placement() == nil || HTTP() == nil {
		t.Fatal("unset members should be no-ops, not nil")
	}

	Reset()
	Cache().OnCacheHit(ctx, "placement")
	if c.hits != 1 {
		t.Error("Reset left the previous hooks registered")
	}
}

func TestLogHooks(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	Set(LogHooks(logger))

	ctx := context.Background()
	Placement().OnTagPlaced(ctx, "tag-w2", "corrected", 2)
	Placement().OnBatchComplete(ctx, BatchStats{}, time.Millisecond, errors.New("boom"))
	Cache().OnCacheSet(ctx, "placement", 512)
	HTTP().OnRequest(ctx, "GET", "/healthz", "req-7")

	out := buf.String()
	for _, want := range []string{
		"hooks", "tag=tag-w2", "outcome=corrected",
		"batch failed", "err=boom",
		"bytes=512",
		"request_id=req-7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRespectLevel(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Set(LogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})))
	Cache().OnCacheHit(context.Background(), "placement")
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %q", buf.String())
	}
}
