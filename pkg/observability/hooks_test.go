package observability

import (
	"context"
	"testing"
	"time"
)

type testDrawHooks struct {
	starts, completes, mounts int
}

func (h *testDrawHooks) OnDrawStart(context.Context, string, int)              { h.starts++ }
func (h *testDrawHooks) OnDrawComplete(context.Context, string, time.Duration) { h.completes++ }
func (h *testDrawHooks) OnMount(context.Context, string, int)                  { h.mounts++ }

type testCacheHooks struct {
	hits, misses, sets int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDrawHooks{}
	d.OnDrawStart(ctx, "flat", 10)
	d.OnDrawComplete(ctx, "populated", time.Second)
	d.OnMount(ctx, "viz", 1024)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "tree")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Draw() should return NoopDrawHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customDraw := &testDrawHooks{}
	SetDrawHooks(customDraw)
	if Draw() != customDraw {
		t.Error("SetDrawHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil registrations are ignored, not applied.
	SetDrawHooks(nil)
	if Draw() != customDraw {
		t.Error("SetDrawHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Draw().(NoopDrawHooks); !ok {
		t.Error("Reset should restore noop draw hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore noop cache hooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	d := &testDrawHooks{}
	SetDrawHooks(d)
	ctx := context.Background()

	Draw().OnDrawStart(ctx, "dimensions", 3)
	Draw().OnDrawComplete(ctx, "populated", time.Millisecond)
	Draw().OnMount(ctx, "viz", 512)

	if d.starts != 1 || d.completes != 1 || d.mounts != 1 {
		t.Errorf("events = %+v, want one of each", d)
	}
}
