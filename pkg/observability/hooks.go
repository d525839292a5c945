// Package observability provides hooks for metrics around the draw
// pipeline.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about draws and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main,
// not by libraries) and keeps the core pipeline dependency-free from
// metrics frameworks. A Prometheus-backed implementation lives in the
// prom subpackage.
//
// # Usage
//
//	func main() {
//	    observability.SetDrawHooks(prom.NewDrawHooks())
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Draw().OnDrawStart(ctx, shape, rowCount)
//	// ... run the draw ...
//	observability.Draw().OnDrawComplete(ctx, state, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Draw Hooks
// =============================================================================

// DrawHooks receives events from the draw pipeline.
type DrawHooks interface {
	// OnDrawStart records the beginning of a draw with the payload's
	// wire shape and row count.
	OnDrawStart(ctx context.Context, shape string, rowCount int)

	// OnDrawComplete records a finished draw. state is the terminal
	// output kind: populated, empty, or error.
	OnDrawComplete(ctx context.Context, state string, duration time.Duration)

	// OnMount records a container mount with the artifact size.
	OnMount(ctx context.Context, container string, size int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDrawHooks is a no-op implementation of DrawHooks.
type NoopDrawHooks struct{}

func (NoopDrawHooks) OnDrawStart(context.Context, string, int)              {}
func (NoopDrawHooks) OnDrawComplete(context.Context, string, time.Duration) {}
func (NoopDrawHooks) OnMount(context.Context, string, int)                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	drawHooks  DrawHooks  = NoopDrawHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetDrawHooks registers custom draw hooks.
// This should be called once at application startup before any draws.
func SetDrawHooks(h DrawHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		drawHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Draw returns the registered draw hooks.
func Draw() DrawHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return drawHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	drawHooks = NoopDrawHooks{}
	cacheHooks = NoopCacheHooks{}
}
