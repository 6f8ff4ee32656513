// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about reconstruction runs, cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRebuildHooks(&myRebuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Rebuild().OnRebuildStart(ctx, nodeCount)
//	// ... reconstruct ...
//	observability.Rebuild().OnRebuildComplete(ctx, nodeCount, warnings, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Rebuild Hooks
// =============================================================================

// RebuildHooks receives events from the reconstruction engine.
type RebuildHooks interface {
	// OnRebuildStart records the beginning of a reconstruction run.
	OnRebuildStart(ctx context.Context, nodeCount int)

	// OnRebuildComplete records the end of a reconstruction run.
	OnRebuildComplete(ctx context.Context, nodeCount, warnings int, duration time.Duration, err error)

	// OnFontFallback records a font that could not be resolved.
	OnFontFallback(ctx context.Context, family, style string)

	// OnNodeSkipped records a snapshot node that produced no live node.
	OnNodeSkipped(ctx context.Context, kind string)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRebuildHooks is a no-op implementation of RebuildHooks.
type NoopRebuildHooks struct{}

func (NoopRebuildHooks) OnRebuildStart(context.Context, int) {}
func (NoopRebuildHooks) OnRebuildComplete(context.Context, int, int, time.Duration, error) {}
func (NoopRebuildHooks) OnFontFallback(context.Context, string, string) {}
func (NoopRebuildHooks) OnNodeSkipped(context.Context, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	rebuildHooks RebuildHooks = NoopRebuildHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetRebuildHooks registers custom rebuild hooks.
// This should be called once at application startup before any reconstructions.
func SetRebuildHooks(h RebuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rebuildHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Rebuild returns the registered rebuild hooks.
func Rebuild() RebuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rebuildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	rebuildHooks = NoopRebuildHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
