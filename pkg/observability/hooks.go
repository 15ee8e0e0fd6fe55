// Package observability provides hooks for metrics and logging.
//
// The hooks pattern keeps the core packages free of hard dependencies on
// observability frameworks: libraries emit events through small interfaces
// with no-op defaults, and main registers real implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCheckHooks(&myCheckHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Check().OnPackageStart(ctx, name, version)
//	// ... do lookup ...
//	observability.Check().OnPackageDone(ctx, name, version, verdict, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// CheckHooks receives events from the compatibility check loop.
type CheckHooks interface {
	// OnFileStart records the start of a manifest check.
	OnFileStart(ctx context.Context, path string, packages int)

	// OnPackageStart records the start of a single package lookup.
	OnPackageStart(ctx context.Context, name, version string)

	// OnPackageDone records the verdict for a single package.
	OnPackageDone(ctx context.Context, name, version, verdict string, duration time.Duration)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, key string, size int)
}

// NoopCheckHooks is a no-op implementation of CheckHooks.
type NoopCheckHooks struct{}

func (NoopCheckHooks) OnFileStart(context.Context, string, int)                            {}
func (NoopCheckHooks) OnPackageStart(context.Context, string, string)                      {}
func (NoopCheckHooks) OnPackageDone(context.Context, string, string, string, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	checkHooks CheckHooks = NoopCheckHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetCheckHooks registers custom check hooks.
// Call once at application startup before any check runs.
func SetCheckHooks(h CheckHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		checkHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Check returns the registered check hooks.
func Check() CheckHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return checkHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// Primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	checkHooks = NoopCheckHooks{}
	cacheHooks = NoopCacheHooks{}
}
