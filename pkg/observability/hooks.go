// Package observability provides hooks for metrics, tracing, and logging.
//
// The optimiser emits events through hook interfaces with no-op defaults.
// Binaries register implementations at startup; libraries only call them.
// This keeps the rewriting packages free of any particular metrics backend.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRewriteHooks(&myRewriteHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Rewrite().OnPassStart(ctx, pass, gates)
//	// ... rewrite ...
//	observability.Rewrite().OnPassComplete(ctx, pass, before, after, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// RewriteHooks receives events from optimisation runs.
type RewriteHooks interface {
	// OnPassStart is called before rewriting pass number pass (from 1) on a
	// network with the given number of gates.
	OnPassStart(ctx context.Context, pass, gates int)

	// OnPassComplete is called after a pass and its cleanup.
	OnPassComplete(ctx context.Context, pass, gatesBefore, gatesAfter int, duration time.Duration)

	// OnVerifyComplete is called after an equivalence check. err is nil when
	// the networks are equivalent.
	OnVerifyComplete(ctx context.Context, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopRewriteHooks is a no-op implementation of RewriteHooks.
type NoopRewriteHooks struct{}

func (NoopRewriteHooks) OnPassStart(context.Context, int, int)                        {}
func (NoopRewriteHooks) OnPassComplete(context.Context, int, int, int, time.Duration) {}
func (NoopRewriteHooks) OnVerifyComplete(context.Context, time.Duration, error)       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	rewriteHooks RewriteHooks = NoopRewriteHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetRewriteHooks registers custom rewrite hooks.
// This should be called once at application startup.
func SetRewriteHooks(h RewriteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rewriteHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Rewrite returns the registered rewrite hooks.
func Rewrite() RewriteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rewriteHooks
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
	rewriteHooks = NoopRewriteHooks{}
	cacheHooks = NoopCacheHooks{}
}
