// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about document import/export and layout runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the topology packages
// never import a logging or metrics backend for instrumentation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetSerializationHooks(&mySerializationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, "LR", g.NodeCount())
//	// ... run layout ...
//	observability.Layout().OnLayoutComplete(ctx, "LR", time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, rankDir string, nodeCount int)
	OnLayoutComplete(ctx context.Context, rankDir string, duration time.Duration, err error)
}

// =============================================================================
// Serialization Hooks
// =============================================================================

// SerializationHooks receives events from document import and export.
// Import and export are synchronous and take no context.
type SerializationHooks interface {
	// OnImport records an import attempt. The counts describe the graph that
	// was built, which is discarded when err is non-nil.
	OnImport(name string, nodeCount, linkCount int, err error)

	// OnExport records an export attempt.
	OnExport(name string, nodeCount, linkCount, groupCount int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

// NoopSerializationHooks is a no-op implementation of SerializationHooks.
type NoopSerializationHooks struct{}

func (NoopSerializationHooks) OnImport(string, int, int, error)      {}
func (NoopSerializationHooks) OnExport(string, int, int, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks        LayoutHooks        = NoopLayoutHooks{}
	serializationHooks SerializationHooks = NoopSerializationHooks{}
	hooksMu            sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetSerializationHooks registers custom import/export hooks.
// This should be called once at application startup before any import or export.
func SetSerializationHooks(h SerializationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serializationHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Serialization returns the registered serialization hooks.
func Serialization() SerializationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serializationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	serializationHooks = NoopSerializationHooks{}
}
