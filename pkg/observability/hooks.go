// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hosts register hooks at startup to
// receive events about visualization lifecycles, generation passes, animation
// ticks and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBackdropHooks(&myBackdropHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Backdrop().OnGenerate(id, nodes, edges, forced, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Backdrop Hooks
// =============================================================================

// BackdropHooks receives events from visualization instances.
// Hooks are called on the instance's own thread and must not block.
type BackdropHooks interface {
	// OnMount records a successful mount.
	OnMount(id string)

	// OnUnmount records a teardown and the number of ticks the instance ran.
	OnUnmount(id string, ticks int)

	// OnGenerate records a full regeneration of the node/edge collections.
	OnGenerate(id string, nodes, edges, forced int, duration time.Duration)

	// OnTick records one animation frame.
	OnTick(id string, offset float64)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP host.
type HTTPHooks interface {
	// OnRequest records a served request.
	OnRequest(method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBackdropHooks is a no-op implementation of BackdropHooks.
type NoopBackdropHooks struct{}

func (NoopBackdropHooks) OnMount(string)                                  {}
func (NoopBackdropHooks) OnUnmount(string, int)                           {}
func (NoopBackdropHooks) OnGenerate(string, int, int, int, time.Duration) {}
func (NoopBackdropHooks) OnTick(string, float64)                          {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	backdropHooks BackdropHooks = NoopBackdropHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetBackdropHooks registers custom visualization hooks.
// This should be called once at application startup before any instance mounts.
func SetBackdropHooks(h BackdropHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		backdropHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Backdrop returns the registered visualization hooks.
func Backdrop() BackdropHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return backdropHooks
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
	backdropHooks = NoopBackdropHooks{}
	httpHooks = NoopHTTPHooks{}
}
