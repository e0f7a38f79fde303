// Package observability provides hooks for metrics, tracing, and logging
// across the layout pipeline, without giving the core packages (pkg/grid,
// pkg/refine, pkg/route, pkg/optimize, pkg/size, pkg/render) a hard
// dependency on any particular logging or metrics framework.
//
// # Architecture
//
// StageHooks has a start/complete pair for each pipeline stage. The hooks
// fire only where a caller invokes them: pkg/diagram's Build pass does not
// call Stage() and pkg/cache does not call Cache(), so a registered
// implementation receives no events from either. internal/cli registers
// a StageHooks implementation for its progress UI; absent registration,
// hooks are no-ops.
//
// # Usage
//
//	observability.SetStageHooks(&myStageHooks{})
//	// ... run a layout pass ...
//	observability.Stage().OnRouteComplete(ctx, connIdx, bends, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// StageHooks receives events from each stage of the layout pipeline.
type StageHooks interface {
	// OnGridBuildStart/Complete bracket the Grid Builder pass.
	OnGridBuildStart(ctx context.Context, rows, cols int)
	OnGridBuildComplete(ctx context.Context, blockCount int, duration time.Duration, err error)

	// OnRefineStart/Complete bracket refinement-grid construction.
	OnRefineStart(ctx context.Context, tracks int)
	OnRefineComplete(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	// OnRouteStart/Complete bracket a single connection's shortest-path search.
	OnRouteStart(ctx context.Context, connIdx int, start, end string)
	OnRouteComplete(ctx context.Context, connIdx int, bends int, duration time.Duration, err error)

	// OnOptimizeStart/Complete bracket the Segment Optimizer pass.
	OnOptimizeStart(ctx context.Context, segmentCount int)
	OnOptimizeComplete(ctx context.Context, slotsUsed int, duration time.Duration, err error)

	// OnSizeStart/Complete bracket the Constraint Sizer pass. Relaxed is
	// true if the one allowed relaxation retry fired.
	OnSizeStart(ctx context.Context, variableCount int)
	OnSizeComplete(ctx context.Context, relaxed bool, duration time.Duration, err error)

	// OnRenderStart/Complete bracket the Renderer Adapter pass.
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// CacheHooks receives events from the render-result cache (pkg/cache).
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopStageHooks is a no-op StageHooks implementation.
type NoopStageHooks struct{}

func (NoopStageHooks) OnGridBuildStart(context.Context, int, int)                     {}
func (NoopStageHooks) OnGridBuildComplete(context.Context, int, time.Duration, error) {}
func (NoopStageHooks) OnRefineStart(context.Context, int)                             {}
func (NoopStageHooks) OnRefineComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopStageHooks) OnRouteStart(context.Context, int, string, string) {}
func (NoopStageHooks) OnRouteComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopStageHooks) OnOptimizeStart(context.Context, int) {}
func (NoopStageHooks) OnOptimizeComplete(context.Context, int, time.Duration, error) {
}
func (NoopStageHooks) OnSizeStart(context.Context, int) {}
func (NoopStageHooks) OnSizeComplete(context.Context, bool, time.Duration, error) {
}
func (NoopStageHooks) OnRenderStart(context.Context, string) {}
func (NoopStageHooks) OnRenderComplete(context.Context, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op CacheHooks implementation.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	stageHooks StageHooks = NoopStageHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetStageHooks registers the pipeline-stage hook implementation. Call once
// at startup before any layout pass runs.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// SetCacheHooks registers the cache hook implementation.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Stage returns the currently registered StageHooks.
func Stage() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Cache returns the currently registered CacheHooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores both hook sets to their no-op defaults. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
	cacheHooks = NoopCacheHooks{}
}
