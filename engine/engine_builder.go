package engine

import (
	"time"

	"github.com/Carmen-Shannon/pixelcube/engine/profiler"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrameCallback registers the per-frame function during construction.
func WithFrameCallback(callback func(deltaTime float32) error) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithResizeCallback registers the resize function during construction.
func WithResizeCallback(callback func(width, height int) error) EngineBuilderOption {
	return func(e *engine) {
		e.resizeCallback = callback
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// withClock replaces time.Now and time.Sleep, for tests.
func withClock(now func() time.Time, sleep func(time.Duration)) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
		e.sleep = sleep
	}
}
