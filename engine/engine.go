package engine

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/pixelcube/engine/profiler"
	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/rs/zerolog/log"
)

// engine implements the Engine interface.
// Runs one frame per window message-loop iteration on the calling thread.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback  func(deltaTime float32) error
	resizeCallback func(width, height int) error

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	running   bool
	lastFrame time.Time
	frames    uint64
	panicErr  error

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It drives the frame loop from the window message loop. Every callback runs on the thread that
// called Run, so no callback needs locking.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per message-loop iteration.
	// An error is logged and the loop continues with the next frame.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame in seconds
	SetFrameCallback(callback func(deltaTime float32) error)

	// SetResizeCallback registers the function called when the window framebuffer is resized.
	// An error is logged.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int) error)

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns the number of frames run so far.
	Frames() uint64

	// Run runs the window message loop, one frame per iteration, until the window closes or Quit
	// is called.
	//
	// Returns:
	//   - error: non-nil if a frame panicked
	Run() error

	// Quit asks the loop to stop after the current iteration. Safe to call more than once.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A window must be supplied with WithWindow.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		now:              time.Now,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handleResize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32) error) {
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int) error) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() error {
	if e.window == nil {
		return fmt.Errorf("engine: no window")
	}
	e.running = true
	e.lastFrame = e.now()
	e.panicErr = nil
	e.window.SetUpdateCallback(e.handleFrame)

	log.Info().Int("width", e.window.Width()).Int("height", e.window.Height()).Msg("engine started")
	e.window.ProcessMessages()
	e.running = false
	log.Info().Uint64("frames", e.frames).Msg("engine stopped")

	return e.panicErr
}

func (e *engine) Quit() {
	e.running = false
	if e.window != nil {
		e.window.RequestClose()
	}
}

// handleFrame runs one frame. A panic inside the frame is logged and stops the loop.
func (e *engine) handleFrame() {
	if !e.running {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.panicErr = fmt.Errorf("frame panicked: %v", r)
			log.Error().Err(e.panicErr).Uint64("frame", e.frames).Msg("recovered from panic, quitting")
			e.Quit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.frameCallback != nil {
		if err := e.frameCallback(dt); err != nil {
			log.Warn().Err(err).Uint64("frame", e.frames).Msg("frame failed")
		}
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// handleResize forwards framebuffer resizes to the resize callback.
func (e *engine) handleResize(width, height int) {
	log.Debug().Int("width", width).Int("height", height).Msg("resize")
	if e.resizeCallback == nil {
		return
	}
	if err := e.resizeCallback(width, height); err != nil {
		log.Warn().Err(err).Int("width", width).Int("height", height).Msg("resize failed")
	}
}
