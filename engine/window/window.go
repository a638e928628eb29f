package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// Every callback runs on the thread that calls ProcessMessages, between update callbacks.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position in window pixels
	SetMouseDownCallback(callback func(button MouseButton, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position in window pixels
	SetMouseUpCallback(callback func(button MouseButton, x, y float32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window pixels
	SetMouseMoveCallback(callback func(x, y float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration. The window stays
	// valid until Close.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size limits applied to the window, 0 meaning unlimited
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button MouseButton, x, y float32)
	onMouseUp   func(button MouseButton, x, y float32)
	onMouseMove func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "pixelcube",
		minWidth:  200,
		minHeight: 150,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
