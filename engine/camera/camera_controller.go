package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the interface for the orbit camera controller.
// Controllers own positional state (position, target). Camera reads from the controller
// and computes view/projection matrices. Embeds dragCameraController so pointer input can
// orbit the camera and report when an interaction starts and ends.
type CameraController interface {
	orbitCameraController
	dragCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController defines orbit-specific control methods.
// Provides orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// Orbit rotates the camera around the target, clamping elevation to its bounds.
	//
	// Parameters:
	//   - dAzimuth: change of the horizontal angle in radians
	//   - dElevation: change of the vertical angle in radians
	Orbit(dAzimuth, dElevation float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	MaxRadius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation angle.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	MaxElevation() float32

	// MouseSensitivity returns the mouse drag sensitivity in radians per pixel.
	//
	// Returns:
	//   - float32: multiplier for mouse movement
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

// dragCameraController defines pointer drag control methods.
// A drag is one BeginDrag, any number of Drag calls and one EndDrag. The interaction callbacks
// fire once at BeginDrag and once at EndDrag.
type dragCameraController interface {
	// BeginDrag starts a drag at the given cursor position and fires the interaction start
	// callback. Calling it during a drag only moves the anchor.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	BeginDrag(x, y float32)

	// Drag orbits the camera by the cursor movement since the previous call, scaled by
	// MouseSensitivity. Moving right orbits left around the target, moving down raises the
	// camera. Ignored when no drag is active.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	Drag(x, y float32)

	// EndDrag finishes the active drag and fires the interaction end callback. Ignored when no
	// drag is active.
	EndDrag()

	// Dragging reports whether a drag is active.
	Dragging() bool

	// SetInteractionCallbacks sets the functions called when a drag starts and ends.
	// Either may be nil.
	//
	// Parameters:
	//   - onStart: called by BeginDrag
	//   - onEnd: called by EndDrag
	SetInteractionCallbacks(onStart, onEnd func())
}
