package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; drag methods translate
// cursor movement into orbit steps.
type cameraControllerImpl struct {
	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32

	dragging   bool
	lastCursor mgl32.Vec2
	onStart    func()
	onEnd      func()
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller at radius 600 on the +Z axis looking at
// the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		radius:    600.0,
		azimuth:   0.0,
		elevation: 0.0,

		minRadius:    20.0,
		maxRadius:    5000.0,
		minElevation: -float32(math.Pi/2 - 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        15.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// --- internal helpers ---

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.radius = clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	cc.azimuth += dAzimuth
	cc.elevation = clamp(cc.elevation+dElevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.elevation = clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	return cc.maxElevation
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}

// --- dragCameraController implementation ---

func (cc *cameraControllerImpl) BeginDrag(x, y float32) {
	cc.lastCursor = mgl32.Vec2{x, y}
	if cc.dragging {
		return
	}
	cc.dragging = true
	if cc.onStart != nil {
		cc.onStart()
	}
}

func (cc *cameraControllerImpl) Drag(x, y float32) {
	if !cc.dragging {
		return
	}
	dx := x - cc.lastCursor[0]
	dy := y - cc.lastCursor[1]
	cc.lastCursor = mgl32.Vec2{x, y}
	cc.Orbit(-dx*cc.mouseSensitivity, dy*cc.mouseSensitivity)
}

func (cc *cameraControllerImpl) EndDrag() {
	if !cc.dragging {
		return
	}
	cc.dragging = false
	if cc.onEnd != nil {
		cc.onEnd()
	}
}

func (cc *cameraControllerImpl) Dragging() bool {
	return cc.dragging
}

func (cc *cameraControllerImpl) SetInteractionCallbacks(onStart, onEnd func()) {
	cc.onStart = onStart
	cc.onEnd = onEnd
}
