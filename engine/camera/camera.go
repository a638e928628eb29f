package camera

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how a Camera maps view space to clip space.
type Projection int

const (
	// ProjectionPerspective uses a vertical field of view and the aspect ratio.
	ProjectionPerspective Projection = iota
	// ProjectionOrthographic uses explicit left/right/bottom/top bounds.
	ProjectionOrthographic
)

func (p Projection) String() string {
	switch p {
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "perspective"
	}
}

type cameraImpl struct {
	projection Projection

	up       mgl32.Vec3
	position mgl32.Vec3
	target   mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	// orthographic bounds
	left, right, bottom, top float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds projection settings and computes view/projection matrices, either from its own
// position and target or from an attached CameraController each frame via Update().
type Camera interface {
	// Projection returns the projection kind chosen at construction.
	Projection() Projection

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// Position returns the camera's world-space position. With a controller attached this is the
	// controller position as of the last Update.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// OrthoBounds returns the orthographic frustum bounds.
	//
	// Returns:
	//   - left, right, bottom, top: the bounds in view units
	OrthoBounds() (left, right, bottom, top float32)

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix, with WebGPU [0, 1] clip depth.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined projection * view matrix.
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update reads position and target from the controller, when one is attached, and recomputes
	// matrices. Should be called once per frame.
	Update()

	// SetUp sets the camera's up vector and recomputes matrices.
	SetUp(up mgl32.Vec3)

	// SetPosition sets the camera position and recomputes matrices. Ignored by Update while a
	// controller is attached.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// LookAt points the camera at target and recomputes matrices.
	//
	// Parameters:
	//   - target: world-space look-at point
	LookAt(target mgl32.Vec3)

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float32)

	// SetOrthoBounds sets the orthographic frustum bounds and recomputes matrices.
	//
	// Parameters:
	//   - left, right, bottom, top: the bounds in view units
	SetOrthoBounds(left, right, bottom, top float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach, or nil to detach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera at (0, 0, 1) looking at the origin with a 45 degree
// field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		projection: ProjectionPerspective,
		up:         mgl32.Vec3{0, 1, 0},
		position:   mgl32.Vec3{0, 0, 1},
		fov:        mgl32.DegToRad(45),
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
		left:       -1,
		right:      1,
		bottom:     -1,
		top:        1,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.readController()
	}
	c.updateMatrices()
	return c
}

// NewOrthographicCamera creates a Camera with an orthographic projection spanning the given
// bounds, positioned at (0, 0, 1) and looking down -Z.
//
// Parameters:
//   - left, right, bottom, top: the frustum bounds
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewOrthographicCamera(left, right, bottom, top float32, options ...CameraBuilderOption) Camera {
	opts := append([]CameraBuilderOption{
		withProjection(ProjectionOrthographic),
		WithOrthoBounds(left, right, bottom, top),
	}, options...)
	return NewCamera(opts...)
}

func (c *cameraImpl) Projection() Projection {
	return c.projection
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) OrthoBounds() (left, right, bottom, top float32) {
	return c.left, c.right, c.bottom, c.top
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update() {
	if c.controller != nil {
		c.readController()
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetOrthoBounds(left, right, bottom, top float32) {
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
}

// readController copies position and target from the attached controller.
func (c *cameraImpl) readController() {
	c.position = c.controller.Position()
	c.target = c.controller.Target()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)

	switch c.projection {
	case ProjectionOrthographic:
		c.projectionMatrix = common.DepthZeroToOne(mgl32.Ortho(c.left, c.right, c.bottom, c.top, c.near, c.far))
	default:
		c.projectionMatrix = common.DepthZeroToOne(mgl32.Perspective(c.fov, c.aspect, c.near, c.far))
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
