package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// withProjection sets the projection kind; exposed through NewOrthographicCamera.
func withProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithPosition sets the camera's initial position.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the camera's initial look-at point.
//
// Parameters:
//   - x, y, z: world-space target
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithFovDegrees sets the camera's vertical field of view in degrees.
func WithFovDegrees(deg float32) CameraBuilderOption {
	return WithFov(mgl32.DegToRad(deg))
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithOrthoBounds sets the orthographic frustum bounds. Only used by orthographic cameras.
func WithOrthoBounds(left, right, bottom, top float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.left, c.right, c.bottom, c.top = left, right, bottom, top
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera reads its position and target from the controller.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
