package scene

import "github.com/go-gl/mathgl/mgl64"

// NodeBuilderOption is a functional option for configuring a Node.
// Use the With* functions to create options.
type NodeBuilderOption func(n *nodeImpl)

// WithName sets the node's debug name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.name = name
	}
}

// WithPosition sets the node's initial local position.
//
// Parameters:
//   - x, y, z: the local position
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float64) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.position = mgl64.Vec3{x, y, z}
	}
}

// WithRotation sets the node's initial Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(x, y, z float64) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.rotation = mgl64.Vec3{x, y, z}
	}
}

// WithUniformScale sets the same scale on all three axes.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithUniformScale(s float64) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.scale = mgl64.Vec3{s, s, s}
	}
}
