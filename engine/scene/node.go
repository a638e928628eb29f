package scene

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// nodeImpl is the implementation of the Node interface.
type nodeImpl struct {
	name     string
	position mgl64.Vec3
	rotation mgl64.Vec3 // Euler angles in radians, applied X then Y then Z
	scale    mgl64.Vec3
	parent   *nodeImpl
	children []*nodeImpl
}

// Node is a transform in a small scene hierarchy.
//
// A Node carries a position, an Euler rotation (radians, XYZ order) and a scale. Its local matrix
// is T * Rx * Ry * Rz * S; its world matrix prepends the parent's world matrix. Values are kept
// in float64 so that small per-frame rotation increments accumulate without visible drift.
type Node interface {
	// Name returns the node's debug name.
	//
	// Returns:
	//   - string: the name given at construction
	Name() string

	// Position returns the node's translation relative to its parent.
	//
	// Returns:
	//   - mgl64.Vec3: the local position
	Position() mgl64.Vec3

	// Rotation returns the node's Euler rotation in radians.
	//
	// Returns:
	//   - mgl64.Vec3: rotation about the X, Y and Z axes
	Rotation() mgl64.Vec3

	// Scale returns the node's per-axis scale.
	//
	// Returns:
	//   - mgl64.Vec3: the local scale
	Scale() mgl64.Vec3

	// SetPosition sets the node's translation relative to its parent.
	//
	// Parameters:
	//   - x, y, z: the new local position
	SetPosition(x, y, z float64)

	// SetRotation sets the node's Euler rotation in radians.
	//
	// Parameters:
	//   - x, y, z: rotation about each axis
	SetRotation(x, y, z float64)

	// SetScale sets the node's per-axis scale.
	//
	// Parameters:
	//   - x, y, z: scale along each axis
	SetScale(x, y, z float64)

	// Rotate adds the given deltas to the node's Euler rotation.
	//
	// Parameters:
	//   - dx, dy, dz: radians to add about each axis
	Rotate(dx, dy, dz float64)

	// Add attaches child nodes. A child already attached elsewhere is moved.
	//
	// Parameters:
	//   - children: the nodes to attach
	Add(children ...Node)

	// Children returns the directly attached child nodes in insertion order.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent, or nil
	Parent() Node

	// LocalMatrix returns T * Rx * Ry * Rz * S for this node.
	//
	// Returns:
	//   - mgl64.Mat4: the local transform
	LocalMatrix() mgl64.Mat4

	// WorldMatrix returns the product of every ancestor's local matrix and this node's local matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the world transform
	WorldMatrix() mgl64.Mat4

	// WorldMatrix32 returns WorldMatrix narrowed to float32 for GPU upload.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldMatrix32() mgl32.Mat4

	// WorldPosition returns the node's origin in world space.
	//
	// Returns:
	//   - mgl64.Vec3: the world-space position
	WorldPosition() mgl64.Vec3
}

var _ Node = &nodeImpl{}

// NewNode creates a Node at the origin with no rotation and unit scale.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(options ...NodeBuilderOption) Node {
	n := &nodeImpl{
		scale: mgl64.Vec3{1, 1, 1},
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *nodeImpl) Name() string {
	return n.name
}

func (n *nodeImpl) Position() mgl64.Vec3 {
	return n.position
}

func (n *nodeImpl) Rotation() mgl64.Vec3 {
	return n.rotation
}

func (n *nodeImpl) Scale() mgl64.Vec3 {
	return n.scale
}

func (n *nodeImpl) SetPosition(x, y, z float64) {
	n.position = mgl64.Vec3{x, y, z}
}

func (n *nodeImpl) SetRotation(x, y, z float64) {
	n.rotation = mgl64.Vec3{x, y, z}
}

func (n *nodeImpl) SetScale(x, y, z float64) {
	n.scale = mgl64.Vec3{x, y, z}
}

func (n *nodeImpl) Rotate(dx, dy, dz float64) {
	n.rotation = n.rotation.Add(mgl64.Vec3{dx, dy, dz})
}

func (n *nodeImpl) Add(children ...Node) {
	for _, c := range children {
		child, ok := c.(*nodeImpl)
		if !ok || child == n {
			continue
		}
		if child.parent != nil {
			child.parent.remove(child)
		}
		child.parent = n
		n.children = append(n.children, child)
	}
}

func (n *nodeImpl) remove(child *nodeImpl) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *nodeImpl) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *nodeImpl) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *nodeImpl) LocalMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(n.position[0], n.position[1], n.position[2]).
		Mul4(mgl64.HomogRotate3DX(n.rotation[0])).
		Mul4(mgl64.HomogRotate3DY(n.rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(n.rotation[2])).
		Mul4(mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2]))
}

func (n *nodeImpl) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *nodeImpl) WorldMatrix32() mgl32.Mat4 {
	return common.Mat4To32(n.WorldMatrix())
}

func (n *nodeImpl) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}
