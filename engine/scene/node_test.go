package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(WithName("root"))
	assert.Equal(t, "root", n.Name())
	assert.Equal(t, mgl64.Vec3{}, n.Position())
	assert.Equal(t, mgl64.Vec3{}, n.Rotation())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, n.Scale())
	assert.True(t, n.LocalMatrix().ApproxEqual(mgl64.Ident4()))
}

func TestNodeRotateAccumulates(t *testing.T) {
	n := NewNode()
	for range 1000 {
		n.Rotate(0.005, 0.005, 0.01)
	}
	r := n.Rotation()
	assert.InDelta(t, 5.0, r.X(), 1e-9)
	assert.InDelta(t, 5.0, r.Y(), 1e-9)
	assert.InDelta(t, 10.0, r.Z(), 1e-9)
}

func TestNodeLocalMatrixOrder(t *testing.T) {
	n := NewNode(WithPosition(1, 2, 3), WithRotation(0, 0, math.Pi/2), WithUniformScale(2))

	// (1,0,0) is scaled to (2,0,0), rotated about Z to (0,2,0), then translated.
	p := n.LocalMatrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-9)
	assert.InDelta(t, 4, p.Y(), 1e-9)
	assert.InDelta(t, 3, p.Z(), 1e-9)
}

func TestNodeRotationIsXYZOrder(t *testing.T) {
	n := NewNode(WithRotation(math.Pi/2, math.Pi/2, 0))
	want := mgl64.HomogRotate3DX(math.Pi / 2).Mul4(mgl64.HomogRotate3DY(math.Pi / 2))
	assert.True(t, n.LocalMatrix().ApproxEqualThreshold(want, 1e-12))
}

func TestNodeHierarchy(t *testing.T) {
	parent := NewNode(WithPosition(10, 0, 0), WithUniformScale(2))
	child := NewNode(WithPosition(1, 1, 1))
	parent.Add(child)

	require.Len(t, parent.Children(), 1)
	assert.Equal(t, parent, child.Parent())
	assert.Nil(t, parent.Parent())

	wp := child.WorldPosition()
	assert.InDelta(t, 12, wp.X(), 1e-9)
	assert.InDelta(t, 2, wp.Y(), 1e-9)
	assert.InDelta(t, 2, wp.Z(), 1e-9)

	other := NewNode()
	other.Add(child)
	assert.Empty(t, parent.Children())
	assert.Equal(t, other, child.Parent())

	m32 := child.WorldMatrix32()
	assert.InDelta(t, 1, m32[12], 1e-6)
}
