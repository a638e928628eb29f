package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faceOf returns the face group of the vertex referenced at the given index offset.
func faceOf(g *Geometry, indexOffset int) uint32 {
	return g.Vertices[g.Indices[indexOffset]].Face
}

// extent returns the axis aligned size of g.
func extent(g *Geometry) mgl32.Vec3 {
	if len(g.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	lo := mgl32.Vec3(g.Vertices[0].Position)
	hi := lo
	for _, v := range g.Vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	return hi.Sub(lo)
}

func TestVertexStride(t *testing.T) {
	assert.Equal(t, uint64(36), VertexStride)
	layout := VertexBufferLayout()
	assert.Equal(t, VertexStride, layout.ArrayStride)
	assert.Len(t, layout.Attributes, 4)
}

func TestNewBox(t *testing.T) {
	box := NewBox(1)
	require.Len(t, box.Vertices, 24)
	require.Equal(t, 36, box.IndexCount())
	assert.Len(t, box.VertexBytes(), 24*36)
	assert.Len(t, box.IndexBytes(), 36*4)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, extent(box))

	// six triangles-pairs, one per face group, in face order
	for face := range uint32(FaceCount) {
		offset := int(face) * 6
		for i := offset; i < offset+6; i++ {
			assert.Equal(t, face, faceOf(box, i))
		}
	}
}

func TestBoxWindingFacesOutward(t *testing.T) {
	box := NewBox(2)
	for i := 0; i < box.IndexCount(); i += 3 {
		a := mgl32.Vec3(box.Vertices[box.Indices[i]].Position)
		b := mgl32.Vec3(box.Vertices[box.Indices[i+1]].Position)
		c := mgl32.Vec3(box.Vertices[box.Indices[i+2]].Position)
		n := mgl32.Vec3(box.Vertices[box.Indices[i]].Normal)

		cross := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, cross.Dot(n), float32(0), "triangle %d winds inward", i/3)
		// every vertex of a face lies on the face plane
		assert.InDelta(t, 1, a.Dot(n), 1e-6)
	}
}

func TestNewPlane(t *testing.T) {
	plane := NewPlane(800, 600)
	require.Len(t, plane.Vertices, 4)
	assert.Equal(t, 6, plane.IndexCount())
	assert.Equal(t, mgl32.Vec3{800, 600, 0}, extent(plane))

	for _, v := range plane.Vertices {
		// top edge samples v=0
		if v.Position[1] > 0 {
			assert.Equal(t, float32(0), v.UV[1])
		} else {
			assert.Equal(t, float32(1), v.UV[1])
		}
		assert.Equal(t, uint32(0), v.Face)
	}
}
