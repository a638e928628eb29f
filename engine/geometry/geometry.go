// Package geometry builds the CPU-side vertex and index data for the two meshes the renderer draws:
// a unit box split into six face groups, and a flat rectangle used as a fullscreen quad.
package geometry

import (
	"unsafe"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Box face group indices, in the order their materials are applied.
const (
	FacePosX uint32 = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	// FaceCount is the number of face groups on a box.
	FaceCount = 6
)

// Vertex is the interleaved vertex format shared by every mesh (36 bytes).
type Vertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	UV       [2]float32 // offset 24
	Face     uint32     // offset 32: face group index, 0 for non-box meshes
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// VertexBufferLayout describes Vertex to the GPU at shader locations 0 to 3.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatUint32, Offset: 32, ShaderLocation: 3},
		},
	}
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// VertexBytes returns the vertex data as a byte view for GPU upload.
func (g *Geometry) VertexBytes() []byte {
	return common.SliceToBytes(g.Vertices)
}

// IndexBytes returns the index data as a byte view for GPU upload.
func (g *Geometry) IndexBytes() []byte {
	return common.SliceToBytes(g.Indices)
}

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int {
	return len(g.Indices)
}

// boxFace describes one side of a box: its outward normal and two in-plane axes whose cross
// product is the normal, so corners listed (-u,-v), (+u,-v), (+u,+v), (-u,+v) wind counter-clockwise
// when seen from outside.
type boxFace struct {
	normal, u, v mgl32.Vec3
}

var boxFaces = [FaceCount]boxFace{
	FacePosX: {normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	FaceNegX: {normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	FacePosY: {normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	FaceNegY: {normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	FacePosZ: {normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	FaceNegZ: {normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// NewBox builds an axis aligned box centered on the origin with 24 vertices (4 per face, so each
// face has flat normals) and 36 indices. Every vertex carries its face group index.
//
// Parameters:
//   - size: edge length of the box
//
// Returns:
//   - *Geometry: the box geometry
func NewBox(size float32) *Geometry {
	half := size / 2
	g := &Geometry{
		Vertices: make([]Vertex, 0, FaceCount*4),
		Indices:  make([]uint32, 0, FaceCount*6),
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for face, f := range boxFaces {
		base := uint32(len(g.Vertices))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(half)
			g.Vertices = append(g.Vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       [2]float32{(c[0] + 1) / 2, (1 - c[1]) / 2},
				Face:     uint32(face),
			})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewPlane builds a width x height rectangle in the XY plane facing +Z, centered on the origin.
// Texture coordinates put v=0 at the top edge, matching how render targets are addressed.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *Geometry: the plane geometry (4 vertices, 6 indices)
func NewPlane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return &Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{-hw, -hh, 0}, Normal: n, UV: [2]float32{0, 1}},
			{Position: [3]float32{hw, -hh, 0}, Normal: n, UV: [2]float32{1, 1}},
			{Position: [3]float32{hw, hh, 0}, Normal: n, UV: [2]float32{1, 0}},
			{Position: [3]float32{-hw, hh, 0}, Normal: n, UV: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
