package compositor

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUQuadUniform is the GPU-aligned representation of the composite quad uniform buffer.
// Matches the WGSL Quad struct in composite.wgsl.
// Size: 128 bytes.
type GPUQuadUniform struct {
	ViewProj mgl32.Mat4 // offset  0: orthographic view-projection (mat4x4<f32>)
	Model    mgl32.Mat4 // offset 64: quad placement (mat4x4<f32>)
}

// Size returns the size of the GPUQuadUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUQuadUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUQuadUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUQuadUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}
