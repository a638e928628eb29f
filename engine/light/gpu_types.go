package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPULight is the GPU-aligned representation of a directional light.
// Size: 32 bytes (two vec4<f32>).
type GPULight struct {
	Direction mgl32.Vec4 // offset  0: xyz = normalized direction toward the light, w = intensity
	Color     mgl32.Vec4 // offset 16: linear RGB color, w unused
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Direction[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}
