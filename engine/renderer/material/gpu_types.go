package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFaceColors is the GPU-aligned block of six face colors, laid out as array<vec4<f32>, 6>.
// Size: 96 bytes.
type GPUFaceColors struct {
	Colors [FaceCount][4]float32
}

// Size returns the size of the GPUFaceColors struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (96)
func (g *GPUFaceColors) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFaceColors struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPUFaceColors) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, c := range g.Colors {
		for j, v := range c {
			binary.LittleEndian.PutUint32(buf[(i*4+j)*4:], math.Float32bits(v))
		}
	}
	return buf
}
